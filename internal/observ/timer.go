// Package observ times the phases of a lint run for --timings output.
package observ

import (
	"fmt"
	"io"
	"time"
)

// Phase is the accumulated time of one named step. The fix loop re-runs
// tokenize/parse/visit on every iteration; those runs add up in one Phase.
type Phase struct {
	Name string
	Runs int
	Dur  time.Duration
	Note string // заметка последнего запуска
}

// Timer collects phases in the order they first started.
type Timer struct {
	phases []Phase
	byName map[string]int
	open   []open
}

type open struct {
	phase int
	start time.Time
}

func NewTimer() *Timer {
	return &Timer{byName: make(map[string]int, 8)}
}

// Begin starts a run of the named phase and returns a handle for End.
func (t *Timer) Begin(name string) int {
	idx, ok := t.byName[name]
	if !ok {
		idx = len(t.phases)
		t.byName[name] = idx
		t.phases = append(t.phases, Phase{Name: name})
	}
	t.open = append(t.open, open{phase: idx, start: time.Now()})
	return len(t.open) - 1
}

// End finishes the run behind handle. Unknown or finished handles are ignored.
func (t *Timer) End(handle int, note string) {
	if handle < 0 || handle >= len(t.open) || t.open[handle].phase < 0 {
		return
	}
	run := t.open[handle]
	t.open[handle].phase = -1
	p := &t.phases[run.phase]
	p.Runs++
	p.Dur += time.Since(run.start)
	if note != "" {
		p.Note = note
	}
}

// PhaseReport is one phase ready for printing or JSON.
type PhaseReport struct {
	Name       string  `json:"name"`
	Runs       int     `json:"runs"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report is the timing breakdown of one file.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

// Report snapshots finished runs; phases that never finished are left out.
func (t *Timer) Report() Report {
	var report Report
	var total time.Duration
	for _, p := range t.phases {
		if p.Runs == 0 {
			continue
		}
		total += p.Dur
		report.Phases = append(report.Phases, PhaseReport{
			Name:       p.Name,
			Runs:       p.Runs,
			DurationMS: millis(p.Dur),
			Note:       p.Note,
		})
	}
	report.TotalMS = millis(total)
	return report
}

// Write prints the report as an indented table.
func (r Report) Write(w io.Writer) {
	for _, p := range r.Phases {
		fmt.Fprintf(w, "  %-10s %8.2f ms", p.Name, p.DurationMS)
		if p.Runs > 1 {
			fmt.Fprintf(w, " x%d", p.Runs)
		}
		if p.Note != "" {
			fmt.Fprintf(w, "  // %s", p.Note)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "  %-10s %8.2f ms\n", "total", r.TotalMS)
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
