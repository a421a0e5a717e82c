package diagfmt

import (
	"fmt"
	"io"

	"fixit/internal/driver"
)

// Summary counts what a run found and did.
type Summary struct {
	Files       int `json:"files"`
	Diagnostics int `json:"diagnostics"`
	Fixable     int `json:"fixable"`
	Fixed       int `json:"fixed"`
	Changed     int `json:"changed"`
	Written     int `json:"written"`
	Errors      int `json:"errors"`
}

func (s *Summary) add(r *driver.Result) {
	s.Files++
	if r.Err != nil {
		s.Errors++
		return
	}
	s.Diagnostics += len(r.Diagnostics)
	for i := range r.Diagnostics {
		if r.Diagnostics[i].Fixable() {
			s.Fixable++
		}
	}
	s.Fixed += len(r.Fixed)
	if r.Changed {
		s.Changed++
	}
	if r.Written {
		s.Written++
	}
}

// Summarize counts results without rendering them.
func Summarize(results []driver.Result) Summary {
	var s Summary
	for i := range results {
		s.add(&results[i])
	}
	return s
}

// Failed reports whether the run should exit non-zero.
func (s Summary) Failed() bool {
	return s.Errors > 0 || s.Diagnostics > 0
}

// WriteSummary prints the closing line of a pretty run.
func WriteSummary(w io.Writer, s Summary, colored bool) {
	pal := newPalette(colored)
	switch {
	case s.Diagnostics == 0 && s.Errors == 0 && s.Fixed == 0:
		fmt.Fprintf(w, "%s %s\n", pal.add.Sprint("✓"), fmt.Sprintf("checked %s, no problems", plural(s.Files, "file")))
		return
	case s.Diagnostics == 0 && s.Errors == 0:
		fmt.Fprintf(w, "%s fixed %s in %s\n", pal.add.Sprint("✓"), plural(s.Fixed, "problem"), plural(s.Changed, "file"))
		return
	}
	line := fmt.Sprintf("found %s in %s", plural(s.Diagnostics, "problem"), plural(s.Files, "file"))
	if s.Fixable > 0 {
		line += fmt.Sprintf(" (%d fixable with `fixit fix`)", s.Fixable)
	}
	if s.Fixed > 0 {
		line += fmt.Sprintf(", fixed %d", s.Fixed)
	}
	if s.Errors > 0 {
		line += fmt.Sprintf(", %s", plural(s.Errors, "file error"))
	}
	fmt.Fprintln(w, pal.warn.Sprint(line))
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
