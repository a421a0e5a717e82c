package diagfmt

import (
	"encoding/json"
	"io"

	"fixit/internal/diag"
	"fixit/internal/driver"
)

// LocationJSON is where a diagnostic fired. Line is 1-based, Col is a
// 0-based byte column.
type LocationJSON struct {
	Line      uint32 `json:"line"`
	Col       uint32 `json:"col"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
}

// FixJSON is the patch attached to a fixable diagnostic.
type FixJSON struct {
	Line        uint32 `json:"line"`
	Col         uint32 `json:"col"`
	StartOffset int    `json:"start_offset"`
	OldText     string `json:"old_text"`
	NewText     string `json:"new_text"`
}

// DiagnosticJSON представляет диагностику в JSON формате
type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
	Fixable  bool         `json:"fixable"`
	Fix      *FixJSON     `json:"fix,omitempty"`
	Notes    []string     `json:"notes,omitempty"`
}

// FileJSON is one linted file.
type FileJSON struct {
	Path        string           `json:"path"`
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Error       string           `json:"error,omitempty"`
	Fixed       int              `json:"fixed,omitempty"`
	Changed     bool             `json:"changed,omitempty"`
	Written     bool             `json:"written,omitempty"`
	Capped      bool             `json:"capped,omitempty"`
	Cached      bool             `json:"cached,omitempty"`
	Diff        string           `json:"diff,omitempty"`
}

// Output is the root of the JSON document.
type Output struct {
	Files   []FileJSON `json:"files"`
	Summary Summary    `json:"summary"`
}

func diagnosticJSON(d *diag.Diagnostic, opts JSONOpts) DiagnosticJSON {
	out := DiagnosticJSON{
		Severity: d.Severity.Label(),
		Code:     d.Code.ID(),
		Message:  d.Message,
		Location: LocationJSON{
			Line:      d.Pos.Line,
			Col:       d.Pos.Col,
			StartByte: d.Primary.Start,
			EndByte:   d.Primary.End,
		},
		Fixable: d.Fixable(),
	}
	if opts.IncludeFixes && d.Fixable() {
		out.Fix = &FixJSON{
			Line:        d.Patch.Start.Line,
			Col:         d.Patch.Start.Col,
			StartOffset: d.Patch.StartOffset,
			OldText:     d.Patch.OldText,
			NewText:     d.Patch.NewText,
		}
	}
	for _, n := range d.Notes {
		out.Notes = append(out.Notes, n.Msg)
	}
	return out
}

// BuildOutput формирует структуру JSON-вывода без сериализации.
func BuildOutput(results []driver.Result, opts JSONOpts) Output {
	out := Output{Files: make([]FileJSON, 0, len(results)), Summary: Summarize(results)}
	for i := range results {
		r := &results[i]
		f := FileJSON{
			Path:        displayPath(r.Path, opts.PathMode, opts.BaseDir),
			Diagnostics: make([]DiagnosticJSON, 0, len(r.Diagnostics)),
			Fixed:       len(r.Fixed),
			Changed:     r.Changed,
			Written:     r.Written,
			Capped:      r.Capped,
			Cached:      r.Cached,
		}
		if r.Err != nil {
			f.Error = r.Err.Error()
		}
		for j := range r.Diagnostics {
			f.Diagnostics = append(f.Diagnostics, diagnosticJSON(&r.Diagnostics[j], opts))
		}
		if opts.IncludeDiffs {
			f.Diff = r.Diff
		}
		out.Files = append(out.Files, f)
	}
	return out
}

// JSON writes results as one indented JSON document.
func JSON(w io.Writer, results []driver.Result, opts JSONOpts) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildOutput(results, opts))
}
