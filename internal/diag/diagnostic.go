package diag

import (
	"fixit/internal/patch"
	"fixit/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is one rule firing at one position.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Path     string
	Primary  source.Span
	Pos      source.LineCol // Line 1-based, Col 0-based в байтах
	Patch    *patch.Patch   `msgpack:",omitempty"`
	Notes    []Note         `msgpack:",omitempty"`
}

func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

// Fixable reports whether the diagnostic carries a patch that changes something.
func (d *Diagnostic) Fixable() bool {
	return d.Patch != nil && !d.Patch.IsNoop()
}

func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}

func (d Diagnostic) WithPatch(p patch.Patch) Diagnostic {
	d.Patch = &p
	return d
}
