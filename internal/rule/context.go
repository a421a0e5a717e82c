package rule

import (
	"fmt"

	"fixit/internal/cst"
	"fixit/internal/diag"
	"fixit/internal/patch"
	"fixit/internal/source"
)

// Context is what a rule sees of the file being linted.
type Context struct {
	File     *source.File
	Tree     *cst.Tree
	rule     Rule
	reporter diag.Reporter
}

func NewContext(file *source.File, tree *cst.Tree, r Rule, rep diag.Reporter) *Context {
	return &Context{File: file, Tree: tree, rule: r, reporter: rep}
}

type reportConfig struct {
	replacement *string
	patch       *patch.Patch
	notes       []diag.Note
}

type ReportOption func(*reportConfig)

// WithReplacement offers replacing the reported node with text.
func WithReplacement(text string) ReportOption {
	return func(c *reportConfig) { c.replacement = &text }
}

// WithRemoval offers deleting the reported node.
func WithRemoval() ReportOption {
	return WithReplacement("")
}

// WithPatch attaches an explicit patch.
func WithPatch(p patch.Patch) ReportOption {
	return func(c *reportConfig) { c.patch = &p }
}

// WithNote adds a secondary message pointing at span.
func WithNote(span source.Span, msg string) ReportOption {
	return func(c *reportConfig) { c.notes = append(c.notes, diag.Note{Span: span, Msg: msg}) }
}

// Report records a violation at node n.
func (c *Context) Report(n cst.Node, message string, opts ...ReportOption) error {
	return c.ReportAt(n.Span(), message, opts...)
}

// ReportAt records a violation at an arbitrary span. A replacement option
// applies to that span.
func (c *Context) ReportAt(span source.Span, message string, opts ...ReportOption) error {
	if message == "" {
		message = c.rule.Message()
	}
	if message == "" {
		return fmt.Errorf("%w: %s at %s:%d", ErrMissingMessage, c.rule.Code(), c.File.Path, c.File.Position(span.Start).Line)
	}
	var cfg reportConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	d := diag.New(diag.SevWarning, c.rule.Code(), span, message)
	d.Path = c.File.Path
	d.Pos = c.File.Position(span.Start)
	switch {
	case cfg.patch != nil:
		d = d.WithPatch(cfg.patch.Minimize())
	case cfg.replacement != nil:
		d = d.WithPatch(patch.FromSpan(c.File, span, *cfg.replacement).Minimize())
	}
	for _, n := range cfg.notes {
		d = d.WithNote(n.Span, n.Msg)
	}
	c.reporter.Report(d)
	return nil
}
