// Package rule defines what a lint rule is and how it reports.
package rule

import (
	"errors"

	"fixit/internal/cst"
	"fixit/internal/diag"
	"fixit/internal/suppress"
)

// ErrMissingMessage fails the whole file: a report had no message and the
// rule has no default one.
var ErrMissingMessage = errors.New("lint rule reported a violation without a message")

// Rule is one lint check. Rules are built per file by a Factory, so fields
// are never shared between files.
type Rule interface {
	Code() diag.Code
	// Message is the default report text; may be empty.
	Message() string
	// Kinds lists the node kinds Visit/Leave want; nil means all.
	Kinds() []cst.Kind
	Visit(ctx *Context, n cst.Node) error
	Leave(ctx *Context, n cst.Node) error
}

// BaseVisitor gives rules no-op Visit/Leave.
type BaseVisitor struct{}

func (BaseVisitor) Visit(*Context, cst.Node) error { return nil }
func (BaseVisitor) Leave(*Context, cst.Node) error { return nil }

// SuppressionChecker is a rule that runs after all other diagnostics are
// filtered and inspects which suppressions were used.
type SuppressionChecker interface {
	Rule
	CheckSuppressions(ctx *Context, ix *suppress.Index, ran CodeSet) error
}

// CodeSet holds the codes of the rules that ran over a file.
type CodeSet map[diag.Code]struct{}

func (s CodeSet) Add(code diag.Code) { s[code] = struct{}{} }

func (s CodeSet) Has(code diag.Code) bool {
	_, ok := s[code]
	return ok
}

type Factory func() Rule

// bound adapts a rule and its context to cst.Visitor.
type bound struct {
	r   Rule
	ctx *Context
}

func (b bound) Kinds() []cst.Kind      { return b.r.Kinds() }
func (b bound) Visit(n cst.Node) error { return b.r.Visit(b.ctx, n) }
func (b bound) Leave(n cst.Node) error { return b.r.Leave(b.ctx, n) }

// Bind returns a cst.Visitor that forwards to r with ctx.
func Bind(r Rule, ctx *Context) cst.Visitor {
	return bound{r: r, ctx: ctx}
}
