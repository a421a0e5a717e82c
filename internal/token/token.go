package token

import (
	"fmt"

	"fixit/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind  Kind
	Text  string
	Start source.LineCol
	End   source.LineCol
	Span  source.Span
}

func (t Token) String() string {
	return fmt.Sprintf("%d,%d-%d,%d:\t%s\t%q", t.Start.Line, t.Start.Col, t.End.Line, t.End.Col, t.Kind, t.Text)
}

// IsOp reports whether the token is the operator text op.
func (t Token) IsOp(op string) bool { return t.Kind == Op && t.Text == op }
