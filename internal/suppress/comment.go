package suppress

import (
	"slices"

	"fixit/internal/diag"
	"fixit/internal/token"
)

type Kind uint8

const (
	KindNoqa Kind = iota
	KindNoqaFile
	KindFlake8
	KindLintIgnore
	KindLintFixme
)

var kindNames = [...]string{
	KindNoqa:       "noqa",
	KindNoqaFile:   "noqa-file",
	KindFlake8:     "flake8: noqa",
	KindLintIgnore: "lint-ignore",
	KindLintFixme:  "lint-fixme",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Global reports whether the dialect applies to the whole file.
func (k Kind) Global() bool {
	return k == KindNoqaFile || k == KindFlake8
}

// ParseKind maps "lint-ignore"/"lint-fixme" to their Kind.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "lint-ignore":
		return KindLintIgnore, true
	case "lint-fixme":
		return KindLintFixme, true
	}
	return 0, false
}

// Comment is one suppression directive. A lint-ignore/lint-fixme directive
// may span several physical comment lines; Tokens holds all of them.
// Only the usage list changes after construction.
type Comment struct {
	Kind    Kind
	Codes   []diag.Code // пусто = все правила
	Reason  string
	Tokens  []token.Token
	OwnLine bool

	// DirectiveStart is where the directive begins inside Tokens[0].Text;
	// non-zero only for a noqa that follows other comment text.
	DirectiveStart int
	// CodesStart/CodesEnd locate the code list inside Tokens[0].Text.
	// For a bare noqa both point just past the keyword.
	CodesStart, CodesEnd int

	usedBy []diag.Diagnostic
}

// All reports whether the comment suppresses every code.
func (c *Comment) All() bool {
	return len(c.Codes) == 0
}

// Matches reports whether code falls under this comment.
func (c *Comment) Matches(code diag.Code) bool {
	return c.All() || slices.Contains(c.Codes, code)
}

// Line is the physical line of the first comment token.
func (c *Comment) Line() uint32 {
	return c.Tokens[0].Start.Line
}

// LastLine is the physical line of the last continuation token.
func (c *Comment) LastLine() uint32 {
	return c.Tokens[len(c.Tokens)-1].End.Line
}

// UsedBy returns the diagnostics this comment swallowed so far.
func (c *Comment) UsedBy() []diag.Diagnostic {
	return c.usedBy
}

// Used reports whether any diagnostic was swallowed.
func (c *Comment) Used() bool {
	return len(c.usedBy) > 0
}

// UnusedCodes returns the listed codes no diagnostic was matched against,
// in their written order. Codes for which ran reports false are skipped:
// their rule never looked at the file. For an All comment it is nil.
func (c *Comment) UnusedCodes(ran func(diag.Code) bool) []diag.Code {
	if c.All() {
		return nil
	}
	used := make(map[diag.Code]struct{}, len(c.usedBy))
	for _, d := range c.usedBy {
		used[d.Code] = struct{}{}
	}
	var out []diag.Code
	for _, code := range c.Codes {
		if _, ok := used[code]; ok || !ran(code) {
			continue
		}
		if !slices.Contains(out, code) {
			out = append(out, code)
		}
	}
	return out
}

func (c *Comment) markUsed(d diag.Diagnostic) {
	c.usedBy = append(c.usedBy, d)
}
