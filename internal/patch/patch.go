// Package patch models a single textual substitution in a source file.
//
// A Patch is a value: Minimize and Apply return new values and never touch
// their receiver or input. Offsets are byte offsets into File.Content; the
// start position uses the same 1-based line / 0-based byte column convention
// as the tokenizer.
package patch

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"fixit/internal/source"
)

// ErrMismatch means OldText is not what the source holds at StartOffset.
var ErrMismatch = errors.New("patch: old text does not match source")

// Ranged is anything with a source span, usually a tree node.
type Ranged interface {
	Span() source.Span
}

type Patch struct {
	StartOffset int
	Start       source.LineCol
	OldText     string
	NewText     string
}

// FromSpan builds a patch replacing span of file with newText.
func FromSpan(file *source.File, span source.Span, newText string) Patch {
	return Patch{
		StartOffset: int(span.Start),
		Start:       file.Position(span.Start),
		OldText:     string(file.Content[span.Start:span.End]),
		NewText:     newText,
	}
}

// Get replaces the text under node; an empty replacement removes it.
func Get(file *source.File, node Ranged, replacement string) Patch {
	return FromSpan(file, node.Span(), replacement)
}

// IsNoop reports whether applying p cannot change anything.
func (p Patch) IsNoop() bool {
	return p.OldText == p.NewText
}

// End returns the offset just past the replaced text.
func (p Patch) End() int {
	return p.StartOffset + len(p.OldText)
}

func (p Patch) String() string {
	return fmt.Sprintf("%d:%d@%d %q -> %q", p.Start.Line, p.Start.Col, p.StartOffset, p.OldText, p.NewText)
}

// Apply splices NewText into src. The caller guarantees OldText matches;
// use ApplyChecked when that is not certain.
func (p Patch) Apply(src string) string {
	return src[:p.StartOffset] + p.NewText + src[p.End():]
}

// ApplyChecked is Apply with the old text verified first.
func (p Patch) ApplyChecked(src string) (string, error) {
	if p.StartOffset < 0 || p.End() > len(src) || src[p.StartOffset:p.End()] != p.OldText {
		return src, fmt.Errorf("%w at %d:%d", ErrMismatch, p.Start.Line, p.Start.Col)
	}
	return p.Apply(src), nil
}

// Minimize strips the longest common prefix and suffix of OldText and
// NewText, rune by rune, and moves the start past the stripped prefix.
// The suffix never overlaps the prefix. Minimize(Minimize(p)) == Minimize(p).
func (p Patch) Minimize() Patch {
	old, repl := p.OldText, p.NewText

	prefix := 0
	for prefix < len(old) && prefix < len(repl) {
		r1, n1 := utf8.DecodeRuneInString(old[prefix:])
		r2, n2 := utf8.DecodeRuneInString(repl[prefix:])
		if r1 != r2 || n1 != n2 || old[prefix:prefix+n1] != repl[prefix:prefix+n2] {
			break
		}
		prefix += n1
	}

	suffix := 0
	limit := min(len(old), len(repl)) - prefix
	for suffix < limit {
		r1, n1 := utf8.DecodeLastRuneInString(old[:len(old)-suffix])
		r2, n2 := utf8.DecodeLastRuneInString(repl[:len(repl)-suffix])
		if r1 != r2 || n1 != n2 || suffix+n1 > limit ||
			old[len(old)-suffix-n1:len(old)-suffix] != repl[len(repl)-suffix-n2:len(repl)-suffix] {
			break
		}
		suffix += n1
	}

	return Patch{
		StartOffset: p.StartOffset + prefix,
		Start:       advance(p.Start, old[:prefix], old[prefix:]),
		OldText:     old[prefix : len(old)-suffix],
		NewText:     repl[prefix : len(repl)-suffix],
	}
}

// advance moves pos over text. rest is what follows text in the source, so
// that a prefix ending between '\r' and '\n' stays on the same line.
func advance(pos source.LineCol, text, rest string) source.LineCol {
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			pos.Line++
			pos.Col = 0
		case '\r':
			switch {
			case i+1 < len(text) && text[i+1] == '\n':
				i++
				pos.Line++
				pos.Col = 0
			case i+1 == len(text) && len(rest) > 0 && rest[0] == '\n':
				// середина \r\n
				pos.Col++
			default:
				pos.Line++
				pos.Col = 0
			}
		default:
			pos.Col++
		}
	}
	return pos
}
