// Package testkit holds invariant checks shared by unit and fuzz tests.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"fixit/internal/linemap"
	"fixit/internal/source"
	"fixit/internal/token"
)

// CheckTokenInvariants checks a successful token stream against its file:
//  1. ENCODING comes first and ENDMARKER last
//  2. spans lie inside the content and never move backwards
//  3. NAME/NUMBER/STRING/OP/COMMENT text is exactly the source under the span
//  4. Start matches the span start position
func CheckTokenInvariants(file *source.File, toks []token.Token) error {
	if len(toks) < 2 {
		return fmt.Errorf("token stream too short: %d", len(toks))
	}
	if toks[0].Kind != token.Encoding {
		return fmt.Errorf("first token is %s, want ENCODING", toks[0].Kind)
	}
	if last := toks[len(toks)-1]; last.Kind != token.EndMarker {
		return fmt.Errorf("last token is %s, want ENDMARKER", last.Kind)
	}
	size, err := safecast.Conv[uint32](len(file.Content))
	if err != nil {
		return fmt.Errorf("content too large: %w", err)
	}

	var prev uint32
	for i, tok := range toks {
		sp := tok.Span
		if sp.End < sp.Start || sp.End > size {
			return fmt.Errorf("token %d (%s) span %v outside content of %d bytes", i, tok.Kind, sp, size)
		}
		if sp.Start < prev {
			return fmt.Errorf("token %d (%s) starts at %d before previous start %d", i, tok.Kind, sp.Start, prev)
		}
		prev = sp.Start

		switch tok.Kind {
		case token.Name, token.Number, token.String, token.Op, token.Comment:
			if got := string(file.Content[sp.Start:sp.End]); got != tok.Text {
				return fmt.Errorf("token %d (%s) text %q, source has %q", i, tok.Kind, tok.Text, got)
			}
			if pos := file.Position(sp.Start); pos != tok.Start {
				return fmt.Errorf("token %d (%s) starts at %d:%d, span says %d:%d", i, tok.Kind, tok.Start.Line, tok.Start.Col, pos.Line, pos.Col)
			}
		}
	}
	return nil
}

// CheckLineMapInvariants checks that every physical line of file maps to a
// logical line at or before it, and that the mapping never goes backwards.
func CheckLineMapInvariants(file *source.File, m *linemap.LineMap) error {
	var prev uint32
	for phys := uint32(1); int(phys) <= file.LineCount(); phys++ {
		logical, ok := m.Logical(phys)
		if !ok {
			return fmt.Errorf("physical line %d is not mapped", phys)
		}
		if logical > phys {
			return fmt.Errorf("physical line %d maps forward to %d", phys, logical)
		}
		if logical < prev {
			return fmt.Errorf("physical line %d maps to %d, before line %d's %d", phys, logical, phys-1, prev)
		}
		prev = logical
	}
	return nil
}
