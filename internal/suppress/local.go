package suppress

import (
	"fixit/internal/linemap"
	"fixit/internal/token"
)

// Local holds line-scoped suppressions keyed by logical line.
// Comments is in evaluation order: lint-ignore/lint-fixme first, then noqa.
type Local struct {
	Comments []*Comment
	byLine   map[uint32][]*Comment
}

// ComputeLocal builds the per-line table.
//
// lint-ignore/lint-fixme directives, own-line only, cover every line from
// the comment through the next non-empty logical line. "# lint:" own-line
// comments on the directly following lines extend the reason. Inline noqa
// is looked for in every comment and covers the logical line it sits on.
func ComputeLocal(comments *linemap.CommentIndex, lines *linemap.LineMap) *Local {
	l := &Local{byLine: make(map[uint32][]*Comment)}

	own := comments.OwnLine
	for i := 0; i < len(own); i++ {
		d, ok := parseLintIgnore(own[i].Text)
		if !ok {
			continue
		}
		c := &Comment{
			Kind:       d.kind,
			Codes:      d.codes,
			Reason:     d.reason,
			Tokens:     []token.Token{own[i]},
			OwnLine:    true,
			CodesStart: d.codesStart,
			CodesEnd:   d.codesEnd,
		}
		for i+1 < len(own) && own[i+1].Start.Line == c.LastLine()+1 {
			text, ok := parseContinuation(own[i+1].Text)
			if !ok {
				break
			}
			c.Tokens = append(c.Tokens, own[i+1])
			c.Reason = joinReason(c.Reason, text)
			i++
		}

		first := c.Line()
		last := c.LastLine()
		if next, ok := lines.NextNonEmpty(first); ok && next > last {
			last = next
		}
		for line := first; line <= last; line++ {
			l.add(line, c)
		}
		l.Comments = append(l.Comments, c)
	}

	for _, tok := range comments.All {
		d, ok := parseNoqa(tok.Text)
		if !ok {
			continue
		}
		c := &Comment{
			Kind:           KindNoqa,
			Codes:          d.codes,
			Tokens:         []token.Token{tok},
			OwnLine:        comments.IsOwnLine(tok),
			DirectiveStart: d.start,
			CodesStart:     d.codesStart,
			CodesEnd:       d.codesEnd,
		}
		l.add(lines.LogicalOr(tok.Start.Line), c)
		l.Comments = append(l.Comments, c)
	}
	return l
}

func (l *Local) add(line uint32, c *Comment) {
	for _, have := range l.byLine[line] {
		if have == c {
			return
		}
	}
	l.byLine[line] = append(l.byLine[line], c)
}

// OnLine returns the suppressions registered for a logical line, in
// evaluation order.
func (l *Local) OnLine(logical uint32) []*Comment {
	return l.byLine[logical]
}
