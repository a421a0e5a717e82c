package linemap

import "fixit/internal/token"

// CommentIndex делит комментарии на все и стоящие на отдельной строке.
type CommentIndex struct {
	All     []token.Token
	OwnLine []token.Token

	ownByOffset map[uint32]struct{}
}

// BuildComments classifies every COMMENT token. A comment is own-line when no
// other token except INDENT/DEDENT has ended on its physical line before it.
func BuildComments(tokens []token.Token) *CommentIndex {
	ci := &CommentIndex{ownByOffset: make(map[uint32]struct{})}
	var prevLine uint32
	for _, tok := range tokens {
		switch tok.Kind {
		case token.Indent, token.Dedent:
			continue
		case token.Comment:
			ci.All = append(ci.All, tok)
			if tok.Start.Line != prevLine {
				ci.OwnLine = append(ci.OwnLine, tok)
				ci.ownByOffset[tok.Span.Start] = struct{}{}
			}
		}
		prevLine = tok.End.Line
	}
	return ci
}

// IsOwnLine reports whether tok is one of the own-line comments.
func (ci *CommentIndex) IsOwnLine(tok token.Token) bool {
	_, ok := ci.ownByOffset[tok.Span.Start]
	return ok
}
