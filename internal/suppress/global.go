package suppress

import (
	"fixit/internal/diag"
	"fixit/internal/linemap"
	"fixit/internal/token"
)

// Global is the file-wide part: noqa-file codes and the flake8 sentinel.
type Global struct {
	All      bool
	Codes    map[diag.Code]struct{}
	Comments []*Comment
}

// ComputeGlobal scans own-line comments only. A "# flake8: noqa" makes
// every code ignored and ends the scan.
func ComputeGlobal(comments *linemap.CommentIndex) *Global {
	g := &Global{Codes: make(map[diag.Code]struct{})}
	for _, tok := range comments.OwnLine {
		if isFlake8Noqa(tok.Text) {
			g.All = true
			g.Comments = append(g.Comments, &Comment{Kind: KindFlake8, Tokens: []token.Token{tok}, OwnLine: true})
			return g
		}
		d, ok := parseNoqaFile(tok.Text)
		if !ok {
			continue
		}
		for _, code := range d.codes {
			g.Codes[code] = struct{}{}
		}
		g.Comments = append(g.Comments, &Comment{
			Kind:       KindNoqaFile,
			Codes:      d.codes,
			Reason:     d.reason,
			Tokens:     []token.Token{tok},
			OwnLine:    true,
			CodesStart: d.codesStart,
			CodesEnd:   d.codesEnd,
		})
	}
	return g
}

// Ignores reports whether code is suppressed for the whole file.
func (g *Global) Ignores(code diag.Code) bool {
	if g.All {
		return true
	}
	_, ok := g.Codes[code]
	return ok
}
