package suppress

import (
	"fixit/internal/diag"
	"fixit/internal/linemap"
)

// Index answers "is this diagnostic suppressed" for one file.
type Index struct {
	Global *Global
	Local  *Local
	lines  *linemap.LineMap
}

// Build computes global and local suppressions.
func Build(lines *linemap.LineMap, comments *linemap.CommentIndex) *Index {
	return &Index{
		Global: ComputeGlobal(comments),
		Local:  ComputeLocal(comments, lines),
		lines:  lines,
	}
}

// Match identifies what suppresses a diagnostic: the file-wide set, or a
// single local comment.
type Match struct {
	Global  bool
	Comment *Comment
}

// ShouldEvaluateRule is false when nothing the rule reports could survive.
func (ix *Index) ShouldEvaluateRule(code diag.Code) bool {
	return !ix.Global.Ignores(code)
}

// FindMatching returns the suppression that swallows d without recording
// anything. Global suppressions win without looking at local ones.
func (ix *Index) FindMatching(d *diag.Diagnostic) (Match, bool) {
	if ix.Global.Ignores(d.Code) {
		return Match{Global: true}, true
	}
	logical := ix.lines.LogicalOr(d.Pos.Line)
	for _, c := range ix.Local.OnLine(logical) {
		if c.Matches(d.Code) {
			return Match{Comment: c}, true
		}
	}
	return Match{}, false
}

// MarkUsed credits the matched local comment with d.
func (ix *Index) MarkUsed(m Match, d diag.Diagnostic) {
	if m.Comment != nil {
		m.Comment.markUsed(d)
	}
}

// ShouldIgnore is FindMatching followed by MarkUsed.
func (ix *Index) ShouldIgnore(d diag.Diagnostic) bool {
	m, ok := ix.FindMatching(&d)
	if ok {
		ix.MarkUsed(m, d)
	}
	return ok
}

// Comments returns every suppression comment in the file, global first.
func (ix *Index) Comments() []*Comment {
	out := make([]*Comment, 0, len(ix.Global.Comments)+len(ix.Local.Comments))
	out = append(out, ix.Global.Comments...)
	return append(out, ix.Local.Comments...)
}

// Lines exposes the line map the index was built on.
func (ix *Index) Lines() *linemap.LineMap {
	return ix.lines
}
