package rules

import (
	"fmt"
	"slices"
	"strings"

	"fixit/internal/cst"
	"fixit/internal/diag"
	"fixit/internal/patch"
	"fixit/internal/rule"
	"fixit/internal/source"
	"fixit/internal/suppress"
)

// UnusedSuppressionCode is the meta-rule's code. Silencing it with noqa-file
// turns the whole check off.
const UnusedSuppressionCode diag.Code = "UnusedSuppression"

// UnusedSuppression reports local suppression comments that swallowed
// nothing, or that list codes nothing was reported for.
type UnusedSuppression struct{ rule.BaseVisitor }

var _ rule.SuppressionChecker = (*UnusedSuppression)(nil)

func (*UnusedSuppression) Code() diag.Code { return UnusedSuppressionCode }

func (*UnusedSuppression) Message() string {
	return "Unused lint suppression. This comment is not suppressing lint errors and can be removed."
}

// Kinds is empty: the rule never visits the tree.
func (*UnusedSuppression) Kinds() []cst.Kind { return []cst.Kind{} }

// CheckSuppressions must run after every other diagnostic went through
// the index. Codes outside ran are never called unused.
func (r *UnusedSuppression) CheckSuppressions(ctx *rule.Context, ix *suppress.Index, ran rule.CodeSet) error {
	for _, c := range ix.Local.Comments {
		if err := r.check(ctx, c, ran); err != nil {
			return err
		}
	}
	return nil
}

func (r *UnusedSuppression) check(ctx *rule.Context, c *suppress.Comment, ran rule.CodeSet) error {
	first := c.Tokens[0]
	whole := first.Span.Cover(c.Tokens[len(c.Tokens)-1].Span)
	if c.All() {
		if c.Used() || !ranContentRule(ran) {
			return nil
		}
		return ctx.ReportAt(whole, "", rule.WithPatch(removeComment(ctx.File, c)))
	}

	unused := c.UnusedCodes(ran.Has)
	if len(unused) == 0 {
		return nil
	}
	var keep []string
	for _, code := range c.Codes {
		if !slices.Contains(unused, code) && !slices.Contains(keep, string(code)) {
			keep = append(keep, string(code))
		}
	}
	if len(keep) == 0 {
		return ctx.ReportAt(whole, "", rule.WithPatch(removeComment(ctx.File, c)))
	}

	names := make([]string, len(unused))
	for i, code := range unused {
		names[i] = string(code)
	}
	msg := fmt.Sprintf("Unused lint suppression for %s. %s can be removed from this comment.",
		strings.Join(names, ", "), plural(len(names), "This code", "These codes"))

	span := source.Span{
		File:  first.Span.File,
		Start: first.Span.Start + uint32(c.CodesStart),
		End:   first.Span.Start + uint32(c.CodesEnd),
	}
	p := patch.FromSpan(ctx.File, span, strings.Join(keep, ", "))
	return ctx.ReportAt(first.Span, msg, rule.WithPatch(p),
		rule.WithNote(span, "still suppressing "+strings.Join(keep, ", ")))
}

// ranContentRule reports whether anything besides this rule looked at the
// file; a bare noqa cannot be judged otherwise.
func ranContentRule(ran rule.CodeSet) bool {
	for code := range ran {
		if code != UnusedSuppressionCode {
			return true
		}
	}
	return false
}

// removeComment deletes a whole suppression.
//
// Own-line comments take their physical lines with them, continuation
// lines included. A trailing noqa goes together with the blanks before it.
// A noqa glued to other comment text only loses the directive.
func removeComment(f *source.File, c *suppress.Comment) patch.Patch {
	first := c.Tokens[0]
	if c.DirectiveStart > 0 {
		start := first.Span.Start + uint32(c.DirectiveStart)
		start = skipBlanksBack(f.Content, start, first.Span.Start)
		end := first.Span.Start + uint32(c.CodesEnd)
		return patch.FromSpan(f, source.Span{File: f.ID, Start: start, End: end}, "")
	}
	if c.OwnLine {
		start := f.LineStarts[c.Line()-1]
		end := uint32(len(f.Content))
		if last := c.LastLine(); int(last) < len(f.LineStarts) {
			end = f.LineStarts[last]
		}
		return patch.FromSpan(f, source.Span{File: f.ID, Start: start, End: end}, "")
	}
	lineStart := f.LineStarts[c.Line()-1]
	start := skipBlanksBack(f.Content, first.Span.Start, lineStart)
	return patch.FromSpan(f, source.Span{File: f.ID, Start: start, End: first.Span.End}, "")
}

func skipBlanksBack(content []byte, off, floor uint32) uint32 {
	for off > floor && (content[off-1] == ' ' || content[off-1] == '\t') {
		off--
	}
	return off
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
