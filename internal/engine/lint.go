package engine

import (
	"context"
	"fmt"
	"strconv"

	"fixit/internal/cst"
	"fixit/internal/diag"
	"fixit/internal/lexer"
	"fixit/internal/linemap"
	"fixit/internal/rule"
	"fixit/internal/source"
	"fixit/internal/suppress"
	"fixit/internal/token"
	"fixit/internal/trace"
)

// Report is the outcome of one pass over one file version.
type Report struct {
	File *source.File
	// Diagnostics survived suppression, sorted by position.
	Diagnostics []diag.Diagnostic
	// Suppressed counts diagnostics swallowed by a comment.
	Suppressed int
	Tokens     []token.Token
	Lines      *linemap.LineMap
	Index      *suppress.Index
}

// Fixable returns the first diagnostic carrying a patch, in position order.
func (r *Report) Fixable() (diag.Diagnostic, bool) {
	for _, d := range r.Diagnostics {
		if d.Fixable() {
			return d, true
		}
	}
	return diag.Diagnostic{}, false
}

// Lint runs one pass over file.
func Lint(ctx context.Context, file *source.File, opts Options) (*Report, error) {
	ctx, span := trace.StartFile(ctx, file.Path, "lint")
	defer span.End("")

	done := opts.phase(ctx, "tokenize")
	tokens, err := lexer.Tokenize(file, lexer.Options{})
	done(strconv.Itoa(len(tokens)) + " tokens")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	done = opts.phase(ctx, "index")
	lines := linemap.Build(tokens)
	ix := suppress.Build(lines, linemap.BuildComments(tokens))
	done("")

	done = opts.phase(ctx, "parse")
	tree, err := cst.Parse(ctx, file)
	done("")
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	defer tree.Close()

	bag := diag.NewBag(0)
	rep := diag.NewDedupReporter(diag.BagReporter{Bag: bag})

	var (
		visitors []cst.Visitor
		checkers []rule.SuppressionChecker
		ran      = rule.CodeSet{}
	)
	for _, factory := range opts.Rules {
		r := factory()
		if opts.UseIgnoreComments && !ix.ShouldEvaluateRule(r.Code()) {
			continue
		}
		ran.Add(r.Code())
		if c, ok := r.(rule.SuppressionChecker); ok {
			checkers = append(checkers, c)
			continue
		}
		visitors = append(visitors, rule.Bind(r, rule.NewContext(file, tree, r, rep)))
	}

	done = opts.phase(ctx, "visit")
	err = cst.Walk(tree, visitors...)
	done(strconv.Itoa(len(visitors)) + " rules")
	if err != nil {
		return nil, err
	}

	report := &Report{File: file, Tokens: tokens, Lines: lines, Index: ix}

	done = opts.phase(ctx, "filter")
	if opts.UseIgnoreComments {
		bag.Filter(func(d *diag.Diagnostic) bool {
			m, ok := ix.FindMatching(d)
			if ok {
				ix.MarkUsed(m, *d)
				report.Suppressed++
			}
			return !ok
		})
	}
	report.Diagnostics = append(report.Diagnostics, bag.Items()...)
	done(strconv.Itoa(report.Suppressed) + " suppressed")

	// только после того, как все диагностики прошли через индекс
	if opts.UseIgnoreComments && len(checkers) > 0 {
		done = opts.phase(ctx, "unused")
		meta := diag.NewBag(0)
		for _, c := range checkers {
			cctx := rule.NewContext(file, tree, c, diag.BagReporter{Bag: meta})
			if err := c.CheckSuppressions(cctx, ix, ran); err != nil {
				done("")
				return nil, err
			}
		}
		report.Diagnostics = append(report.Diagnostics, meta.Items()...)
		done(strconv.Itoa(meta.Len()) + " unused")
	}

	diag.SortDiagnostics(report.Diagnostics)
	return report, nil
}
