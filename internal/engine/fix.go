package engine

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"fixit/internal/diag"
	"fixit/internal/source"
)

// FixResult pairs the final file version with what was fixed on the way.
type FixResult struct {
	// File is the last version; equal to the input when nothing changed.
	File *source.File
	// Fixed holds the diagnostic behind every applied patch, in order.
	Fixed []diag.Diagnostic
	// Remaining is the last pass's diagnostics.
	Remaining  []diag.Diagnostic
	Iterations int
	// Capped is set when the loop stopped at the iteration cap with a
	// fixable diagnostic still pending.
	Capped bool
}

// Changed reports whether any patch was applied.
func (r *FixResult) Changed() bool {
	return len(r.Fixed) > 0
}

// Fix lints file and applies patches one at a time, re-linting after
// each, until no diagnostic carries a patch or the cap is reached.
// New versions are registered in fs.
func Fix(ctx context.Context, fs *source.FileSet, file *source.File, opts Options) (*FixResult, error) {
	log := opts.logger().WithField("path", file.Path)
	res := &FixResult{File: file}
	limit := opts.maxIterations()

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		report, err := Lint(ctx, res.File, opts)
		if err != nil {
			if res.Changed() {
				last := res.Fixed[len(res.Fixed)-1]
				return nil, fmt.Errorf("after fixing %s at %d:%d: %w", last.Code, last.Pos.Line, last.Pos.Col+1, err)
			}
			return nil, err
		}
		res.Remaining = report.Diagnostics

		d, ok := report.Fixable()
		if !ok {
			return res, nil
		}
		if res.Iterations >= limit {
			res.Capped = true
			log.WithField("iteration", res.Iterations).Warn("autofix iteration cap reached")
			return res, nil
		}

		done := opts.phase(ctx, "fix")
		text, err := d.Patch.ApplyChecked(string(res.File.Content))
		done(string(d.Code))
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", res.File.Path, d.Code, err)
		}
		res.Iterations++
		res.Fixed = append(res.Fixed, d)
		res.File = fs.Derive(res.File, []byte(text))
		log.WithFields(logrus.Fields{"rule": d.Code, "iteration": res.Iterations}).Debug("applied fix")
	}
}
