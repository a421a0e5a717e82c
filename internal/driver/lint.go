// Package driver lints files: config lookup, caching, autofix and
// file-level fan-out.
package driver

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"fixit/internal/config"
	"fixit/internal/diag"
	"fixit/internal/engine"
	"fixit/internal/fix"
	"fixit/internal/observ"
	"fixit/internal/source"
	"fixit/internal/trace"
)

// Result is the outcome for one file. Err is set when the file could not be
// linted; the rest of the batch is unaffected.
type Result struct {
	Path        string
	Diagnostics []diag.Diagnostic
	Fixed       []diag.Diagnostic
	Changed     bool
	Written     bool
	// Diff is the unified diff of the fix; set only when Changed.
	Diff    string
	Cached  bool
	Capped  bool
	Err     error
	Timings *observ.Report
	Elapsed time.Duration

	// Inserted counts suppression comments added by SuppressFile.
	Inserted int
}

// Failed reports whether the file needs attention: an error or remaining
// diagnostics.
func (r Result) Failed() bool {
	return r.Err != nil || len(r.Diagnostics) > 0
}

// LintFile lints the file at path.
func LintFile(ctx context.Context, path string, opts Options) Result {
	opts.normalize()
	start := time.Now()
	res := lintFile(ctx, path, &opts)
	res.Elapsed = time.Since(start)
	if res.Err != nil {
		opts.Logger.WithField("path", path).WithError(res.Err).Debug("lint failed")
	}
	return res
}

func lintFile(ctx context.Context, path string, opts *Options) Result {
	res := Result{Path: path}
	cfg, err := opts.configFor(path)
	if err != nil {
		res.Err = err
		return res
	}
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		res.Err = err
		return res
	}
	file := fs.Get(id)
	res.Path = file.Path
	return run(ctx, fs, file, cfg, opts, res)
}

// LintSource lints content as if it were stored at name. Nothing is
// written even with Fix set; the fixed text is in Result.Diff.
func LintSource(ctx context.Context, name string, content []byte, opts Options) Result {
	opts.normalize()
	opts.Write = false
	start := time.Now()
	res := Result{Path: name}
	cfg, err := opts.configFor(name)
	if err != nil {
		res.Err = err
		return res
	}
	fs := source.NewFileSet()
	id, err := fs.AddRaw(name, content)
	if err != nil {
		res.Err = err
		return res
	}
	file := fs.Get(id)
	file.Flags |= source.FileVirtual
	res = run(ctx, fs, file, cfg, &opts, res)
	res.Elapsed = time.Since(start)
	return res
}

func run(ctx context.Context, fs *source.FileSet, file *source.File, cfg *config.Config, opts *Options, res Result) Result {
	p, err := opts.plan(cfg)
	if err != nil {
		res.Err = err
		return res
	}
	log := opts.Logger.WithField("path", file.Path)

	if !opts.Timings {
		return runPlan(ctx, fs, file, p, opts, log, res)
	}
	timer := observ.NewTimer()
	p.engine.Timer = timer
	res = runPlan(ctx, fs, file, p, opts, log, res)
	report := timer.Report()
	res.Timings = &report
	return res
}

func runPlan(ctx context.Context, fs *source.FileSet, file *source.File, p *plan, opts *Options, log logrus.FieldLogger, res Result) Result {
	if !opts.Fix {
		return lintOnly(ctx, file, p, opts, log, res)
	}

	emit(opts.Progress, Event{File: res.Path, Stage: StageFix, Status: StatusWorking})
	out, err := fix.Apply(ctx, fs, file, fix.Options{
		Engine:    p.engine,
		Formatter: p.formatter,
		Write:     opts.Write,
		Logger:    log,
	})
	if err != nil {
		res.Err = err
		return res
	}
	res.Diagnostics = out.Remaining
	res.Fixed = out.Fixed
	res.Changed = out.Changed()
	res.Written = out.Written
	res.Capped = out.Capped
	if res.Changed {
		if res.Diff, err = out.Diff(); err != nil {
			res.Err = err
		}
	}
	if res.Written {
		emit(opts.Progress, Event{File: res.Path, Stage: StageWrite, Status: StatusDone})
	}
	return res
}

func lintOnly(ctx context.Context, file *source.File, p *plan, opts *Options, log logrus.FieldLogger, res Result) Result {
	var key CacheKey
	if opts.Cache != nil {
		key = NewCacheKey(file, p.codes, p.engine.UseIgnoreComments)
		diags, ok, err := opts.Cache.Get(key)
		switch {
		case err != nil:
			log.WithError(err).Warn("result cache read failed")
		case ok:
			res.Diagnostics = diags
			res.Cached = true
			trace.Point(ctx, trace.ScopeFile, "cache-hit", file.Path)
			return res
		}
	}

	report, err := engine.Lint(ctx, file, p.engine)
	if err != nil {
		res.Err = err
		return res
	}
	res.Diagnostics = report.Diagnostics

	if opts.Cache != nil && !errors.Is(ctx.Err(), context.Canceled) {
		if err := opts.Cache.Put(key, report.Diagnostics); err != nil {
			log.WithError(err).Warn("result cache write failed")
		}
	}
	return res
}
