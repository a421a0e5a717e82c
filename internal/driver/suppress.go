package driver

import (
	"context"
	"slices"
	"strings"
	"time"

	"fixit/internal/config"
	"fixit/internal/diag"
	"fixit/internal/engine"
	"fixit/internal/fix"
	"fixit/internal/insert"
	"fixit/internal/patch"
	"fixit/internal/rules"
	"fixit/internal/source"
	"fixit/internal/suppress"
)

// SuppressOptions override the [suppress] section of the config.
type SuppressOptions struct {
	Kind string // пусто = из конфига
	// MaxLines: 0 = из конфига, <0 = без ограничения.
	MaxLines int
}

func (s SuppressOptions) insertOptions(cfg *config.Config) insert.Options {
	kindName := cfg.Suppress.Kind
	if s.Kind != "" {
		kindName = s.Kind
	}
	kind, ok := suppress.ParseKind(kindName)
	if !ok {
		kind = suppress.KindLintFixme
	}
	maxLines := cfg.Suppress.MaxLines
	switch {
	case s.MaxLines < 0:
		maxLines = 0
	case s.MaxLines > 0:
		maxLines = s.MaxLines
	}
	return insert.Options{
		Kind:            kind,
		CodeWidth:       cfg.Suppress.CodeWidth,
		MinCommentWidth: cfg.Suppress.MinCommentWidth,
		MaxLines:        maxLines,
	}
}

// SuppressFile lints path and inserts a suppression comment above every
// line that still has diagnostics. Unused-suppression reports are left
// alone. The file is written only with opts.Write; Result.Inserted counts
// the comments added and Result.Diagnostics holds what they cover.
func SuppressFile(ctx context.Context, path string, opts Options, sopts SuppressOptions) Result {
	opts.normalize()
	start := time.Now()
	res := suppressFile(ctx, path, &opts, sopts)
	res.Elapsed = time.Since(start)
	if res.Err != nil {
		opts.Logger.WithField("path", path).WithError(res.Err).Debug("suppress failed")
	}
	return res
}

func suppressFile(ctx context.Context, path string, opts *Options, sopts SuppressOptions) Result {
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

	p, err := opts.plan(cfg)
	if err != nil {
		res.Err = err
		return res
	}
	report, err := engine.Lint(ctx, file, p.engine)
	if err != nil {
		res.Err = err
		return res
	}
	for _, d := range report.Diagnostics {
		if d.Code != rules.UnusedSuppressionCode {
			res.Diagnostics = append(res.Diagnostics, d)
		}
	}
	if len(res.Diagnostics) == 0 {
		return res
	}

	reqs := suppressionRequests(res.Diagnostics)
	out, err := insert.Insert(file, reqs, sopts.insertOptions(cfg))
	if err != nil {
		res.Err = err
		return res
	}
	if err := out.Err(); err != nil {
		res.Err = err
		return res
	}
	res.Inserted = len(reqs)
	res.Changed = out.Text != string(file.Content)
	if !res.Changed {
		return res
	}
	if res.Diff, err = patch.UnifiedDiff(file.Path, string(file.Content), out.Text); err != nil {
		res.Err = err
		return res
	}
	if opts.Write {
		if err := fix.WriteBack(file, fs.Derive(file, []byte(out.Text))); err != nil {
			res.Err = err
			return res
		}
		res.Written = true
		emit(opts.Progress, Event{File: res.Path, Stage: StageWrite, Status: StatusDone})
	}
	return res
}

// suppressionRequests groups diagnostics by physical line: one comment per
// line listing every code, with the distinct messages as its reason.
func suppressionRequests(diags []diag.Diagnostic) []insert.Request {
	var reqs []insert.Request
	byLine := make(map[uint32]int)
	for _, d := range diags {
		i, ok := byLine[d.Pos.Line]
		if !ok {
			i = len(reqs)
			byLine[d.Pos.Line] = i
			reqs = append(reqs, insert.Request{Line: d.Pos.Line})
		}
		r := &reqs[i]
		if !slices.Contains(r.Codes, d.Code) {
			r.Codes = append(r.Codes, d.Code)
		}
		msg := strings.TrimSpace(d.Message)
		if msg != "" && !strings.Contains(r.Message, msg) {
			if r.Message != "" {
				r.Message += "\n\n"
			}
			r.Message += msg
		}
	}
	for i := range reqs {
		slices.Sort(reqs[i].Codes)
	}
	return reqs
}
