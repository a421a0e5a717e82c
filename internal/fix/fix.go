// Package fix turns the autofix loop's output into files on disk.
package fix

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"fixit/internal/diag"
	"fixit/internal/engine"
	"fixit/internal/patch"
	"fixit/internal/source"
)

// ErrVirtual is returned when asked to write a file that never came from disk.
var ErrVirtual = errors.New("fix: file has no path on disk")

type Options struct {
	Engine    engine.Options
	Formatter *Formatter // может быть nil
	// Write stores the result; otherwise Outcome only describes it.
	Write  bool
	Logger logrus.FieldLogger
}

// Outcome describes one fixed file.
type Outcome struct {
	Path string
	// Original and Final are file versions; Final == Original when nothing changed.
	Original, Final *source.File
	Fixed           []diag.Diagnostic
	Remaining       []diag.Diagnostic
	Iterations      int
	Capped          bool
	Formatted       bool
	Written         bool
}

// Changed reports whether Final differs from Original.
func (o *Outcome) Changed() bool {
	return o.Final != o.Original && string(o.Final.Content) != string(o.Original.Content)
}

// Diff renders the change as a unified diff; empty when unchanged.
func (o *Outcome) Diff() (string, error) {
	if !o.Changed() {
		return "", nil
	}
	return patch.UnifiedDiff(o.Path, string(o.Original.Content), string(o.Final.Content))
}

// Apply runs the autofix loop on file, pipes a changed result through the
// formatter and optionally writes it back.
func Apply(ctx context.Context, fs *source.FileSet, file *source.File, opts Options) (*Outcome, error) {
	log := opts.Logger
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	log = log.WithField("path", file.Path)

	eopts := opts.Engine
	if eopts.Logger == nil {
		eopts.Logger = log
	}
	res, err := engine.Fix(ctx, fs, file, eopts)
	if err != nil {
		return nil, err
	}
	out := &Outcome{
		Path:       file.Path,
		Original:   file,
		Final:      res.File,
		Fixed:      res.Fixed,
		Remaining:  res.Remaining,
		Iterations: res.Iterations,
		Capped:     res.Capped,
	}
	if !out.Changed() {
		return out, nil
	}

	if opts.Formatter != nil {
		formatted, err := formatVersion(ctx, fs, file, out.Final, opts.Formatter)
		if err != nil {
			// оставляем неотформатированный фикс
			log.WithError(err).Warn("formatter failed, keeping unformatted fix")
		} else {
			out.Final = formatted
			out.Formatted = true
		}
	}

	if opts.Write && out.Changed() {
		if err := WriteBack(file, out.Final); err != nil {
			return out, err
		}
		out.Written = true
		log.WithField("fixes", len(out.Fixed)).Info("fixed")
	}
	return out, nil
}

// formatVersion feeds the on-disk form of v to the formatter and loads
// the output back as a new version of orig.
func formatVersion(ctx context.Context, fs *source.FileSet, orig, v *source.File, f *Formatter) (*source.File, error) {
	raw, err := source.EncodeFile(orig, v.Content)
	if err != nil {
		return nil, err
	}
	formatted, err := f.Format(ctx, raw)
	if err != nil {
		return nil, err
	}
	id, err := fs.AddRaw(orig.Path, formatted)
	if err != nil {
		return nil, fmt.Errorf("formatter output: %w", err)
	}
	return fs.Get(id), nil
}
