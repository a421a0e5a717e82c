package engine

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"

	"fixit/internal/observ"
	"fixit/internal/rule"
	"fixit/internal/trace"
)

// DefaultMaxIterations bounds the autofix loop.
const DefaultMaxIterations = 100

type Options struct {
	Rules []rule.Factory
	// UseIgnoreComments включает noqa / lint-ignore и проверку неиспользуемых.
	UseIgnoreComments bool
	// MaxIterations <= 0 means DefaultMaxIterations.
	MaxIterations int

	Timer  *observ.Timer      // может быть nil
	Logger logrus.FieldLogger // может быть nil
}

func (o Options) maxIterations() int {
	if o.MaxIterations <= 0 {
		return DefaultMaxIterations
	}
	return o.MaxIterations
}

func (o Options) logger() logrus.FieldLogger {
	if o.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		return l
	}
	return o.Logger
}

// phase times one step in the Timer and, when tracing is on, as a pass span.
func (o Options) phase(ctx context.Context, name string) func(note string) {
	_, span := trace.Start(ctx, trace.ScopePass, name)
	if o.Timer == nil {
		return func(note string) { span.End(note) }
	}
	h := o.Timer.Begin(name)
	return func(note string) {
		o.Timer.End(h, note)
		span.End(note)
	}
}
