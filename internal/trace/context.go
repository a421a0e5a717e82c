package trace

import "context"

type ctxKey struct{}

// FromContext returns the tracer attached to ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	if ctx == nil {
		return Nop
	}
	if t, ok := ctx.Value(ctxKey{}).(Tracer); ok {
		return t
	}
	return Nop
}

// WithTracer attaches t to ctx; nil means Nop.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, ctxKey{}, t)
}

// SpanContext is the innermost open span and the file it belongs to.
type SpanContext struct {
	SpanID uint64
	Path   string
}

type spanCtxKey struct{}

// CurrentSpan returns the span carried by ctx; zero when there is none.
func CurrentSpan(ctx context.Context) SpanContext {
	if ctx == nil {
		return SpanContext{}
	}
	sc, _ := ctx.Value(spanCtxKey{}).(SpanContext)
	return sc
}

// Start opens a span under the one carried by ctx. The returned context
// carries the new span; when nothing is recorded ctx comes back unchanged.
func Start(ctx context.Context, scope Scope, name string) (context.Context, *Span) {
	parent := CurrentSpan(ctx)
	sp := begin(FromContext(ctx), scope, name, parent.SpanID, parent.Path)
	if sp.ID() == 0 {
		return ctx, sp
	}
	return context.WithValue(ctx, spanCtxKey{}, SpanContext{SpanID: sp.id, Path: sp.path}), sp
}

// StartFile opens a file span; every span and point below it carries path.
func StartFile(ctx context.Context, path, name string) (context.Context, *Span) {
	parent := CurrentSpan(ctx)
	sp := begin(FromContext(ctx), ScopeFile, name, parent.SpanID, path)
	if sp.ID() == 0 {
		return ctx, sp
	}
	return context.WithValue(ctx, spanCtxKey{}, SpanContext{SpanID: sp.id, Path: path}), sp
}
