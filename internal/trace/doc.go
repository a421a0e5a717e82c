// Package trace records where a lint run spends its time.
//
// Spans nest driver → file → pass → rule and travel through
// context.Context. A file span fixes the path every nested event carries:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, file := trace.StartFile(ctx, path, "lint")
//	defer file.End("")
//	_, pass := trace.Start(ctx, trace.ScopePass, "tokenize")
//	pass.End("")
//
// Stream tracers write each event as it happens (text or NDJSON), ring
// tracers keep the last N events for a dump after a failure.
//
//	fixit lint --trace=- --trace-level=detail src/
package trace
