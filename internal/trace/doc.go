// Package trace records what the compiler is doing: driver steps, passes,
// per-file work and, at the most verbose level, individual declarations.
//
// Enable it from the command line:
//
//	wss build --trace=- --trace-level=phase
//
// Implementations:
//
//   - Nop drops everything and is what FromContext returns by default
//   - StreamTracer writes each event immediately to a file or stderr
//   - RingTracer keeps the last N events for a dump at exit
//   - Fanout forwards to several tracers
//
// Levels gate scopes: phase shows driver and pass boundaries, detail adds
// per-file events, debug adds per-node events.
//
// Tracers travel through the pipeline in a context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopeDriver, "build", trace.SpanFromContext(ctx))
//	defer span.End("")
//	ctx = trace.WithSpan(ctx, span.ID())
package trace
