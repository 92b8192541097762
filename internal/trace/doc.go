// Package trace is the event log of irkit.
//
// The IR core and the CLI do not print anything on their own; instead they emit
// trace events which a Tracer stores or writes out. Tracing is off by default
// and costs a single interface call when disabled.
//
// # Implementations
//
//   - Nop: zero-overhead tracer used when tracing is disabled
//   - StreamTracer: immediate write to an io.Writer (file or stderr)
//   - RingTracer: circular in-memory buffer, handy in tests and crash dumps
//   - MultiTracer: fans out to several tracers
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: only explicit dumps
//   - LevelPhase: CLI commands and generation passes
//   - LevelDetail: generics translation, fresh clones, soft fallbacks
//   - LevelDebug: everything including every node pushed into an arena
//
// # Scopes
//
//   - ScopeDriver: top-level CLI operations
//   - ScopePass: one generation pass (a Context.Run call, a batch file)
//   - ScopeStep: a translation or substitution step inside a pass
//   - ScopeNode: individual arena pushes and symbol mints
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopePass, "batch", parentID)
//	defer span.End("")
package trace
