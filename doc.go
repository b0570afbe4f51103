// Package fluxcrud provides asynchronous coordination primitives for
// data-access layers: request coalescing, batch accumulation, and bounded
// parallel execution.
//
// The primitives live in three independent subpackages, each usable on its
// own:
//
//   - loader provides a per-key batching and memoizing Loader that collapses
//     many concurrent point lookups into a single bulk fetch.
//   - batcher provides a size- and time-triggered Batcher that buffers a
//     stream of items and hands them to a bulk handler in batches.
//   - parallel provides GatherLimited, which runs a list of independent
//     tasks with a hard cap on concurrency while preserving submission
//     order in the results.
//
// A typical record-access layer wires a loader.Loader per request or
// session to avoid N+1 fetch patterns, a batcher.Batcher on the write path
// for bulk inserts, and parallel.GatherLimited for fan-out work that must
// not exhaust connections.
//
// The root package carries only the shared logging surface. Components log
// nothing by default; pass a Logger (for example one built with
// NewZerologLogger) through the component options to observe dispatch and
// flush activity.
package fluxcrud
