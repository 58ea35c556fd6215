// Package storage provides the embedding-cache abstraction for retrievit.
//
// The VectorCache interface decouples the engine's build pipeline from the
// cache implementation. The badger subpackage provides the production
// BadgerDB backend, which also runs fully in memory for tests.
//
// Cache semantics are best-effort: the engine treats a missing or failing
// cache as a miss and re-embeds, so the cache can never corrupt an index
// build, only slow it down.
//
// # Thread Safety
//
// All implementations must be thread-safe and support concurrent access
// from multiple goroutines; the build pipeline reads and writes the cache
// from worker-pool tasks.
package storage
