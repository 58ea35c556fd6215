// Package core defines the domain model shared across retrievit.
//
// It contains the corpus entities (Video, Segment), the per-query
// RankedResult, content-hash IDs used for cache keys, domain validation,
// and the error taxonomy surfaced by the engine.
package core
