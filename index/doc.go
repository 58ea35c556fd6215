// Package index implements a flat in-memory nearest-neighbor index over
// segment embeddings.
//
// The index stores L2-normalized vectors and answers top-k queries by
// exhaustive inner product, which over unit vectors equals cosine
// similarity. Normalization happens once at build time, not per query.
// Positions returned by Search are dense 0-based indices into the vector
// sequence the index was built from; rebuilding invalidates them, so
// callers re-resolve positions against the corpus store for each build.
//
// Build requires exclusivity; a built Index is immutable and safe for
// concurrent Search calls without external locking.
package index
