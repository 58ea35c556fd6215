package storage

import (
	"context"

	"github.com/poiesic/retrievit/core"
)

// VectorCache persists segment embeddings across corpus reloads so that
// unchanged segments are not re-embedded. Keys are content-hash IDs derived
// from the embedding model and segment text, so a model change naturally
// misses the cache.
//
// Implementations must be thread-safe and support concurrent access.
type VectorCache interface {
	// Get retrieves a cached vector by ID.
	// The second return value reports whether the ID was present.
	Get(ctx context.Context, id core.ID) ([]float32, bool, error)

	// GetBatch retrieves cached vectors for multiple IDs.
	// The returned slices are parallel to ids; a nil vector marks a miss.
	GetBatch(ctx context.Context, ids []core.ID) ([][]float32, error)

	// Put stores a vector under the given ID, replacing any previous value.
	Put(ctx context.Context, id core.ID, vector []float32) error

	// PutBatch stores multiple vectors in one transaction.
	// ids and vectors must have equal length.
	PutBatch(ctx context.Context, ids []core.ID, vectors [][]float32) error

	// Close closes the cache backend and releases resources.
	Close() error
}
