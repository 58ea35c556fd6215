package ai

import (
	"context"

	"github.com/poiesic/retrievit/core"
)

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// Used on the query path where only one text is embedded.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings.
	// The returned slice contains embeddings in the same order as the input
	// texts and always has the same length as the input.
	// Callers control batch sizing; one call is one provider request.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Recommender produces a natural-language recommendation from ranked search
// results. It is an optional enrichment step: the engine treats failures and
// timeouts as a degraded response, never as a query failure.
// Implementations must be thread-safe and must honor context cancellation,
// since the engine calls them with a bounded timeout.
type Recommender interface {
	// Recommend synthesizes advice for the query grounded in the ranked
	// results. Returns an error if the upstream service fails.
	Recommend(ctx context.Context, query string, results []*core.RankedResult) (string, error)
}

// AIProvider aggregates AI services for convenient initialization and
// lifecycle management. A provider creates and manages Embedder and
// Recommender instances, ensuring they share configuration appropriately.
type AIProvider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// Recommender returns the recommendation service, or nil if the provider
	// does not offer one. A nil Recommender makes every query degraded.
	Recommender() Recommender

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
