package search

import (
	"fmt"
	"time"
)

// Result count bounds for query requests.
const (
	// DefaultMaxResults is applied by outer layers when a request omits
	// the result count.
	DefaultMaxResults = 5

	// MaxResultsLimit caps the result count a single query may request.
	MaxResultsLimit = 50
)

// Config holds the tunable parameters of the hybrid ranker and the build
// pipeline. The fusion weights and the lexical formula are deliberately
// configuration rather than constants; the defaults favor the semantic
// signal and were tuned against the ranking test corpus.
type Config struct {
	// SemanticWeight scales the normalized cosine similarity in the fused
	// score. Default: 0.7
	SemanticWeight float64

	// LexicalWeight scales the lexical overlap score in the fused score.
	// Default: 0.3
	LexicalWeight float64

	// CandidateFactor multiplies the requested result count to size the
	// semantic candidate set handed to the lexical pass. Default: 4
	CandidateFactor int

	// MinCandidates is the lower bound on the semantic candidate set, so
	// small requests still give the lexical pass room to re-rank.
	// Default: 50
	MinCandidates int

	// OverlapFraction is the minimum share of the shorter span two
	// same-video segments must overlap in time to count as near-duplicates.
	// Default: 0.5
	OverlapFraction float64

	// FilterStopWords excludes common words from lexical query terms.
	// Default: true
	FilterStopWords bool

	// BatchSize is the number of segment texts embedded per provider call
	// during index build. Default: 64
	BatchSize int

	// EnrichmentTimeout bounds the wait on the recommendation service.
	// A non-positive value disables enrichment entirely. Default: 10s
	EnrichmentTimeout time.Duration

	// MaxRetries is the number of attempts for each embedding batch during
	// build. Default: 3
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff between
	// embedding retries. Default: 1s
	RetryDelay time.Duration
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{
		SemanticWeight:    0.7,
		LexicalWeight:     0.3,
		CandidateFactor:   4,
		MinCandidates:     50,
		OverlapFraction:   0.5,
		FilterStopWords:   true,
		BatchSize:         64,
		EnrichmentTimeout: 10 * time.Second,
		MaxRetries:        3,
		RetryDelay:        time.Second,
	}
}

// validate checks config consistency.
func (c *Config) validate() error {
	if c.SemanticWeight < 0 || c.LexicalWeight < 0 {
		return fmt.Errorf("fusion weights must be non-negative, got %f/%f", c.SemanticWeight, c.LexicalWeight)
	}
	if c.SemanticWeight+c.LexicalWeight == 0 {
		return fmt.Errorf("at least one fusion weight must be positive")
	}
	if c.CandidateFactor < 1 {
		return fmt.Errorf("candidate factor must be at least 1, got %d", c.CandidateFactor)
	}
	if c.MinCandidates < 1 {
		return fmt.Errorf("min candidates must be at least 1, got %d", c.MinCandidates)
	}
	if c.OverlapFraction <= 0 || c.OverlapFraction > 1 {
		return fmt.Errorf("overlap fraction must be in (0,1], got %f", c.OverlapFraction)
	}
	if c.BatchSize < 1 {
		return fmt.Errorf("batch size must be at least 1, got %d", c.BatchSize)
	}
	if c.MaxRetries < 1 {
		return fmt.Errorf("max retries must be at least 1, got %d", c.MaxRetries)
	}
	return nil
}
