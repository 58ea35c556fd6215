package mock

import (
	"context"
	"fmt"

	"github.com/poiesic/retrievit/core"
)

// MockRecommender is a test double for ai.Recommender.
// It allows custom behavior injection via a function field.
type MockRecommender struct {
	// RecommendFunc is called by Recommend if set.
	// If nil, returns a canned recommendation naming the query.
	RecommendFunc func(ctx context.Context, query string, results []*core.RankedResult) (string, error)

	callCount int
}

// NewMockRecommender creates a mock recommender with default canned behavior.
func NewMockRecommender() *MockRecommender {
	return &MockRecommender{}
}

// Recommend returns a deterministic recommendation referencing the query,
// or delegates to RecommendFunc when injected.
func (m *MockRecommender) Recommend(ctx context.Context, query string, results []*core.RankedResult) (string, error) {
	m.callCount++

	if m.RecommendFunc != nil {
		return m.RecommendFunc(ctx, query, results)
	}

	return fmt.Sprintf("Based on %d excerpts, here is guidance for %q. This is educational content, not medical advice.",
		len(results), query), nil
}

// CallCount returns the number of times Recommend was called.
func (m *MockRecommender) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockRecommender) Reset() {
	m.callCount = 0
	m.RecommendFunc = nil
}
