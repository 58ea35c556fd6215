package search

import (
	"strings"
	"testing"

	"github.com/poiesic/retrievit/core"
	"github.com/poiesic/retrievit/corpus"
	"github.com/poiesic/retrievit/index"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeResult(videoID string, index int, start, duration, fused float64) *core.RankedResult {
	return &core.RankedResult{
		Segment: &core.Segment{
			VideoID:  videoID,
			Index:    index,
			Start:    start,
			Duration: duration,
			Text:     "text",
		},
		FusedScore: fused,
	}
}

func TestFuseCandidates(t *testing.T) {
	store, err := corpus.LoadReader(strings.NewReader(`[
	  {
	    "id": "vid", "title": "T", "duration": 60,
	    "transcript": [
	      {"start": 0, "duration": 5, "text": "better sleep every night"},
	      {"start": 5, "duration": 5, "text": "unrelated segment content"}
	    ]
	  }
	]`))
	require.NoError(t, err)

	cfg := DefaultConfig()
	terms := queryTerms("better sleep", true)
	hits := []index.Hit{
		{Position: 0, Score: 0.8},
		{Position: 1, Score: 0.8},
	}

	results := fuseCandidates(hits, store, terms, &cfg)
	require.Len(t, results, 2)

	t.Run("semantic score rescaled into unit interval", func(t *testing.T) {
		assert.InDelta(t, 0.9, results[0].SemanticScore, 1e-9)
	})

	t.Run("fused score is the weighted sum", func(t *testing.T) {
		expected := cfg.SemanticWeight*0.9 + cfg.LexicalWeight*1.0
		assert.InDelta(t, expected, results[0].FusedScore, 1e-9)
	})

	t.Run("lexical signal separates equal semantic scores", func(t *testing.T) {
		assert.Equal(t, results[0].SemanticScore, results[1].SemanticScore)
		assert.Greater(t, results[0].LexicalScore, results[1].LexicalScore)
		assert.Greater(t, results[0].FusedScore, results[1].FusedScore)
	})

	t.Run("negative similarity clamps to zero", func(t *testing.T) {
		clamped := fuseCandidates([]index.Hit{{Position: 1, Score: -1.5}}, store, terms, &cfg)
		require.Len(t, clamped, 1)
		assert.Zero(t, clamped[0].SemanticScore)
	})
}

func TestSortByFusedScore(t *testing.T) {
	t.Run("descending by score", func(t *testing.T) {
		results := []*core.RankedResult{
			makeResult("a", 0, 0, 5, 0.2),
			makeResult("a", 1, 5, 5, 0.9),
			makeResult("b", 0, 0, 5, 0.5),
		}
		sortByFusedScore(results)
		assert.Equal(t, 0.9, results[0].FusedScore)
		assert.Equal(t, 0.5, results[1].FusedScore)
		assert.Equal(t, 0.2, results[2].FusedScore)
	})

	t.Run("ties break on video id then segment index", func(t *testing.T) {
		results := []*core.RankedResult{
			makeResult("b", 0, 0, 5, 0.5),
			makeResult("a", 2, 10, 5, 0.5),
			makeResult("a", 1, 5, 5, 0.5),
		}
		sortByFusedScore(results)
		assert.Equal(t, "a", results[0].Segment.VideoID)
		assert.Equal(t, 1, results[0].Segment.Index)
		assert.Equal(t, 2, results[1].Segment.Index)
		assert.Equal(t, "b", results[2].Segment.VideoID)
	})
}

func TestDeduplicate(t *testing.T) {
	t.Run("drops substantial same-video overlap", func(t *testing.T) {
		// Spans [0,10) and [5,15) share 5s, half the shorter span.
		results := []*core.RankedResult{
			makeResult("a", 0, 0, 10, 0.9),
			makeResult("a", 1, 5, 10, 0.8),
		}
		kept := deduplicate(results, 0.5)
		require.Len(t, kept, 1)
		assert.Equal(t, 0.9, kept[0].FusedScore)
	})

	t.Run("keeps higher scored of the pair", func(t *testing.T) {
		results := []*core.RankedResult{
			makeResult("a", 1, 5, 10, 0.8),
			makeResult("a", 0, 0, 10, 0.6),
		}
		kept := deduplicate(results, 0.5)
		require.Len(t, kept, 1)
		assert.Equal(t, 1, kept[0].Segment.Index)
	})

	t.Run("keeps slight overlap", func(t *testing.T) {
		// Spans [0,10) and [9,19) share 1s, a tenth of the shorter span.
		results := []*core.RankedResult{
			makeResult("a", 0, 0, 10, 0.9),
			makeResult("a", 1, 9, 10, 0.8),
		}
		kept := deduplicate(results, 0.5)
		assert.Len(t, kept, 2)
	})

	t.Run("different videos never collapse", func(t *testing.T) {
		results := []*core.RankedResult{
			makeResult("a", 0, 0, 10, 0.9),
			makeResult("b", 0, 0, 10, 0.8),
		}
		kept := deduplicate(results, 0.5)
		assert.Len(t, kept, 2)
	})

	t.Run("disjoint spans survive", func(t *testing.T) {
		results := []*core.RankedResult{
			makeResult("a", 0, 0, 5, 0.9),
			makeResult("a", 1, 5, 5, 0.8),
			makeResult("a", 2, 10, 5, 0.7),
		}
		kept := deduplicate(results, 0.5)
		assert.Len(t, kept, 3)
	})
}

func TestAssignRanks(t *testing.T) {
	results := []*core.RankedResult{
		makeResult("a", 0, 0, 5, 0.9),
		makeResult("a", 1, 5, 5, 0.8),
		makeResult("b", 0, 0, 5, 0.7),
	}

	t.Run("truncates and numbers from one", func(t *testing.T) {
		ranked := assignRanks(results, 2)
		require.Len(t, ranked, 2)
		assert.Equal(t, 1, ranked[0].Rank)
		assert.Equal(t, 2, ranked[1].Rank)
	})

	t.Run("fewer results than requested", func(t *testing.T) {
		single := assignRanks([]*core.RankedResult{makeResult("a", 0, 0, 5, 0.5)}, 10)
		require.Len(t, single, 1)
		assert.Equal(t, 1, single[0].Rank)
	})
}
