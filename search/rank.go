package search

import (
	"sort"

	"github.com/poiesic/retrievit/core"
	"github.com/poiesic/retrievit/corpus"
	"github.com/poiesic/retrievit/index"
)

// fuseCandidates converts raw index hits into scored results. The semantic
// score is the cosine similarity mapped from [-1,1] into [0,1]; the lexical
// score is the fraction of distinct query terms present in the segment text.
func fuseCandidates(hits []index.Hit, store *corpus.Store, terms map[string]bool, cfg *Config) []*core.RankedResult {
	results := make([]*core.RankedResult, 0, len(hits))
	for _, hit := range hits {
		segment := store.Segment(hit.Position)
		semantic := (hit.Score + 1) / 2
		if semantic < 0 {
			semantic = 0
		} else if semantic > 1 {
			semantic = 1
		}
		lexical := lexicalScore(terms, segment.Text)
		results = append(results, &core.RankedResult{
			Segment:       segment,
			Video:         store.Video(segment.VideoID),
			SemanticScore: semantic,
			LexicalScore:  lexical,
			FusedScore:    cfg.SemanticWeight*semantic + cfg.LexicalWeight*lexical,
		})
	}
	return results
}

// sortByFusedScore orders results by fused score descending. Ties break on
// (VideoID, Index) ascending so equal-scored results order deterministically.
func sortByFusedScore(results []*core.RankedResult) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.FusedScore != b.FusedScore {
			return a.FusedScore > b.FusedScore
		}
		if a.Segment.VideoID != b.Segment.VideoID {
			return a.Segment.VideoID < b.Segment.VideoID
		}
		return a.Segment.Index < b.Segment.Index
	})
}

// deduplicate removes results whose transcript span substantially overlaps a
// higher-ranked result from the same video. Two spans overlap substantially
// when the shared duration covers at least overlapFraction of the shorter
// span. Input must already be sorted by fused score descending.
func deduplicate(results []*core.RankedResult, overlapFraction float64) []*core.RankedResult {
	if overlapFraction <= 0 {
		return results
	}
	kept := make([]*core.RankedResult, 0, len(results))
	for _, candidate := range results {
		redundant := false
		for _, winner := range kept {
			if overlaps(candidate.Segment, winner.Segment, overlapFraction) {
				redundant = true
				break
			}
		}
		if !redundant {
			kept = append(kept, candidate)
		}
	}
	return kept
}

func overlaps(a, b *core.Segment, fraction float64) bool {
	shared := a.Overlap(b)
	if shared == 0 {
		return false
	}
	shorter := min(a.Duration, b.Duration)
	if shorter <= 0 {
		// Zero-length spans that intersect at all are duplicates.
		return true
	}
	return shared/shorter >= fraction
}

// assignRanks truncates to at most maxResults and numbers the survivors
// starting from 1.
func assignRanks(results []*core.RankedResult, maxResults int) []*core.RankedResult {
	if len(results) > maxResults {
		results = results[:maxResults]
	}
	for i, r := range results {
		r.Rank = i + 1
	}
	return results
}
