package search

import "strings"

// Stop words excluded from lexical query terms when filtering is enabled
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "be": true, "is": true, "are": true,
	"was": true, "to": true, "of": true, "and": true, "in": true, "that": true,
	"have": true, "it": true, "for": true, "not": true, "on": true, "with": true,
	"as": true, "you": true, "do": true, "at": true, "this": true, "but": true,
	"by": true, "from": true, "how": true, "what": true, "why": true, "my": true,
	"i": true, "can": true, "should": true,
}

// tokenize splits text into words, lowercases, and trims punctuation.
// Stop words are removed when filter is true.
func tokenize(text string, filter bool) []string {
	words := strings.Fields(text)
	tokens := make([]string, 0, len(words))

	for _, word := range words {
		cleaned := strings.ToLower(strings.Trim(word, ".,!?;:'\"-()[]{}"))
		if cleaned == "" {
			continue
		}
		if filter && stopWords[cleaned] {
			continue
		}
		tokens = append(tokens, cleaned)
	}

	return tokens
}

// queryTerms extracts the distinct lexical terms of a query.
func queryTerms(query string, filterStopWords bool) map[string]bool {
	terms := make(map[string]bool)
	for _, token := range tokenize(query, filterStopWords) {
		terms[token] = true
	}
	return terms
}

// lexicalScore computes the fraction of distinct query terms present in the
// segment text, in [0,1]. The score is monotonic in the number of matched
// terms, which lets it fuse linearly with the semantic score.
//
// Segment tokens are never stop-word filtered; a query kept "sleep" and
// dropped "the", and the segment only needs to contain what the query kept.
func lexicalScore(terms map[string]bool, segmentText string) float64 {
	if len(terms) == 0 {
		return 0
	}

	segmentTokens := tokenize(segmentText, false)
	present := make(map[string]bool, len(segmentTokens))
	for _, token := range segmentTokens {
		present[token] = true
	}

	matched := 0
	for term := range terms {
		if present[term] {
			matched++
		}
	}

	return float64(matched) / float64(len(terms))
}
