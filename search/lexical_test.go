package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	t.Run("lowercases and trims punctuation", func(t *testing.T) {
		tokens := tokenize("Morning Sunlight, (really!) helps.", false)
		assert.Equal(t, []string{"morning", "sunlight", "really", "helps"}, tokens)
	})

	t.Run("filters stop words when asked", func(t *testing.T) {
		tokens := tokenize("how can I improve my sleep", true)
		assert.Equal(t, []string{"improve", "sleep"}, tokens)
	})

	t.Run("keeps stop words when not asked", func(t *testing.T) {
		tokens := tokenize("the sleep", false)
		assert.Equal(t, []string{"the", "sleep"}, tokens)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, tokenize("", true))
		assert.Empty(t, tokenize("  ...  ", true))
	})
}

func TestQueryTerms(t *testing.T) {
	terms := queryTerms("Sleep sleep SLEEP better", true)
	assert.Len(t, terms, 2)
	assert.True(t, terms["sleep"])
	assert.True(t, terms["better"])
}

func TestLexicalScore(t *testing.T) {
	terms := queryTerms("how can I improve my sleep quality", true)
	// Terms after stop-word filtering: improve, sleep, quality.

	t.Run("full match", func(t *testing.T) {
		score := lexicalScore(terms, "improve your sleep quality tonight")
		assert.InDelta(t, 1.0, score, 1e-9)
	})

	t.Run("partial match", func(t *testing.T) {
		score := lexicalScore(terms, "sleep is regulated by light")
		assert.InDelta(t, 1.0/3.0, score, 1e-9)
	})

	t.Run("no match", func(t *testing.T) {
		assert.Zero(t, lexicalScore(terms, "resistance training builds muscle"))
	})

	t.Run("repeated terms count once", func(t *testing.T) {
		score := lexicalScore(terms, "sleep sleep sleep sleep")
		assert.InDelta(t, 1.0/3.0, score, 1e-9)
	})

	t.Run("stop word in segment satisfies nothing", func(t *testing.T) {
		// The segment keeps its stop words, but the query dropped them,
		// so they cannot contribute matches.
		assert.Zero(t, lexicalScore(terms, "how can I do this"))
	})

	t.Run("no query terms", func(t *testing.T) {
		assert.Zero(t, lexicalScore(map[string]bool{}, "anything at all"))
	})

	t.Run("monotonic in matched terms", func(t *testing.T) {
		one := lexicalScore(terms, "sleep matters")
		two := lexicalScore(terms, "improve sleep")
		three := lexicalScore(terms, "improve sleep quality")
		assert.Less(t, one, two)
		assert.Less(t, two, three)
	})
}
