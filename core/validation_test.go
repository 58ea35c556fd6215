package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validVideo() *Video {
	return &Video{
		ID:       "abc123",
		Title:    "Master Your Sleep",
		URL:      "https://www.youtube.com/watch?v=abc123",
		Duration: 5400,
	}
}

func validSegment() *Segment {
	return &Segment{
		VideoID:  "abc123",
		Index:    0,
		Start:    12.5,
		Duration: 6.2,
		Text:     "viewing sunlight within an hour of waking",
	}
}

func TestValidateVideo(t *testing.T) {
	t.Run("valid video", func(t *testing.T) {
		require.NoError(t, ValidateVideo(validVideo()))
	})

	t.Run("nil video", func(t *testing.T) {
		err := ValidateVideo(nil)
		assert.ErrorIs(t, err, ErrCorpusLoad)
	})

	t.Run("empty id", func(t *testing.T) {
		v := validVideo()
		v.ID = ""
		assert.ErrorIs(t, ValidateVideo(v), ErrCorpusLoad)
	})

	t.Run("empty title", func(t *testing.T) {
		v := validVideo()
		v.Title = ""
		assert.ErrorIs(t, ValidateVideo(v), ErrCorpusLoad)
	})

	t.Run("negative duration", func(t *testing.T) {
		v := validVideo()
		v.Duration = -1
		assert.ErrorIs(t, ValidateVideo(v), ErrCorpusLoad)
	})

	t.Run("zero duration is allowed", func(t *testing.T) {
		v := validVideo()
		v.Duration = 0
		assert.NoError(t, ValidateVideo(v))
	})
}

func TestValidateSegment(t *testing.T) {
	t.Run("valid segment", func(t *testing.T) {
		require.NoError(t, ValidateSegment(validSegment()))
	})

	t.Run("nil segment", func(t *testing.T) {
		assert.ErrorIs(t, ValidateSegment(nil), ErrCorpusLoad)
	})

	t.Run("missing video id", func(t *testing.T) {
		s := validSegment()
		s.VideoID = ""
		assert.ErrorIs(t, ValidateSegment(s), ErrCorpusLoad)
	})

	t.Run("negative index", func(t *testing.T) {
		s := validSegment()
		s.Index = -1
		assert.ErrorIs(t, ValidateSegment(s), ErrCorpusLoad)
	})

	t.Run("negative start", func(t *testing.T) {
		s := validSegment()
		s.Start = -0.5
		assert.ErrorIs(t, ValidateSegment(s), ErrCorpusLoad)
	})

	t.Run("zero duration", func(t *testing.T) {
		s := validSegment()
		s.Duration = 0
		assert.ErrorIs(t, ValidateSegment(s), ErrCorpusLoad)
	})

	t.Run("whitespace-only text", func(t *testing.T) {
		s := validSegment()
		s.Text = "   \t\n"
		assert.ErrorIs(t, ValidateSegment(s), ErrCorpusLoad)
	})
}

func TestCategory(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{ErrCorpusLoad, "corpus_load_error"},
		{ErrEmbedding, "embedding_error"},
		{ErrRetrieval, "retrieval_error"},
		{ErrInvalidRequest, "invalid_request"},
		{ErrNotReady, "not_ready"},
		{ErrEnrichment, "enrichment_error"},
		{ErrEnrichmentTimeout, "enrichment_timeout"},
		{assert.AnError, "internal"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Category(tt.err))
		})
	}
}
