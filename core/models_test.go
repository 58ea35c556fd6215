package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDFromContent(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		id1 := IDFromContent("morning sunlight exposure")
		id2 := IDFromContent("morning sunlight exposure")
		assert.Equal(t, id1, id2)
	})

	t.Run("distinct content produces distinct ids", func(t *testing.T) {
		id1 := IDFromContent("morning sunlight exposure")
		id2 := IDFromContent("evening light avoidance")
		assert.NotEqual(t, id1, id2)
	})

	t.Run("empty content is valid", func(t *testing.T) {
		assert.NotPanics(t, func() { IDFromContent("") })
	})
}

func TestSegmentEnd(t *testing.T) {
	s := &Segment{Start: 120.5, Duration: 30.0}
	assert.InDelta(t, 150.5, s.End(), 1e-9)
}

func TestSegmentOverlap(t *testing.T) {
	base := &Segment{VideoID: "abc", Start: 100, Duration: 30}

	t.Run("different videos never overlap", func(t *testing.T) {
		other := &Segment{VideoID: "xyz", Start: 100, Duration: 30}
		assert.Zero(t, base.Overlap(other))
	})

	t.Run("disjoint spans", func(t *testing.T) {
		other := &Segment{VideoID: "abc", Start: 200, Duration: 30}
		assert.Zero(t, base.Overlap(other))
	})

	t.Run("adjacent spans do not overlap", func(t *testing.T) {
		other := &Segment{VideoID: "abc", Start: 130, Duration: 30}
		assert.Zero(t, base.Overlap(other))
	})

	t.Run("partial overlap", func(t *testing.T) {
		other := &Segment{VideoID: "abc", Start: 115, Duration: 30}
		assert.InDelta(t, 15.0, base.Overlap(other), 1e-9)
	})

	t.Run("containment", func(t *testing.T) {
		other := &Segment{VideoID: "abc", Start: 105, Duration: 10}
		assert.InDelta(t, 10.0, base.Overlap(other), 1e-9)
		assert.InDelta(t, 10.0, other.Overlap(base), 1e-9)
	})
}

func TestRankedResultTimestamp(t *testing.T) {
	tests := []struct {
		name  string
		start float64
		want  string
	}{
		{"zero", 0, "0:00"},
		{"under a minute", 42.7, "0:42"},
		{"minutes and seconds", 125, "2:05"},
		{"over an hour stays minutes", 3725, "62:05"},
		{"negative clamps to zero", -3, "0:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &RankedResult{Segment: &Segment{Start: tt.start}}
			assert.Equal(t, tt.want, r.Timestamp())
		})
	}
}

func TestRankedResultWatchURL(t *testing.T) {
	r := &RankedResult{Segment: &Segment{VideoID: "dQw4w9WgXcQ", Start: 125.8}}
	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=125s", r.WatchURL())
}
