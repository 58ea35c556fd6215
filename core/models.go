package core

import (
	"encoding/binary"
	"fmt"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for derived artifacts such as cached embeddings.
// It is generated using content-based hashing.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Video holds read-only metadata describing a source recording.
// Videos are loaded once with the corpus and never mutated.
type Video struct {
	ID          string
	Title       string
	URL         string
	Description string
	Duration    float64 // Total length in seconds
	ViewCount   int64
	LikeCount   int64
}

// Segment is a contiguous span of transcript text belonging to one video.
// (VideoID, Index) is unique across the corpus; Start is monotonically
// non-decreasing within a video. Segments are immutable after corpus load.
type Segment struct {
	VideoID  string
	Index    int     // Position within the video transcript, 0-based
	Start    float64 // Offset from the beginning of the video, seconds
	Duration float64 // Length of the span, seconds
	Text     string
}

// End returns the offset at which the segment's span ends.
func (s *Segment) End() float64 {
	return s.Start + s.Duration
}

// Overlap returns the length in seconds by which two spans intersect.
// Returns 0 for segments of different videos or disjoint spans.
func (s *Segment) Overlap(other *Segment) float64 {
	if s.VideoID != other.VideoID {
		return 0
	}
	start := max(s.Start, other.Start)
	end := min(s.End(), other.End())
	if end <= start {
		return 0
	}
	return end - start
}

// RankedResult is a transient, per-query search hit. It pairs a segment with
// its resolved video metadata and the scores that produced its rank.
type RankedResult struct {
	Segment       *Segment
	Video         *Video
	SemanticScore float64 // Normalized cosine similarity in [0,1]
	LexicalScore  float64 // Query-term overlap in [0,1]
	FusedScore    float64 // Weighted combination used for the final ordering
	Rank          int     // 1-based position in the result list
}

// Timestamp returns the segment start formatted as "M:SS" for display.
func (r *RankedResult) Timestamp() string {
	seconds := r.Segment.Start
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", int(seconds)/60, int(seconds)%60)
}

// WatchURL returns a link that opens the video at the segment's start offset.
func (r *RankedResult) WatchURL() string {
	return fmt.Sprintf("https://www.youtube.com/watch?v=%s&t=%ds", r.Segment.VideoID, int(r.Segment.Start))
}
