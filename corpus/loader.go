package corpus

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/poiesic/retrievit/core"
)

// videoRecord is the on-disk shape of one corpus entry: video metadata plus
// its ordered transcript. Fields deliberately mirror the exported corpus
// files rather than the domain model.
type videoRecord struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	URL         string          `json:"url"`
	Description string          `json:"description"`
	Duration    float64         `json:"duration"`
	ViewCount   int64           `json:"view_count"`
	LikeCount   int64           `json:"like_count"`
	Transcript  []segmentRecord `json:"transcript"`
}

// segmentRecord is the on-disk shape of one transcript span.
type segmentRecord struct {
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
	Text     string  `json:"text"`
}

// Option configures corpus loading.
type Option func(*loaderOptions)

type loaderOptions struct {
	minTextLen int
	logger     *slog.Logger
}

// WithMinTextLength sets the minimum segment text length in runes.
// Shorter (but non-empty) segments carry too little signal to embed and are
// filtered during load. Default is 10. Zero disables filtering.
func WithMinTextLength(n int) Option {
	return func(o *loaderOptions) {
		if n < 0 {
			n = 0
		}
		o.minTextLen = n
	}
}

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *loaderOptions) {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
	}
}

// Load reads a corpus file and builds a Store.
//
// The file is a JSON array of video records, each carrying metadata and an
// ordered transcript. Segments are flattened into a single sequence with
// per-video indices assigned in transcript order, so any two loads of the
// same source yield identical ordering. Malformed records fail the whole
// load with an error wrapping core.ErrCorpusLoad; no partial store is
// returned.
func Load(path string, opts ...Option) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrCorpusLoad, err)
	}
	defer f.Close()
	return LoadReader(f, opts...)
}

// LoadReader is Load over an arbitrary reader.
func LoadReader(r io.Reader, opts ...Option) (*Store, error) {
	options := &loaderOptions{
		minTextLen: 10,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}
	logger := options.logger.With("component", "corpus")

	var records []videoRecord
	dec := json.NewDecoder(r)
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("%w: decoding corpus: %v", core.ErrCorpusLoad, err)
	}

	store := &Store{
		videos: make(map[string]*core.Video, len(records)),
	}

	filtered := 0
	for _, rec := range records {
		video := &core.Video{
			ID:          rec.ID,
			Title:       rec.Title,
			URL:         rec.URL,
			Description: rec.Description,
			Duration:    rec.Duration,
			ViewCount:   rec.ViewCount,
			LikeCount:   rec.LikeCount,
		}
		if video.URL == "" && video.ID != "" {
			video.URL = "https://www.youtube.com/watch?v=" + video.ID
		}
		if err := core.ValidateVideo(video); err != nil {
			return nil, err
		}
		if _, exists := store.videos[video.ID]; exists {
			return nil, fmt.Errorf("%w: duplicate video id %q", core.ErrCorpusLoad, video.ID)
		}
		store.videos[video.ID] = video

		index := 0
		lastStart := -1.0
		for _, sr := range rec.Transcript {
			segment := &core.Segment{
				VideoID:  video.ID,
				Index:    index,
				Start:    sr.Start,
				Duration: sr.Duration,
				Text:     strings.TrimSpace(sr.Text),
			}
			if err := core.ValidateSegment(segment); err != nil {
				return nil, err
			}
			if segment.Start < lastStart {
				return nil, fmt.Errorf("%w: segment %s/%d starts at %f before previous segment at %f",
					core.ErrCorpusLoad, video.ID, index, segment.Start, lastStart)
			}
			lastStart = segment.Start
			index++

			// Very short spans carry too little signal to embed.
			if options.minTextLen > 0 && utf8.RuneCountInString(segment.Text) < options.minTextLen {
				filtered++
				continue
			}
			store.segments = append(store.segments, segment)
		}
	}

	if len(store.segments) == 0 {
		return nil, fmt.Errorf("%w: corpus contains no usable segments", core.ErrCorpusLoad)
	}

	logger.Info("corpus loaded",
		"videos", store.VideoCount(),
		"segments", store.SegmentCount(),
		"filtered", filtered)

	return store, nil
}
