package httpapi

import "github.com/poiesic/retrievit/core"

// searchRequest is the POST /search body. MaxResults is a pointer so an
// absent field can be told apart from an explicit zero; absent gets the
// default, zero is rejected.
type searchRequest struct {
	Query      string `json:"query"`
	MaxResults *int   `json:"max_results"`
}

// videoResult is one ranked excerpt in the response payload.
type videoResult struct {
	VideoID       string  `json:"video_id"`
	Title         string  `json:"title"`
	URL           string  `json:"url"`
	WatchURL      string  `json:"watch_url"`
	Timestamp     string  `json:"timestamp"`
	StartOffset   float64 `json:"start_offset"`
	Duration      float64 `json:"duration"`
	Text          string  `json:"text"`
	SemanticScore float64 `json:"semantic_score"`
	LexicalScore  float64 `json:"lexical_score"`
	FusedScore    float64 `json:"fused_score"`
	Rank          int     `json:"rank"`
}

type searchResponse struct {
	Query          string        `json:"query"`
	Recommendation string        `json:"recommendation,omitempty"`
	Videos         []videoResult `json:"videos"`
	TotalResults   int           `json:"total_results"`
	Degraded       bool          `json:"degraded"`
}

type healthResponse struct {
	Status       string `json:"status"`
	Ready        bool   `json:"ready"`
	VideosLoaded int    `json:"videos_loaded"`
	Segments     int    `json:"segments_indexed"`
	IndexVersion uint64 `json:"index_version"`
}

type rootResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

type errorBody struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

func toVideoResult(r *core.RankedResult) videoResult {
	out := videoResult{
		VideoID:       r.Segment.VideoID,
		WatchURL:      r.WatchURL(),
		Timestamp:     r.Timestamp(),
		StartOffset:   r.Segment.Start,
		Duration:      r.Segment.Duration,
		Text:          r.Segment.Text,
		SemanticScore: r.SemanticScore,
		LexicalScore:  r.LexicalScore,
		FusedScore:    r.FusedScore,
		Rank:          r.Rank,
	}
	if r.Video != nil {
		out.Title = r.Video.Title
		out.URL = r.Video.URL
	}
	return out
}
