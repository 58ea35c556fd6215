package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/poiesic/retrievit/ai/mock"
	"github.com/poiesic/retrievit/corpus"
	"github.com/poiesic/retrievit/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCorpus = `[
  {
    "id": "vid-sleep",
    "title": "Master Your Sleep",
    "duration": 5400,
    "transcript": [
      {"start": 0, "duration": 6, "text": "today we discuss sleep and circadian rhythms"},
      {"start": 10, "duration": 7, "text": "morning sunlight sets your circadian clock each day"}
    ]
  }
]`

func newTestHandler(t *testing.T, built bool) *Handler {
	t.Helper()

	engine, err := search.NewEngine(mock.NewMockProvider())
	require.NoError(t, err)
	t.Cleanup(engine.Release)

	if built {
		store, err := corpus.LoadReader(strings.NewReader(testCorpus))
		require.NoError(t, err)
		require.NoError(t, engine.Build(context.Background(), store))
	}

	handler, err := NewHandler(engine)
	require.NoError(t, err)
	return handler
}

func doSearch(t *testing.T, handler *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/search", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	handler.Router().ServeHTTP(rec, req)
	return rec
}

func TestNewHandler(t *testing.T) {
	_, err := NewHandler(nil)
	assert.Error(t, err)
}

func TestSearchEndpoint(t *testing.T) {
	handler := newTestHandler(t, true)

	t.Run("returns ranked videos", func(t *testing.T) {
		rec := doSearch(t, handler, `{"query": "sleep", "max_results": 2}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp searchResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

		assert.Equal(t, "sleep", resp.Query)
		assert.NotEmpty(t, resp.Videos)
		assert.Equal(t, len(resp.Videos), resp.TotalResults)
		assert.False(t, resp.Degraded)
		assert.NotEmpty(t, resp.Recommendation)

		first := resp.Videos[0]
		assert.Equal(t, "vid-sleep", first.VideoID)
		assert.Equal(t, "Master Your Sleep", first.Title)
		assert.Equal(t, 1, first.Rank)
		assert.Contains(t, first.WatchURL, "vid-sleep")
		assert.Regexp(t, `^\d+:\d{2}$`, first.Timestamp)
	})

	t.Run("defaults max results when absent", func(t *testing.T) {
		rec := doSearch(t, handler, `{"query": "sleep"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp searchResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.LessOrEqual(t, resp.TotalResults, search.DefaultMaxResults)
	})

	t.Run("explicit zero max results rejected", func(t *testing.T) {
		rec := doSearch(t, handler, `{"query": "sleep", "max_results": 0}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var resp errorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "invalid_request", resp.Error.Category)
	})

	t.Run("empty query rejected", func(t *testing.T) {
		rec := doSearch(t, handler, `{"query": "   "}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed body rejected", func(t *testing.T) {
		rec := doSearch(t, handler, `{"query": `)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var resp errorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "invalid_request", resp.Error.Category)
	})

	t.Run("get method not allowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/search", nil)
		rec := httptest.NewRecorder()
		handler.Router().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

func TestSearchBeforeBuild(t *testing.T) {
	handler := newTestHandler(t, false)

	rec := doSearch(t, handler, `{"query": "sleep"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "not_ready", resp.Error.Category)
}

func TestHealthEndpoint(t *testing.T) {
	t.Run("ready after build", func(t *testing.T) {
		handler := newTestHandler(t, true)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()
		handler.Router().ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp healthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "healthy", resp.Status)
		assert.True(t, resp.Ready)
		assert.Equal(t, 1, resp.VideosLoaded)
		assert.Equal(t, 2, resp.Segments)
		assert.Equal(t, uint64(1), resp.IndexVersion)
	})

	t.Run("starting before build", func(t *testing.T) {
		handler := newTestHandler(t, false)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()
		handler.Router().ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp healthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "starting", resp.Status)
		assert.False(t, resp.Ready)
	})
}

func TestRootEndpoint(t *testing.T) {
	handler := newTestHandler(t, false)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp rootResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "running", resp.Status)
}
