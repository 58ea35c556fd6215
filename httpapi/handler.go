// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/poiesic/retrievit/core"
	"github.com/poiesic/retrievit/search"
)

// Handler exposes the search engine over HTTP.
type Handler struct {
	engine *search.Engine
	logger *slog.Logger
}

// Option configures a Handler.
type Option func(*Handler) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) error {
		if logger == nil {
			logger = slog.Default()
		}
		h.logger = logger.With("component", "httpapi")
		return nil
	}
}

// NewHandler creates the HTTP layer over an engine.
func NewHandler(engine *search.Engine, opts ...Option) (*Handler, error) {
	if engine == nil {
		return nil, errors.New("engine required")
	}

	h := &Handler{
		engine: engine,
		logger: slog.Default().With("component", "httpapi"),
	}

	for _, opt := range opts {
		if err := opt(h); err != nil {
			return nil, err
		}
	}

	return h, nil
}

// Router builds the route table.
func (h *Handler) Router() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/", h.handleRoot).Methods(http.MethodGet)
	r.HandleFunc("/health", h.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/search", h.handleSearch).Methods(http.MethodPost)
	return r
}

func (h *Handler) handleRoot(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, rootResponse{
		Message: "retrievit transcript search API",
		Status:  "running",
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	status := h.engine.Status()
	resp := healthResponse{
		Status:       "healthy",
		Ready:        status.Ready,
		VideosLoaded: status.Videos,
		Segments:     status.Segments,
		IndexVersion: status.Version,
	}
	if !status.Ready {
		resp.Status = "starting"
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, fmt.Errorf("%w: malformed request body", core.ErrInvalidRequest))
		return
	}

	maxResults := search.DefaultMaxResults
	if req.MaxResults != nil {
		maxResults = *req.MaxResults
	}

	result, err := h.engine.Query(r.Context(), req.Query, maxResults)
	if err != nil {
		h.writeError(w, err)
		return
	}

	videos := make([]videoResult, len(result.Results))
	for i, ranked := range result.Results {
		videos[i] = toVideoResult(ranked)
	}

	h.writeJSON(w, http.StatusOK, searchResponse{
		Query:          req.Query,
		Recommendation: result.Recommendation,
		Videos:         videos,
		TotalResults:   len(videos),
		Degraded:       result.Degraded,
	})
}

// writeError maps the error taxonomy onto HTTP status codes. The response
// carries the category and message only, never internal detail.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, core.ErrInvalidRequest):
		status = http.StatusBadRequest
	case errors.Is(err, core.ErrNotReady):
		status = http.StatusServiceUnavailable
	}

	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", "err", err)
	} else {
		h.logger.Debug("request rejected", "status", status, "err", err)
	}

	h.writeJSON(w, status, errorResponse{Error: errorBody{
		Category: core.Category(err),
		Message:  err.Error(),
	}})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("error encoding response", "err", err)
	}
}
