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


package core

import "errors"

// Error taxonomy for the retrieval engine. Callers match with errors.Is;
// all errors surfaced by the engine wrap one of these sentinels.
var (
	// ErrCorpusLoad indicates malformed or missing corpus source data.
	// Fatal at startup: the engine refuses to reach the ready state.
	ErrCorpusLoad = errors.New("corpus load failed")

	// ErrEmbedding indicates an embedding provider failure.
	// Fatal for the operation (the whole index build, or a single query).
	ErrEmbedding = errors.New("embedding failed")

	// ErrRetrieval indicates a vector index query failure.
	// Fatal for that request; there is no silent lexical-only fallback.
	ErrRetrieval = errors.New("retrieval failed")

	// ErrInvalidRequest indicates bad caller input, such as an empty query
	// or a non-positive result limit.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrNotReady indicates a query was issued before index build completed.
	ErrNotReady = errors.New("engine not ready")

	// ErrEnrichment indicates the recommendation service failed.
	// Non-fatal: the query degrades to results-only output.
	ErrEnrichment = errors.New("enrichment failed")

	// ErrEnrichmentTimeout indicates the recommendation service exceeded
	// its bounded wait. Non-fatal, same degraded handling as ErrEnrichment.
	ErrEnrichmentTimeout = errors.New("enrichment timed out")
)

// Category returns the taxonomy name for an error, suitable for inclusion
// in user-visible responses. Unrecognized errors report as "internal".
func Category(err error) string {
	switch {
	case errors.Is(err, ErrCorpusLoad):
		return "corpus_load_error"
	case errors.Is(err, ErrEmbedding):
		return "embedding_error"
	case errors.Is(err, ErrRetrieval):
		return "retrieval_error"
	case errors.Is(err, ErrInvalidRequest):
		return "invalid_request"
	case errors.Is(err, ErrNotReady):
		return "not_ready"
	case errors.Is(err, ErrEnrichmentTimeout):
		return "enrichment_timeout"
	case errors.Is(err, ErrEnrichment):
		return "enrichment_error"
	default:
		return "internal"
	}
}
