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


package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/retrievit/ai"
	"github.com/poiesic/retrievit/core"
	"github.com/poiesic/retrievit/corpus"
	"github.com/poiesic/retrievit/index"
	"github.com/poiesic/retrievit/storage"
)

// Engine answers free-text queries over a transcript corpus with hybrid
// semantic and lexical ranking, optionally enriched with a generated
// recommendation.
//
// The engine serves queries from an immutable snapshot (corpus store plus
// vector index) swapped atomically by Build, so queries keep running against
// the previous snapshot while a rebuild is in flight.
type Engine struct {
	embedder      ai.Embedder
	recommender   ai.Recommender
	cache         storage.VectorCache
	cacheKeyspace string
	config        Config
	pool          *ants.Pool
	logger        *slog.Logger

	state   atomic.Pointer[engineState]
	buildMu sync.Mutex
}

// engineState is one immutable queryable snapshot.
type engineState struct {
	version uint64
	store   *corpus.Store
	index   *index.Index
}

// Result is the answer to one query.
type Result struct {
	Results        []*core.RankedResult
	Recommendation string

	// Degraded reports that ranked results are present but the
	// recommendation step was skipped or failed.
	Degraded bool
}

// Status describes the engine's serving state.
type Status struct {
	Ready    bool
	Version  uint64 // Increments on every successful Build
	Segments int
	Videos   int
}

// Option configures an Engine.
type Option func(*Engine) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger.With("component", "search")
		return nil
	}
}

// WithConfig replaces the default ranking and build configuration.
func WithConfig(cfg Config) Option {
	return func(e *Engine) error {
		if err := cfg.validate(); err != nil {
			return err
		}
		e.config = cfg
		return nil
	}
}

// WithPoolSize sets the worker pool size for concurrent embedding during
// Build. Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(e *Engine) error {
		if size < 1 {
			size = 1
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		if e.pool != nil {
			e.pool.Release()
		}
		e.pool = pool
		return nil
	}
}

// WithVectorCache attaches a persistent embedding cache consulted during
// Build. The keyspace should identify the embedding model so that a model
// change invalidates the cache naturally.
func WithVectorCache(cache storage.VectorCache, keyspace string) Option {
	return func(e *Engine) error {
		e.cache = cache
		e.cacheKeyspace = keyspace
		return nil
	}
}

// NewEngine creates a search engine backed by the given AI provider.
// The provider's Recommender may be nil, in which case every query response
// is degraded.
func NewEngine(provider ai.AIProvider, opts ...Option) (*Engine, error) {
	if provider == nil {
		return nil, ErrProviderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		embedder:    provider.Embedder(),
		recommender: provider.Recommender(),
		config:      DefaultConfig(),
		pool:        pool,
		logger:      slog.Default().With("component", "search"),
	}

	for _, opt := range opts {
		if optErr := opt(e); optErr != nil {
			e.pool.Release()
			return nil, optErr
		}
	}

	return e, nil
}

// Build embeds every segment of the store and swaps in a fresh snapshot.
//
// The build is all-or-nothing: if any batch fails after retries the previous
// snapshot, if one exists, keeps serving untouched. Builds are single-flight;
// a concurrent call returns ErrBuildInProgress instead of queueing.
func (e *Engine) Build(ctx context.Context, store *corpus.Store) error {
	if store == nil {
		return ErrStoreRequired
	}

	if !e.buildMu.TryLock() {
		return ErrBuildInProgress
	}
	defer e.buildMu.Unlock()

	segments := store.Segments()
	e.logger.Info("building index", "segments", len(segments), "videos", store.VideoCount())

	vectors, err := e.embedSegments(ctx, segments)
	if err != nil {
		return err
	}

	idx, err := index.Build(vectors)
	if err != nil {
		return err
	}

	version := uint64(1)
	if prev := e.state.Load(); prev != nil {
		version = prev.version + 1
	}
	e.state.Store(&engineState{
		version: version,
		store:   store,
		index:   idx,
	})

	e.logger.Info("index built", "version", version, "vectors", idx.Len(), "dimension", idx.Dim())
	return nil
}

// embedSegments produces one vector per segment, in segment order, consulting
// the vector cache first and embedding the misses in concurrent batches.
// The first batch failure cancels the remaining batches; a dead provider
// surfaces after one retry cycle, not one per batch.
func (e *Engine) embedSegments(ctx context.Context, segments []*core.Segment) ([][]float32, error) {
	vectors := make([][]float32, len(segments))

	missing := e.fillFromCache(ctx, segments, vectors)
	if len(missing) == 0 {
		return vectors, nil
	}

	batchCtx, cancelBatches := context.WithCancel(ctx)
	defer cancelBatches()

	var (
		wg       sync.WaitGroup
		errMu    sync.Mutex
		firstErr error
	)
	fail := func(err error) {
		errMu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		errMu.Unlock()
		cancelBatches()
	}

	for start := 0; start < len(missing); start += e.config.BatchSize {
		end := min(start+e.config.BatchSize, len(missing))
		batch := missing[start:end]

		wg.Add(1)
		submitErr := e.pool.Submit(func() {
			defer wg.Done()

			texts := make([]string, len(batch))
			for i, pos := range batch {
				texts[i] = segments[pos].Text
			}

			var embedded [][]float32
			err := retryWithBackoff(batchCtx, func() error {
				var embedErr error
				embedded, embedErr = e.embedder.EmbedTexts(batchCtx, texts)
				return embedErr
			}, e.config.MaxRetries, e.config.RetryDelay)
			if err != nil {
				fail(err)
				return
			}
			if len(embedded) != len(texts) {
				fail(fmt.Errorf("%w: got %d embeddings for %d texts",
					core.ErrEmbedding, len(embedded), len(texts)))
				return
			}

			for i, pos := range batch {
				vectors[pos] = embedded[i]
			}
		})
		if submitErr != nil {
			wg.Done()
			fail(submitErr)
			break
		}
	}

	wg.Wait()

	if firstErr != nil {
		if errors.Is(firstErr, core.ErrEmbedding) {
			return nil, firstErr
		}
		return nil, fmt.Errorf("%w: %v", core.ErrEmbedding, firstErr)
	}

	e.storeInCache(ctx, segments, vectors, missing)
	return vectors, nil
}

// fillFromCache populates vectors from the cache and returns the positions
// still missing. Cache failures are logged and treated as misses; the cache
// is an optimization, never a build dependency.
func (e *Engine) fillFromCache(ctx context.Context, segments []*core.Segment, vectors [][]float32) []int {
	all := make([]int, len(segments))
	for i := range segments {
		all[i] = i
	}
	if e.cache == nil {
		return all
	}

	ids := make([]core.ID, len(segments))
	for i, seg := range segments {
		ids[i] = e.cacheID(seg.Text)
	}

	cached, err := e.cache.GetBatch(ctx, ids)
	if err != nil {
		e.logger.Warn("vector cache read failed, embedding everything", "err", err)
		return all
	}

	missing := make([]int, 0, len(segments))
	for i, vec := range cached {
		if vec == nil {
			missing = append(missing, i)
			continue
		}
		vectors[i] = vec
	}

	e.logger.Debug("vector cache consulted", "hits", len(segments)-len(missing), "misses", len(missing))
	return missing
}

// storeInCache writes freshly embedded vectors back. Failures are logged
// only; the snapshot swap does not depend on cache durability.
func (e *Engine) storeInCache(ctx context.Context, segments []*core.Segment, vectors [][]float32, positions []int) {
	if e.cache == nil || len(positions) == 0 {
		return
	}

	ids := make([]core.ID, len(positions))
	fresh := make([][]float32, len(positions))
	for i, pos := range positions {
		ids[i] = e.cacheID(segments[pos].Text)
		fresh[i] = vectors[pos]
	}

	if err := e.cache.PutBatch(ctx, ids, fresh); err != nil {
		e.logger.Warn("vector cache write failed", "vectors", len(ids), "err", err)
	}
}

func (e *Engine) cacheID(text string) core.ID {
	return core.IDFromContent(e.cacheKeyspace + "\x00" + text)
}

// Query answers a free-text question with up to maxResults ranked results.
func (e *Engine) Query(ctx context.Context, query string, maxResults int) (*Result, error) {
	return e.QueryWithMonitor(ctx, query, maxResults, nil)
}

// QueryWithMonitor answers a query with observation hooks at each pipeline
// stage. A nil monitor is replaced with a no-op.
//
// Enrichment failures never fail the query: the response is returned with
// Degraded set and an empty recommendation.
func (e *Engine) QueryWithMonitor(ctx context.Context, query string, maxResults int, monitor QueryMonitor) (*Result, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: query must not be empty", core.ErrInvalidRequest)
	}
	if maxResults < 1 || maxResults > MaxResultsLimit {
		return nil, fmt.Errorf("%w: max results must be between 1 and %d, got %d",
			core.ErrInvalidRequest, MaxResultsLimit, maxResults)
	}

	st := e.state.Load()
	if st == nil {
		return nil, fmt.Errorf("%w: index has not been built", core.ErrNotReady)
	}

	monitor.Start(query)

	vector, err := e.embedder.EmbedText(ctx, query)
	if err != nil {
		e.logger.Error("error embedding query", "err", err)
		if errors.Is(err, core.ErrEmbedding) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", core.ErrEmbedding, err)
	}
	monitor.AfterQueryEmbedding(vector)

	candidates := maxResults * e.config.CandidateFactor
	if candidates < e.config.MinCandidates {
		candidates = e.config.MinCandidates
	}
	hits, err := st.index.Search(vector, candidates)
	if err != nil {
		return nil, err
	}
	monitor.AfterSemanticSearch(hits)

	terms := queryTerms(query, e.config.FilterStopWords)
	results := fuseCandidates(hits, st.store, terms, &e.config)
	sortByFusedScore(results)
	monitor.AfterFusion(results)

	results = deduplicate(results, e.config.OverlapFraction)
	monitor.AfterDeduplication(results)

	results = assignRanks(results, maxResults)

	res := &Result{Results: results}
	e.enrich(ctx, query, res, monitor)

	monitor.Finish(res.Results, res.Degraded)
	return res, nil
}

// enrich asks the recommendation service for advice grounded in the ranked
// results, under a bounded timeout. Any failure marks the result degraded.
func (e *Engine) enrich(ctx context.Context, query string, res *Result, monitor QueryMonitor) {
	if len(res.Results) == 0 {
		monitor.EnrichmentSkipped("no results")
		return
	}
	if e.recommender == nil {
		monitor.EnrichmentSkipped("no recommendation service")
		res.Degraded = true
		return
	}
	if e.config.EnrichmentTimeout <= 0 {
		monitor.EnrichmentSkipped("enrichment disabled")
		res.Degraded = true
		return
	}

	enrichCtx, cancel := context.WithTimeout(ctx, e.config.EnrichmentTimeout)
	defer cancel()

	recommendation, err := e.recommender.Recommend(enrichCtx, query, res.Results)
	if err != nil {
		e.logger.Warn("recommendation failed, serving degraded response", "err", err)
		monitor.EnrichmentFailed(err)
		res.Degraded = true
		return
	}

	res.Recommendation = recommendation
}

// Status reports whether the engine can serve queries and what it serves.
func (e *Engine) Status() Status {
	st := e.state.Load()
	if st == nil {
		return Status{}
	}
	return Status{
		Ready:    true,
		Version:  st.version,
		Segments: st.store.SegmentCount(),
		Videos:   st.store.VideoCount(),
	}
}

// Release releases the build worker pool.
// The engine should not be used after calling Release.
func (e *Engine) Release() {
	if e.pool != nil {
		e.pool.Release()
	}
}
