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


package retrievit

import (
	"context"
	"log/slog"

	"github.com/poiesic/retrievit/ai"
	"github.com/poiesic/retrievit/ai/openai"
	"github.com/poiesic/retrievit/corpus"
	"github.com/poiesic/retrievit/search"
	"github.com/poiesic/retrievit/storage"
	"github.com/poiesic/retrievit/storage/badger"
)

// Service wires the corpus, the AI provider, the optional vector cache, and
// the search engine into one unit with a single Close.
type Service struct {
	store    *corpus.Store
	cache    storage.VectorCache
	provider ai.AIProvider
	engine   *search.Engine
	logger   *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*serviceOptions)

type serviceOptions struct {
	aiConfig   *ai.Config
	provider   ai.AIProvider
	cachePath  string
	corpusOpts []corpus.Option
	searchOpts []search.Option
	logger     *slog.Logger
}

// WithAIConfig replaces the default AI provider configuration.
func WithAIConfig(config *ai.Config) ServiceOption {
	return func(o *serviceOptions) {
		o.aiConfig = config
	}
}

// WithProvider supplies a pre-built AI provider instead of constructing one
// from config. The service still closes it.
func WithProvider(provider ai.AIProvider) ServiceOption {
	return func(o *serviceOptions) {
		o.provider = provider
	}
}

// WithCachePath enables the persistent embedding cache at the given
// directory. Without it every startup re-embeds the full corpus.
func WithCachePath(path string) ServiceOption {
	return func(o *serviceOptions) {
		o.cachePath = path
	}
}

// WithCorpusOptions forwards options to the corpus loader.
func WithCorpusOptions(opts ...corpus.Option) ServiceOption {
	return func(o *serviceOptions) {
		o.corpusOpts = append(o.corpusOpts, opts...)
	}
}

// WithSearchOptions forwards options to the search engine.
func WithSearchOptions(opts ...search.Option) ServiceOption {
	return func(o *serviceOptions) {
		o.searchOpts = append(o.searchOpts, opts...)
	}
}

// WithServiceLogger sets a custom logger.
// Default is slog.Default().
func WithServiceLogger(logger *slog.Logger) ServiceOption {
	return func(o *serviceOptions) {
		o.logger = logger
	}
}

// NewService loads the corpus at corpusPath and assembles the engine around
// it. The index is not built yet; call Build before serving queries.
func NewService(corpusPath string, opts ...ServiceOption) (*Service, error) {
	options := &serviceOptions{
		aiConfig: ai.DefaultConfig(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}

	corpusOpts := append([]corpus.Option{corpus.WithLogger(options.logger)}, options.corpusOpts...)
	store, err := corpus.Load(corpusPath, corpusOpts...)
	if err != nil {
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			return nil, err
		}
	}

	var cache storage.VectorCache
	if options.cachePath != "" {
		cache, err = badger.OpenVectorCache(options.cachePath)
		if err != nil {
			provider.Close()
			return nil, err
		}
	}

	searchOpts := append([]search.Option{search.WithLogger(options.logger)}, options.searchOpts...)
	if cache != nil {
		// Key the cache by embedding model so a model switch invalidates
		// cached vectors instead of serving stale ones.
		searchOpts = append(searchOpts, search.WithVectorCache(cache, options.aiConfig.EmbeddingModel))
	}

	engine, err := search.NewEngine(provider, searchOpts...)
	if err != nil {
		if cache != nil {
			cache.Close()
		}
		provider.Close()
		return nil, err
	}

	return &Service{
		store:    store,
		cache:    cache,
		provider: provider,
		engine:   engine,
		logger:   options.logger,
	}, nil
}

// Build embeds the corpus and makes the engine ready to serve queries.
func (s *Service) Build(ctx context.Context) error {
	return s.engine.Build(ctx, s.store)
}

// Query answers a free-text question with up to maxResults ranked results.
func (s *Service) Query(ctx context.Context, query string, maxResults int) (*search.Result, error) {
	return s.engine.Query(ctx, query, maxResults)
}

// Engine exposes the underlying search engine.
func (s *Service) Engine() *search.Engine {
	return s.engine
}

// Store exposes the loaded corpus.
func (s *Service) Store() *corpus.Store {
	return s.store
}

func (s *Service) Close() error {
	s.engine.Release()

	if err := s.provider.Close(); err != nil {
		s.logger.Error("error closing AI provider", "err", err)
	}

	if s.cache != nil {
		if err := s.cache.Close(); err != nil {
			s.logger.Error("error closing vector cache", "err", err)
			return err
		}
	}
	return nil
}
