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


package openai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/retrievit/ai"
	"github.com/poiesic/retrievit/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Recommender implements ai.Recommender using OpenAI-compatible chat APIs.
type Recommender struct {
	client      llms.Model
	maxTokens   int
	temperature float64
	logger      *slog.Logger
}

// newRecommender is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newRecommender(config *ai.Config) (*Recommender, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.RecommenderHost),
		openai.WithToken(config.Token),
		openai.WithModel(config.RecommenderModel),
	)
	if err != nil {
		return nil, err
	}

	return &Recommender{
		client:      client,
		maxTokens:   config.MaxTokens,
		temperature: config.Temperature,
		logger:      slog.Default().With("component", "openai-recommender"),
	}, nil
}

// NewRecommender creates a new recommender using the provided configuration.
//
// Returns ai.Recommender interface to enforce abstraction.
func NewRecommender(config *ai.Config) (ai.Recommender, error) {
	return newRecommender(config)
}

// Recommend synthesizes a natural-language recommendation grounded in the
// ranked results. The caller bounds the wait through ctx; a canceled or
// expired context surfaces as an error for the engine's degraded handling.
func (r *Recommender) Recommend(ctx context.Context, query string, results []*core.RankedResult) (string, error) {
	if len(results) == 0 {
		return "", fmt.Errorf("%w: no results to ground the recommendation", core.ErrEnrichment)
	}

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(recommenderSystemPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(buildRecommendationPrompt(query, results)),
			},
		},
	}

	response, err := r.client.GenerateContent(ctx, content,
		llms.WithMaxTokens(r.maxTokens),
		llms.WithTemperature(r.temperature),
	)
	if err != nil {
		r.logger.Error("failed to generate recommendation", "err", err)
		return "", fmt.Errorf("%w: %v", core.ErrEnrichment, err)
	}

	if len(response.Choices) < 1 {
		return "", fmt.Errorf("%w: model returned no choices", core.ErrEnrichment)
	}

	recommendation := strings.TrimSpace(response.Choices[0].Content)
	if recommendation == "" {
		return "", fmt.Errorf("%w: model returned empty content", core.ErrEnrichment)
	}

	return recommendation, nil
}
