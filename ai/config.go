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


package ai

import (
	"errors"
	"strings"
)

// Config holds configuration for AI service providers.
type Config struct {
	// EmbeddingHost is the base URL for the embedding service API.
	// Example: "http://localhost:11434/v1" for local OpenAI-compatible server
	EmbeddingHost string

	// RecommenderHost is the base URL for the recommendation service API.
	// Example: "https://openrouter.ai/api/v1"
	RecommenderHost string

	// EmbeddingModel is the model identifier to use for text embeddings.
	// Example: "embeddinggemma", "text-embedding-3-small"
	EmbeddingModel string

	// RecommenderModel is the model identifier for recommendation synthesis.
	// Example: "openai/gpt-3.5-turbo", "qwen2.5:3b"
	RecommenderModel string

	// Token is the API token. Local OpenAI-compatible services accept any
	// non-empty value. Default: "none"
	Token string

	// MaxTokens bounds the length of generated recommendations.
	// Default: 400
	MaxTokens int

	// Temperature controls generation randomness in [0,2].
	// Default: 0.7
	Temperature float64
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithEmbeddingHost sets the embedding service host URL.
func WithEmbeddingHost(host string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingHost = host
	}
}

// WithRecommenderHost sets the recommendation service host URL.
func WithRecommenderHost(host string) ConfigOption {
	return func(c *Config) {
		c.RecommenderHost = host
	}
}

// WithHost sets both embedding and recommender hosts to the same URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingHost = host
		c.RecommenderHost = host
	}
}

// WithEmbeddingModel sets the embedding model identifier.
func WithEmbeddingModel(model string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingModel = model
	}
}

// WithRecommenderModel sets the recommendation model identifier.
func WithRecommenderModel(model string) ConfigOption {
	return func(c *Config) {
		c.RecommenderModel = model
	}
}

// WithToken sets the API token.
func WithToken(token string) ConfigOption {
	return func(c *Config) {
		c.Token = token
	}
}

// WithMaxTokens sets the recommendation length bound.
func WithMaxTokens(n int) ConfigOption {
	return func(c *Config) {
		c.MaxTokens = n
	}
}

// WithTemperature sets the generation temperature.
func WithTemperature(t float64) ConfigOption {
	return func(c *Config) {
		c.Temperature = t
	}
}

// DefaultConfig returns a Config with sensible defaults for local
// OpenAI-compatible services. Both services use the same host by default.
func DefaultConfig() *Config {
	defaultHost := "http://localhost:11434/v1"
	return &Config{
		EmbeddingHost:    defaultHost,
		RecommenderHost:  defaultHost,
		EmbeddingModel:   "embeddinggemma",
		RecommenderModel: "qwen2.5:3b",
		Token:            "none",
		MaxTokens:        400,
		Temperature:      0.7,
	}
}

// NewConfig creates a Config with the default values and applies the
// provided options. This is the recommended way to create a Config.
//
// Example:
//   cfg := NewConfig(
//       WithHost("https://openrouter.ai/api/v1"),
//       WithEmbeddingModel("text-embedding-3-small"),
//       WithRecommenderModel("openai/gpt-3.5-turbo"),
//   )
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// It automatically adds the /v1 suffix to hosts if missing, which is required
// by most OpenAI-compatible APIs (Ollama, LocalAI, vLLM, etc).
func (c *Config) Normalize() {
	if c.EmbeddingHost != "" && !strings.HasSuffix(c.EmbeddingHost, "/v1") {
		c.EmbeddingHost = strings.TrimSuffix(c.EmbeddingHost, "/") + "/v1"
	}
	if c.RecommenderHost != "" && !strings.HasSuffix(c.RecommenderHost, "/v1") {
		c.RecommenderHost = strings.TrimSuffix(c.RecommenderHost, "/") + "/v1"
	}
	if c.Token == "" {
		c.Token = "none"
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.EmbeddingHost == "" {
		return errors.New("ai config: EmbeddingHost is required")
	}
	if c.RecommenderHost == "" {
		return errors.New("ai config: RecommenderHost is required")
	}
	if c.EmbeddingModel == "" {
		return errors.New("ai config: EmbeddingModel is required")
	}
	if c.RecommenderModel == "" {
		return errors.New("ai config: RecommenderModel is required")
	}
	if c.MaxTokens <= 0 {
		return errors.New("ai config: MaxTokens must be positive")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return errors.New("ai config: Temperature must be between 0 and 2")
	}
	return nil
}
