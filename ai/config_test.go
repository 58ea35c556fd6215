package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	assert.Equal(t, "http://localhost:11434/v1", cfg.RecommenderHost)
	assert.Equal(t, 400, cfg.MaxTokens)
	assert.InDelta(t, 0.7, cfg.Temperature, 1e-9)
}

func TestNewConfig_Options(t *testing.T) {
	cfg := NewConfig(
		WithHost("https://openrouter.ai/api"),
		WithEmbeddingModel("text-embedding-3-small"),
		WithRecommenderModel("openai/gpt-3.5-turbo"),
		WithToken("sk-test"),
		WithMaxTokens(256),
		WithTemperature(0.2),
	)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "https://openrouter.ai/api/v1", cfg.EmbeddingHost)
	assert.Equal(t, "https://openrouter.ai/api/v1", cfg.RecommenderHost)
	assert.Equal(t, "text-embedding-3-small", cfg.EmbeddingModel)
	assert.Equal(t, "openai/gpt-3.5-turbo", cfg.RecommenderModel)
	assert.Equal(t, "sk-test", cfg.Token)
	assert.Equal(t, 256, cfg.MaxTokens)
}

func TestConfigNormalize(t *testing.T) {
	t.Run("appends v1 suffix", func(t *testing.T) {
		cfg := NewConfig(WithHost("http://localhost:9100/"))
		cfg.Normalize()
		assert.Equal(t, "http://localhost:9100/v1", cfg.EmbeddingHost)
	})

	t.Run("leaves v1 suffix alone", func(t *testing.T) {
		cfg := NewConfig(WithHost("http://localhost:9100/v1"))
		cfg.Normalize()
		assert.Equal(t, "http://localhost:9100/v1", cfg.EmbeddingHost)
	})

	t.Run("empty token falls back to none", func(t *testing.T) {
		cfg := NewConfig(WithToken(""))
		cfg.Normalize()
		assert.Equal(t, "none", cfg.Token)
	})
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty embedding host", func(c *Config) { c.EmbeddingHost = "" }},
		{"empty recommender host", func(c *Config) { c.RecommenderHost = "" }},
		{"empty embedding model", func(c *Config) { c.EmbeddingModel = "" }},
		{"empty recommender model", func(c *Config) { c.RecommenderModel = "" }},
		{"non-positive max tokens", func(c *Config) { c.MaxTokens = 0 }},
		{"temperature out of range", func(c *Config) { c.Temperature = 2.5 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
