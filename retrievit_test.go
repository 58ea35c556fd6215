package retrievit

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/retrievit/ai/mock"
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

func writeTestCorpus(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "corpus.json")
	require.NoError(t, os.WriteFile(path, []byte(testCorpus), 0o644))
	return path
}

func TestService(t *testing.T) {
	ctx := context.Background()

	service, err := NewService(writeTestCorpus(t), WithProvider(mock.NewMockProvider()))
	require.NoError(t, err)
	defer service.Close()

	assert.Equal(t, 2, service.Store().SegmentCount())

	require.NoError(t, service.Build(ctx))

	res, err := service.Query(ctx, "how do I sleep better", 3)
	require.NoError(t, err)
	assert.NotEmpty(t, res.Results)
	assert.False(t, res.Degraded)

	status := service.Engine().Status()
	assert.True(t, status.Ready)
	assert.Equal(t, 1, status.Videos)
}

func TestServiceWithCache(t *testing.T) {
	ctx := context.Background()
	corpusPath := writeTestCorpus(t)
	cachePath := filepath.Join(t.TempDir(), "cache")

	service, err := NewService(corpusPath,
		WithProvider(mock.NewMockProvider()),
		WithCachePath(cachePath),
	)
	require.NoError(t, err)

	require.NoError(t, service.Build(ctx))
	require.NoError(t, service.Close())

	// A fresh service reuses the on-disk cache without error.
	reopened, err := NewService(corpusPath,
		WithProvider(mock.NewMockProvider()),
		WithCachePath(cachePath),
	)
	require.NoError(t, err)
	defer reopened.Close()

	require.NoError(t, reopened.Build(ctx))
	res, err := reopened.Query(ctx, "morning sunlight", 2)
	require.NoError(t, err)
	assert.NotEmpty(t, res.Results)
}

func TestServiceMissingCorpus(t *testing.T) {
	_, err := NewService(filepath.Join(t.TempDir(), "missing.json"),
		WithProvider(mock.NewMockProvider()))
	assert.Error(t, err)
}
