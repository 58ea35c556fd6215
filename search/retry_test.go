package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()

	t.Run("succeeds first attempt", func(t *testing.T) {
		calls := 0
		err := retryWithBackoff(ctx, func() error {
			calls++
			return nil
		}, 3, time.Millisecond)
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("succeeds after failures", func(t *testing.T) {
		calls := 0
		err := retryWithBackoff(ctx, func() error {
			calls++
			if calls < 3 {
				return errors.New("transient")
			}
			return nil
		}, 3, time.Millisecond)
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("returns last error when exhausted", func(t *testing.T) {
		sentinel := errors.New("still broken")
		calls := 0
		err := retryWithBackoff(ctx, func() error {
			calls++
			return sentinel
		}, 3, time.Millisecond)
		require.ErrorIs(t, err, sentinel)
		assert.Equal(t, 3, calls)
	})

	t.Run("rejects non-positive attempts", func(t *testing.T) {
		err := retryWithBackoff(ctx, func() error { return nil }, 0, time.Millisecond)
		assert.ErrorIs(t, err, ErrInvalidMaxAttempts)
	})

	t.Run("stops on context cancellation", func(t *testing.T) {
		cancelCtx, cancel := context.WithCancel(ctx)
		calls := 0
		err := retryWithBackoff(cancelCtx, func() error {
			calls++
			cancel()
			return errors.New("transient")
		}, 5, 10*time.Second)
		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	})
}
