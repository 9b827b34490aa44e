package sequence_test

import (
	"context"
	"sync"
	"testing"

	"yuandi/internal/adapters/out/memory/sequence"
	"yuandi/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounter_NextSequence(t *testing.T) {
	t.Run("should start at one per date", func(t *testing.T) {
		counter := sequence.NewCounter()
		ctx := context.Background()

		first, err := counter.NextSequence(ctx, "20240101")
		require.NoError(t, err)
		second, err := counter.NextSequence(ctx, "20240101")
		require.NoError(t, err)
		other, err := counter.NextSequence(ctx, "20240102")
		require.NoError(t, err)

		assert.Equal(t, 1, first)
		assert.Equal(t, 2, second)
		assert.Equal(t, 1, other)
	})

	t.Run("should require date key", func(t *testing.T) {
		_, err := sequence.NewCounter().NextSequence(context.Background(), "")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should honour cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := sequence.NewCounter().NextSequence(ctx, "20240101")
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("should never repeat under concurrency", func(t *testing.T) {
		counter := sequence.NewCounter()
		const callers = 100

		var wg sync.WaitGroup
		var mu sync.Mutex
		seen := make(map[int]bool, callers)
		for range callers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				value, err := counter.NextSequence(context.Background(), "20240101")
				assert.NoError(t, err)
				mu.Lock()
				seen[value] = true
				mu.Unlock()
			}()
		}
		wg.Wait()

		assert.Len(t, seen, callers)
		for i := 1; i <= callers; i++ {
			assert.True(t, seen[i], "missing %d", i)
		}
	})
}

func TestCounter_Seed(t *testing.T) {
	counter := sequence.NewCounter()
	ctx := context.Background()

	counter.Seed("20240101", 7)
	value, err := counter.NextSequence(ctx, "20240101")
	require.NoError(t, err)
	assert.Equal(t, 8, value)

	counter.Seed("20240101", 3)
	value, err = counter.NextSequence(ctx, "20240101")
	require.NoError(t, err)
	assert.Equal(t, 9, value)
}

func TestCounter_Prune(t *testing.T) {
	counter := sequence.NewCounter()
	ctx := context.Background()
	for _, key := range []string{"20231231", "20240101", "20240102"} {
		_, err := counter.NextSequence(ctx, key)
		require.NoError(t, err)
	}

	removed, err := counter.Prune(ctx, "20240102")
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	value, err := counter.NextSequence(ctx, "20240101")
	require.NoError(t, err)
	assert.Equal(t, 1, value)
}
