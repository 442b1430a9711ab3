package ratelimit_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/copygen/pkg/ratelimit"
)

func TestMemoryStore_Hit(t *testing.T) {
	t.Parallel()

	t.Run("first hit opens a window", func(t *testing.T) {
		t.Parallel()

		clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
		store := ratelimit.NewMemoryStore(ratelimit.WithClock(clock.Now), ratelimit.WithCleanupInterval(0))

		w, err := store.Hit(context.Background(), "k", 5, time.Minute)
		require.NoError(t, err)
		assert.True(t, w.Allowed)
		assert.Equal(t, 1, w.Count)
		assert.Equal(t, clock.Now(), w.Start)
		assert.Equal(t, 1, store.Len())
	})

	t.Run("rejected hits do not increment", func(t *testing.T) {
		t.Parallel()

		store := ratelimit.NewMemoryStore(ratelimit.WithCleanupInterval(0))
		ctx := context.Background()

		for range 3 {
			_, err := store.Hit(ctx, "k", 2, time.Minute)
			require.NoError(t, err)
		}
		w, err := store.Hit(ctx, "k", 2, time.Minute)
		require.NoError(t, err)
		assert.False(t, w.Allowed)
		assert.Equal(t, 2, w.Count)
	})

	t.Run("window start is kept until expiry", func(t *testing.T) {
		t.Parallel()

		clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
		store := ratelimit.NewMemoryStore(ratelimit.WithClock(clock.Now), ratelimit.WithCleanupInterval(0))
		ctx := context.Background()

		first, err := store.Hit(ctx, "k", 10, time.Minute)
		require.NoError(t, err)

		clock.Advance(30 * time.Second)
		second, err := store.Hit(ctx, "k", 10, time.Minute)
		require.NoError(t, err)
		assert.Equal(t, first.Start, second.Start)
		assert.Equal(t, 2, second.Count)
	})
}

func TestMemoryStore_Sweep(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	store := ratelimit.NewMemoryStore(ratelimit.WithClock(clock.Now), ratelimit.WithCleanupInterval(0))
	ctx := context.Background()

	for i := range 10 {
		_, err := store.Hit(ctx, fmt.Sprintf("client-%d", i), 50, 15*time.Minute)
		require.NoError(t, err)
	}
	clock.Advance(10 * time.Minute)
	_, err := store.Hit(ctx, "late", 50, 15*time.Minute)
	require.NoError(t, err)

	assert.Equal(t, 0, store.Sweep())
	assert.Equal(t, 11, store.Len())

	clock.Advance(5*time.Minute + time.Millisecond)
	assert.Equal(t, 10, store.Sweep())
	assert.Equal(t, 1, store.Len())
}

func TestMemoryStore_BackgroundCleanup(t *testing.T) {
	t.Parallel()

	store := ratelimit.NewMemoryStore(ratelimit.WithCleanupInterval(10 * time.Millisecond))
	defer store.Close()

	_, err := store.Hit(context.Background(), "short", 1, 5*time.Millisecond)
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return store.Len() == 0
	}, time.Second, 10*time.Millisecond)
}

func TestMemoryStore_Reset(t *testing.T) {
	t.Parallel()

	store := ratelimit.NewMemoryStore(ratelimit.WithCleanupInterval(0))
	ctx := context.Background()

	_, err := store.Hit(ctx, "k", 1, time.Minute)
	require.NoError(t, err)
	require.NoError(t, store.Reset(ctx, "k"))
	assert.Equal(t, 0, store.Len())

	require.NoError(t, store.Reset(ctx, "missing"))
}

func TestMemoryStore_Close(t *testing.T) {
	t.Parallel()

	store := ratelimit.NewMemoryStore()
	ctx := context.Background()

	_, err := store.Hit(ctx, "k", 1, time.Minute)
	require.NoError(t, err)

	assert.NoError(t, store.Close())
	assert.NoError(t, store.Close())

	_, err = store.Hit(ctx, "k", 1, time.Minute)
	assert.ErrorIs(t, err, ratelimit.ErrStoreClosed)
}

func TestMemoryStore_Concurrency(t *testing.T) {
	t.Parallel()

	store := ratelimit.NewMemoryStore(ratelimit.WithCleanupInterval(0))
	limiter, err := ratelimit.NewFixedWindow(store, 50, time.Minute)
	require.NoError(t, err)

	ctx := context.Background()
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)

	for range 200 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := limiter.Allow(ctx, "shared")
			if err != nil || !res.Allowed {
				return
			}
			mu.Lock()
			allowed++
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, allowed)
}
