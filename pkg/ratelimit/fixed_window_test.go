package ratelimit_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/copygen/pkg/ratelimit"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestLimiter(t *testing.T, limit int, window time.Duration) (*ratelimit.FixedWindow, *fakeClock) {
	t.Helper()

	clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	store := ratelimit.NewMemoryStore(
		ratelimit.WithClock(clock.Now),
		ratelimit.WithCleanupInterval(0),
	)
	t.Cleanup(func() { _ = store.Close() })

	limiter, err := ratelimit.NewFixedWindow(store, limit, window)
	require.NoError(t, err)
	return limiter, clock
}

func TestNewFixedWindow(t *testing.T) {
	t.Parallel()

	store := ratelimit.NewMemoryStore(ratelimit.WithCleanupInterval(0))

	tests := []struct {
		name    string
		store   ratelimit.Store
		limit   int
		window  time.Duration
		wantErr error
	}{
		{name: "valid", store: store, limit: 50, window: 15 * time.Minute},
		{name: "nil store", store: nil, limit: 50, window: time.Minute, wantErr: ratelimit.ErrStoreRequired},
		{name: "zero limit", store: store, limit: 0, window: time.Minute, wantErr: ratelimit.ErrInvalidLimit},
		{name: "negative window", store: store, limit: 5, window: -time.Second, wantErr: ratelimit.ErrInvalidInterval},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			limiter, err := ratelimit.NewFixedWindow(tt.store, tt.limit, tt.window)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, limiter)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.limit, limiter.Limit())
			assert.Equal(t, tt.window, limiter.Window())
		})
	}
}

func TestFixedWindow_Allow(t *testing.T) {
	t.Parallel()

	t.Run("admits exactly the limit then rejects", func(t *testing.T) {
		t.Parallel()

		limiter, _ := newTestLimiter(t, 50, 15*time.Minute)
		ctx := context.Background()

		for i := 1; i <= 50; i++ {
			res, err := limiter.Allow(ctx, "1.2.3.4")
			require.NoError(t, err)
			assert.True(t, res.Allowed, "request %d should be allowed", i)
			assert.Equal(t, 50-i, res.Remaining)
		}

		res, err := limiter.Allow(ctx, "1.2.3.4")
		require.NoError(t, err)
		assert.False(t, res.Allowed)
		assert.Equal(t, 0, res.Remaining)
		assert.Equal(t, 50, res.Limit)
	})

	t.Run("new window after expiry", func(t *testing.T) {
		t.Parallel()

		limiter, clock := newTestLimiter(t, 2, 15*time.Minute)
		ctx := context.Background()

		for range 2 {
			res, err := limiter.Allow(ctx, "client")
			require.NoError(t, err)
			require.True(t, res.Allowed)
		}
		res, err := limiter.Allow(ctx, "client")
		require.NoError(t, err)
		require.False(t, res.Allowed)

		// Elapsed must strictly exceed the window.
		clock.Advance(15 * time.Minute)
		res, err = limiter.Allow(ctx, "client")
		require.NoError(t, err)
		assert.False(t, res.Allowed)

		clock.Advance(time.Millisecond)
		res, err = limiter.Allow(ctx, "client")
		require.NoError(t, err)
		assert.True(t, res.Allowed)
		assert.Equal(t, 1, res.Remaining)
		assert.Equal(t, clock.Now().Add(15*time.Minute), res.ResetAt)
	})

	t.Run("keys are independent", func(t *testing.T) {
		t.Parallel()

		limiter, _ := newTestLimiter(t, 1, time.Minute)
		ctx := context.Background()

		res, err := limiter.Allow(ctx, "a")
		require.NoError(t, err)
		assert.True(t, res.Allowed)

		res, err = limiter.Allow(ctx, "b")
		require.NoError(t, err)
		assert.True(t, res.Allowed)

		res, err = limiter.Allow(ctx, "a")
		require.NoError(t, err)
		assert.False(t, res.Allowed)
	})

	t.Run("boundary burst admits up to twice the limit", func(t *testing.T) {
		t.Parallel()

		limiter, clock := newTestLimiter(t, 3, time.Minute)
		ctx := context.Background()

		clock.Advance(59 * time.Second)
		admitted := 0
		for range 3 {
			res, err := limiter.Allow(ctx, "burst")
			require.NoError(t, err)
			if res.Allowed {
				admitted++
			}
		}
		clock.Advance(time.Minute + time.Millisecond)
		for range 3 {
			res, err := limiter.Allow(ctx, "burst")
			require.NoError(t, err)
			if res.Allowed {
				admitted++
			}
		}
		assert.Equal(t, 6, admitted)
	})

	t.Run("empty key", func(t *testing.T) {
		t.Parallel()

		limiter, _ := newTestLimiter(t, 1, time.Minute)
		_, err := limiter.Allow(context.Background(), "")
		assert.ErrorIs(t, err, ratelimit.ErrKeyRequired)
	})

	t.Run("store error is returned", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		limiter, err := ratelimit.NewFixedWindow(failingStore{err: boom}, 1, time.Minute)
		require.NoError(t, err)

		_, err = limiter.Allow(context.Background(), "k")
		assert.ErrorIs(t, err, boom)
	})
}

func TestFixedWindow_Reset(t *testing.T) {
	t.Parallel()

	limiter, _ := newTestLimiter(t, 1, time.Minute)
	ctx := context.Background()

	_, err := limiter.Allow(ctx, "k")
	require.NoError(t, err)
	res, err := limiter.Allow(ctx, "k")
	require.NoError(t, err)
	require.False(t, res.Allowed)

	require.NoError(t, limiter.Reset(ctx, "k"))

	res, err = limiter.Allow(ctx, "k")
	require.NoError(t, err)
	assert.True(t, res.Allowed)

	assert.ErrorIs(t, limiter.Reset(ctx, ""), ratelimit.ErrKeyRequired)
}

type failingStore struct {
	err error
}

func (s failingStore) Hit(context.Context, string, int, time.Duration) (ratelimit.Window, error) {
	return ratelimit.Window{}, s.err
}

func (s failingStore) Reset(context.Context, string) error { return s.err }
