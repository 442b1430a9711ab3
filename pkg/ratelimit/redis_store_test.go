package ratelimit_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/copygen/pkg/ratelimit"
)

func setupRedisStore(t *testing.T) (*ratelimit.RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store, err := ratelimit.NewRedisStore(client, ratelimit.WithKeyPrefix("test:rl:"))
	require.NoError(t, err)
	return store, mr
}

func TestNewRedisStore_NilClient(t *testing.T) {
	t.Parallel()

	store, err := ratelimit.NewRedisStore(nil)
	assert.ErrorIs(t, err, ratelimit.ErrStoreRequired)
	assert.Nil(t, store)
}

func TestRedisStore_Hit(t *testing.T) {
	t.Parallel()

	t.Run("counts up to the limit then rejects", func(t *testing.T) {
		t.Parallel()

		store, mr := setupRedisStore(t)
		ctx := context.Background()

		for i := 1; i <= 3; i++ {
			w, err := store.Hit(ctx, "1.2.3.4", 3, 15*time.Minute)
			require.NoError(t, err)
			assert.True(t, w.Allowed)
			assert.Equal(t, i, w.Count)
		}

		w, err := store.Hit(ctx, "1.2.3.4", 3, 15*time.Minute)
		require.NoError(t, err)
		assert.False(t, w.Allowed)
		assert.Equal(t, 3, w.Count)

		assert.True(t, mr.Exists("test:rl:1.2.3.4"))
		assert.Equal(t, 15*time.Minute+time.Millisecond, mr.TTL("test:rl:1.2.3.4"))
	})

	t.Run("window start is stable", func(t *testing.T) {
		t.Parallel()

		store, _ := setupRedisStore(t)
		ctx := context.Background()

		first, err := store.Hit(ctx, "k", 5, time.Minute)
		require.NoError(t, err)
		second, err := store.Hit(ctx, "k", 5, time.Minute)
		require.NoError(t, err)
		assert.Equal(t, first.Start.UnixMilli(), second.Start.UnixMilli())
	})

	t.Run("expired window starts over", func(t *testing.T) {
		t.Parallel()

		store, mr := setupRedisStore(t)
		ctx := context.Background()

		_, err := store.Hit(ctx, "k", 1, time.Minute)
		require.NoError(t, err)
		w, err := store.Hit(ctx, "k", 1, time.Minute)
		require.NoError(t, err)
		require.False(t, w.Allowed)

		mr.FastForward(time.Minute + time.Millisecond)

		w, err = store.Hit(ctx, "k", 1, time.Minute)
		require.NoError(t, err)
		assert.True(t, w.Allowed)
		assert.Equal(t, 1, w.Count)
	})

	t.Run("window boundary matches memory store", func(t *testing.T) {
		t.Parallel()

		store, mr := setupRedisStore(t)
		ctx := context.Background()

		_, err := store.Hit(ctx, "k", 1, time.Minute)
		require.NoError(t, err)

		mr.FastForward(time.Minute)

		w, err := store.Hit(ctx, "k", 1, time.Minute)
		require.NoError(t, err)
		assert.False(t, w.Allowed)

		mr.FastForward(time.Millisecond)

		w, err = store.Hit(ctx, "k", 1, time.Minute)
		require.NoError(t, err)
		assert.True(t, w.Allowed)
		assert.Equal(t, 1, w.Count)
	})

	t.Run("limiter over redis", func(t *testing.T) {
		t.Parallel()

		store, _ := setupRedisStore(t)
		limiter, err := ratelimit.NewFixedWindow(store, 2, time.Minute)
		require.NoError(t, err)
		ctx := context.Background()

		res, err := limiter.Allow(ctx, "client")
		require.NoError(t, err)
		assert.True(t, res.Allowed)
		assert.Equal(t, 1, res.Remaining)

		_, err = limiter.Allow(ctx, "client")
		require.NoError(t, err)

		res, err = limiter.Allow(ctx, "client")
		require.NoError(t, err)
		assert.False(t, res.Allowed)
		assert.Greater(t, res.RetryAfter(), time.Duration(0))
	})

	t.Run("unavailable server surfaces error", func(t *testing.T) {
		t.Parallel()

		client := redis.NewClient(&redis.Options{
			Addr:        "127.0.0.1:1",
			MaxRetries:  -1,
			DialTimeout: 100 * time.Millisecond,
		})
		t.Cleanup(func() { _ = client.Close() })
		store, err := ratelimit.NewRedisStore(client)
		require.NoError(t, err)

		_, err = store.Hit(context.Background(), "k", 1, time.Minute)
		assert.Error(t, err)
	})
}

func TestRedisStore_Reset(t *testing.T) {
	t.Parallel()

	store, mr := setupRedisStore(t)
	ctx := context.Background()

	_, err := store.Hit(ctx, "k", 1, time.Minute)
	require.NoError(t, err)
	require.NoError(t, store.Reset(ctx, "k"))
	assert.False(t, mr.Exists("test:rl:k"))
}
