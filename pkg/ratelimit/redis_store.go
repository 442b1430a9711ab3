package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// hitScript runs the fixed-window check-and-increment atomically.
// KEYS[1] counter key, ARGV[1] window in ms, ARGV[2] limit, ARGV[3] now in ms.
// The window start is stored next to the counter so callers get a stable reset time.
// The key lives one millisecond past the window, matching MemoryStore which only
// starts a new window once more than the full window has elapsed.
// Returns {allowed, count, start_ms}.
var hitScript = redis.NewScript(`
local count = redis.call('HGET', KEYS[1], 'count')
if not count then
	redis.call('HSET', KEYS[1], 'count', 1, 'start', ARGV[3])
	redis.call('PEXPIRE', KEYS[1], tonumber(ARGV[1]) + 1)
	return {1, 1, tonumber(ARGV[3])}
end
count = tonumber(count)
local start = tonumber(redis.call('HGET', KEYS[1], 'start'))
if count >= tonumber(ARGV[2]) then
	return {0, count, start}
end
count = redis.call('HINCRBY', KEYS[1], 'count', 1)
return {1, count, start}
`)

// RedisStore implements Store on top of Redis so counters are shared across replicas.
// Window expiry is delegated to key TTLs, which also evicts idle clients.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// RedisStoreOption configures a RedisStore.
type RedisStoreOption func(*RedisStore)

// WithKeyPrefix sets the namespace for counter keys.
func WithKeyPrefix(prefix string) RedisStoreOption {
	return func(s *RedisStore) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// NewRedisStore creates a Redis-backed store.
func NewRedisStore(client redis.UniversalClient, opts ...RedisStoreOption) (*RedisStore, error) {
	if client == nil {
		return nil, ErrStoreRequired
	}

	s := &RedisStore{
		client: client,
		prefix: "ratelimit:",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Hit applies the fixed-window algorithm for key in a single script call.
func (s *RedisStore) Hit(ctx context.Context, key string, limit int, window time.Duration) (Window, error) {
	now := time.Now()
	res, err := hitScript.Run(ctx, s.client,
		[]string{s.prefix + key},
		window.Milliseconds(), limit, now.UnixMilli(),
	).Int64Slice()
	if err != nil {
		return Window{}, fmt.Errorf("ratelimit: redis hit: %w", err)
	}
	if len(res) != 3 {
		return Window{}, errors.New("ratelimit: unexpected redis script reply")
	}

	return Window{
		Allowed: res[0] == 1,
		Count:   int(res[1]),
		Start:   time.UnixMilli(res[2]),
	}, nil
}

// Reset removes the counter for key.
func (s *RedisStore) Reset(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("ratelimit: redis reset: %w", err)
	}
	return nil
}
