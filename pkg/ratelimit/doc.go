// Package ratelimit provides per-client admission control using a fixed-window counter.
//
// Every key owns a window that starts with its first request. Requests are counted until
// the limit is reached; further requests in the same window are rejected. Once the window
// has aged past its size the counter is reset to one and the request is allowed again.
//
// Because windows are reset wholesale, a client can issue up to twice the limit within
// one window size when its requests straddle a window boundary. This is the accepted cost
// of the algorithm; use a sliding log if that burst is not acceptable.
//
// # Usage
//
//	store := ratelimit.NewMemoryStore()
//	defer store.Close()
//
//	limiter, err := ratelimit.NewFixedWindow(store, 50, 15*time.Minute)
//	if err != nil {
//		return err
//	}
//
//	r := chi.NewRouter()
//	r.Use(ratelimit.Middleware(limiter, ratelimit.ClientIP))
//
// # Stores
//
// MemoryStore keeps counters in process memory and sweeps expired windows in the
// background, so the key space does not grow without bound. RedisStore shares counters
// between replicas; the check-and-increment runs as a single Lua script and Redis key
// expiry removes stale windows.
//
// # Failure policy
//
// The middleware fails open: when the store returns an error the request is passed
// through. Limiter errors are never surfaced to clients.
package ratelimit
