package ratelimit

import (
	"context"
	"time"
)

// Result contains the result of a rate limit check.
type Result struct {
	// Allowed indicates whether the request is allowed.
	Allowed bool

	// Limit is the maximum number of requests allowed in the window.
	Limit int

	// Remaining is the number of requests remaining in the current window.
	Remaining int

	// ResetAt is the time when the current window ends.
	ResetAt time.Time
}

// RetryAfter returns how long to wait before the next request is allowed.
// Returns 0 if the current request was allowed.
func (r *Result) RetryAfter() time.Duration {
	if r.Allowed {
		return 0
	}
	return time.Until(r.ResetAt)
}

// Limiter decides whether a request identified by key may proceed.
type Limiter interface {
	// Allow consumes one slot for key when the window has room.
	Allow(ctx context.Context, key string) (*Result, error)
}

// Window is the state of a key's counter after a Hit.
type Window struct {
	Count   int       // Requests counted in the current window
	Start   time.Time // When the current window began
	Allowed bool      // Whether the hit was admitted
}

// Store defines the interface for fixed-window counter backends.
// Hit must perform check-and-increment as one atomic operation per key.
type Store interface {
	// Hit records a request for key. A missing or expired window is reset to a count
	// of one and allowed. Otherwise the request is rejected when the count has
	// reached limit, and counted and allowed when it has not.
	Hit(ctx context.Context, key string, limit int, window time.Duration) (Window, error)

	// Reset removes the counter for key.
	Reset(ctx context.Context, key string) error
}
