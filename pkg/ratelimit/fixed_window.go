package ratelimit

import (
	"context"
	"time"
)

// FixedWindow is a fixed-window counter limiter backed by a Store.
type FixedWindow struct {
	store  Store
	limit  int
	window time.Duration
}

// NewFixedWindow creates a limiter admitting at most limit requests per key per window.
func NewFixedWindow(store Store, limit int, window time.Duration) (*FixedWindow, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}
	if window <= 0 {
		return nil, ErrInvalidInterval
	}

	return &FixedWindow{
		store:  store,
		limit:  limit,
		window: window,
	}, nil
}

// Allow checks and consumes one request slot for key.
func (fw *FixedWindow) Allow(ctx context.Context, key string) (*Result, error) {
	if key == "" {
		return nil, ErrKeyRequired
	}

	w, err := fw.store.Hit(ctx, key, fw.limit, fw.window)
	if err != nil {
		return nil, err
	}

	return &Result{
		Allowed:   w.Allowed,
		Limit:     fw.limit,
		Remaining: max(0, fw.limit-w.Count),
		ResetAt:   w.Start.Add(fw.window),
	}, nil
}

// Reset clears the counter for key.
func (fw *FixedWindow) Reset(ctx context.Context, key string) error {
	if key == "" {
		return ErrKeyRequired
	}
	return fw.store.Reset(ctx, key)
}

// Limit returns the configured request limit per window.
func (fw *FixedWindow) Limit() int { return fw.limit }

// Window returns the configured window size.
func (fw *FixedWindow) Window() time.Duration { return fw.window }
