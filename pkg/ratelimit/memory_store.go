package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryStore implements Store with an in-process map of fixed windows.
// A background sweep evicts windows that have expired, bounding memory by the
// number of clients active within one window.
type MemoryStore struct {
	mu      sync.Mutex
	windows map[string]*counter

	now             func() time.Time
	cleanupInterval time.Duration
	stopCleanup     chan struct{}
	cleanupOnce     sync.Once
	closed          bool
}

type counter struct {
	count     int
	start     time.Time
	expiresAt time.Time
}

// MemoryStoreOption configures a MemoryStore.
type MemoryStoreOption func(*MemoryStore)

// WithCleanupInterval sets how often expired windows are swept.
// Zero disables the background sweep; expired windows are then only reset on access.
func WithCleanupInterval(interval time.Duration) MemoryStoreOption {
	return func(s *MemoryStore) {
		if interval >= 0 {
			s.cleanupInterval = interval
		}
	}
}

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) MemoryStoreOption {
	return func(s *MemoryStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewMemoryStore creates a new in-memory store with automatic cleanup.
func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	s := &MemoryStore{
		windows:         make(map[string]*counter),
		now:             time.Now,
		cleanupInterval: time.Minute,
		stopCleanup:     make(chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.cleanupInterval > 0 {
		go s.cleanupLoop()
	}

	return s
}

// Hit applies the fixed-window algorithm for key under a single lock.
// It returns ErrStoreClosed once Close has been called.
func (s *MemoryStore) Hit(ctx context.Context, key string, limit int, window time.Duration) (Window, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return Window{}, ErrStoreClosed
	}

	now := s.now()
	c, exists := s.windows[key]

	if !exists || now.Sub(c.start) > window {
		c = &counter{
			count:     1,
			start:     now,
			expiresAt: now.Add(window),
		}
		s.windows[key] = c
		return Window{Count: 1, Start: now, Allowed: true}, nil
	}

	if c.count >= limit {
		return Window{Count: c.count, Start: c.start, Allowed: false}, nil
	}

	c.count++
	return Window{Count: c.count, Start: c.start, Allowed: true}, nil
}

// Reset removes the window for key.
func (s *MemoryStore) Reset(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.windows, key)
	return nil
}

// Len returns the number of tracked keys.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.windows)
}

// Sweep evicts every window that has expired and returns how many were removed.
func (s *MemoryStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for key, c := range s.windows {
		if now.After(c.expiresAt) {
			delete(s.windows, key)
			removed++
		}
	}
	return removed
}

func (s *MemoryStore) cleanupLoop() {
	ticker := time.NewTicker(s.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Sweep()
		case <-s.stopCleanup:
			return
		}
	}
}

// Close stops the cleanup goroutine and rejects further hits. Safe to call multiple times.
func (s *MemoryStore) Close() error {
	s.cleanupOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()
		close(s.stopCleanup)
	})
	return nil
}
