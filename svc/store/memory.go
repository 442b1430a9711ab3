package store

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Memory is an in-process Store for development and tests.
type Memory struct {
	mu            sync.RWMutex
	generations   []GenerationRecord
	subscriptions map[string]SubscriptionRecord
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{subscriptions: make(map[string]SubscriptionRecord)}
}

func (m *Memory) SaveGeneration(_ context.Context, rec GenerationRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	m.mu.Lock()
	m.generations = append(m.generations, rec)
	m.mu.Unlock()
	return nil
}

func (m *Memory) ListRecentGenerations(_ context.Context, limit int) ([]GenerationRecord, error) {
	m.mu.RLock()
	out := slices.Clone(m.generations)
	m.mu.RUnlock()

	// Equal timestamps list the most recently saved first.
	slices.Reverse(out)
	slices.SortStableFunc(out, func(a, b GenerationRecord) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *Memory) GenerationStats(_ context.Context, since time.Time) (Stats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := Stats{Total: len(m.generations), ByTemplate: map[string]int{}}
	for _, g := range m.generations {
		if g.CreatedAt.Before(since) {
			continue
		}
		stats.ByTemplate[g.Template]++
		stats.Last7Days++
	}
	return stats, nil
}

func (m *Memory) UpsertSubscription(_ context.Context, rec SubscriptionRecord) error {
	if rec.UserEmail == "" {
		return ErrEmailRequired
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.subscriptions[rec.UserEmail]; ok {
		rec.ID = existing.ID
		rec.CreatedAt = existing.CreatedAt
	} else if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	m.subscriptions[rec.UserEmail] = rec
	return nil
}

func (m *Memory) UpdateSubscriptionStatus(_ context.Context, email string, status Status, field TimestampField, at time.Time) error {
	if !field.Valid() {
		return ErrInvalidTimestampField
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.subscriptions[email]
	if !ok {
		return ErrNotFound
	}
	rec.Status = status
	rec.UpdatedAt = at
	switch field {
	case CanceledAt:
		rec.CanceledAt = &at
	case RefundedAt:
		rec.RefundedAt = &at
	case ChargebackAt:
		rec.ChargebackAt = &at
	}
	m.subscriptions[email] = rec
	return nil
}

func (m *Memory) GetLatestSubscription(_ context.Context, email string) (SubscriptionRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.subscriptions[email]
	if !ok {
		return SubscriptionRecord{}, ErrNotFound
	}
	return rec, nil
}

// Count returns the number of stored subscriptions.
func (m *Memory) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.subscriptions)
}

func (m *Memory) Ping(context.Context) error {
	return nil
}
