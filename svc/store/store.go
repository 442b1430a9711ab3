package store

import (
	"context"
	"time"
)

// Store persists generations and subscriptions. Every method reports its
// outcome through the returned error; callers decide whether a failure is
// fatal to the request.
type Store interface {
	SaveGeneration(ctx context.Context, rec GenerationRecord) error
	// ListRecentGenerations returns at most limit records, newest first.
	ListRecentGenerations(ctx context.Context, limit int) ([]GenerationRecord, error)
	// GenerationStats counts all generations and those created at or after since.
	GenerationStats(ctx context.Context, since time.Time) (Stats, error)

	// UpsertSubscription inserts rec or overwrites the row with the same UserEmail.
	UpsertSubscription(ctx context.Context, rec SubscriptionRecord) error
	// UpdateSubscriptionStatus sets status and stamps field with at.
	// Returns ErrNotFound when no row matches email.
	UpdateSubscriptionStatus(ctx context.Context, email string, status Status, field TimestampField, at time.Time) error
	// GetLatestSubscription returns ErrNotFound when no row matches email.
	GetLatestSubscription(ctx context.Context, email string) (SubscriptionRecord, error)

	Ping(ctx context.Context) error
}

// Driver names accepted by STORE_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)
