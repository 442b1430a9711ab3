package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrymomot/copygen/pkg/pg"
)

const generationColumns = `id, prompt, template, content, tokens, created_at`

const subscriptionColumns = `id, user_email, status, product_id, product_name, purchase_token,
	starts_at, ends_at, canceled_at, refunded_at, chargeback_at, created_at, updated_at`

// Postgres is the Store backed by database/sql, normally a pgx pool opened
// through pg.OpenDB.
type Postgres struct {
	db *sql.DB
}

// NewPostgres wraps db. The caller owns db and closes it.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) SaveGeneration(ctx context.Context, rec GenerationRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO generations (`+generationColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		rec.ID, rec.Prompt, rec.Template, rec.Content, rec.Tokens, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save generation: %w", err)
	}
	return nil
}

func (s *Postgres) ListRecentGenerations(ctx context.Context, limit int) ([]GenerationRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+generationColumns+` FROM generations ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list generations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := make([]GenerationRecord, 0, limit)
	for rows.Next() {
		var rec GenerationRecord
		if err := rows.Scan(&rec.ID, &rec.Prompt, &rec.Template, &rec.Content, &rec.Tokens, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan generation: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list generations: %w", err)
	}
	return out, nil
}

func (s *Postgres) GenerationStats(ctx context.Context, since time.Time) (Stats, error) {
	stats := Stats{ByTemplate: map[string]int{}}

	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM generations`).Scan(&stats.Total); err != nil {
		return Stats{}, fmt.Errorf("count generations: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT template, COUNT(*) FROM generations WHERE created_at >= $1 GROUP BY template`, since)
	if err != nil {
		return Stats{}, fmt.Errorf("count generations by template: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			template string
			n        int
		)
		if err := rows.Scan(&template, &n); err != nil {
			return Stats{}, fmt.Errorf("scan template count: %w", err)
		}
		stats.ByTemplate[template] = n
		stats.Last7Days += n
	}
	if err := rows.Err(); err != nil {
		return Stats{}, fmt.Errorf("count generations by template: %w", err)
	}

	return stats, nil
}

func (s *Postgres) UpsertSubscription(ctx context.Context, rec SubscriptionRecord) error {
	if rec.UserEmail == "" {
		return ErrEmailRequired
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO subscriptions (`+subscriptionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (user_email) DO UPDATE SET
			status = EXCLUDED.status,
			product_id = EXCLUDED.product_id,
			product_name = EXCLUDED.product_name,
			purchase_token = EXCLUDED.purchase_token,
			starts_at = EXCLUDED.starts_at,
			ends_at = EXCLUDED.ends_at,
			canceled_at = EXCLUDED.canceled_at,
			refunded_at = EXCLUDED.refunded_at,
			chargeback_at = EXCLUDED.chargeback_at,
			updated_at = EXCLUDED.updated_at`,
		rec.ID, rec.UserEmail, string(rec.Status), rec.ProductID, rec.ProductName, rec.PurchaseToken,
		nullTime(rec.StartsAt), nullTime(rec.EndsAt), nullTime(rec.CanceledAt), nullTime(rec.RefundedAt),
		nullTime(rec.ChargebackAt), rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert subscription: %w", err)
	}
	return nil
}

func (s *Postgres) UpdateSubscriptionStatus(ctx context.Context, email string, status Status, field TimestampField, at time.Time) error {
	if !field.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidTimestampField, field)
	}

	// field is one of a fixed set of column names, never user input.
	res, err := s.db.ExecContext(ctx,
		`UPDATE subscriptions SET status = $2, `+string(field)+` = $3, updated_at = $3 WHERE user_email = $1`,
		email, string(status), at,
	)
	if err != nil {
		return fmt.Errorf("update subscription status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update subscription status: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Postgres) GetLatestSubscription(ctx context.Context, email string) (SubscriptionRecord, error) {
	var (
		rec                                  SubscriptionRecord
		status                               string
		starts, ends, canceled, refunded, cb sql.NullTime
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT `+subscriptionColumns+` FROM subscriptions WHERE user_email = $1 ORDER BY updated_at DESC LIMIT 1`,
		email,
	).Scan(
		&rec.ID, &rec.UserEmail, &status, &rec.ProductID, &rec.ProductName, &rec.PurchaseToken,
		&starts, &ends, &canceled, &refunded, &cb, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if pg.IsNotFoundError(err) {
		return SubscriptionRecord{}, ErrNotFound
	}
	if err != nil {
		return SubscriptionRecord{}, fmt.Errorf("get subscription: %w", err)
	}

	rec.Status = Status(status)
	rec.StartsAt = timePtr(starts)
	rec.EndsAt = timePtr(ends)
	rec.CanceledAt = timePtr(canceled)
	rec.RefundedAt = timePtr(refunded)
	rec.ChargebackAt = timePtr(cb)
	return rec, nil
}

func (s *Postgres) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
