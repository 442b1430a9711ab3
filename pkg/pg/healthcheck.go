package pg

import (
	"context"
	"fmt"
)

// Healthcheck adapts anything with Ping (a pgxpool.Pool, a sql.DB wrapper)
// to the check signature used by the health endpoint.
func Healthcheck(conn interface{ Ping(context.Context) error }) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := conn.Ping(ctx); err != nil {
			return fmt.Errorf("%w: %w", ErrHealthcheckFailed, err)
		}
		return nil
	}
}
