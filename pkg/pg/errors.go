package pg

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
)

// Connection errors.
var (
	ErrEmptyConnectionString    = errors.New("pg: DATABASE_URL is empty")
	ErrFailedToParseDBConfig    = errors.New("pg: invalid connection string")
	ErrFailedToOpenDBConnection = errors.New("pg: cannot connect")
	ErrHealthcheckFailed        = errors.New("pg: ping failed")
)

// Migration errors.
var (
	ErrMigrationPathNotProvided = errors.New("pg: migrations fs or dir not set")
	ErrMigrationsDirNotFound    = errors.New("pg: migrations dir not found")
	ErrFailedToApplyMigrations  = errors.New("pg: migrations failed")
)

// IsNotFoundError reports a query that matched no rows, through either the
// native pgx API or the database/sql bridge.
func IsNotFoundError(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows)
}
