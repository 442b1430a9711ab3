// Package pg bootstraps PostgreSQL access on top of pgx/v5.
//
// Connect opens a *pgxpool.Pool from Config, retrying while the database comes
// up. OpenDB bridges the pool to database/sql for code written against the
// standard interfaces. Migrate applies goose migrations from an fs.FS, so SQL
// files can be embedded in the binary. Healthcheck adapts a Ping into the
// func(context.Context) error shape used by health endpoints.
//
//	pool, err := pg.Connect(ctx, cfg.Postgres)
//	if err != nil {
//	    return err
//	}
//	db := pg.OpenDB(pool)
//	if err := pg.Migrate(ctx, db, migrations.FS, ".", cfg.Postgres, log); err != nil {
//	    return err
//	}
//
// IsNotFoundError recognizes empty result errors from both pgx and database/sql.
package pg
