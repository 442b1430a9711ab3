// Package store persists generated copy and buyer subscriptions.
//
// Postgres runs on database/sql over a pgx pool and expects the schema in
// Migrations to be applied with pg.Migrate. Memory keeps everything in
// process and is selected with STORE_DRIVER=memory.
//
// Subscriptions are keyed by buyer email: UpsertSubscription overwrites the
// existing row for the same email and keeps its id and creation time.
// UpdateSubscriptionStatus and GetLatestSubscription return ErrNotFound when
// no row matches.
package store
