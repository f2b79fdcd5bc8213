// Package database provides connectivity for the Statline record stores.
//
// # Backends
//
//   - SurrealDB: NewSurrealDB(cfg).Connect(ctx), queried through Database
//   - Postgres: NewPostgres(ctx, cfg) returns a pgx pool with migrations
//     from cfg.MigrationsPath applied
//   - Badger: OpenBadger(cfg, logger) opens an embedded store, on disk or
//     in memory
//
// # Error Types
//
// Standard error types for data operations:
//
//   - ErrConnection: Database connection failed
//   - ErrQuery: Query execution failed
//
// The repository layer turns ErrConnection into search.StoreUnavailableError.
package database
