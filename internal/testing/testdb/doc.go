// Package testdb provides test database utilities for the statline API.
//
// # SurrealDB
//
// New connects to TEST_DB_HOST and applies migrations/surrealdb inside a
// unique namespace:
//
//	tdb := testdb.New(t)
//	defer tdb.Close()
//
// # PostgreSQL
//
// NewPostgres connects to TEST_PG_DSN, creates a unique schema and runs
// migrations/postgres through golang-migrate:
//
//	pg := testdb.NewPostgres(t)
//	defer pg.Close()
//
// Both skip the test when their environment variable is unset, so the
// default test run needs no external services.
//
// # Isolation
//
// Reset clears named tables between subtests that share one instance.
package testdb
