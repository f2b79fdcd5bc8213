// Package testdb provides test database utilities for e2e testing.
//
// This package creates isolated SurrealDB and PostgreSQL environments so the
// record stores run real queries against real database instances. Tests are
// skipped when no instance is configured.
//
// Usage:
//
//	func TestSomething(t *testing.T) {
//	    tdb := testdb.New(t)
//	    defer tdb.Close()
//
//	    store := repository.NewSurrealRecordStore(tdb.DB)
//	}
package testdb

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/forgo/statline/api/internal/database"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TestDB provides an isolated SurrealDB environment for testing.
// Each TestDB instance gets a unique namespace to ensure test isolation.
type TestDB struct {
	DB        database.Database
	Namespace string
	Database  string
	t         *testing.T
}

var (
	// migrationOnce ensures migrations are only loaded once
	migrationOnce sync.Once
	migrations    []string
	migrationErr  error

	// counterMu protects the namespace counter
	counterMu sync.Mutex
	counter   int64
)

// getTestConfig returns database config from environment. ok is false when
// TEST_DB_HOST is unset.
func getTestConfig() (database.Config, bool) {
	host := os.Getenv("TEST_DB_HOST")
	if host == "" {
		return database.Config{}, false
	}

	port := os.Getenv("TEST_DB_PORT")
	if port == "" {
		port = "8000"
	}

	user := os.Getenv("TEST_DB_USER")
	if user == "" {
		user = "root"
	}

	password := os.Getenv("TEST_DB_PASSWORD")
	if password == "" {
		password = "root"
	}

	return database.Config{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
	}, true
}

// uniqueNamespace generates a unique namespace for test isolation
func uniqueNamespace() string {
	counterMu.Lock()
	defer counterMu.Unlock()
	counter++
	return fmt.Sprintf("test_%d_%d", time.Now().UnixNano(), counter)
}

// MigrationsDir finds migrations/<kind> from the test's working directory
func MigrationsDir(kind string) (string, error) {
	paths := []string{
		"migrations",
		"../migrations",
		"../../migrations",
		"../../../migrations",
		"../../../../migrations",
	}
	for _, p := range paths {
		dir := filepath.Join(p, kind)
		if _, err := os.Stat(dir); err == nil {
			return dir, nil
		}
	}
	if root := os.Getenv("STATLINE_ROOT"); root != "" {
		return filepath.Join(root, "api", "migrations", kind), nil
	}
	return "", fmt.Errorf("could not find migrations/%s directory", kind)
}

// loadMigrations reads all SurrealQL migration files in order
func loadMigrations() ([]string, error) {
	migrationOnce.Do(func() {
		dir, err := MigrationsDir("surrealdb")
		if err != nil {
			migrationErr = err
			return
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			migrationErr = fmt.Errorf("reading migrations dir: %w", err)
			return
		}

		var files []string
		for _, e := range entries {
			if strings.HasSuffix(e.Name(), ".surql") {
				files = append(files, e.Name())
			}
		}
		sort.Strings(files)

		for _, name := range files {
			content, err := os.ReadFile(filepath.Join(dir, name))
			if err != nil {
				migrationErr = fmt.Errorf("reading %s: %w", name, err)
				return
			}
			migrations = append(migrations, string(content))
		}
	})

	return migrations, migrationErr
}

// New creates a new isolated test database with migrations applied.
// The database uses a unique namespace to ensure test isolation.
// Call Close() when done to clean up the namespace.
func New(t *testing.T) *TestDB {
	t.Helper()

	cfg, ok := getTestConfig()
	if !ok {
		t.Skip("testdb: TEST_DB_HOST not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	namespace := uniqueNamespace()
	dbName := "test"

	cfg.Namespace = namespace
	cfg.Database = dbName

	db := database.NewSurrealDB(cfg)
	if err := db.Connect(ctx); err != nil {
		t.Fatalf("testdb: failed to connect: %v", err)
	}

	tdb := &TestDB{
		DB:        db,
		Namespace: namespace,
		Database:  dbName,
		t:         t,
	}

	migs, err := loadMigrations()
	if err != nil {
		db.Close()
		t.Fatalf("testdb: failed to load migrations: %v", err)
	}

	for i, mig := range migs {
		if err := db.Execute(ctx, mig, nil); err != nil {
			db.Close()
			t.Fatalf("testdb: migration %d failed: %v", i+1, err)
		}
	}

	return tdb
}

// Close cleans up the test database by removing the namespace.
func (tdb *TestDB) Close() {
	if tdb.DB == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	query := fmt.Sprintf("REMOVE NAMESPACE %s", tdb.Namespace)
	_ = tdb.DB.Execute(ctx, query, nil) // Ignore errors on cleanup

	tdb.DB.Close()
}

// Reset clears the given tables while preserving schema.
func (tdb *TestDB) Reset(t *testing.T, tables ...string) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, table := range tables {
		if err := tdb.DB.Execute(ctx, "DELETE FROM type::table($tb)", map[string]interface{}{"tb": table}); err != nil {
			t.Fatalf("testdb: failed to clear table %s: %v", table, err)
		}
	}
}

// Ctx returns a context with a reasonable timeout for test operations.
func (tdb *TestDB) Ctx() context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	tdb.t.Cleanup(cancel)
	return ctx
}

// PostgresDB is an isolated PostgreSQL schema with migrations applied
type PostgresDB struct {
	*database.Postgres
	Schema string
	admin  *pgxpool.Pool
}

// NewPostgres creates a fresh schema on the TEST_PG_DSN server and runs
// migrations/postgres inside it. Call Close() to drop the schema.
func NewPostgres(t *testing.T) *PostgresDB {
	t.Helper()

	dsn := os.Getenv("TEST_PG_DSN")
	if dsn == "" {
		t.Skip("testdb: TEST_PG_DSN not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	admin, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("testdb: failed to connect postgres: %v", err)
	}

	schema := uniqueNamespace()
	if _, err := admin.Exec(ctx, "CREATE SCHEMA "+schema); err != nil {
		admin.Close()
		t.Fatalf("testdb: failed to create schema: %v", err)
	}

	dir, err := MigrationsDir("postgres")
	if err != nil {
		admin.Close()
		t.Fatalf("testdb: %v", err)
	}

	pg, err := database.NewPostgres(ctx, database.PostgresConfig{
		DSN:            withSearchPath(dsn, schema),
		MaxConns:       4,
		MigrationsPath: dir,
	})
	if err != nil {
		_, _ = admin.Exec(ctx, "DROP SCHEMA "+schema+" CASCADE")
		admin.Close()
		t.Fatalf("testdb: failed to open postgres: %v", err)
	}

	return &PostgresDB{Postgres: pg, Schema: schema, admin: admin}
}

// Close drops the schema and closes both pools
func (p *PostgresDB) Close() {
	p.Postgres.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, _ = p.admin.Exec(ctx, "DROP SCHEMA "+p.Schema+" CASCADE") // Ignore errors on cleanup
	p.admin.Close()
}

// Reset truncates the given tables
func (p *PostgresDB) Reset(t *testing.T, tables ...string) {
	t.Helper()
	if len(tables) == 0 {
		return
	}
	quoted := make([]string, len(tables))
	for i, table := range tables {
		quoted[i] = p.Schema + "." + table
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := p.admin.Exec(ctx, "TRUNCATE "+strings.Join(quoted, ", ")); err != nil {
		t.Fatalf("testdb: failed to truncate: %v", err)
	}
}

// withSearchPath points every connection at schema
func withSearchPath(dsn, schema string) string {
	if u, err := url.Parse(dsn); err == nil && (u.Scheme == "postgres" || u.Scheme == "postgresql") {
		q := u.Query()
		q.Set("search_path", schema)
		u.RawQuery = q.Encode()
		return u.String()
	}
	return dsn + " search_path=" + schema
}
