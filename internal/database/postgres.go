package database

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresConfig holds Postgres configuration
type PostgresConfig struct {
	// DSN overrides the individual connection fields when set
	DSN            string
	Host           string
	Port           int
	User           string
	Password       string
	Name           string
	MaxConns       int32
	MigrationsPath string
}

// ConnString returns the DSN, building it from the individual fields when
// none was given
func (c PostgresConfig) ConnString() string {
	if c.DSN != "" {
		return c.DSN
	}
	// URL-encode password to handle special characters (/, +, =, etc.)
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User, url.QueryEscape(c.Password), c.Host, c.Port, c.Name)
}

// Postgres wraps a pgx connection pool
type Postgres struct {
	Pool *pgxpool.Pool
}

// NewPostgres connects, pings and runs pending migrations
func NewPostgres(ctx context.Context, cfg PostgresConfig) (*Postgres, error) {
	dsn := cfg.ConnString()

	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}

	connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connectCtx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create pool: %v", ErrConnection, err)
	}

	if err := pool.Ping(connectCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%w: failed to ping database: %v", ErrConnection, err)
	}

	if cfg.MigrationsPath != "" {
		if err := migrateUp(cfg.MigrationsPath, dsn); err != nil {
			pool.Close()
			return nil, err
		}
	}

	return &Postgres{Pool: pool}, nil
}

func migrateUp(path, dsn string) error {
	m, err := migrate.New("file://"+path, dsn)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Ping checks the pool
func (p *Postgres) Ping(ctx context.Context) error {
	if err := p.Pool.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	return nil
}

// Close closes the pool
func (p *Postgres) Close() {
	p.Pool.Close()
}
