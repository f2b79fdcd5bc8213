package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/forgo/statline/api/internal/config"
	"github.com/forgo/statline/api/internal/database"
	"github.com/forgo/statline/api/internal/search"
)

// OpenStore connects the configured backend and returns it with a cleanup
// function. The store is wrapped in a circuit breaker unless disabled.
func OpenStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (search.RecordStore, func(), error) {
	if logger == nil {
		logger = slog.Default()
	}

	var (
		store   search.RecordStore
		cleanup func()
	)

	switch cfg.Store.Backend {
	case config.BackendSurrealDB:
		db := database.NewSurrealDB(database.Config{
			Host:      cfg.Database.Host,
			Port:      cfg.Database.Port,
			User:      cfg.Database.User,
			Password:  cfg.Database.Password,
			Namespace: cfg.Database.Namespace,
			Database:  cfg.Database.Database,
		})
		if err := db.Connect(ctx); err != nil {
			return nil, nil, fmt.Errorf("connect surrealdb: %w", err)
		}
		store = NewSurrealRecordStore(db)
		cleanup = func() {
			if err := db.Close(); err != nil {
				logger.Warn("failed to close surrealdb", slog.String("error", err.Error()))
			}
		}

	case config.BackendPostgres:
		pg, err := database.NewPostgres(ctx, database.PostgresConfig{
			DSN:            cfg.Postgres.DSN,
			Host:           cfg.Postgres.Host,
			Port:           cfg.Postgres.Port,
			User:           cfg.Postgres.User,
			Password:       cfg.Postgres.Password,
			Name:           cfg.Postgres.Name,
			MaxConns:       int32(cfg.Postgres.MaxConns),
			MigrationsPath: cfg.Postgres.MigrationsPath,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		store = NewPostgresRecordStore(pg.Pool)
		cleanup = pg.Close

	case config.BackendBadger:
		db, err := database.OpenBadger(database.BadgerConfig{
			Dir:      cfg.Badger.Dir,
			InMemory: cfg.Badger.InMemory,
		}, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("open badger: %w", err)
		}
		store = NewBadgerRecordStore(db)
		cleanup = func() {
			if err := db.Close(); err != nil {
				logger.Warn("failed to close badger", slog.String("error", err.Error()))
			}
		}

	case config.BackendMemory:
		store = NewMemoryRecordStore()
		cleanup = func() {}

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}

	logger.Info("record store opened", slog.String("backend", cfg.Store.Backend))

	if cfg.Breaker.Enabled {
		store = NewBreakerStore(store, BreakerConfig{
			Name:        cfg.Store.Backend,
			MaxRequests: uint32(cfg.Breaker.HalfOpenMax),
			Interval:    cfg.Breaker.Interval,
			Timeout:     cfg.Breaker.OpenTimeout,
			TripAfter:   uint32(cfg.Breaker.TripAfter),
		}, logger)
	}
	return store, cleanup, nil
}
