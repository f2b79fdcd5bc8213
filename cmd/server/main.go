package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/forgo/statline/api/internal/config"
	"github.com/forgo/statline/api/internal/middleware"
	"github.com/forgo/statline/api/internal/model"
	"github.com/forgo/statline/api/internal/repository"
	"github.com/forgo/statline/api/internal/service"
)

func main() {
	// Initialize structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Entity specs and code tables are static; a bad one is a programming error
	if err := model.Validate(); err != nil {
		slog.Error("invalid entity specs", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Open the record store
	ctx := context.Background()
	store, closeStore, err := repository.OpenStore(ctx, cfg, logger)
	if err != nil {
		slog.Error("failed to open record store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStore()

	// Initialize services
	stats := service.NewStatsService(service.StatsServiceConfig{
		Store:   store,
		Timeout: cfg.Store.Timeout,
		Logger:  logger,
	})
	seeder := service.NewSeedService(service.SeedServiceConfig{
		Store:  store,
		Logger: logger,
	})

	var limiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		limiter = middleware.NewRateLimiter(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		})
		defer limiter.Stop()
	}

	if !cfg.SeedingEnabled() {
		slog.Info("seeding endpoints disabled; set ADMIN_KEY_HASH to enable")
	}

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      routes(cfg, stats, seeder, limiter),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.Server.Env),
			slog.String("store", cfg.Store.Backend),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	slog.Info("server exited")
}
