package main

import (
	"log/slog"
	"net/http"

	"github.com/forgo/statline/api/internal/config"
	"github.com/forgo/statline/api/internal/handler"
	"github.com/forgo/statline/api/internal/metrics"
	"github.com/forgo/statline/api/internal/middleware"
	"github.com/forgo/statline/api/internal/service"
)

// routes builds the full HTTP handler. limiter may be nil.
func routes(cfg *config.Config, stats *service.StatsService, seeder *service.SeedService, limiter *middleware.RateLimiter) http.Handler {
	mux := http.NewServeMux()

	// Health and metrics
	mux.HandleFunc("GET /health", handler.Health)
	mux.Handle("GET /ready", handler.Ready(stats))
	mux.Handle("GET /metrics", metrics.Handler())

	// Search endpoints
	handler.NewSearchHandler(stats).RegisterRoutes(mux)

	// Seeding endpoints - only mounted when an admin key is configured
	if cfg.SeedingEnabled() {
		handler.NewAdminSeederHandler(seeder).RegisterRoutes(mux, middleware.AdminKey(cfg.Admin.KeyHash))
	}

	chain := []middleware.Middleware{
		middleware.RequestID,
		middleware.Logger(slog.Default()),
		middleware.Recovery(slog.Default()),
		middleware.CORS(cfg.Server.AllowedOrigins),
		middleware.Metrics,
	}
	if limiter != nil {
		chain = append(chain, middleware.RateLimit(limiter))
	}
	chain = append(chain, middleware.Compress)

	return middleware.Chain(mux, chain...)
}
