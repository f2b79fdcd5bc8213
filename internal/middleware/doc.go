// Package middleware provides HTTP middleware for the Statline API.
//
// # Available Middleware
//
//   - RequestID: Assigns or propagates X-Request-ID
//   - Logger: One slog line per request with route, query and status
//   - Recovery: Turns panics into a Problem Details 500 (model.NewInternalError)
//   - CORS: Origin allow-list and preflight handling
//   - Metrics: Prometheus request counters by route pattern
//   - RateLimit: Token bucket per client IP (golang.org/x/time/rate)
//   - Compress: gzip responses for clients that accept it, unless the
//     handler already encoded them
//   - AdminKey: bcrypt-checked X-Admin-Key for seeding routes
//
// # Ordering
//
// Chain applies middleware outermost first:
//
//	handler := middleware.Chain(mux,
//	    middleware.RequestID,
//	    middleware.Logger(logger),
//	    middleware.Recovery(logger),
//	    middleware.CORS(origins),
//	    middleware.Metrics,
//	    middleware.RateLimit(limiter),
//	    middleware.Compress,
//	)
//
// # Context Values
//
//   - GetRequestID(ctx): Returns the request identifier
package middleware
