// Package handler provides HTTP request handlers for the Statline API.
//
// # Handler Pattern
//
// Handlers depend on small interfaces (StatsSearcher, Seeder, Pinger) rather
// than concrete services, and register their own routes on a ServeMux:
//
//   - Constructor function (NewXxxHandler) accepts its dependencies
//   - RegisterRoutes binds method patterns to handler methods
//   - Response helpers from response.go standardize output format
//   - Errors are mapped to RFC 9457 Problem Details responses
//
// # Search Endpoints
//
// Each entity has one GET endpoint. Query parameters name filter fields and
// must be fields the entity declares; an endpoint called with no parameters
// returns every record:
//
//	GET /v1/teams?year=2004&allstar=true
//	GET /v1/player-games?player_id=7&position=shortstop
//
// Unknown fields answer 400, unparsable values 422, an unreachable record
// store 503, and unreadable stored data 500.
//
// # Response Format
//
//   - WriteData: Single resource with optional HATEOAS links
//   - WriteCollection: Search results with count and applied filters
//   - WriteError: RFC 9457 Problem Details error response
//
// # Example Usage
//
//	stats := service.NewStatsService(service.StatsServiceConfig{Store: store})
//	handler.NewSearchHandler(stats).RegisterRoutes(mux)
package handler
