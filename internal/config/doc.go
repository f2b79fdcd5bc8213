// Package config loads and validates configuration for the statline API.
//
// Values come from environment variables through viper, optionally layered
// over a config file whose keys use the same names:
//
//	cfg, err := config.Load()
//	cfg, err := config.LoadFile("statline.yaml")
//
// # Environment Variables
//
//	SERVER_PORT            - HTTP server port (default: 8080)
//	SERVER_ENV             - development, production or test
//	CORS_ALLOWED_ORIGINS   - comma-separated origins
//	STORE_BACKEND          - surrealdb, postgres, badger or memory
//	STORE_TIMEOUT          - per-call store deadline (default: 5s)
//	DB_HOST, DB_PORT       - SurrealDB address
//	DB_NAMESPACE           - SurrealDB namespace (default: statline)
//	PG_DSN                 - PostgreSQL connection string
//	BADGER_DIR             - embedded store directory
//	BREAKER_TRIP_AFTER     - consecutive store failures before failing fast
//	RATE_LIMIT_RPS         - per-client requests per second
//	ADMIN_KEY_HASH         - bcrypt hash of the seeding key
//
// Validate reports every problem at once through errors.Join.
package config
