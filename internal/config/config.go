package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Store backends
const (
	BackendSurrealDB = "surrealdb"
	BackendPostgres  = "postgres"
	BackendBadger    = "badger"
	BackendMemory    = "memory"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	Database  DatabaseConfig
	Postgres  PostgresConfig
	Badger    BadgerConfig
	Breaker   BreakerConfig
	RateLimit RateLimitConfig
	Admin     AdminConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port           string
	Env            string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	AllowedOrigins []string
}

// StoreConfig selects the record store
type StoreConfig struct {
	Backend string
	// Timeout bounds a single store call made by a search request
	Timeout time.Duration
}

// DatabaseConfig holds SurrealDB connection settings
type DatabaseConfig struct {
	Host      string
	Port      string
	Namespace string
	Database  string
	User      string
	Password  string
}

// PostgresConfig holds PostgreSQL settings. DSN wins over the discrete fields.
type PostgresConfig struct {
	DSN            string
	Host           string
	Port           int
	User           string
	Password       string
	Name           string
	MaxConns       int
	MigrationsPath string
}

// BadgerConfig holds embedded store settings
type BadgerConfig struct {
	Dir      string
	InMemory bool
}

// BreakerConfig holds store circuit breaker settings
type BreakerConfig struct {
	Enabled     bool
	TripAfter   int
	OpenTimeout time.Duration
	Interval    time.Duration
	HalfOpenMax int
}

// RateLimitConfig holds per-client request limits
type RateLimitConfig struct {
	Enabled           bool
	RequestsPerSecond float64
	Burst             int
}

// AdminConfig guards the seeding endpoints. An empty hash disables them.
type AdminConfig struct {
	KeyHash string
}

// defaults are keyed by environment variable name
var defaults = map[string]any{
	"SERVER_PORT":          "8080",
	"SERVER_ENV":           "development",
	"SERVER_READ_TIMEOUT":  15 * time.Second,
	"SERVER_WRITE_TIMEOUT": 15 * time.Second,
	"CORS_ALLOWED_ORIGINS": "http://localhost:3000",

	"STORE_BACKEND": BackendSurrealDB,
	"STORE_TIMEOUT": 5 * time.Second,

	"DB_HOST":      "localhost",
	"DB_PORT":      "8000",
	"DB_NAMESPACE": "statline",
	"DB_DATABASE":  "main",
	"DB_USER":      "root",
	"DB_PASSWORD":  "root",

	"PG_DSN":             "",
	"PG_HOST":            "localhost",
	"PG_PORT":            5432,
	"PG_USER":            "postgres",
	"PG_PASSWORD":        "postgres",
	"PG_DATABASE":        "statline",
	"PG_MAX_CONNS":       10,
	"PG_MIGRATIONS_PATH": "./migrations/postgres",

	"BADGER_DIR":       "./data/badger",
	"BADGER_IN_MEMORY": false,

	"BREAKER_ENABLED":            true,
	"BREAKER_TRIP_AFTER":         5,
	"BREAKER_OPEN_TIMEOUT":       30 * time.Second,
	"BREAKER_INTERVAL":           time.Minute,
	"BREAKER_HALF_OPEN_REQUESTS": 1,

	"RATE_LIMIT_ENABLED": true,
	"RATE_LIMIT_RPS":     20.0,
	"RATE_LIMIT_BURST":   40,

	"ADMIN_KEY_HASH": "",
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	return v
}

// Load reads configuration from environment variables with sensible defaults
func Load() (*Config, error) {
	return fromViper(newViper()), nil
}

// LoadFile reads configuration from a YAML, TOML or .env file. Keys use the
// environment variable names; the environment still overrides the file.
func LoadFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Server: ServerConfig{
			Port:           v.GetString("SERVER_PORT"),
			Env:            v.GetString("SERVER_ENV"),
			ReadTimeout:    v.GetDuration("SERVER_READ_TIMEOUT"),
			WriteTimeout:   v.GetDuration("SERVER_WRITE_TIMEOUT"),
			AllowedOrigins: getList(v, "CORS_ALLOWED_ORIGINS"),
		},
		Store: StoreConfig{
			Backend: strings.ToLower(v.GetString("STORE_BACKEND")),
			Timeout: v.GetDuration("STORE_TIMEOUT"),
		},
		Database: DatabaseConfig{
			Host:      v.GetString("DB_HOST"),
			Port:      v.GetString("DB_PORT"),
			Namespace: v.GetString("DB_NAMESPACE"),
			Database:  v.GetString("DB_DATABASE"),
			User:      v.GetString("DB_USER"),
			Password:  v.GetString("DB_PASSWORD"),
		},
		Postgres: PostgresConfig{
			DSN:            v.GetString("PG_DSN"),
			Host:           v.GetString("PG_HOST"),
			Port:           v.GetInt("PG_PORT"),
			User:           v.GetString("PG_USER"),
			Password:       v.GetString("PG_PASSWORD"),
			Name:           v.GetString("PG_DATABASE"),
			MaxConns:       v.GetInt("PG_MAX_CONNS"),
			MigrationsPath: v.GetString("PG_MIGRATIONS_PATH"),
		},
		Badger: BadgerConfig{
			Dir:      v.GetString("BADGER_DIR"),
			InMemory: v.GetBool("BADGER_IN_MEMORY"),
		},
		Breaker: BreakerConfig{
			Enabled:     v.GetBool("BREAKER_ENABLED"),
			TripAfter:   v.GetInt("BREAKER_TRIP_AFTER"),
			OpenTimeout: v.GetDuration("BREAKER_OPEN_TIMEOUT"),
			Interval:    v.GetDuration("BREAKER_INTERVAL"),
			HalfOpenMax: v.GetInt("BREAKER_HALF_OPEN_REQUESTS"),
		},
		RateLimit: RateLimitConfig{
			Enabled:           v.GetBool("RATE_LIMIT_ENABLED"),
			RequestsPerSecond: v.GetFloat64("RATE_LIMIT_RPS"),
			Burst:             v.GetInt("RATE_LIMIT_BURST"),
		},
		Admin: AdminConfig{
			KeyHash: v.GetString("ADMIN_KEY_HASH"),
		},
	}
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// SeedingEnabled reports whether the admin seeding endpoints are mounted
func (c *Config) SeedingEnabled() bool {
	return c.Admin.KeyHash != ""
}

// Validate checks that all required configuration values are present and valid.
// It returns an error describing all validation failures, or nil if valid.
func (c *Config) Validate() error {
	var errs []error

	// Server validation
	if c.Server.Port == "" {
		errs = append(errs, errors.New("SERVER_PORT is required"))
	}
	if c.Server.Env != "development" && c.Server.Env != "production" && c.Server.Env != "test" {
		errs = append(errs, fmt.Errorf("SERVER_ENV must be 'development', 'production', or 'test', got '%s'", c.Server.Env))
	}
	if len(c.Server.AllowedOrigins) == 0 {
		errs = append(errs, errors.New("CORS_ALLOWED_ORIGINS must have at least one origin"))
	}
	if c.Store.Timeout <= 0 {
		errs = append(errs, errors.New("STORE_TIMEOUT must be positive"))
	}

	// Backend-specific validation
	switch c.Store.Backend {
	case BackendSurrealDB:
		if c.Database.Host == "" {
			errs = append(errs, errors.New("DB_HOST is required"))
		}
		if c.Database.Port == "" {
			errs = append(errs, errors.New("DB_PORT is required"))
		}
		if c.Database.Namespace == "" {
			errs = append(errs, errors.New("DB_NAMESPACE is required"))
		}
		if c.Database.Database == "" {
			errs = append(errs, errors.New("DB_DATABASE is required"))
		}
	case BackendPostgres:
		if c.Postgres.DSN == "" && (c.Postgres.Host == "" || c.Postgres.Name == "") {
			errs = append(errs, errors.New("PG_DSN or PG_HOST and PG_DATABASE are required"))
		}
		if c.Postgres.MaxConns < 0 {
			errs = append(errs, errors.New("PG_MAX_CONNS must not be negative"))
		}
	case BackendBadger:
		if !c.Badger.InMemory && c.Badger.Dir == "" {
			errs = append(errs, errors.New("BADGER_DIR is required unless BADGER_IN_MEMORY is true"))
		}
	case BackendMemory:
	default:
		errs = append(errs, fmt.Errorf("STORE_BACKEND must be one of %s, got '%s'",
			strings.Join([]string{BackendSurrealDB, BackendPostgres, BackendBadger, BackendMemory}, ", "), c.Store.Backend))
	}

	if c.Breaker.Enabled {
		if c.Breaker.TripAfter <= 0 {
			errs = append(errs, errors.New("BREAKER_TRIP_AFTER must be positive"))
		}
		if c.Breaker.OpenTimeout <= 0 {
			errs = append(errs, errors.New("BREAKER_OPEN_TIMEOUT must be positive"))
		}
	}

	if c.RateLimit.Enabled {
		if c.RateLimit.RequestsPerSecond <= 0 {
			errs = append(errs, errors.New("RATE_LIMIT_RPS must be positive"))
		}
		if c.RateLimit.Burst <= 0 {
			errs = append(errs, errors.New("RATE_LIMIT_BURST must be positive"))
		}
	}

	// bcrypt hashes start with $2a$, $2b$ or $2y$
	if c.Admin.KeyHash != "" && !strings.HasPrefix(c.Admin.KeyHash, "$2") {
		errs = append(errs, errors.New("ADMIN_KEY_HASH must be a bcrypt hash"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// getList reads a comma-separated string or a list from a config file
func getList(v *viper.Viper, key string) []string {
	raw := v.Get(key)
	if s, ok := raw.(string); ok {
		return splitList(s)
	}
	var out []string
	for _, item := range v.GetStringSlice(key) {
		out = append(out, splitList(item)...)
	}
	return out
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
