package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestConfig_Validate_ValidConfig(t *testing.T) {
	cfg := validBaseConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config, got error: %v", err)
	}
}

func TestConfig_Validate_InvalidServerEnv(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Server.Env = "invalid"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid SERVER_ENV")
	}
	if !strings.Contains(err.Error(), "SERVER_ENV") {
		t.Errorf("expected error to mention SERVER_ENV, got: %v", err)
	}
}

func TestConfig_Validate_MissingPort(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Server.Port = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing SERVER_PORT")
	}
	if !strings.Contains(err.Error(), "SERVER_PORT") {
		t.Errorf("expected error to mention SERVER_PORT, got: %v", err)
	}
}

func TestConfig_Validate_UnknownBackend(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Store.Backend = "mongo"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for unknown STORE_BACKEND")
	}
	if !strings.Contains(err.Error(), "STORE_BACKEND") {
		t.Errorf("expected error to mention STORE_BACKEND, got: %v", err)
	}
}

func TestConfig_Validate_BackendSpecific(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{
			name: "surrealdb without host",
			mutate: func(c *Config) {
				c.Store.Backend = BackendSurrealDB
				c.Database.Host = ""
			},
			want: "DB_HOST",
		},
		{
			name: "postgres without dsn or host",
			mutate: func(c *Config) {
				c.Store.Backend = BackendPostgres
				c.Postgres.DSN = ""
				c.Postgres.Host = ""
			},
			want: "PG_DSN",
		},
		{
			name: "badger on disk without dir",
			mutate: func(c *Config) {
				c.Store.Backend = BackendBadger
				c.Badger.Dir = ""
				c.Badger.InMemory = false
			},
			want: "BADGER_DIR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validBaseConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatalf("expected error mentioning %s", tt.want)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error to mention %s, got: %v", tt.want, err)
			}
		})
	}
}

func TestConfig_Validate_BackendFieldsIgnoredWhenUnused(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Store.Backend = BackendMemory
	cfg.Database = DatabaseConfig{}
	cfg.Postgres = PostgresConfig{}

	if err := cfg.Validate(); err != nil {
		t.Errorf("expected memory backend to ignore database settings, got: %v", err)
	}
}

func TestConfig_Validate_BadgerInMemory(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Store.Backend = BackendBadger
	cfg.Badger = BadgerConfig{InMemory: true}

	if err := cfg.Validate(); err != nil {
		t.Errorf("expected in-memory badger without dir to be valid, got: %v", err)
	}
}

func TestConfig_Validate_RateLimit(t *testing.T) {
	cfg := validBaseConfig()
	cfg.RateLimit = RateLimitConfig{Enabled: true, RequestsPerSecond: 0, Burst: 0}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected rate limit errors")
	}
	for _, field := range []string{"RATE_LIMIT_RPS", "RATE_LIMIT_BURST"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("expected error to mention %s, got: %v", field, err)
		}
	}

	cfg.RateLimit.Enabled = false
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected disabled rate limit to skip checks, got: %v", err)
	}
}

func TestConfig_Validate_AdminKeyHash(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Admin.KeyHash = "plaintext-key"

	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "ADMIN_KEY_HASH") {
		t.Errorf("expected ADMIN_KEY_HASH error, got: %v", err)
	}

	cfg.Admin.KeyHash = "$2a$10$abcdefghijklmnopqrstuu"
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected bcrypt-shaped hash to pass, got: %v", err)
	}
}

func TestConfig_Validate_MultipleErrors(t *testing.T) {
	cfg := &Config{
		Server: ServerConfig{
			Port:           "",
			Env:            "invalid",
			AllowedOrigins: []string{},
		},
		Store: StoreConfig{
			Backend: BackendSurrealDB,
		},
		Breaker: BreakerConfig{
			Enabled: true,
		},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected multiple validation errors")
	}

	errStr := err.Error()
	expectedFields := []string{"SERVER_PORT", "SERVER_ENV", "CORS_ALLOWED_ORIGINS", "STORE_TIMEOUT", "DB_HOST", "BREAKER_TRIP_AFTER"}
	for _, field := range expectedFields {
		if !strings.Contains(errStr, field) {
			t.Errorf("expected error to mention %s, got: %v", field, err)
		}
	}
}

func TestConfig_IsDevelopment(t *testing.T) {
	cfg := &Config{Server: ServerConfig{Env: "development"}}
	if !cfg.IsDevelopment() {
		t.Error("expected IsDevelopment() to return true")
	}

	cfg.Server.Env = "production"
	if cfg.IsDevelopment() {
		t.Error("expected IsDevelopment() to return false in production")
	}
}

func TestConfig_IsProduction(t *testing.T) {
	cfg := &Config{Server: ServerConfig{Env: "production"}}
	if !cfg.IsProduction() {
		t.Error("expected IsProduction() to return true")
	}

	cfg.Server.Env = "development"
	if cfg.IsProduction() {
		t.Error("expected IsProduction() to return false in development")
	}
}

func TestConfig_SeedingEnabled(t *testing.T) {
	cfg := validBaseConfig()
	if cfg.SeedingEnabled() {
		t.Error("expected seeding disabled without ADMIN_KEY_HASH")
	}
	cfg.Admin.KeyHash = "$2a$10$abc"
	if !cfg.SeedingEnabled() {
		t.Error("expected seeding enabled with ADMIN_KEY_HASH")
	}
}

// ============================================================================
// Loading
// ============================================================================

func TestLoad_Defaults(t *testing.T) {
	for key := range defaults {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Server.Port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Store.Backend != BackendSurrealDB {
		t.Errorf("Store.Backend = %q, want %q", cfg.Store.Backend, BackendSurrealDB)
	}
	if cfg.Store.Timeout != 5*time.Second {
		t.Errorf("Store.Timeout = %v, want 5s", cfg.Store.Timeout)
	}
	if cfg.Database.Namespace != "statline" {
		t.Errorf("Database.Namespace = %q, want statline", cfg.Database.Namespace)
	}
	if cfg.Postgres.Port != 5432 {
		t.Errorf("Postgres.Port = %d, want 5432", cfg.Postgres.Port)
	}
	if len(cfg.Server.AllowedOrigins) != 1 || cfg.Server.AllowedOrigins[0] != "http://localhost:3000" {
		t.Errorf("AllowedOrigins = %v", cfg.Server.AllowedOrigins)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got: %v", err)
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("STORE_BACKEND", "Postgres")
	t.Setenv("STORE_TIMEOUT", "250ms")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("BADGER_IN_MEMORY", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("Server.Port = %q, want 9090", cfg.Server.Port)
	}
	if cfg.Store.Backend != BackendPostgres {
		t.Errorf("Store.Backend = %q, want postgres", cfg.Store.Backend)
	}
	if cfg.Store.Timeout != 250*time.Millisecond {
		t.Errorf("Store.Timeout = %v, want 250ms", cfg.Store.Timeout)
	}
	if len(cfg.Server.AllowedOrigins) != 2 || cfg.Server.AllowedOrigins[1] != "https://b.example" {
		t.Errorf("AllowedOrigins = %v", cfg.Server.AllowedOrigins)
	}
	if cfg.RateLimit.RequestsPerSecond != 2.5 {
		t.Errorf("RateLimit.RequestsPerSecond = %v, want 2.5", cfg.RateLimit.RequestsPerSecond)
	}
	if !cfg.Badger.InMemory {
		t.Error("expected Badger.InMemory from environment")
	}
}

func TestLoadFile_YAML(t *testing.T) {
	for _, key := range []string{"SERVER_PORT", "STORE_BACKEND", "CORS_ALLOWED_ORIGINS", "BADGER_DIR"} {
		t.Setenv(key, "")
	}

	path := filepath.Join(t.TempDir(), "statline.yaml")
	body := `SERVER_PORT: "7070"
STORE_BACKEND: badger
BADGER_DIR: /var/lib/statline
CORS_ALLOWED_ORIGINS:
  - https://one.example
  - https://two.example
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}

	if cfg.Server.Port != "7070" {
		t.Errorf("Server.Port = %q, want 7070", cfg.Server.Port)
	}
	if cfg.Store.Backend != BackendBadger {
		t.Errorf("Store.Backend = %q, want badger", cfg.Store.Backend)
	}
	if cfg.Badger.Dir != "/var/lib/statline" {
		t.Errorf("Badger.Dir = %q", cfg.Badger.Dir)
	}
	if len(cfg.Server.AllowedOrigins) != 2 {
		t.Errorf("AllowedOrigins = %v, want 2 entries", cfg.Server.AllowedOrigins)
	}
	// unset keys keep their defaults
	if cfg.Database.Namespace != "statline" {
		t.Errorf("Database.Namespace = %q, want default", cfg.Database.Namespace)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" a, ,b ,c,")
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("splitList() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("splitList()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

// validBaseConfig returns a minimal valid configuration for testing
func validBaseConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           "8080",
			Env:            "development",
			ReadTimeout:    15 * time.Second,
			WriteTimeout:   15 * time.Second,
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		Store: StoreConfig{
			Backend: BackendSurrealDB,
			Timeout: 5 * time.Second,
		},
		Database: DatabaseConfig{
			Host:      "localhost",
			Port:      "8000",
			Namespace: "statline",
			Database:  "main",
			User:      "root",
			Password:  "root",
		},
		Postgres: PostgresConfig{
			Host:     "localhost",
			Port:     5432,
			Name:     "statline",
			MaxConns: 10,
		},
		Badger: BadgerConfig{
			Dir: "./data/badger",
		},
		Breaker: BreakerConfig{
			Enabled:     true,
			TripAfter:   5,
			OpenTimeout: 30 * time.Second,
			Interval:    time.Minute,
			HalfOpenMax: 1,
		},
		RateLimit: RateLimitConfig{
			Enabled:           true,
			RequestsPerSecond: 20,
			Burst:             40,
		},
	}
}
