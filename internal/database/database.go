// Database interface and standard errors. Writes that must land together
// are collected in an AtomicBatch (transaction.go).

package database

import (
	"context"
	"errors"
	"fmt"
)

// Standard errors for database operations.
// Use errors.Is() to check these error types in calling code.
var (
	// ErrConnection indicates a failure to connect to or communicate with the database.
	ErrConnection = errors.New("database connection error")

	// ErrQuery indicates a query execution failure (syntax error, invalid reference, etc.).
	ErrQuery = errors.New("query error")
)

// Database defines the interface for database operations
type Database interface {
	// Connection management
	Connect(ctx context.Context) error
	Close() error
	Ping(ctx context.Context) error

	// Query executes a query and returns results
	Query(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error)

	// Execute runs a query without returning results (for mutations)
	Execute(ctx context.Context, query string, vars map[string]interface{}) error
}

// Config holds SurrealDB configuration
type Config struct {
	Host      string
	Port      string
	User      string
	Password  string
	Namespace string
	Database  string
}

// Endpoint returns the websocket URL for the configured server
func (c Config) Endpoint() string {
	return fmt.Sprintf("ws://%s:%s", c.Host, c.Port)
}
