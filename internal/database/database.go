package database

import (
	"context"
	"errors"
	"fmt"
)

// Errors returned by the store. Repositories map them to domain errors with
// errors.Is.
var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate indicates a unique index violation (e.g., duplicate email,
	// or a second result for the same user and test).
	ErrDuplicate = errors.New("duplicate record")

	// ErrConnection indicates a failure to connect to or communicate with the database.
	ErrConnection = errors.New("database connection error")

	// ErrQuery indicates a query execution failure (syntax error, invalid reference, etc.).
	ErrQuery = errors.New("query error")
)

// Database is the store behind the user, invitation, token and result
// repositories. Multi-statement writes go through AtomicBatch.
type Database interface {
	Connect(ctx context.Context) error
	Close() error
	// Ping backs the readiness probe
	Ping(ctx context.Context) error

	// Query returns one {status, result} wrapper per statement
	Query(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error)

	// QueryOne returns the first record of the first statement, or
	// ErrNotFound when it matched nothing
	QueryOne(ctx context.Context, query string, vars map[string]interface{}) (interface{}, error)

	// Execute runs a write whose rows the caller does not need
	Execute(ctx context.Context, query string, vars map[string]interface{}) error
}

// Config is the SHEPHERD_DB_* section of the server config
type Config struct {
	Host      string
	Port      string
	User      string
	Password  string
	Namespace string
	Database  string
}

// Endpoint returns the websocket RPC address for Host and Port
func (c Config) Endpoint() string {
	return fmt.Sprintf("ws://%s:%s", c.Host, c.Port)
}
