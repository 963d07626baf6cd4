// Package database provides database connectivity for the Shepherd API.
//
// The database package abstracts SurrealDB operations and provides
// a consistent interface for data access across the application.
//
// # Database Interface
//
// The Database interface defines core operations:
//
//	type Database interface {
//	    Ping(ctx context.Context) error
//	    Query(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error)
//	    QueryOne(ctx context.Context, query string, vars map[string]interface{}) (interface{}, error)
//	    Execute(ctx context.Context, query string, vars map[string]interface{}) error
//	    Close() error
//	}
//
// Query returns one {status, result} wrapper per statement; QueryOne unwraps
// the first record of the first statement and returns ErrNotFound when the
// statement matched nothing.
//
// # Connection Management
//
//	db := database.NewSurrealDB(database.Config{
//	    Host:      "localhost",
//	    Port:      "8000",
//	    Namespace: "shepherd",
//	    Database:  "production",
//	    User:      "root",
//	    Password:  "secret",
//	})
//	if err := db.Connect(ctx); err != nil { ... }
//	defer db.Close()
//
// # Transactions
//
// Transactions are BATCH-BASED, not connection-level. Statements accumulate
// in memory and run inside BEGIN/COMMIT TRANSACTION when committed, so they
// succeed or fail together but cannot read each other's results before the
// commit. AtomicBatch is the usual entry point:
//
//	err := database.NewAtomicBatch().
//	    Add("UPDATE type::record($id) SET role = $role", roleVars).
//	    Add("UPDATE refresh_token SET revoked_on = time::now() WHERE user = type::record($owner)", ownerVars).
//	    Execute(ctx, db)
//
// # Error Types
//
// Standard error types for data operations, checked with errors.Is:
//
//   - ErrNotFound: Record does not exist
//   - ErrDuplicate: Unique index violation
//   - ErrConnection: Database connection failed
//   - ErrQuery: Query execution failed
package database
