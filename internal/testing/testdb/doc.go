// Package testdb provides isolated SurrealDB databases for integration tests.
//
// Each TestDB gets its own namespace with every migration applied, and the
// namespace is removed when the test finishes. Tests are skipped in -short
// mode or when no server answers at TEST_DB_HOST:TEST_DB_PORT
// (default localhost:8000).
//
//	func TestUserRepository(t *testing.T) {
//	    tdb := testdb.New(t)
//	    repo := repository.NewUserRepository(tdb.DB)
//	    ...
//	}
//
// Migrations are found by walking up from the package directory, or under
// SHEPHERD_ROOT/migrations. Reset clears the application tables between
// subtests that share one database.
package testdb
