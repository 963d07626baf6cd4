// Package repository implements the data access layer for the Shepherd API.
//
// Each repository wraps a database.Database and maps SurrealDB rows onto
// model structs. Lookups return (nil, nil) when a record does not exist so
// services can decide which not-found error to surface.
//
// # Query Patterns
//
//   - Parameterized queries with $variable syntax
//   - type::record() and type::thing() for record ids
//   - time::now() for timestamps
//   - UPSERT on a deterministic id for one result per member and assessment
//
// # Example Usage
//
//	repo := NewResultRepository(db)
//	res, err := repo.Get(ctx, "user:abc123", model.TestTypeGifts)
//	if err != nil {
//	    return err
//	}
//	if res == nil {
//	    // not completed yet
//	}
package repository
