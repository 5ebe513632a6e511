package testutil

import (
	"database/sql"
	"testing"

	"github.com/tzofim/peula/internal/db"
	"github.com/tzofim/peula/internal/repository"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
// The database is closed when the test completes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return database
}

// NewTestUoW creates a UnitOfWork backed by the given test database.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLUnitOfWork(database, db.DialectSQLite)
}

// NewTestStore returns a SQLite-backed Store over a fresh in-memory database.
func NewTestStore(t *testing.T) *repository.Store {
	t.Helper()
	return repository.NewSQLStore(NewTestDB(t), db.DialectSQLite)
}
