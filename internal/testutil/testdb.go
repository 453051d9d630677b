package testutil

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/turno/internal/db"
)

// NewTestDB opens an in-memory SQLite database carrying the full turno
// schema (work types, sessions, templates, salaries). Closed via t.Cleanup.
// Tests that need shared state across pooled connections open a file-backed
// database instead.
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

// NewTestUoW builds a UnitOfWork over the given test database.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}
