package testutil

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/repsheet/internal/db"
)

// NewTestDB opens a migrated in-memory program store that lives until the
// test ends.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("opening test program store: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })
	return database
}

// NewTestUoW wraps database in the unit of work the services use.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}
