package testutil

import (
	"database/sql"
	"testing"

	"github.com/vlanet/vridge/internal/db"
)

// NewTestDB opens a migrated in-memory schedule database that is closed when
// the test ends.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("opening test schedule db: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}
