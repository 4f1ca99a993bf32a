package sqlite_test

import (
	"database/sql"
	"testing"

	"github.com/tidybook/tidybook/internal/adapter/sqlite"
)

// newTestDB creates a migrated in-memory SQLite database for testing.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sqlite.Open(":memory:")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}
