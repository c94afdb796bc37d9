package test_utils

import (
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/wilw-arch/WeeklyPlanWeb/internal/database"
)

// SetupSQLiteDB creates a migrated SQLite database in a temporary directory.
// Each database is completely isolated from others.
func SetupSQLiteDB(t *testing.T) *sqlx.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "weekly_planner.db")
	db, err := database.OpenSQLite(path)
	if err != nil {
		t.Fatalf("Failed to open sqlite database: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}
