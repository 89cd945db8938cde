package testutil

import (
	"database/sql"
	"testing"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // Test Package

	"github.com/ndewijer/Investment-Tracker-Backend/internal/database"
)

func init() {
	goose.SetLogger(goose.NopLogger())
}

// SetupTestDB returns an in-memory SQLite database migrated with the same
// embedded migrations the server runs, with foreign keys enforced so deleting
// a user cascades to their investments. It is closed when the test ends.
//
// Example usage:
//
//	db := testutil.SetupTestDB(t)
//	user := testutil.CreateUser(t, db)
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", database.DSN(":memory:"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})

	// Every connection would get its own empty in-memory database.
	db.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// CountRows returns the number of rows in a table.
func CountRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()

	var count int
	//nolint:gosec // G202: table names come from test code only
	if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count); err != nil {
		t.Fatalf("Failed to count rows in %s: %v", table, err)
	}
	return count
}

// AssertRowCount asserts that a table has the expected number of rows.
func AssertRowCount(t *testing.T, db *sql.DB, table string, expected int) {
	t.Helper()

	if actual := CountRows(t, db, table); actual != expected {
		t.Errorf("Expected %d rows in %s, got %d", expected, table, actual)
	}
}

// AssertInvestmentCount asserts how many investments userID owns.
//
// Example usage:
//
//	testutil.AssertInvestmentCount(t, db, user.ID, 0)
func AssertInvestmentCount(t *testing.T, db *sql.DB, userID string, expected int) {
	t.Helper()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM investments WHERE user_id = ?", userID).Scan(&count); err != nil {
		t.Fatalf("Failed to count investments: %v", err)
	}
	if count != expected {
		t.Errorf("Expected user %s to own %d investments, got %d", userID, expected, count)
	}
}
