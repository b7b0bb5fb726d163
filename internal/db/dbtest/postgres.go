package dbtest

import (
	"os"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"gymcore/internal/db"
)

// Postgres connects to TEST_DSN, migrates it and empties every table.
// The test is skipped when TEST_DSN is unset or the server is unreachable.
func Postgres(t *testing.T) *sqlx.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DSN")
	if dsn == "" {
		t.Skip("TEST_DSN not set; skipping Postgres test")
	}

	database, err := db.Connect(db.DriverPostgres, dsn)
	if err != nil {
		t.Skipf("Skipping Postgres test: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	require.NoError(t, db.RunMigrations(database))

	_, err = database.Exec(`
		TRUNCATE billing_items, class_registrations, class_schedules, private_sessions,
		         trainer_availability, health_metrics, rooms, members, trainers
		RESTART IDENTITY CASCADE
	`)
	require.NoError(t, err, "Failed to clean database")

	return database
}
