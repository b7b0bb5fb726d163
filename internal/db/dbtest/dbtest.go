// Package dbtest opens throwaway SQLite databases with the production
// migrations applied, for tests that want real SQL instead of mocks.
package dbtest

import (
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"gymcore/internal/db"
)

func DSN(path string) string {
	return "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite"
}

func Open(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := db.Connect(db.DriverSQLite, DSN(filepath.Join(t.TempDir(), "gym.db")))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	require.NoError(t, db.RunMigrations(database))
	return database
}
