package db_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gymcore/internal/db"
	"gymcore/internal/db/dbtest"
)

func TestRunMigrations_SQLiteIsIdempotent(t *testing.T) {
	database := dbtest.Open(t)

	// second run hits ErrNoChange
	require.NoError(t, db.RunMigrations(database))

	for _, table := range []string{"trainers", "members", "rooms", "trainer_availability",
		"private_sessions", "class_schedules", "class_registrations", "billing_items", "health_metrics"} {
		exists, err := db.Exists(context.Background(), database,
			"SELECT EXISTS(SELECT 1 FROM sqlite_master WHERE type = 'table' AND name = ?)", table)
		require.NoError(t, err)
		assert.True(t, exists, table)
	}
}

func TestTxManager_CommitsAndRollsBack(t *testing.T) {
	database := dbtest.Open(t)
	txm := db.NewTxManager(database, 0)
	ctx := context.Background()

	err := txm.WithinTx(ctx, func(q db.Querier) error {
		_, err := q.ExecContext(ctx, "INSERT INTO trainers (name, email) VALUES (?, ?)", "Tina", "tina@example.com")
		return err
	})
	require.NoError(t, err)

	boom := errors.New("boom")
	err = txm.WithinTx(ctx, func(q db.Querier) error {
		if _, err := q.ExecContext(ctx, "INSERT INTO trainers (name, email) VALUES (?, ?)", "Tom", "tom@example.com"); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var count int
	require.NoError(t, database.Get(&count, "SELECT COUNT(*) FROM trainers"))
	assert.Equal(t, 1, count)
}

func TestTxManager_DoesNotRetryBusinessErrors(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	txm := db.NewTxManager(sqlx.NewDb(sqlDB, "sqlmock"), 3)

	mock.ExpectBegin()
	mock.ExpectRollback()

	calls := 0
	sentinel := errors.New("room taken")
	err = txm.WithinTx(context.Background(), func(q db.Querier) error {
		calls++
		return sentinel
	})

	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, 1, calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}
