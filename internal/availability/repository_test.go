package availability

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gymcore/internal/apperr"
)

func newMockRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(sqlx.NewDb(db, "sqlmock")), mock
}

func TestListByTrainerDay(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT id, trainer_id, day_of_week, start_time, end_time FROM trainer_availability WHERE trainer_id = \? AND day_of_week = \?`).
		WithArgs(3, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "trainer_id", "day_of_week", "start_time", "end_time"}).
			AddRow(1, 3, 0, "09:00:00", "12:00:00").
			AddRow(2, 3, 0, "14:00:00", "24:00:00"))

	windows, err := repo.ListByTrainerDay(context.Background(), 3, 0)
	require.NoError(t, err)
	require.Len(t, windows, 2)
	assert.Equal(t, clock(9), windows[0].StartTime)
	assert.Equal(t, clock(24), windows[1].EndTime)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`UPDATE trainer_availability`).
		WithArgs("10:00:00", "12:00:00", 9).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.Update(context.Background(), 9, clock(10), clock(12))
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`FROM trainer_availability WHERE id = \?`).
		WithArgs(5).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 5)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}
