package availability

import (
	"context"
	"database/sql"
	"errors"

	"gymcore/internal/apperr"
	"gymcore/internal/db"
	"gymcore/internal/timewindow"
)

type repository struct {
	q db.Querier
}

func NewRepository(q db.Querier) Repository {
	return &repository{q: q}
}

const selectWindow = `
	SELECT id, trainer_id, day_of_week, start_time, end_time
	FROM trainer_availability
`

func (r *repository) Create(ctx context.Context, trainerID, dayOfWeek int, start, end timewindow.Clock) (*Window, error) {
	query := `
		INSERT INTO trainer_availability (trainer_id, day_of_week, start_time, end_time)
		VALUES (?, ?, ?, ?)
		RETURNING id
	`

	var id int
	if err := r.q.QueryRowxContext(ctx, r.q.Rebind(query), trainerID, dayOfWeek, start, end).Scan(&id); err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

func (r *repository) GetByID(ctx context.Context, id int) (*Window, error) {
	var w Window
	err := r.q.GetContext(ctx, &w, r.q.Rebind(selectWindow+`WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("availability window")
	}
	if err != nil {
		return nil, err
	}

	return &w, nil
}

func (r *repository) Update(ctx context.Context, id int, start, end timewindow.Clock) (*Window, error) {
	query := `
		UPDATE trainer_availability
		SET start_time = ?, end_time = ?
		WHERE id = ?
	`

	result, err := r.q.ExecContext(ctx, r.q.Rebind(query), start, end, id)
	if err != nil {
		return nil, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, apperr.NotFound("availability window")
	}

	return r.GetByID(ctx, id)
}

func (r *repository) ListByTrainerDay(ctx context.Context, trainerID, dayOfWeek int) ([]Window, error) {
	windows := []Window{}
	query := selectWindow + `WHERE trainer_id = ? AND day_of_week = ? ORDER BY start_time`
	if err := r.q.SelectContext(ctx, &windows, r.q.Rebind(query), trainerID, dayOfWeek); err != nil {
		return nil, err
	}

	return windows, nil
}

func (r *repository) ListByTrainer(ctx context.Context, trainerID int) ([]Window, error) {
	windows := []Window{}
	query := selectWindow + `WHERE trainer_id = ? ORDER BY day_of_week, start_time`
	if err := r.q.SelectContext(ctx, &windows, r.q.Rebind(query), trainerID); err != nil {
		return nil, err
	}

	return windows, nil
}
