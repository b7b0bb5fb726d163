package billing

import (
	"context"
	"database/sql"
	"errors"

	"github.com/shopspring/decimal"

	"gymcore/internal/apperr"
	"gymcore/internal/db"
)

type repository struct {
	q db.Querier
}

func NewRepository(q db.Querier) Repository {
	return &repository{q: q}
}

const selectItem = `
	SELECT id, member_id, trainer_id, private_session_id, class_id,
	       description, amount, status, created_at, updated_at
	FROM billing_items
`

func (r *repository) UpsertForSession(ctx context.Context, sessionID, memberID, trainerID int, description string, amount decimal.Decimal) (*Item, error) {
	query := `
		INSERT INTO billing_items (member_id, trainer_id, private_session_id, description, amount, status)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (private_session_id) DO UPDATE
		SET trainer_id = excluded.trainer_id,
		    description = excluded.description,
		    amount = excluded.amount,
		    updated_at = CURRENT_TIMESTAMP
		RETURNING id
	`

	var id int
	err := r.q.QueryRowxContext(ctx, r.q.Rebind(query),
		memberID, trainerID, sessionID, description, amount, StatusPending,
	).Scan(&id)
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

func (r *repository) UpsertForRegistration(ctx context.Context, memberID, classID, trainerID int, description string, amount decimal.Decimal) (*Item, error) {
	lookup := `
		SELECT id FROM billing_items
		WHERE member_id = ? AND class_id = ? AND status <> ?
		ORDER BY id
		LIMIT 1
	`

	var id int
	err := r.q.GetContext(ctx, &id, r.q.Rebind(lookup), memberID, classID, StatusCancelled)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		insert := `
			INSERT INTO billing_items (member_id, trainer_id, class_id, description, amount, status)
			VALUES (?, ?, ?, ?, ?, ?)
			RETURNING id
		`
		err = r.q.QueryRowxContext(ctx, r.q.Rebind(insert),
			memberID, trainerID, classID, description, amount, StatusPending,
		).Scan(&id)
		if err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		update := `
			UPDATE billing_items
			SET trainer_id = ?, updated_at = CURRENT_TIMESTAMP
			WHERE id = ?
		`
		if _, err := r.q.ExecContext(ctx, r.q.Rebind(update), trainerID, id); err != nil {
			return nil, err
		}
	}

	return r.GetByID(ctx, id)
}

func (r *repository) GetByID(ctx context.Context, id int) (*Item, error) {
	var item Item
	err := r.q.GetContext(ctx, &item, r.q.Rebind(selectItem+`WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("billing item")
	}
	if err != nil {
		return nil, err
	}

	return &item, nil
}

func (r *repository) ListPendingByMember(ctx context.Context, memberID int) ([]Item, error) {
	items := []Item{}
	query := selectItem + `WHERE member_id = ? AND status = ? ORDER BY created_at, id`
	if err := r.q.SelectContext(ctx, &items, r.q.Rebind(query), memberID, StatusPending); err != nil {
		return nil, err
	}

	return items, nil
}

// ListByTrainer includes class items whose class the trainer now teaches,
// even if the item still points at a previous trainer.
func (r *repository) ListByTrainer(ctx context.Context, trainerID int) ([]Item, error) {
	items := []Item{}
	query := selectItem + `
		WHERE trainer_id = ?
		   OR class_id IN (SELECT id FROM class_schedules WHERE trainer_id = ?)
		ORDER BY created_at DESC, id DESC
	`
	if err := r.q.SelectContext(ctx, &items, r.q.Rebind(query), trainerID, trainerID); err != nil {
		return nil, err
	}

	return items, nil
}
