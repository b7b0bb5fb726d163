package gym

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

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

func notFound(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound(what)
	}
	return err
}

func (r *repository) CreateMember(ctx context.Context, name, email string, targetWeight *decimal.Decimal, notes *string) (*Member, error) {
	query := `
		INSERT INTO members (name, email, target_weight, notes)
		VALUES (?, ?, ?, ?)
		RETURNING id
	`

	var tw decimal.NullDecimal
	if targetWeight != nil {
		tw = decimal.NewNullDecimal(*targetWeight)
	}

	var id int
	if err := r.q.QueryRowxContext(ctx, r.q.Rebind(query), name, email, tw, notes).Scan(&id); err != nil {
		return nil, err
	}

	return r.GetMemberByID(ctx, id)
}

func (r *repository) GetMemberByID(ctx context.Context, id int) (*Member, error) {
	query := `
		SELECT id, name, email, target_weight, notes, created_at
		FROM members
		WHERE id = ?
	`

	var member Member
	if err := r.q.GetContext(ctx, &member, r.q.Rebind(query), id); err != nil {
		return nil, notFound(err, "member")
	}

	return &member, nil
}

func (r *repository) UpdateMember(ctx context.Context, member *Member) (*Member, error) {
	query := `
		UPDATE members
		SET name = ?, email = ?, target_weight = ?, notes = ?
		WHERE id = ?
	`

	result, err := r.q.ExecContext(ctx, r.q.Rebind(query), member.Name, member.Email, member.TargetWeight, member.Notes, member.ID)
	if err != nil {
		return nil, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, apperr.NotFound("member")
	}

	return r.GetMemberByID(ctx, member.ID)
}

// SearchTrainerMembers matches nameQuery case-insensitively against members
// who have a private session with the trainer or are registered for one of
// the trainer's classes.
func (r *repository) SearchTrainerMembers(ctx context.Context, trainerID int, nameQuery string) ([]Member, error) {
	query := `
		SELECT id, name, email, target_weight, notes, created_at
		FROM members
		WHERE LOWER(name) LIKE ?
		  AND id IN (
			SELECT member_id FROM private_sessions WHERE trainer_id = ?
			UNION
			SELECT cr.member_id
			FROM class_registrations cr
			JOIN class_schedules cs ON cs.id = cr.class_id
			WHERE cs.trainer_id = ?
		  )
		ORDER BY name ASC, id ASC
	`

	pattern := "%" + strings.ToLower(strings.TrimSpace(nameQuery)) + "%"

	members := []Member{}
	if err := r.q.SelectContext(ctx, &members, r.q.Rebind(query), pattern, trainerID, trainerID); err != nil {
		return nil, err
	}

	return members, nil
}

func (r *repository) CreateTrainer(ctx context.Context, name, email string) (*Trainer, error) {
	query := `
		INSERT INTO trainers (name, email)
		VALUES (?, ?)
		RETURNING id
	`

	var id int
	if err := r.q.QueryRowxContext(ctx, r.q.Rebind(query), name, email).Scan(&id); err != nil {
		return nil, err
	}

	return r.GetTrainerByID(ctx, id)
}

func (r *repository) GetTrainerByID(ctx context.Context, id int) (*Trainer, error) {
	query := `
		SELECT id, name, email, created_at
		FROM trainers
		WHERE id = ?
	`

	var trainer Trainer
	if err := r.q.GetContext(ctx, &trainer, r.q.Rebind(query), id); err != nil {
		return nil, notFound(err, "trainer")
	}

	return &trainer, nil
}

func (r *repository) CreateRoom(ctx context.Context, name string, capacity int, primaryTrainerID *int) (*Room, error) {
	query := `
		INSERT INTO rooms (name, capacity, primary_trainer_id)
		VALUES (?, ?, ?)
		RETURNING id
	`

	var id int
	if err := r.q.QueryRowxContext(ctx, r.q.Rebind(query), name, capacity, primaryTrainerID).Scan(&id); err != nil {
		return nil, err
	}

	return r.GetRoomByID(ctx, id)
}

func (r *repository) GetRoomByID(ctx context.Context, id int) (*Room, error) {
	query := `
		SELECT id, name, capacity, primary_trainer_id, created_at
		FROM rooms
		WHERE id = ?
	`

	var room Room
	if err := r.q.GetContext(ctx, &room, r.q.Rebind(query), id); err != nil {
		return nil, notFound(err, "room")
	}

	return &room, nil
}

func (r *repository) GetAllRooms(ctx context.Context) ([]Room, error) {
	query := `
		SELECT id, name, capacity, primary_trainer_id, created_at
		FROM rooms
		ORDER BY name ASC
	`

	rooms := []Room{}
	if err := r.q.SelectContext(ctx, &rooms, query); err != nil {
		return nil, err
	}

	return rooms, nil
}

func (r *repository) LogHealthMetric(ctx context.Context, memberID int, recordedAt time.Time, weight *decimal.Decimal, heartRate *int) (*HealthMetric, error) {
	query := `
		INSERT INTO health_metrics (member_id, recorded_at, weight, heart_rate)
		VALUES (?, ?, ?, ?)
		RETURNING id
	`

	var w decimal.NullDecimal
	if weight != nil {
		w = decimal.NewNullDecimal(*weight)
	}

	var id int
	if err := r.q.QueryRowxContext(ctx, r.q.Rebind(query), memberID, recordedAt.UTC(), w, heartRate).Scan(&id); err != nil {
		return nil, err
	}

	var metric HealthMetric
	err := r.q.GetContext(ctx, &metric, r.q.Rebind(`
		SELECT id, member_id, recorded_at, weight, heart_rate
		FROM health_metrics
		WHERE id = ?
	`), id)
	if err != nil {
		return nil, err
	}

	return &metric, nil
}

func (r *repository) GetHealthHistory(ctx context.Context, memberID int) ([]HealthMetric, error) {
	query := `
		SELECT id, member_id, recorded_at, weight, heart_rate
		FROM health_metrics
		WHERE member_id = ?
		ORDER BY recorded_at DESC, id DESC
	`

	metrics := []HealthMetric{}
	if err := r.q.SelectContext(ctx, &metrics, r.q.Rebind(query), memberID); err != nil {
		return nil, err
	}

	return metrics, nil
}

// GetLatestHealthMetric returns nil, nil when the member has logged nothing.
func (r *repository) GetLatestHealthMetric(ctx context.Context, memberID int) (*HealthMetric, error) {
	query := `
		SELECT id, member_id, recorded_at, weight, heart_rate
		FROM health_metrics
		WHERE member_id = ?
		ORDER BY recorded_at DESC, id DESC
		LIMIT 1
	`

	var metric HealthMetric
	err := r.q.GetContext(ctx, &metric, r.q.Rebind(query), memberID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &metric, nil
}
