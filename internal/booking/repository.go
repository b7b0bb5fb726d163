package booking

import (
	"context"
	"database/sql"
	"errors"
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

const (
	sessionColumns = `id, member_id, trainer_id, room_id, start_time, end_time, price, created_at, updated_at`
	classColumns   = `id, name, trainer_id, room_id, start_time, end_time, capacity, price, created_at, updated_at`
)

// firstID runs an overlap query and returns the first matching id, or 0.
func (r *repository) firstID(ctx context.Context, query string, args ...interface{}) (int, error) {
	var id int
	err := r.q.GetContext(ctx, &id, r.q.Rebind(query), args...)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *repository) RoomSessionOverlap(ctx context.Context, roomID int, start, end time.Time, excludeSessionID int) (int, error) {
	return r.firstID(ctx, `
		SELECT id FROM private_sessions
		WHERE room_id = ? AND start_time < ? AND end_time > ? AND id <> ?
		ORDER BY start_time, id
		LIMIT 1
	`, roomID, end.UTC(), start.UTC(), excludeSessionID)
}

func (r *repository) RoomClassOverlap(ctx context.Context, roomID int, start, end time.Time, excludeClassID int) (int, error) {
	return r.firstID(ctx, `
		SELECT id FROM class_schedules
		WHERE room_id = ? AND start_time < ? AND end_time > ? AND id <> ?
		ORDER BY start_time, id
		LIMIT 1
	`, roomID, end.UTC(), start.UTC(), excludeClassID)
}

func (r *repository) TrainerSessionOverlap(ctx context.Context, trainerID int, start, end time.Time, excludeSessionID int) (int, error) {
	return r.firstID(ctx, `
		SELECT id FROM private_sessions
		WHERE trainer_id = ? AND start_time < ? AND end_time > ? AND id <> ?
		ORDER BY start_time, id
		LIMIT 1
	`, trainerID, end.UTC(), start.UTC(), excludeSessionID)
}

func (r *repository) TrainerClassOverlap(ctx context.Context, trainerID int, start, end time.Time, excludeClassID int) (int, error) {
	return r.firstID(ctx, `
		SELECT id FROM class_schedules
		WHERE trainer_id = ? AND start_time < ? AND end_time > ? AND id <> ?
		ORDER BY start_time, id
		LIMIT 1
	`, trainerID, end.UTC(), start.UTC(), excludeClassID)
}

func (r *repository) MemberSessionOverlap(ctx context.Context, memberID int, start, end time.Time, excludeSessionID int) (int, error) {
	return r.firstID(ctx, `
		SELECT id FROM private_sessions
		WHERE member_id = ? AND start_time < ? AND end_time > ? AND id <> ?
		ORDER BY start_time, id
		LIMIT 1
	`, memberID, end.UTC(), start.UTC(), excludeSessionID)
}

func (r *repository) MemberClassOverlap(ctx context.Context, memberID int, start, end time.Time, excludeClassID int) (int, error) {
	return r.firstID(ctx, `
		SELECT c.id
		FROM class_registrations cr
		JOIN class_schedules c ON c.id = cr.class_id
		WHERE cr.member_id = ? AND c.start_time < ? AND c.end_time > ? AND c.id <> ?
		ORDER BY c.start_time, c.id
		LIMIT 1
	`, memberID, end.UTC(), start.UTC(), excludeClassID)
}

func (r *repository) CreateSession(ctx context.Context, memberID, trainerID, roomID int, start, end time.Time, price decimal.Decimal) (*PrivateSession, error) {
	query := `
		INSERT INTO private_sessions (member_id, trainer_id, room_id, start_time, end_time, price)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id
	`

	var id int
	err := r.q.QueryRowxContext(ctx, r.q.Rebind(query), memberID, trainerID, roomID, start.UTC(), end.UTC(), price).Scan(&id)
	if err != nil {
		return nil, err
	}

	return r.GetSessionByID(ctx, id)
}

func (r *repository) GetSessionByID(ctx context.Context, id int) (*PrivateSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM private_sessions WHERE id = ?`

	var s PrivateSession
	err := r.q.GetContext(ctx, &s, r.q.Rebind(query), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("private session")
	}
	if err != nil {
		return nil, err
	}

	return &s, nil
}

func (r *repository) MoveSession(ctx context.Context, id, roomID int, start, end time.Time) (*PrivateSession, error) {
	query := `
		UPDATE private_sessions
		SET room_id = ?, start_time = ?, end_time = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	if _, err := r.q.ExecContext(ctx, r.q.Rebind(query), roomID, start.UTC(), end.UTC(), id); err != nil {
		return nil, err
	}

	return r.GetSessionByID(ctx, id)
}

func (r *repository) ListSessionsByMember(ctx context.Context, memberID int) ([]PrivateSession, error) {
	sessions := []PrivateSession{}
	query := `SELECT ` + sessionColumns + ` FROM private_sessions WHERE member_id = ? ORDER BY start_time, id`
	if err := r.q.SelectContext(ctx, &sessions, r.q.Rebind(query), memberID); err != nil {
		return nil, err
	}

	return sessions, nil
}

func (r *repository) ListSessionsByTrainer(ctx context.Context, trainerID int) ([]PrivateSession, error) {
	sessions := []PrivateSession{}
	query := `SELECT ` + sessionColumns + ` FROM private_sessions WHERE trainer_id = ? ORDER BY start_time, id`
	if err := r.q.SelectContext(ctx, &sessions, r.q.Rebind(query), trainerID); err != nil {
		return nil, err
	}

	return sessions, nil
}

func (r *repository) CreateClass(ctx context.Context, c ClassSchedule) (*ClassSchedule, error) {
	query := `
		INSERT INTO class_schedules (name, trainer_id, room_id, start_time, end_time, capacity, price)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`

	var id int
	err := r.q.QueryRowxContext(ctx, r.q.Rebind(query),
		c.Name, c.TrainerID, c.RoomID, c.StartTime.UTC(), c.EndTime.UTC(), c.Capacity, c.Price,
	).Scan(&id)
	if err != nil {
		return nil, err
	}

	return r.GetClassByID(ctx, id)
}

func (r *repository) GetClassByID(ctx context.Context, id int) (*ClassSchedule, error) {
	query := `SELECT ` + classColumns + ` FROM class_schedules WHERE id = ?`

	var c ClassSchedule
	err := r.q.GetContext(ctx, &c, r.q.Rebind(query), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("class")
	}
	if err != nil {
		return nil, err
	}

	return &c, nil
}

// UpdateClass rewrites name, room, time, capacity and price. The trainer is
// not updatable.
func (r *repository) UpdateClass(ctx context.Context, c ClassSchedule) (*ClassSchedule, error) {
	query := `
		UPDATE class_schedules
		SET name = ?, room_id = ?, start_time = ?, end_time = ?, capacity = ?, price = ?,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	_, err := r.q.ExecContext(ctx, r.q.Rebind(query),
		c.Name, c.RoomID, c.StartTime.UTC(), c.EndTime.UTC(), c.Capacity, c.Price, c.ID,
	)
	if err != nil {
		return nil, err
	}

	return r.GetClassByID(ctx, c.ID)
}

const classWithCountQuery = `
	SELECT c.id, c.name, c.trainer_id, c.room_id, c.start_time, c.end_time,
	       c.capacity, c.price, c.created_at, c.updated_at,
	       (SELECT COUNT(*) FROM class_registrations cr WHERE cr.class_id = c.id) AS registered
	FROM class_schedules c
`

func (r *repository) ListClassesByTrainer(ctx context.Context, trainerID int) ([]ClassWithCount, error) {
	classes := []ClassWithCount{}
	query := classWithCountQuery + `WHERE c.trainer_id = ? ORDER BY c.start_time, c.id`
	if err := r.q.SelectContext(ctx, &classes, r.q.Rebind(query), trainerID); err != nil {
		return nil, err
	}

	return classes, nil
}

func (r *repository) ListClassesStartingFrom(ctx context.Context, from time.Time) ([]ClassWithCount, error) {
	classes := []ClassWithCount{}
	query := classWithCountQuery + `WHERE c.start_time >= ? ORDER BY c.start_time, c.id`
	if err := r.q.SelectContext(ctx, &classes, r.q.Rebind(query), from.UTC()); err != nil {
		return nil, err
	}

	return classes, nil
}

func (r *repository) CreateRegistration(ctx context.Context, memberID, classID int) (*ClassRegistration, error) {
	query := `
		INSERT INTO class_registrations (member_id, class_id)
		VALUES (?, ?)
		RETURNING id
	`

	var id int
	if err := r.q.QueryRowxContext(ctx, r.q.Rebind(query), memberID, classID).Scan(&id); err != nil {
		return nil, err
	}

	var reg ClassRegistration
	err := r.q.GetContext(ctx, &reg, r.q.Rebind(`
		SELECT id, member_id, class_id, attended, created_at
		FROM class_registrations
		WHERE id = ?
	`), id)
	if err != nil {
		return nil, err
	}

	return &reg, nil
}

func (r *repository) RegistrationExists(ctx context.Context, memberID, classID int) (bool, error) {
	return db.Exists(ctx, r.q, `
		SELECT EXISTS(
			SELECT 1 FROM class_registrations
			WHERE member_id = ? AND class_id = ?
		)
	`, memberID, classID)
}

func (r *repository) CountRegistrations(ctx context.Context, classID int) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM class_registrations
		WHERE class_id = ?
	`

	var count int
	if err := r.q.GetContext(ctx, &count, r.q.Rebind(query), classID); err != nil {
		return 0, err
	}

	return count, nil
}

func (r *repository) ListClassesByMember(ctx context.Context, memberID int) ([]RegisteredClass, error) {
	query := `
		SELECT c.id, c.name, c.trainer_id, c.room_id, c.start_time, c.end_time,
		       c.capacity, c.price, c.created_at, c.updated_at, cr.attended
		FROM class_registrations cr
		JOIN class_schedules c ON c.id = cr.class_id
		WHERE cr.member_id = ?
		ORDER BY c.start_time, c.id
	`

	classes := []RegisteredClass{}
	if err := r.q.SelectContext(ctx, &classes, r.q.Rebind(query), memberID); err != nil {
		return nil, err
	}

	return classes, nil
}
