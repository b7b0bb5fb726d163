// Package conflict runs the ordered double-booking checks shared by private
// sessions and classes.
package conflict

import (
	"context"
	"time"

	"gymcore/internal/apperr"
)

// Candidate is a proposed commitment. MemberID is nil for classes, which
// skips the member checks. The Exclude ids name the record being updated.
type Candidate struct {
	Start            time.Time
	End              time.Time
	RoomID           int
	TrainerID        int
	MemberID         *int
	ExcludeSessionID int
	ExcludeClassID   int
}

// Finder is the persistence port for the checks. Each method returns the id
// of the first persisted row overlapping [start, end) on the resource, or 0.
type Finder interface {
	RoomSessionOverlap(ctx context.Context, roomID int, start, end time.Time, excludeSessionID int) (int, error)
	RoomClassOverlap(ctx context.Context, roomID int, start, end time.Time, excludeClassID int) (int, error)
	TrainerSessionOverlap(ctx context.Context, trainerID int, start, end time.Time, excludeSessionID int) (int, error)
	TrainerClassOverlap(ctx context.Context, trainerID int, start, end time.Time, excludeClassID int) (int, error)
	MemberSessionOverlap(ctx context.Context, memberID int, start, end time.Time, excludeSessionID int) (int, error)
	MemberClassOverlap(ctx context.Context, memberID int, start, end time.Time, excludeClassID int) (int, error)
}

type check struct {
	resource apperr.Resource
	entity   apperr.Entity
	run      func(ctx context.Context, f Finder, c Candidate) (int, error)
}

var checks = []check{
	{apperr.ResourceRoom, apperr.EntityPrivateSession, func(ctx context.Context, f Finder, c Candidate) (int, error) {
		return f.RoomSessionOverlap(ctx, c.RoomID, c.Start, c.End, c.ExcludeSessionID)
	}},
	{apperr.ResourceRoom, apperr.EntityClass, func(ctx context.Context, f Finder, c Candidate) (int, error) {
		return f.RoomClassOverlap(ctx, c.RoomID, c.Start, c.End, c.ExcludeClassID)
	}},
	{apperr.ResourceTrainer, apperr.EntityPrivateSession, func(ctx context.Context, f Finder, c Candidate) (int, error) {
		return f.TrainerSessionOverlap(ctx, c.TrainerID, c.Start, c.End, c.ExcludeSessionID)
	}},
	{apperr.ResourceTrainer, apperr.EntityClass, func(ctx context.Context, f Finder, c Candidate) (int, error) {
		return f.TrainerClassOverlap(ctx, c.TrainerID, c.Start, c.End, c.ExcludeClassID)
	}},
	{apperr.ResourceMember, apperr.EntityPrivateSession, func(ctx context.Context, f Finder, c Candidate) (int, error) {
		return f.MemberSessionOverlap(ctx, *c.MemberID, c.Start, c.End, c.ExcludeSessionID)
	}},
	{apperr.ResourceMember, apperr.EntityClass, func(ctx context.Context, f Finder, c Candidate) (int, error) {
		return f.MemberClassOverlap(ctx, *c.MemberID, c.Start, c.End, c.ExcludeClassID)
	}},
}

// Check runs the room, trainer and member checks in that order and returns
// the first collision as an *apperr.Error. Member checks run only when
// c.MemberID is set.
func Check(ctx context.Context, f Finder, c Candidate) error {
	if !c.Start.Before(c.End) {
		return apperr.InvalidWindow("start_time must be before end_time")
	}

	for _, ch := range checks {
		if ch.resource == apperr.ResourceMember && c.MemberID == nil {
			break
		}

		id, err := ch.run(ctx, f, c)
		if err != nil {
			return err
		}
		if id != 0 {
			return apperr.Conflict(ch.resource, ch.entity, id)
		}
	}

	return nil
}

// CheckMember runs only the member checks. Registration uses it: the class
// itself has already passed the room and trainer checks.
func CheckMember(ctx context.Context, f Finder, memberID int, start, end time.Time, excludeClassID int) error {
	return Check(ctx, memberOnly{f}, Candidate{
		Start:          start,
		End:            end,
		MemberID:       &memberID,
		ExcludeClassID: excludeClassID,
	})
}

type memberOnly struct {
	Finder
}

func (memberOnly) RoomSessionOverlap(context.Context, int, time.Time, time.Time, int) (int, error) {
	return 0, nil
}

func (memberOnly) RoomClassOverlap(context.Context, int, time.Time, time.Time, int) (int, error) {
	return 0, nil
}

func (memberOnly) TrainerSessionOverlap(context.Context, int, time.Time, time.Time, int) (int, error) {
	return 0, nil
}

func (memberOnly) TrainerClassOverlap(context.Context, int, time.Time, time.Time, int) (int, error) {
	return 0, nil
}
