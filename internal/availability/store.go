package availability

import (
	"context"
	"time"

	"gymcore/internal/apperr"
	"gymcore/internal/gym"
	"gymcore/internal/timewindow"
)

type TrainerFinder interface {
	GetTrainerByID(ctx context.Context, id int) (*gym.Trainer, error)
}

// Store applies the availability rules on top of a Repository. It is built
// per unit of work, over the same querier as the rest of the operation.
type Store struct {
	repo     Repository
	trainers TrainerFinder
	loc      *time.Location
}

func NewStore(repo Repository, trainers TrainerFinder, loc *time.Location) *Store {
	return &Store{
		repo:     repo,
		trainers: trainers,
		loc:      loc,
	}
}

func (s *Store) AddWindow(ctx context.Context, trainerID, dayOfWeek int, start, end timewindow.Clock) (*Window, error) {
	if err := ValidateBounds(start, end); err != nil {
		return nil, err
	}
	if err := validateDay(dayOfWeek); err != nil {
		return nil, err
	}

	if _, err := s.trainers.GetTrainerByID(ctx, trainerID); err != nil {
		return nil, err
	}

	existing, err := s.repo.ListByTrainerDay(ctx, trainerID, dayOfWeek)
	if err != nil {
		return nil, err
	}
	if w := firstTouching(existing, start, end, 0); w != nil {
		return nil, apperr.AvailabilityOverlap(w.ID)
	}

	return s.repo.Create(ctx, trainerID, dayOfWeek, start, end)
}

// UpdateWindow moves an existing window. Trainer and weekday never change.
func (s *Store) UpdateWindow(ctx context.Context, id int, start, end timewindow.Clock) (*Window, error) {
	if err := ValidateBounds(start, end); err != nil {
		return nil, err
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.ListByTrainerDay(ctx, current.TrainerID, current.DayOfWeek)
	if err != nil {
		return nil, err
	}
	if w := firstTouching(existing, start, end, current.ID); w != nil {
		return nil, apperr.AvailabilityOverlap(w.ID)
	}

	return s.repo.Update(ctx, id, start, end)
}

func (s *Store) SupportsWindow(ctx context.Context, trainerID int, start, end time.Time) (bool, error) {
	windows, err := s.repo.ListByTrainerDay(ctx, trainerID, timewindow.DayOfWeek(start.In(s.loc)))
	if err != nil {
		return false, err
	}
	return Supports(windows, start, end, s.loc), nil
}

func (s *Store) VisibleForListing(ctx context.Context, trainerID int, start, end time.Time) (bool, error) {
	windows, err := s.repo.ListByTrainerDay(ctx, trainerID, timewindow.DayOfWeek(start.In(s.loc)))
	if err != nil {
		return false, err
	}
	return VisibleForListing(windows, start, end, s.loc), nil
}

func (s *Store) ListByTrainer(ctx context.Context, trainerID int) ([]Window, error) {
	if _, err := s.trainers.GetTrainerByID(ctx, trainerID); err != nil {
		return nil, err
	}
	return s.repo.ListByTrainer(ctx, trainerID)
}
