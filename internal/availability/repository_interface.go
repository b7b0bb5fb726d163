package availability

import (
	"context"

	"gymcore/internal/timewindow"
)

type Repository interface {
	Create(ctx context.Context, trainerID, dayOfWeek int, start, end timewindow.Clock) (*Window, error)
	GetByID(ctx context.Context, id int) (*Window, error)
	Update(ctx context.Context, id int, start, end timewindow.Clock) (*Window, error)
	ListByTrainerDay(ctx context.Context, trainerID, dayOfWeek int) ([]Window, error)
	ListByTrainer(ctx context.Context, trainerID int) ([]Window, error)
}
