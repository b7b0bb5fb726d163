package billing

import (
	"context"

	"github.com/shopspring/decimal"
)

type Repository interface {
	// UpsertForSession keeps exactly one item per private session; calling it
	// again rewrites trainer, description and amount in place.
	UpsertForSession(ctx context.Context, sessionID, memberID, trainerID int, description string, amount decimal.Decimal) (*Item, error)
	// UpsertForRegistration reuses the member's non-cancelled item for the
	// class when there is one, pointing it at the class's current trainer.
	UpsertForRegistration(ctx context.Context, memberID, classID, trainerID int, description string, amount decimal.Decimal) (*Item, error)
	GetByID(ctx context.Context, id int) (*Item, error)
	ListPendingByMember(ctx context.Context, memberID int) ([]Item, error)
	ListByTrainer(ctx context.Context, trainerID int) ([]Item, error)
}
