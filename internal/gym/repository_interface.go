package gym

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Repository interface {
	CreateMember(ctx context.Context, name, email string, targetWeight *decimal.Decimal, notes *string) (*Member, error)
	GetMemberByID(ctx context.Context, id int) (*Member, error)
	UpdateMember(ctx context.Context, member *Member) (*Member, error)
	SearchTrainerMembers(ctx context.Context, trainerID int, nameQuery string) ([]Member, error)
	CreateTrainer(ctx context.Context, name, email string) (*Trainer, error)
	GetTrainerByID(ctx context.Context, id int) (*Trainer, error)
	CreateRoom(ctx context.Context, name string, capacity int, primaryTrainerID *int) (*Room, error)
	GetRoomByID(ctx context.Context, id int) (*Room, error)
	GetAllRooms(ctx context.Context) ([]Room, error)

	LogHealthMetric(ctx context.Context, memberID int, recordedAt time.Time, weight *decimal.Decimal, heartRate *int) (*HealthMetric, error)
	GetHealthHistory(ctx context.Context, memberID int) ([]HealthMetric, error)
	GetLatestHealthMetric(ctx context.Context, memberID int) (*HealthMetric, error)
}
