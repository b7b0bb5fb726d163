package booking

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"gymcore/internal/conflict"
)

type Repository interface {
	conflict.Finder

	CreateSession(ctx context.Context, memberID, trainerID, roomID int, start, end time.Time, price decimal.Decimal) (*PrivateSession, error)
	GetSessionByID(ctx context.Context, id int) (*PrivateSession, error)
	MoveSession(ctx context.Context, id, roomID int, start, end time.Time) (*PrivateSession, error)
	ListSessionsByMember(ctx context.Context, memberID int) ([]PrivateSession, error)
	ListSessionsByTrainer(ctx context.Context, trainerID int) ([]PrivateSession, error)

	CreateClass(ctx context.Context, c ClassSchedule) (*ClassSchedule, error)
	GetClassByID(ctx context.Context, id int) (*ClassSchedule, error)
	UpdateClass(ctx context.Context, c ClassSchedule) (*ClassSchedule, error)
	ListClassesByTrainer(ctx context.Context, trainerID int) ([]ClassWithCount, error)
	ListClassesStartingFrom(ctx context.Context, from time.Time) ([]ClassWithCount, error)

	CreateRegistration(ctx context.Context, memberID, classID int) (*ClassRegistration, error)
	RegistrationExists(ctx context.Context, memberID, classID int) (bool, error)
	CountRegistrations(ctx context.Context, classID int) (int, error)
	ListClassesByMember(ctx context.Context, memberID int) ([]RegisteredClass, error)
}
