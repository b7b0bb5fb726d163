package gym

import (
	"time"

	"github.com/shopspring/decimal"
)

type Member struct {
	ID           int                 `db:"id" json:"id"`
	Name         string              `db:"name" json:"name"`
	Email        string              `db:"email" json:"email"`
	TargetWeight decimal.NullDecimal `db:"target_weight" json:"target_weight"`
	Notes        *string             `db:"notes" json:"notes,omitempty"`
	CreatedAt    time.Time           `db:"created_at" json:"created_at"`
}

type Trainer struct {
	ID        int       `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Room.PrimaryTrainerID is a soft ownership hint; it does not restrict who
// may book the room.
type Room struct {
	ID               int       `db:"id" json:"id"`
	Name             string    `db:"name" json:"name"`
	Capacity         int       `db:"capacity" json:"capacity"`
	PrimaryTrainerID *int      `db:"primary_trainer_id" json:"primary_trainer_id,omitempty"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
}

type HealthMetric struct {
	ID         int                 `db:"id" json:"id"`
	MemberID   int                 `db:"member_id" json:"member_id"`
	RecordedAt time.Time           `db:"recorded_at" json:"recorded_at"`
	Weight     decimal.NullDecimal `db:"weight" json:"weight"`
	HeartRate  *int                `db:"heart_rate" json:"heart_rate,omitempty"`
}

type CreateMemberRequest struct {
	Name         string           `json:"name" binding:"required"`
	Email        string           `json:"email" binding:"required,email"`
	TargetWeight *decimal.Decimal `json:"target_weight"`
	Notes        *string          `json:"notes"`
}

type CreateTrainerRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

type CreateRoomRequest struct {
	Name             string `json:"name" binding:"required"`
	Capacity         int    `json:"capacity" binding:"required,min=1"`
	PrimaryTrainerID *int   `json:"primary_trainer_id"`
}

type LogHealthMetricRequest struct {
	RecordedAt string           `json:"recorded_at" binding:"required"`
	Weight     *decimal.Decimal `json:"weight"`
	HeartRate  *int             `json:"heart_rate" binding:"omitempty,min=1,max=300"`
}

// UpdateMemberRequest changes only the fields that are present.
type UpdateMemberRequest struct {
	Name         *string          `json:"name" binding:"omitempty,min=1"`
	Email        *string          `json:"email" binding:"omitempty,email"`
	TargetWeight *decimal.Decimal `json:"target_weight"`
	Notes        *string          `json:"notes"`
}

// MemberLookup is a member a trainer works with, with their goal and most
// recent health metric.
type MemberLookup struct {
	Member
	LatestMetric *HealthMetric `json:"latest_metric"`
}
