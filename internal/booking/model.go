package booking

import (
	"time"

	"github.com/shopspring/decimal"

	"gymcore/internal/billing"
)

// PrivateSession is a one-to-one session. Member and trainer never change
// after booking; reschedule moves room and time only.
type PrivateSession struct {
	ID        int             `db:"id" json:"id"`
	MemberID  int             `db:"member_id" json:"member_id"`
	TrainerID int             `db:"trainer_id" json:"trainer_id"`
	RoomID    int             `db:"room_id" json:"room_id"`
	StartTime time.Time       `db:"start_time" json:"start_time"`
	EndTime   time.Time       `db:"end_time" json:"end_time"`
	Price     decimal.Decimal `db:"price" json:"price"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"`
}

type ClassSchedule struct {
	ID        int             `db:"id" json:"id"`
	Name      string          `db:"name" json:"name"`
	TrainerID int             `db:"trainer_id" json:"trainer_id"`
	RoomID    int             `db:"room_id" json:"room_id"`
	StartTime time.Time       `db:"start_time" json:"start_time"`
	EndTime   time.Time       `db:"end_time" json:"end_time"`
	Capacity  int             `db:"capacity" json:"capacity"`
	Price     decimal.Decimal `db:"price" json:"price"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"`
}

type ClassRegistration struct {
	ID        int       `db:"id" json:"id"`
	MemberID  int       `db:"member_id" json:"member_id"`
	ClassID   int       `db:"class_id" json:"class_id"`
	Attended  bool      `db:"attended" json:"attended"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ClassWithCount is a class with its current number of registrations.
type ClassWithCount struct {
	ClassSchedule
	Registered int `db:"registered" json:"registered"`
}

func (c ClassWithCount) SeatsLeft() int {
	if left := c.Capacity - c.Registered; left > 0 {
		return left
	}
	return 0
}

// RegisteredClass is a class seen from one member's registration.
type RegisteredClass struct {
	ClassSchedule
	Attended bool `db:"attended" json:"attended"`
}

type SessionBooking struct {
	Session     *PrivateSession `json:"session"`
	BillingItem *billing.Item   `json:"billing_item"`
}

type Registration struct {
	Registration *ClassRegistration `json:"registration"`
	BillingItem  *billing.Item      `json:"billing_item"`
}

type BookSessionRequest struct {
	MemberID  int              `json:"member_id" binding:"required" example:"1"`
	TrainerID int              `json:"trainer_id" binding:"required" example:"2"`
	RoomID    int              `json:"room_id" binding:"required" example:"3"`
	StartTime time.Time        `json:"start_time" binding:"required" example:"2025-12-01T09:00:00Z"`
	EndTime   time.Time        `json:"end_time" binding:"required" example:"2025-12-01T10:00:00Z"`
	Price     *decimal.Decimal `json:"price,omitempty" example:"60.00"`
}

// RescheduleSessionRequest leaves unset fields at their current values.
type RescheduleSessionRequest struct {
	RoomID    *int       `json:"room_id,omitempty"`
	StartTime *time.Time `json:"start_time,omitempty"`
	EndTime   *time.Time `json:"end_time,omitempty"`
}

// SaveClassRequest creates or updates a class. The class always runs for
// one hour from the top of StartTime's hour; EndTime is accepted and ignored.
type SaveClassRequest struct {
	TrainerID int             `json:"trainer_id" binding:"required" example:"2"`
	RoomID    int             `json:"room_id" binding:"required" example:"3"`
	Name      string          `json:"name" binding:"required" example:"Morning Yoga"`
	Capacity  int             `json:"capacity" binding:"required,min=1" example:"12"`
	StartTime time.Time       `json:"start_time" binding:"required" example:"2025-12-02T10:00:00Z"`
	EndTime   *time.Time      `json:"end_time,omitempty"`
	Price     decimal.Decimal `json:"price" example:"15.00"`
}

type RegisterRequest struct {
	MemberID int `json:"member_id" binding:"required" example:"1"`
}

type ReassignRoomRequest struct {
	RoomID    int        `json:"room_id" binding:"required" example:"4"`
	StartTime *time.Time `json:"start_time,omitempty"`
	EndTime   *time.Time `json:"end_time,omitempty"`
}

type RescheduleClassRequest struct {
	RoomID    int        `json:"room_id" binding:"required" example:"4"`
	StartTime time.Time  `json:"start_time" binding:"required" example:"2025-12-02T11:00:00Z"`
	EndTime   *time.Time `json:"end_time,omitempty"`
}
