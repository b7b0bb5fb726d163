package dashboard

import (
	"github.com/shopspring/decimal"

	"gymcore/internal/availability"
	"gymcore/internal/billing"
	"gymcore/internal/booking"
	"gymcore/internal/gym"
)

type MemberDashboard struct {
	Member              *gym.Member               `json:"member"`
	LatestMetric        *gym.HealthMetric         `json:"latest_metric"`
	PastClassesAttended int                       `json:"past_classes_attended"`
	UpcomingSessions    []booking.PrivateSession  `json:"upcoming_sessions"`
	UpcomingClasses     []booking.RegisteredClass `json:"upcoming_classes"`
	PendingBills        []billing.Item            `json:"pending_bills"`
	PendingTotal        decimal.Decimal           `json:"pending_total"`
}

type TrainerSchedule struct {
	Trainer          *gym.Trainer             `json:"trainer"`
	UpcomingSessions []booking.PrivateSession `json:"upcoming_sessions"`
	UpcomingClasses  []booking.ClassWithCount `json:"upcoming_classes"`
	Availability     []availability.Window    `json:"availability"`
	BillingItems     []billing.Item           `json:"billing_items"`
}

type ClassListing struct {
	booking.ClassWithCount
	SeatsLeft int `json:"seats_left"`
}
