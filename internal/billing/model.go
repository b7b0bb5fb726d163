package billing

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusCancelled Status = "cancelled"
)

// Item is one charge. Exactly one of PrivateSessionID and ClassID is set.
type Item struct {
	ID               int             `db:"id" json:"id"`
	MemberID         int             `db:"member_id" json:"member_id"`
	TrainerID        *int            `db:"trainer_id" json:"trainer_id,omitempty"`
	PrivateSessionID *int            `db:"private_session_id" json:"private_session_id,omitempty"`
	ClassID          *int            `db:"class_id" json:"class_id,omitempty"`
	Description      string          `db:"description" json:"description"`
	Amount           decimal.Decimal `db:"amount" json:"amount"`
	Status           Status          `db:"status" json:"status"`
	CreatedAt        time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time       `db:"updated_at" json:"updated_at"`
}

// Total sums the amounts of items.
func Total(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Amount)
	}
	return total
}
