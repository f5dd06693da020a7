package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense is a cost booked against a cruise. Amount is expected to be
// non-negative but this is not enforced; imported data is taken as-is.
type Expense struct {
	ID          uuid.UUID       `json:"id"`
	CruiseID    uuid.UUID       `json:"cruise_id"`
	Category    ExpenseCategory `json:"category"`
	Description string          `json:"description,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	ExpenseDate *time.Time      `json:"expense_date,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}
