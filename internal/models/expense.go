package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthlyExpense is a recurring monthly cost the user tracks and ticks off.
// It is independent of accounts and debts: toggling IsPaid does not move money.
type MonthlyExpense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string `json:"id"`

	// Description is the display label (e.g. "Rent", "Electricity").
	Description string `json:"description"`

	// Amount is the expense amount.
	Amount decimal.Decimal `json:"amount"`

	// Date is the due or reference date for the expense.
	Date time.Time `json:"date"`

	// IsPaid marks whether the expense has been paid this cycle.
	IsPaid bool `json:"isPaid"`
}
