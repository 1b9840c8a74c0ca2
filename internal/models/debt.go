package models

import "github.com/shopspring/decimal"

// Debt represents money the user owes.
//
// AccountID is a weak reference: it associates the debt with an account for
// display purposes but does not affect that account's balance. Deleting a debt
// never cascades. The reverse direction is enforced, though: an account cannot
// be deleted while a debt still references it.
type Debt struct {
	// ID is the unique identifier for the debt (UUID format).
	ID string `json:"id"`

	// Name is the display label for the debt (e.g. "Car loan").
	Name string `json:"name"`

	// Amount is the positive amount owed.
	Amount decimal.Decimal `json:"amount"`

	// AccountID optionally references the associated Account.
	// Empty when the debt is not tied to any account.
	AccountID string `json:"accountId,omitempty"`
}
