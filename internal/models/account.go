package models

import "github.com/shopspring/decimal"

// Account represents a money account (cash, bank, card) owned by a user.
type Account struct {
	// ID is the unique identifier for the account (UUID format),
	// assigned by the store on creation.
	ID string `json:"id"`

	// Name is the display label for the account.
	Name string `json:"name"`

	// Balance is the current signed balance. Negative balances are allowed.
	Balance decimal.Decimal `json:"balance"`
}
