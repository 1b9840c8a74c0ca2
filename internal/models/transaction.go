package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the direction of a balance change.
type TransactionType string

const (
	// TypeDeposit adds the amount to the account balance.
	TypeDeposit TransactionType = "deposit"
	// TypeWithdrawal subtracts the amount from the account balance.
	TypeWithdrawal TransactionType = "withdrawal"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	return t == TypeDeposit || t == TypeWithdrawal
}

// Transaction is the history record of a single balance change.
//
// Transactions are created only as the paired half of a balance update: every
// balance change produces exactly one transaction, committed atomically with
// the account update. Deleting a transaction is historical cleanup only and
// never changes the account balance.
type Transaction struct {
	// ID is the unique identifier for the transaction (UUID format).
	ID string `json:"id"`

	// AccountID references the account that was adjusted.
	AccountID string `json:"accountId"`

	// AccountName is a snapshot of the account's name at write time.
	// It is never updated if the account is later renamed.
	AccountName string `json:"accountName"`

	// Amount is the unsigned magnitude of the change; Type carries the sign.
	Amount decimal.Decimal `json:"amount"`

	// Type is deposit or withdrawal.
	Type TransactionType `json:"type"`

	// Date is the creation timestamp. Immutable.
	Date time.Time `json:"date"`

	// Description is an optional user-supplied note.
	Description string `json:"description,omitempty"`
}
