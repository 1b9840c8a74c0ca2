// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/globalpocket/backend/internal/models"
)

var (
	// ErrNotFound is returned when the target record does not exist
	// (or belongs to a different owner, which is indistinguishable by design).
	ErrNotFound = errors.New("not found")

	// ErrAccountHasDebts is returned when deleting an account that at least
	// one debt still references.
	ErrAccountHasDebts = errors.New("account has associated debts")
)

// Store defines per-owner access to the finance collections.
// Every operation is scoped by ownerID: one owner can never read or write
// another owner's records. This abstraction allows swapping storage backends
// (SQLite, PostgreSQL, etc.) without changing the service layer.
type Store interface {
	// Users. GetUserByEmail and GetUserByID return (nil, nil) when no user matches.
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	UpdateUserPassword(ctx context.Context, userID, passwordHash string) error

	// Password reset tokens. ConsumePasswordReset deletes the token and returns
	// the user it was issued for; expired or unknown tokens yield ErrNotFound.
	CreatePasswordReset(ctx context.Context, token, userID string, expiresAt int64) error
	ConsumePasswordReset(ctx context.Context, token string) (userID string, err error)

	// Accounts.
	ListAccounts(ctx context.Context, ownerID string) ([]models.Account, error)
	GetAccount(ctx context.Context, ownerID, accountID string) (*models.Account, error)
	CreateAccount(ctx context.Context, ownerID string, account *models.Account) error
	UpdateAccount(ctx context.Context, ownerID string, account *models.Account) error
	DeleteAccount(ctx context.Context, ownerID, accountID string) error
	// CountDebtsForAccount supports the referential-integrity check performed
	// by the service layer before an account delete.
	CountDebtsForAccount(ctx context.Context, ownerID, accountID string) (int, error)

	// Debts.
	ListDebts(ctx context.Context, ownerID string) ([]models.Debt, error)
	CreateDebt(ctx context.Context, ownerID string, debt *models.Debt) error
	UpdateDebt(ctx context.Context, ownerID string, debt *models.Debt) error
	DeleteDebt(ctx context.Context, ownerID, debtID string) error

	// Transactions. Creation happens only through a WriteBatch, paired with the
	// account update it records. ListTransactions returns newest first; a
	// non-positive limit applies the default of 50.
	ListTransactions(ctx context.Context, ownerID string, limit int) ([]models.Transaction, error)
	DeleteTransaction(ctx context.Context, ownerID, transactionID string) error

	// Monthly expenses.
	ListMonthlyExpenses(ctx context.Context, ownerID string) ([]models.MonthlyExpense, error)
	CreateMonthlyExpense(ctx context.Context, ownerID string, expense *models.MonthlyExpense) error
	UpdateMonthlyExpense(ctx context.Context, ownerID string, expense *models.MonthlyExpense) error
	DeleteMonthlyExpense(ctx context.Context, ownerID, expenseID string) error

	// Crypto holdings.
	ListCryptoHoldings(ctx context.Context, ownerID string) ([]models.CryptoHolding, error)
	CreateCryptoHolding(ctx context.Context, ownerID string, holding *models.CryptoHolding) error
	UpdateCryptoHolding(ctx context.Context, ownerID string, holding *models.CryptoHolding) error
	DeleteCryptoHolding(ctx context.Context, ownerID, holdingID string) error

	// Idempotency markers.
	IsMigrationDone(ctx context.Context, ownerID string) (bool, error)
	SetMigrationDone(ctx context.Context, ownerID string) error
	IsDemoRequestSent(ctx context.Context, email string) (bool, error)
	SetDemoRequestSent(ctx context.Context, email string) error

	// Batch starts a new write batch. Queued writes commit as a single atomic
	// unit: all of them persist or none do.
	Batch() WriteBatch

	// Close releases any resources held by the store.
	Close() error
}

// WriteBatch queues writes for a single atomic commit.
//
// IDs are assigned when a create is queued, so callers can reference the new
// records (and return them) before Commit. Nothing touches the database until
// Commit; after a failed Commit no queued write is visible.
type WriteBatch interface {
	CreateAccount(ownerID string, account *models.Account)
	UpdateAccount(ownerID string, account *models.Account)
	CreateDebt(ownerID string, debt *models.Debt)
	CreateTransaction(ownerID string, txn *models.Transaction)
	Commit(ctx context.Context) error
}
