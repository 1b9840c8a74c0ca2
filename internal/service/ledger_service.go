package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/globalpocket/backend/internal/metrics"
	"github.com/globalpocket/backend/internal/models"
	"github.com/globalpocket/backend/internal/storage"
)

var (
	// ErrInvalidAmount rejects non-positive amounts before any I/O happens.
	ErrInvalidAmount = errors.New("amount must be a positive number")

	// ErrInvalidType rejects unknown transaction types.
	ErrInvalidType = errors.New("transaction type must be deposit or withdrawal")
)

// LedgerService pairs every balance change with a transaction history record.
//
// The pairing is the one compound operation in the system: the account update
// and the transaction insert commit as a single atomic batch, so either both
// persist or neither does. There is no compensating-write logic anywhere;
// the batch primitive is the only atomicity mechanism.
//
// Two concurrent RecordTransaction calls for the same account are NOT
// serialized against each other; each call is atomic on its own but the
// read-modify-write pairs can interleave.
type LedgerService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(store storage.Store, logger *slog.Logger) *LedgerService {
	return &LedgerService{store: store, logger: logger}
}

// RecordTransaction adjusts an account balance and appends the matching
// transaction record atomically. It returns the updated account and the
// created transaction (with its store-assigned ID).
//
// Deposits add the amount, withdrawals subtract it. No floor check is applied:
// balances may go negative.
func (s *LedgerService) RecordTransaction(
	ctx context.Context,
	ownerID, accountID string,
	amount decimal.Decimal,
	txnType models.TransactionType,
	description string,
) (*models.Account, *models.Transaction, error) {
	// Validation happens before any I/O.
	if !txnType.Valid() {
		return nil, nil, ErrInvalidType
	}
	if amount.Sign() <= 0 {
		return nil, nil, ErrInvalidAmount
	}

	account, err := s.store.GetAccount(ctx, ownerID, accountID)
	if err != nil {
		return nil, nil, err
	}

	updated := *account
	if txnType == models.TypeDeposit {
		updated.Balance = account.Balance.Add(amount)
	} else {
		updated.Balance = account.Balance.Sub(amount)
	}

	// AccountName is the pre-operation snapshot; later renames never touch it.
	txn := &models.Transaction{
		AccountID:   account.ID,
		AccountName: account.Name,
		Amount:      amount,
		Type:        txnType,
		Date:        time.Now().UTC(),
		Description: description,
	}

	batch := s.store.Batch()
	batch.UpdateAccount(ownerID, &updated)
	batch.CreateTransaction(ownerID, txn)
	if err := batch.Commit(ctx); err != nil {
		s.logger.Error("Balance change commit failed",
			"account_id", accountID,
			"type", txnType,
			"error", err,
		)
		return nil, nil, err
	}

	metrics.TransactionsRecorded.WithLabelValues(string(txnType)).Inc()
	s.logger.Info("Transaction recorded",
		"account_id", account.ID,
		"transaction_id", txn.ID,
		"type", txnType,
		"amount", amount.String(),
	)

	return &updated, txn, nil
}

// ListTransactions returns the owner's transaction history, newest first.
func (s *LedgerService) ListTransactions(ctx context.Context, ownerID string, limit int) ([]models.Transaction, error) {
	return s.store.ListTransactions(ctx, ownerID, limit)
}

// DeleteTransaction removes a history record. The account balance is never
// adjusted: deleting a transaction is historical cleanup only.
func (s *LedgerService) DeleteTransaction(ctx context.Context, ownerID, transactionID string) error {
	return s.store.DeleteTransaction(ctx, ownerID, transactionID)
}
