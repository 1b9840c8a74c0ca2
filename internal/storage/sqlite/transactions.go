package sqlite

import (
	"context"
	"fmt"

	"github.com/globalpocket/backend/internal/models"
	"github.com/globalpocket/backend/internal/storage"
)

const insertTransactionSQL = `INSERT INTO transactions
	(id, owner_id, account_id, account_name, amount, type, date, description)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

// defaultTransactionLimit caps history listings when the caller does not ask
// for a specific page size.
const defaultTransactionLimit = 50

// ListTransactions returns the owner's transactions, newest first.
// A non-positive limit applies defaultTransactionLimit.
func (s *SQLiteStore) ListTransactions(ctx context.Context, ownerID string, limit int) ([]models.Transaction, error) {
	if limit <= 0 {
		limit = defaultTransactionLimit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, account_id, account_name, amount, type, date, description
		 FROM transactions WHERE owner_id = ? ORDER BY date DESC LIMIT ?`,
		ownerID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var txns []models.Transaction
	for rows.Next() {
		var (
			txn     models.Transaction
			rawDate string
		)
		if err := rows.Scan(
			&txn.ID,
			&txn.AccountID,
			&txn.AccountName,
			&txn.Amount,
			&txn.Type,
			&rawDate,
			&txn.Description,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		if txn.Date, err = parseDate(rawDate); err != nil {
			return nil, err
		}
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	return txns, nil
}

// DeleteTransaction removes a transaction from the history.
// The account balance is untouched: transaction deletion is purely historical cleanup.
func (s *SQLiteStore) DeleteTransaction(ctx context.Context, ownerID, transactionID string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM transactions WHERE id = ? AND owner_id = ?",
		transactionID, ownerID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("transaction %s: %w", transactionID, storage.ErrNotFound)
	}

	return nil
}
