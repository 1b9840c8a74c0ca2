package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/globalpocket/backend/internal/models"
	"github.com/globalpocket/backend/internal/storage"
)

var _ storage.WriteBatch = (*writeBatch)(nil)

// writeBatch queues writes and commits them inside a single SQLite transaction,
// mirroring a document-store batch: every queued write persists or none do.
//
// IDs are assigned when a create is queued (not at commit), so the caller can
// hand the new records back before Commit, the same contract as pre-allocating
// a document reference.
type writeBatch struct {
	store *SQLiteStore
	ops   []func(ctx context.Context, tx *sql.Tx) error
}

// Batch starts a new empty write batch.
func (s *SQLiteStore) Batch() storage.WriteBatch {
	return &writeBatch{store: s}
}

// CreateAccount queues an account insert, assigning an ID if unset.
func (b *writeBatch) CreateAccount(ownerID string, account *models.Account) {
	if account.ID == "" {
		account.ID = uuid.New().String()
	}
	a := *account
	b.ops = append(b.ops, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, insertAccountSQL, a.ID, ownerID, a.Name, a.Balance); err != nil {
			return fmt.Errorf("failed to insert account: %w", err)
		}
		return nil
	})
}

// UpdateAccount queues an account overwrite. Commit fails with
// storage.ErrNotFound if the account vanished in the meantime, which rolls
// back every other queued write.
func (b *writeBatch) UpdateAccount(ownerID string, account *models.Account) {
	a := *account
	b.ops = append(b.ops, func(ctx context.Context, tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, updateAccountSQL, a.Name, a.Balance, a.ID, ownerID)
		if err != nil {
			return fmt.Errorf("failed to update account: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to update account: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("account %s: %w", a.ID, storage.ErrNotFound)
		}
		return nil
	})
}

// CreateDebt queues a debt insert, assigning an ID if unset.
func (b *writeBatch) CreateDebt(ownerID string, debt *models.Debt) {
	if debt.ID == "" {
		debt.ID = uuid.New().String()
	}
	d := *debt
	b.ops = append(b.ops, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, insertDebtSQL, d.ID, ownerID, d.Name, d.Amount, d.AccountID); err != nil {
			return fmt.Errorf("failed to insert debt: %w", err)
		}
		return nil
	})
}

// CreateTransaction queues a transaction insert, assigning an ID if unset.
func (b *writeBatch) CreateTransaction(ownerID string, txn *models.Transaction) {
	if txn.ID == "" {
		txn.ID = uuid.New().String()
	}
	t := *txn
	b.ops = append(b.ops, func(ctx context.Context, tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, insertTransactionSQL,
			t.ID, ownerID, t.AccountID, t.AccountName, t.Amount, t.Type, formatDate(t.Date), t.Description,
		)
		if err != nil {
			return fmt.Errorf("failed to insert transaction: %w", err)
		}
		return nil
	})
}

// Commit runs every queued write in one transaction.
func (b *writeBatch) Commit(ctx context.Context) error {
	tx, err := b.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, op := range b.ops {
		if err := op(ctx, tx); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit batch: %w", err)
	}

	return nil
}
