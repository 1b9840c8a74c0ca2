package service

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/globalpocket/backend/internal/models"
	"github.com/globalpocket/backend/internal/storage"
	"github.com/globalpocket/backend/internal/storage/sqlite"
)

func newTestStore(t *testing.T) storage.Store {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestRecordTransaction(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	svc := NewLedgerService(store, testLogger())

	account := &models.Account{Name: "Cash", Balance: dec("100")}
	require.NoError(t, store.CreateAccount(ctx, "owner-1", account))

	t.Run("deposit adds to the balance", func(t *testing.T) {
		updated, txn, err := svc.RecordTransaction(ctx, "owner-1", account.ID, dec("50"), models.TypeDeposit, "salary")
		require.NoError(t, err)

		assert.True(t, updated.Balance.Equal(dec("150")), "got balance %s", updated.Balance)
		assert.Equal(t, account.ID, txn.AccountID)
		assert.Equal(t, "Cash", txn.AccountName)
		assert.Equal(t, models.TypeDeposit, txn.Type)
		assert.True(t, txn.Amount.Equal(dec("50")))
		assert.NotEmpty(t, txn.ID)

		stored, err := store.GetAccount(ctx, "owner-1", account.ID)
		require.NoError(t, err)
		assert.True(t, stored.Balance.Equal(dec("150")))
	})

	t.Run("withdrawal subtracts and may go negative", func(t *testing.T) {
		updated, _, err := svc.RecordTransaction(ctx, "owner-1", account.ID, dec("200"), models.TypeWithdrawal, "")
		require.NoError(t, err)
		assert.True(t, updated.Balance.Equal(dec("-50")), "got balance %s", updated.Balance)
	})

	t.Run("every change leaves exactly one history record", func(t *testing.T) {
		txns, err := svc.ListTransactions(ctx, "owner-1", 0)
		require.NoError(t, err)
		assert.Len(t, txns, 2)
		// Newest first.
		assert.Equal(t, models.TypeWithdrawal, txns[0].Type)
		assert.Equal(t, models.TypeDeposit, txns[1].Type)
	})

	t.Run("rejects zero and negative amounts without writing", func(t *testing.T) {
		before, err := svc.ListTransactions(ctx, "owner-1", 0)
		require.NoError(t, err)

		_, _, err = svc.RecordTransaction(ctx, "owner-1", account.ID, dec("0"), models.TypeDeposit, "")
		assert.ErrorIs(t, err, ErrInvalidAmount)
		_, _, err = svc.RecordTransaction(ctx, "owner-1", account.ID, dec("-10"), models.TypeDeposit, "")
		assert.ErrorIs(t, err, ErrInvalidAmount)

		after, err := svc.ListTransactions(ctx, "owner-1", 0)
		require.NoError(t, err)
		assert.Len(t, after, len(before), "rejected input must not write history")
	})

	t.Run("rejects unknown transaction type", func(t *testing.T) {
		_, _, err := svc.RecordTransaction(ctx, "owner-1", account.ID, dec("10"), models.TransactionType("transfer"), "")
		assert.ErrorIs(t, err, ErrInvalidType)
	})

	t.Run("unknown account", func(t *testing.T) {
		_, _, err := svc.RecordTransaction(ctx, "owner-1", "missing", dec("10"), models.TypeDeposit, "")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("account name snapshot survives renames", func(t *testing.T) {
		renamed := &models.Account{ID: account.ID, Name: "Wallet", Balance: dec("-50")}
		require.NoError(t, store.UpdateAccount(ctx, "owner-1", renamed))

		_, txn, err := svc.RecordTransaction(ctx, "owner-1", account.ID, dec("5"), models.TypeDeposit, "")
		require.NoError(t, err)
		assert.Equal(t, "Wallet", txn.AccountName)

		txns, err := svc.ListTransactions(ctx, "owner-1", 0)
		require.NoError(t, err)
		// The oldest record still carries the name from before the rename.
		assert.Equal(t, "Cash", txns[len(txns)-1].AccountName)
	})
}

func TestDeleteTransaction(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	svc := NewLedgerService(store, testLogger())

	account := &models.Account{Name: "Cash", Balance: dec("0")}
	require.NoError(t, store.CreateAccount(ctx, "owner-1", account))

	_, txn, err := svc.RecordTransaction(ctx, "owner-1", account.ID, dec("30"), models.TypeDeposit, "")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTransaction(ctx, "owner-1", txn.ID))

	// Deleting history never adjusts the balance.
	stored, err := store.GetAccount(ctx, "owner-1", account.ID)
	require.NoError(t, err)
	assert.True(t, stored.Balance.Equal(dec("30")), "got balance %s", stored.Balance)

	txns, err := svc.ListTransactions(ctx, "owner-1", 0)
	require.NoError(t, err)
	assert.Empty(t, txns)
}
