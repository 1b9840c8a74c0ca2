package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/globalpocket/backend/internal/models"
	"github.com/globalpocket/backend/internal/storage"
)

func TestBatchCommit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	account := &models.Account{Name: "Cash", Balance: dec("100")}
	if err := store.CreateAccount(ctx, "owner-1", account); err != nil {
		t.Fatalf("failed to create account: %v", err)
	}

	t.Run("queued writes are invisible before commit", func(t *testing.T) {
		batch := store.Batch()
		updated := *account
		updated.Balance = dec("150")
		batch.UpdateAccount("owner-1", &updated)
		batch.CreateTransaction("owner-1", &models.Transaction{
			AccountID:   account.ID,
			AccountName: account.Name,
			Amount:      dec("50"),
			Type:        models.TypeDeposit,
			Date:        time.Now().UTC(),
		})

		got, err := store.GetAccount(ctx, "owner-1", account.ID)
		if err != nil {
			t.Fatalf("failed to get account: %v", err)
		}
		if !got.Balance.Equal(dec("100")) {
			t.Errorf("balance changed to %s before commit", got.Balance)
		}

		if err := batch.Commit(ctx); err != nil {
			t.Fatalf("failed to commit: %v", err)
		}

		got, err = store.GetAccount(ctx, "owner-1", account.ID)
		if err != nil {
			t.Fatalf("failed to get account: %v", err)
		}
		if !got.Balance.Equal(dec("150")) {
			t.Errorf("got balance %s after commit, want 150", got.Balance)
		}
		txns, err := store.ListTransactions(ctx, "owner-1", 0)
		if err != nil {
			t.Fatalf("failed to list transactions: %v", err)
		}
		if len(txns) != 1 {
			t.Errorf("got %d transactions, want 1", len(txns))
		}
	})

	t.Run("create assigns ID at queue time", func(t *testing.T) {
		batch := store.Batch()
		created := &models.Account{Name: "Bank", Balance: dec("0")}
		batch.CreateAccount("owner-1", created)
		if created.ID == "" {
			t.Fatal("expected ID assigned when the create was queued")
		}
		if err := batch.Commit(ctx); err != nil {
			t.Fatalf("failed to commit: %v", err)
		}
		if _, err := store.GetAccount(ctx, "owner-1", created.ID); err != nil {
			t.Errorf("created account not found after commit: %v", err)
		}
	})

	t.Run("failed commit rolls back every write", func(t *testing.T) {
		batch := store.Batch()
		created := &models.Account{Name: "Doomed", Balance: dec("10")}
		batch.CreateAccount("owner-1", created)
		batch.CreateDebt("owner-1", &models.Debt{Name: "Doomed debt", Amount: dec("5")})
		// Updating an account that does not exist fails the whole batch.
		batch.UpdateAccount("owner-1", &models.Account{ID: "missing", Name: "x", Balance: dec("0")})

		err := batch.Commit(ctx)
		if !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("expected ErrNotFound from commit, got %v", err)
		}

		if _, err := store.GetAccount(ctx, "owner-1", created.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("account from failed batch is visible: %v", err)
		}
		debts, err := store.ListDebts(ctx, "owner-1")
		if err != nil {
			t.Fatalf("failed to list debts: %v", err)
		}
		if len(debts) != 0 {
			t.Errorf("debt from failed batch is visible: %+v", debts)
		}
	})

	t.Run("empty batch commits cleanly", func(t *testing.T) {
		if err := store.Batch().Commit(ctx); err != nil {
			t.Errorf("empty batch failed: %v", err)
		}
	})
}
