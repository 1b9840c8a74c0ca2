package service

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/globalpocket/backend/internal/models"
	"github.com/globalpocket/backend/internal/storage"
)

// LocalAccount is an account from the client's pre-authentication local cache.
// Its ID is the client-local identifier and is dropped during import.
type LocalAccount struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
}

// LocalDebt is a debt from the client's pre-authentication local cache.
// AccountID references a LocalAccount.ID from the same cache.
type LocalDebt struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
	AccountID string          `json:"accountId"`
}

// ImportResult summarizes a migration run.
type ImportResult struct {
	// AlreadyDone is true when the migration marker was set and nothing ran.
	AlreadyDone bool `json:"alreadyDone"`

	// Accounts and Debts count the records created.
	Accounts int `json:"accounts"`
	Debts    int `json:"debts"`

	// DroppedDebts counts local debts whose account reference could not be
	// remapped. These are silently dropped; see Import.
	DroppedDebts int `json:"droppedDebts"`
}

// MigrationService imports a client's pre-authentication local data into the
// owner-scoped store, once per owner.
type MigrationService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewMigrationService creates a new migration service.
func NewMigrationService(store storage.Store, logger *slog.Logger) *MigrationService {
	return &MigrationService{store: store, logger: logger}
}

// Import transfers locally-cached accounts and debts into the store.
//
// Each local account becomes a store account with a fresh store-assigned ID;
// local debts have their account reference remapped across that ID change.
// A debt whose reference does not resolve (dangling, or never set) is silently
// dropped. That lossy edge case is known and kept as-is.
//
// All creates commit in a single atomic batch. The migration-done marker is
// set only after the batch succeeds, so a failed run leaves no partial state
// and is retried from scratch on the next attempt. A crash in the narrow
// window between batch commit and marker write would re-import on retry; that
// gap is inherited from the source design and accepted.
func (s *MigrationService) Import(ctx context.Context, ownerID string, accounts []LocalAccount, debts []LocalDebt) (*ImportResult, error) {
	done, err := s.store.IsMigrationDone(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if done {
		return &ImportResult{AlreadyDone: true}, nil
	}

	// Nothing cached: nothing to do, and the marker stays unset so a later
	// login with cached data still migrates.
	if len(accounts) == 0 && len(debts) == 0 {
		return &ImportResult{}, nil
	}

	batch := s.store.Batch()
	result := &ImportResult{}

	// Old local ID -> new store-assigned ID.
	idMap := make(map[string]string, len(accounts))
	for _, local := range accounts {
		account := &models.Account{Name: local.Name, Balance: local.Balance}
		batch.CreateAccount(ownerID, account)
		idMap[local.ID] = account.ID
		result.Accounts++
	}

	for _, local := range debts {
		newAccountID, ok := idMap[local.AccountID]
		if !ok {
			result.DroppedDebts++
			continue
		}
		batch.CreateDebt(ownerID, &models.Debt{
			Name:      local.Name,
			Amount:    local.Amount,
			AccountID: newAccountID,
		})
		result.Debts++
	}

	if err := batch.Commit(ctx); err != nil {
		s.logger.Error("Migration batch failed", "owner_id", ownerID, "error", err)
		return nil, err
	}

	if err := s.store.SetMigrationDone(ctx, ownerID); err != nil {
		return nil, err
	}

	s.logger.Info("Local data migrated",
		"owner_id", ownerID,
		"accounts", result.Accounts,
		"debts", result.Debts,
		"dropped_debts", result.DroppedDebts,
	)

	return result, nil
}
