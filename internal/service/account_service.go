// Package service implements the application logic between the HTTP layer and
// the store. Services validate input, enforce the domain invariants, and never
// touch transport concerns.
package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/globalpocket/backend/internal/models"
	"github.com/globalpocket/backend/internal/storage"
)

// ErrNameRequired rejects records with an empty display name.
var ErrNameRequired = errors.New("name is required")

// AccountService manages the user's accounts.
type AccountService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewAccountService creates a new account service.
func NewAccountService(store storage.Store, logger *slog.Logger) *AccountService {
	return &AccountService{store: store, logger: logger}
}

// List returns all of the owner's accounts.
func (s *AccountService) List(ctx context.Context, ownerID string) ([]models.Account, error) {
	return s.store.ListAccounts(ctx, ownerID)
}

// Create adds a new account. The opening balance may be any signed value.
func (s *AccountService) Create(ctx context.Context, ownerID, name string, balance decimal.Decimal) (*models.Account, error) {
	if name == "" {
		return nil, ErrNameRequired
	}

	account := &models.Account{Name: name, Balance: balance}
	if err := s.store.CreateAccount(ctx, ownerID, account); err != nil {
		return nil, err
	}

	s.logger.Info("Account created", "account_id", account.ID, "name", account.Name)
	return account, nil
}

// Update overwrites an account's name and balance.
// Historical transactions keep the old name snapshot.
func (s *AccountService) Update(ctx context.Context, ownerID string, account *models.Account) error {
	if account.Name == "" {
		return ErrNameRequired
	}
	return s.store.UpdateAccount(ctx, ownerID, account)
}

// Delete removes an account, but only if no debt references it. The check is
// performed here, not in the storage layer, and failures surface as
// storage.ErrAccountHasDebts.
func (s *AccountService) Delete(ctx context.Context, ownerID, accountID string) error {
	count, err := s.store.CountDebtsForAccount(ctx, ownerID, accountID)
	if err != nil {
		return err
	}
	if count > 0 {
		return storage.ErrAccountHasDebts
	}

	if err := s.store.DeleteAccount(ctx, ownerID, accountID); err != nil {
		return err
	}

	s.logger.Info("Account deleted", "account_id", accountID)
	return nil
}
