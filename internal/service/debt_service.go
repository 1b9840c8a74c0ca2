package service

import (
	"context"
	"log/slog"

	"github.com/globalpocket/backend/internal/models"
	"github.com/globalpocket/backend/internal/storage"
)

// DebtService manages the user's debts.
// Debts are independent of the ledger: creating, editing, or deleting a debt
// never moves money on any account.
type DebtService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewDebtService creates a new debt service.
func NewDebtService(store storage.Store, logger *slog.Logger) *DebtService {
	return &DebtService{store: store, logger: logger}
}

// List returns all of the owner's debts.
func (s *DebtService) List(ctx context.Context, ownerID string) ([]models.Debt, error) {
	return s.store.ListDebts(ctx, ownerID)
}

// Create adds a new debt. AccountID is optional; when set it must reference
// one of the owner's accounts.
func (s *DebtService) Create(ctx context.Context, ownerID string, debt *models.Debt) (*models.Debt, error) {
	if debt.Name == "" {
		return nil, ErrNameRequired
	}
	if debt.Amount.Sign() <= 0 {
		return nil, ErrInvalidAmount
	}
	if debt.AccountID != "" {
		if _, err := s.store.GetAccount(ctx, ownerID, debt.AccountID); err != nil {
			return nil, err
		}
	}

	if err := s.store.CreateDebt(ctx, ownerID, debt); err != nil {
		return nil, err
	}

	s.logger.Info("Debt created", "debt_id", debt.ID, "name", debt.Name)
	return debt, nil
}

// Update overwrites an existing debt.
func (s *DebtService) Update(ctx context.Context, ownerID string, debt *models.Debt) error {
	if debt.Name == "" {
		return ErrNameRequired
	}
	if debt.Amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	return s.store.UpdateDebt(ctx, ownerID, debt)
}

// Delete removes a debt. Never cascades.
func (s *DebtService) Delete(ctx context.Context, ownerID, debtID string) error {
	return s.store.DeleteDebt(ctx, ownerID, debtID)
}
