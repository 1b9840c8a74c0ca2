package service

import (
	"context"
	"log/slog"

	"github.com/globalpocket/backend/internal/models"
	"github.com/globalpocket/backend/internal/storage"
)

// ExpenseService manages the user's monthly expenses.
type ExpenseService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewExpenseService creates a new expense service.
func NewExpenseService(store storage.Store, logger *slog.Logger) *ExpenseService {
	return &ExpenseService{store: store, logger: logger}
}

// List returns all of the owner's monthly expenses, newest first.
func (s *ExpenseService) List(ctx context.Context, ownerID string) ([]models.MonthlyExpense, error) {
	return s.store.ListMonthlyExpenses(ctx, ownerID)
}

// Create adds a new monthly expense.
func (s *ExpenseService) Create(ctx context.Context, ownerID string, expense *models.MonthlyExpense) (*models.MonthlyExpense, error) {
	if expense.Description == "" {
		return nil, ErrNameRequired
	}
	if expense.Amount.Sign() <= 0 {
		return nil, ErrInvalidAmount
	}

	if err := s.store.CreateMonthlyExpense(ctx, ownerID, expense); err != nil {
		return nil, err
	}

	s.logger.Info("Monthly expense created", "expense_id", expense.ID)
	return expense, nil
}

// Update overwrites an existing expense, including its paid flag.
// Marking an expense paid does not touch any account balance.
func (s *ExpenseService) Update(ctx context.Context, ownerID string, expense *models.MonthlyExpense) error {
	if expense.Description == "" {
		return ErrNameRequired
	}
	if expense.Amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	return s.store.UpdateMonthlyExpense(ctx, ownerID, expense)
}

// Delete removes an expense.
func (s *ExpenseService) Delete(ctx context.Context, ownerID, expenseID string) error {
	return s.store.DeleteMonthlyExpense(ctx, ownerID, expenseID)
}
