package sqlite

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/globalpocket/backend/internal/models"
	"github.com/globalpocket/backend/internal/storage"
)

// ListMonthlyExpenses returns the owner's expenses, newest first.
func (s *SQLiteStore) ListMonthlyExpenses(ctx context.Context, ownerID string) ([]models.MonthlyExpense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, description, amount, date, is_paid
		 FROM monthly_expenses WHERE owner_id = ? ORDER BY date DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list monthly expenses: %w", err)
	}
	defer rows.Close()

	var expenses []models.MonthlyExpense
	for rows.Next() {
		var (
			expense models.MonthlyExpense
			rawDate string
		)
		if err := rows.Scan(&expense.ID, &expense.Description, &expense.Amount, &rawDate, &expense.IsPaid); err != nil {
			return nil, fmt.Errorf("failed to scan monthly expense: %w", err)
		}
		if expense.Date, err = parseDate(rawDate); err != nil {
			return nil, err
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate monthly expenses: %w", err)
	}

	return expenses, nil
}

// CreateMonthlyExpense persists a new expense, assigning an ID if unset.
func (s *SQLiteStore) CreateMonthlyExpense(ctx context.Context, ownerID string, expense *models.MonthlyExpense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO monthly_expenses (id, owner_id, description, amount, date, is_paid) VALUES (?, ?, ?, ?, ?, ?)",
		expense.ID, ownerID, expense.Description, expense.Amount, formatDate(expense.Date), expense.IsPaid,
	)
	if err != nil {
		return fmt.Errorf("failed to create monthly expense: %w", err)
	}

	return nil
}

// UpdateMonthlyExpense overwrites an existing expense (including its paid flag).
func (s *SQLiteStore) UpdateMonthlyExpense(ctx context.Context, ownerID string, expense *models.MonthlyExpense) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE monthly_expenses SET description = ?, amount = ?, date = ?, is_paid = ? WHERE id = ? AND owner_id = ?",
		expense.Description, expense.Amount, formatDate(expense.Date), expense.IsPaid, expense.ID, ownerID,
	)
	if err != nil {
		return fmt.Errorf("failed to update monthly expense: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update monthly expense: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("monthly expense %s: %w", expense.ID, storage.ErrNotFound)
	}

	return nil
}

// DeleteMonthlyExpense removes an expense.
func (s *SQLiteStore) DeleteMonthlyExpense(ctx context.Context, ownerID, expenseID string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM monthly_expenses WHERE id = ? AND owner_id = ?",
		expenseID, ownerID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete monthly expense: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete monthly expense: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("monthly expense %s: %w", expenseID, storage.ErrNotFound)
	}

	return nil
}
