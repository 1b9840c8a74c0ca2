package sqlite

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/globalpocket/backend/internal/models"
	"github.com/globalpocket/backend/internal/storage"
)

const insertDebtSQL = "INSERT INTO debts (id, owner_id, name, amount, account_id) VALUES (?, ?, ?, ?, ?)"

// ListDebts returns all debts for the owner, ordered by name.
func (s *SQLiteStore) ListDebts(ctx context.Context, ownerID string) ([]models.Debt, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, amount, account_id FROM debts WHERE owner_id = ? ORDER BY name",
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list debts: %w", err)
	}
	defer rows.Close()

	var debts []models.Debt
	for rows.Next() {
		var debt models.Debt
		if err := rows.Scan(&debt.ID, &debt.Name, &debt.Amount, &debt.AccountID); err != nil {
			return nil, fmt.Errorf("failed to scan debt: %w", err)
		}
		debts = append(debts, debt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate debts: %w", err)
	}

	return debts, nil
}

// CreateDebt persists a new debt, assigning an ID if unset.
func (s *SQLiteStore) CreateDebt(ctx context.Context, ownerID string, debt *models.Debt) error {
	if debt.ID == "" {
		debt.ID = uuid.New().String()
	}

	_, err := s.db.ExecContext(ctx, insertDebtSQL,
		debt.ID, ownerID, debt.Name, debt.Amount, debt.AccountID,
	)
	if err != nil {
		return fmt.Errorf("failed to create debt: %w", err)
	}

	return nil
}

// UpdateDebt overwrites an existing debt.
func (s *SQLiteStore) UpdateDebt(ctx context.Context, ownerID string, debt *models.Debt) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE debts SET name = ?, amount = ?, account_id = ? WHERE id = ? AND owner_id = ?",
		debt.Name, debt.Amount, debt.AccountID, debt.ID, ownerID,
	)
	if err != nil {
		return fmt.Errorf("failed to update debt: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update debt: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("debt %s: %w", debt.ID, storage.ErrNotFound)
	}

	return nil
}

// DeleteDebt removes a debt. Deletion never cascades to the referenced account.
func (s *SQLiteStore) DeleteDebt(ctx context.Context, ownerID, debtID string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM debts WHERE id = ? AND owner_id = ?",
		debtID, ownerID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete debt: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete debt: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("debt %s: %w", debtID, storage.ErrNotFound)
	}

	return nil
}
