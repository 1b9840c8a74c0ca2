package sqlite

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/globalpocket/backend/internal/models"
	"github.com/globalpocket/backend/internal/storage"
)

// ListCryptoHoldings returns the owner's crypto holdings, ordered by symbol.
func (s *SQLiteStore) ListCryptoHoldings(ctx context.Context, ownerID string) ([]models.CryptoHolding, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, symbol, amount FROM crypto_holdings WHERE owner_id = ? ORDER BY symbol",
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list crypto holdings: %w", err)
	}
	defer rows.Close()

	var holdings []models.CryptoHolding
	for rows.Next() {
		var holding models.CryptoHolding
		if err := rows.Scan(&holding.ID, &holding.Symbol, &holding.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan crypto holding: %w", err)
		}
		holdings = append(holdings, holding)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate crypto holdings: %w", err)
	}

	return holdings, nil
}

// CreateCryptoHolding persists a new holding, assigning an ID if unset.
func (s *SQLiteStore) CreateCryptoHolding(ctx context.Context, ownerID string, holding *models.CryptoHolding) error {
	if holding.ID == "" {
		holding.ID = uuid.New().String()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO crypto_holdings (id, owner_id, symbol, amount) VALUES (?, ?, ?, ?)",
		holding.ID, ownerID, holding.Symbol, holding.Amount,
	)
	if err != nil {
		return fmt.Errorf("failed to create crypto holding: %w", err)
	}

	return nil
}

// UpdateCryptoHolding overwrites an existing holding.
func (s *SQLiteStore) UpdateCryptoHolding(ctx context.Context, ownerID string, holding *models.CryptoHolding) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE crypto_holdings SET symbol = ?, amount = ? WHERE id = ? AND owner_id = ?",
		holding.Symbol, holding.Amount, holding.ID, ownerID,
	)
	if err != nil {
		return fmt.Errorf("failed to update crypto holding: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update crypto holding: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("crypto holding %s: %w", holding.ID, storage.ErrNotFound)
	}

	return nil
}

// DeleteCryptoHolding removes a holding.
func (s *SQLiteStore) DeleteCryptoHolding(ctx context.Context, ownerID, holdingID string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM crypto_holdings WHERE id = ? AND owner_id = ?",
		holdingID, ownerID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete crypto holding: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete crypto holding: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("crypto holding %s: %w", holdingID, storage.ErrNotFound)
	}

	return nil
}
