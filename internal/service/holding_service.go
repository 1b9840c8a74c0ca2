package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/globalpocket/backend/internal/models"
	"github.com/globalpocket/backend/internal/storage"
)

// ErrSymbolRequired rejects holdings without a ticker symbol.
var ErrSymbolRequired = errors.New("symbol is required")

// HoldingService manages the user's crypto holdings.
type HoldingService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewHoldingService creates a new holding service.
func NewHoldingService(store storage.Store, logger *slog.Logger) *HoldingService {
	return &HoldingService{store: store, logger: logger}
}

// List returns all of the owner's crypto holdings.
func (s *HoldingService) List(ctx context.Context, ownerID string) ([]models.CryptoHolding, error) {
	return s.store.ListCryptoHoldings(ctx, ownerID)
}

// Create adds a new holding. Symbols are normalized to upper case.
func (s *HoldingService) Create(ctx context.Context, ownerID string, holding *models.CryptoHolding) (*models.CryptoHolding, error) {
	holding.Symbol = strings.ToUpper(strings.TrimSpace(holding.Symbol))
	if holding.Symbol == "" {
		return nil, ErrSymbolRequired
	}
	if holding.Amount.Sign() <= 0 {
		return nil, ErrInvalidAmount
	}

	if err := s.store.CreateCryptoHolding(ctx, ownerID, holding); err != nil {
		return nil, err
	}

	s.logger.Info("Crypto holding created", "holding_id", holding.ID, "symbol", holding.Symbol)
	return holding, nil
}

// Update overwrites an existing holding.
func (s *HoldingService) Update(ctx context.Context, ownerID string, holding *models.CryptoHolding) error {
	holding.Symbol = strings.ToUpper(strings.TrimSpace(holding.Symbol))
	if holding.Symbol == "" {
		return ErrSymbolRequired
	}
	if holding.Amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	return s.store.UpdateCryptoHolding(ctx, ownerID, holding)
}

// Delete removes a holding.
func (s *HoldingService) Delete(ctx context.Context, ownerID, holdingID string) error {
	return s.store.DeleteCryptoHolding(ctx, ownerID, holdingID)
}
