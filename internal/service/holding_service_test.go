package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/globalpocket/backend/internal/models"
)

func TestHoldingService(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	svc := NewHoldingService(store, testLogger())

	t.Run("symbols normalized to upper case", func(t *testing.T) {
		holding, err := svc.Create(ctx, "owner-1", &models.CryptoHolding{Symbol: " btc ", Amount: dec("0.5")})
		require.NoError(t, err)
		assert.Equal(t, "BTC", holding.Symbol)
	})

	t.Run("validation", func(t *testing.T) {
		_, err := svc.Create(ctx, "owner-1", &models.CryptoHolding{Symbol: "  ", Amount: dec("1")})
		assert.ErrorIs(t, err, ErrSymbolRequired)

		_, err = svc.Create(ctx, "owner-1", &models.CryptoHolding{Symbol: "ETH", Amount: dec("-1")})
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})
}

func TestExpenseService(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	svc := NewExpenseService(store, testLogger())

	t.Run("validation", func(t *testing.T) {
		_, err := svc.Create(ctx, "owner-1", &models.MonthlyExpense{Description: "", Amount: dec("10")})
		assert.ErrorIs(t, err, ErrNameRequired)

		_, err = svc.Create(ctx, "owner-1", &models.MonthlyExpense{Description: "Rent", Amount: dec("0")})
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})

	t.Run("toggle paid", func(t *testing.T) {
		expense, err := svc.Create(ctx, "owner-1", &models.MonthlyExpense{Description: "Rent", Amount: dec("1200")})
		require.NoError(t, err)
		assert.False(t, expense.IsPaid)

		expense.IsPaid = true
		require.NoError(t, svc.Update(ctx, "owner-1", expense))

		expenses, err := svc.List(ctx, "owner-1")
		require.NoError(t, err)
		require.Len(t, expenses, 1)
		assert.True(t, expenses[0].IsPaid)
	})
}
