// Package calculator implements derived views over in-memory collections.
//
// All functions are pure: no persistence, no side effects. They are recomputed
// on every query, so the results always reflect the slices passed in.
package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/globalpocket/backend/internal/models"
)

// Summary is the dashboard view of the user's finances.
type Summary struct {
	TotalBalance decimal.Decimal `json:"totalBalance"`
	TotalDebt    decimal.Decimal `json:"totalDebt"`
	NetBalance   decimal.Decimal `json:"netBalance"`
}

// TotalBalance sums the balances of all accounts. Empty input sums to zero.
func TotalBalance(accounts []models.Account) decimal.Decimal {
	total := decimal.Zero
	for _, account := range accounts {
		total = total.Add(account.Balance)
	}
	return total
}

// TotalDebt sums the amounts of all debts. Empty input sums to zero.
func TotalDebt(debts []models.Debt) decimal.Decimal {
	total := decimal.Zero
	for _, debt := range debts {
		total = total.Add(debt.Amount)
	}
	return total
}

// NetBalance is TotalBalance minus TotalDebt.
func NetBalance(accounts []models.Account, debts []models.Debt) decimal.Decimal {
	return TotalBalance(accounts).Sub(TotalDebt(debts))
}

// Summarize computes the full dashboard summary in one pass.
func Summarize(accounts []models.Account, debts []models.Debt) Summary {
	totalBalance := TotalBalance(accounts)
	totalDebt := TotalDebt(debts)
	return Summary{
		TotalBalance: totalBalance,
		TotalDebt:    totalDebt,
		NetBalance:   totalBalance.Sub(totalDebt),
	}
}

// HoldingsValue values crypto holdings at the given spot prices, keyed by
// symbol. Holdings with no known price are skipped.
func HoldingsValue(holdings []models.CryptoHolding, prices map[string]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, holding := range holdings {
		price, ok := prices[holding.Symbol]
		if !ok {
			continue
		}
		total = total.Add(holding.Amount.Mul(price))
	}
	return total
}
