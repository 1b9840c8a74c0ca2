package models

import "github.com/shopspring/decimal"

// CryptoHolding is an amount of a cryptocurrency the user holds.
// Its market value is derived from the latest spot prices; nothing is persisted
// beyond the symbol and quantity.
type CryptoHolding struct {
	// ID is the unique identifier for the holding (UUID format).
	ID string `json:"id"`

	// Symbol is the ticker symbol (e.g. "BTC", "ETH", "BNB").
	Symbol string `json:"symbol"`

	// Amount is the quantity held.
	Amount decimal.Decimal `json:"amount"`
}
