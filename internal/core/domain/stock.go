package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockLine is the per-(book, condition) available-quantity counter.
// Quantity never goes below zero; the sale coordinator decrements it under a
// row lock and the reversal protocol increments it back.
type StockLine struct {
	BookID      string    `json:"bookID"`
	Condition   Condition `json:"condition"`
	Quantity    int       `json:"quantity"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// StockKey identifies a stock or price line.
type StockKey struct {
	BookID    string
	Condition Condition
}

// PriceLine is the per-(book, condition) unit price. Read-only from the sale
// engine's perspective; a zero price makes the line unsellable.
type PriceLine struct {
	BookID    string          `json:"bookID"`
	Condition Condition       `json:"condition"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	AuditFields
}

// Usable reports whether the price can back a sale line.
func (p PriceLine) Usable() bool {
	return p.UnitPrice.IsPositive()
}
