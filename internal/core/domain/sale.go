package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale is a completed sale transaction. The header total always equals the sum
// of its line totals, each rounded to two decimals. A sale is created
// atomically with its lines and deleted only by the reversal protocol.
type Sale struct {
	SaleID     string          `json:"saleID"` // Primary Key (UUID)
	SaleDate   time.Time       `json:"saleDate"`
	CustomerID *string         `json:"customerID,omitempty"` // optional attribution
	TenderType TenderType      `json:"tenderType"`
	Total      decimal.Decimal `json:"total"`
	OperatorID string          `json:"operatorID"`
	SessionID  *string         `json:"sessionID,omitempty"` // owning cash session
	Lines      []SaleLine      `json:"lines,omitempty"`     // often loaded separately
	AuditFields
}

// SaleLine is a single cart line within a sale.
type SaleLine struct {
	LineID          string          `json:"lineID"` // Primary Key (UUID)
	SaleID          string          `json:"saleID"`
	BookID          string          `json:"bookID"`
	Condition       Condition       `json:"condition"`
	Quantity        int             `json:"quantity"` // strictly positive
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	DiscountPercent decimal.Decimal `json:"discountPercent"` // in [0, 100]
	LineTotal       decimal.Decimal `json:"lineTotal"`
}
