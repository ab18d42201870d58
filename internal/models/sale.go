package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale is the sales row.
type Sale struct {
	SaleID     string          `db:"sale_id"`
	SaleDate   time.Time       `db:"sale_date"`
	CustomerID *string         `db:"customer_id"`
	TenderType string          `db:"tender_type"`
	Total      decimal.Decimal `db:"total"`
	OperatorID string          `db:"operator_id"`
	SessionID  *string         `db:"session_id"`
	AuditFields
}

// SaleLine is the sale_lines row.
type SaleLine struct {
	LineID          string          `db:"line_id"`
	SaleID          string          `db:"sale_id"`
	BookID          string          `db:"book_id"`
	Condition       string          `db:"condition"`
	Quantity        int             `db:"quantity"`
	UnitPrice       decimal.Decimal `db:"unit_price"`
	DiscountPercent decimal.Decimal `db:"discount_percent"`
	LineTotal       decimal.Decimal `db:"line_total"`
}
