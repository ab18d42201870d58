package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Reconciliation holds the close-time arithmetic of a cash session. It is
// never persisted as a running value: it is derived at close and recomputable
// later from stored fields for historical report views.
type Reconciliation struct {
	ManualNet      decimal.Decimal `json:"manualNet"`    // deposits minus withdrawals
	ExpectedCash   decimal.Decimal `json:"expectedCash"` // opening float + manual net + registered cash
	CashVariance   decimal.Decimal `json:"cashVariance"` // counted minus expected
	CreditVariance decimal.Decimal `json:"creditVariance"`
	DebitVariance  decimal.Decimal `json:"debitVariance"`
	PixVariance    decimal.Decimal `json:"pixVariance"`
	OtherVariance  decimal.Decimal `json:"otherVariance"`
	TotalVariance  decimal.Decimal `json:"totalVariance"`
}

// TenderTotalRow aggregates sale totals for one tender type over a range.
type TenderTotalRow struct {
	TenderType TenderType      `json:"tenderType"`
	SaleCount  int             `json:"saleCount"`
	Total      decimal.Decimal `json:"total"`
}

// BookSalesRow aggregates sold quantity and revenue for one (book, condition).
type BookSalesRow struct {
	BookID       string          `json:"bookID"`
	CatalogCode  string          `json:"catalogCode"`
	Title        string          `json:"title"`
	Condition    Condition       `json:"condition"`
	QuantitySold int             `json:"quantitySold"`
	Revenue      decimal.Decimal `json:"revenue"`
	AvgUnitPrice decimal.Decimal `json:"avgUnitPrice"`
}

// SessionHistoryEntry is one closed-or-open session in a history report, with
// its movements and the reconciliation recomputed from stored fields.
type SessionHistoryEntry struct {
	Session        CashSession     `json:"session"`
	Movements      []CashMovement  `json:"movements"`
	Reconciliation *Reconciliation `json:"reconciliation,omitempty"` // nil while still open
}

// SaleFilters narrows sale listings in reports.
type SaleFilters struct {
	From       *time.Time
	To         *time.Time
	TenderType *TenderType
	CustomerID *string
}
