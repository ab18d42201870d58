package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sebodomatias/bookstore_pos_app/internal/core/domain"
)

// TenderTotalResponse is one row of the totals-by-tender report.
type TenderTotalResponse struct {
	TenderType string          `json:"tenderType"`
	SaleCount  int             `json:"saleCount"`
	Total      decimal.Decimal `json:"total"`
}

// BookSalesResponse is one row of the sales-by-book report.
type BookSalesResponse struct {
	BookID       string          `json:"bookID"`
	CatalogCode  string          `json:"catalogCode"`
	Title        string          `json:"title"`
	Condition    string          `json:"condition"`
	QuantitySold int             `json:"quantitySold"`
	Revenue      decimal.Decimal `json:"revenue"`
	AvgUnitPrice decimal.Decimal `json:"avgUnitPrice"`
}

// SessionHistoryResponse is one session in the cash-session history report,
// with reconciliation recomputed from stored fields for closed sessions.
type SessionHistoryResponse struct {
	Session CashSessionResponse `json:"session"`
}

// ReportRangeParams bounds a report by date range.
type ReportRangeParams struct {
	From *time.Time
	To   *time.Time
}

// ToTenderTotalResponses converts the domain report rows.
func ToTenderTotalResponses(rows []domain.TenderTotalRow) []TenderTotalResponse {
	out := make([]TenderTotalResponse, len(rows))
	for i, r := range rows {
		out[i] = TenderTotalResponse{
			TenderType: string(r.TenderType),
			SaleCount:  r.SaleCount,
			Total:      r.Total,
		}
	}
	return out
}

// ToBookSalesResponses converts the domain report rows.
func ToBookSalesResponses(rows []domain.BookSalesRow) []BookSalesResponse {
	out := make([]BookSalesResponse, len(rows))
	for i, r := range rows {
		out[i] = BookSalesResponse{
			BookID:       r.BookID,
			CatalogCode:  r.CatalogCode,
			Title:        r.Title,
			Condition:    string(r.Condition),
			QuantitySold: r.QuantitySold,
			Revenue:      r.Revenue,
			AvgUnitPrice: r.AvgUnitPrice,
		}
	}
	return out
}

// ToSessionHistoryResponses converts session history entries.
func ToSessionHistoryResponses(entries []domain.SessionHistoryEntry) []SessionHistoryResponse {
	out := make([]SessionHistoryResponse, len(entries))
	for i, e := range entries {
		session := e.Session
		out[i] = SessionHistoryResponse{
			Session: ToCashSessionResponse(&session, e.Movements, e.Reconciliation),
		}
	}
	return out
}
