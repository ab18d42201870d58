package services

import (
	"context"
	"time"

	"github.com/sebodomatias/bookstore_pos_app/internal/core/domain"
)

// ReportingService defines operations for generating store reports.
type ReportingService interface {
	// TotalsByTender aggregates sale counts and totals per tender type for a
	// date range.
	TotalsByTender(ctx context.Context, from, to time.Time) ([]domain.TenderTotalRow, error)

	// SalesByBook aggregates quantity sold and revenue per (book, condition)
	// for a date range.
	SalesByBook(ctx context.Context, from, to time.Time) ([]domain.BookSalesRow, error)

	// SessionHistory returns sessions in a date range with their movements
	// and, for closed sessions, reconciliation recomputed from stored fields.
	SessionHistory(ctx context.Context, from, to time.Time) ([]domain.SessionHistoryEntry, error)
}
