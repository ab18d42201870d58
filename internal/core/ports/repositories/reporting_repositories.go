package repositories

import (
	"context"
	"time"

	"github.com/sebodomatias/bookstore_pos_app/internal/core/domain"
)

// ReportingRepository defines the read-only aggregate queries backing reports.
type ReportingRepository interface {
	// SalesTotalsByTender aggregates sale counts and totals per tender type
	// over an optional date range.
	SalesTotalsByTender(ctx context.Context, from, to *time.Time) ([]domain.TenderTotalRow, error)

	// SalesByBook aggregates sold quantity, revenue and average unit price per
	// (book, condition) over an optional date range.
	SalesByBook(ctx context.Context, from, to *time.Time) ([]domain.BookSalesRow, error)
}
