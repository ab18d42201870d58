package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/sebodomatias/bookstore_pos_app/internal/core/domain"
	portsrepo "github.com/sebodomatias/bookstore_pos_app/internal/core/ports/repositories"
)

// PgxReportingRepository runs the aggregate queries behind the report
// endpoints. It is read-only and works directly on domain rows since the
// aggregates have no table counterpart.
type PgxReportingRepository struct {
	db *pgxpool.Pool
}

func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{db: pool}
}

// Ensure PgxReportingRepository implements portsrepo.ReportingRepository
var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

func (r *PgxReportingRepository) SalesTotalsByTender(ctx context.Context, from, to *time.Time) ([]domain.TenderTotalRow, error) {
	query := `
		SELECT tender_type, COUNT(*), COALESCE(SUM(total), 0)
		FROM sales
		WHERE ($1::timestamptz IS NULL OR sale_date >= $1)
		  AND ($2::timestamptz IS NULL OR sale_date <= $2)
		GROUP BY tender_type
		ORDER BY tender_type;
	`
	rows, err := r.db.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales totals by tender: %w", err)
	}
	defer rows.Close()

	result := []domain.TenderTotalRow{}
	for rows.Next() {
		var tender string
		var row domain.TenderTotalRow
		if err := rows.Scan(&tender, &row.SaleCount, &row.Total); err != nil {
			return nil, fmt.Errorf("failed to scan tender total row: %w", err)
		}
		row.TenderType = domain.TenderType(tender)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tender total rows: %w", err)
	}
	return result, nil
}

func (r *PgxReportingRepository) SalesByBook(ctx context.Context, from, to *time.Time) ([]domain.BookSalesRow, error) {
	// Average unit price is revenue-weighted, not an average of list prices.
	query := `
		SELECT sl.book_id, b.catalog_code, b.title, sl.condition,
			SUM(sl.quantity), COALESCE(SUM(sl.line_total), 0),
			COALESCE(SUM(sl.line_total) / NULLIF(SUM(sl.quantity), 0), 0)
		FROM sale_lines sl
		JOIN sales s ON s.sale_id = sl.sale_id
		JOIN books b ON b.book_id = sl.book_id
		WHERE ($1::timestamptz IS NULL OR s.sale_date >= $1)
		  AND ($2::timestamptz IS NULL OR s.sale_date <= $2)
		GROUP BY sl.book_id, b.catalog_code, b.title, sl.condition
		ORDER BY SUM(sl.line_total) DESC, b.title, sl.condition;
	`
	rows, err := r.db.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales by book: %w", err)
	}
	defer rows.Close()

	result := []domain.BookSalesRow{}
	for rows.Next() {
		var condition string
		var row domain.BookSalesRow
		var avg decimal.Decimal
		err := rows.Scan(
			&row.BookID,
			&row.CatalogCode,
			&row.Title,
			&condition,
			&row.QuantitySold,
			&row.Revenue,
			&avg,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book sales row: %w", err)
		}
		row.Condition = domain.Condition(condition)
		row.AvgUnitPrice = avg.Round(2)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating book sales rows: %w", err)
	}
	return result, nil
}
