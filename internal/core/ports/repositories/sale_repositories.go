package repositories

import (
	"context"

	"github.com/sebodomatias/bookstore_pos_app/internal/core/domain"
)

// SaleReader defines read operations for sales.
type SaleReader interface {
	// FindSaleByID retrieves a sale header by id. Returns ErrNotFound if absent.
	FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error)

	// FindSaleLinesBySaleID retrieves the lines of a sale.
	FindSaleLinesBySaleID(ctx context.Context, saleID string) ([]domain.SaleLine, error)

	// ListSales retrieves a filtered, keyset-paginated list of sale headers.
	// It returns the sales, a token for the next page, and an error.
	ListSales(ctx context.Context, filters domain.SaleFilters, limit int, nextToken *string) ([]domain.Sale, *string, error)
}

// SaleAtomicWriter defines the two all-or-nothing mutations of the sale
// engine. Each call runs as one database transaction spanning the sale rows,
// the affected stock lines and the open cash session; on any failure no
// partial state is retained.
type SaleAtomicWriter interface {
	// CreateSaleAtomic persists the sale header and lines, decrements the
	// affected stock lines under row locks, and adds the sale total to the
	// open session's registered counter for the sale's tender. Fails with
	// ErrInsufficientStock (naming the offending book) or ErrNoOpenSession
	// if the serialized re-check inside the transaction no longer holds.
	CreateSaleAtomic(ctx context.Context, sale domain.Sale, lines []domain.SaleLine) error

	// ReverseSaleAtomic releases stock for every line, subtracts the sale
	// total from the owning open session's registered counter, and deletes
	// the sale rows. Fails with ErrReversalNotAllowed when the owning
	// session is no longer open.
	ReverseSaleAtomic(ctx context.Context, sale domain.Sale, lines []domain.SaleLine) error
}

// SaleRepositoryFacade combines all sale repository interfaces.
type SaleRepositoryFacade interface {
	SaleReader
	SaleAtomicWriter
}
