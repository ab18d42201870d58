package repositories

import (
	"context"

	"github.com/sebodomatias/bookstore_pos_app/internal/core/domain"
)

// BookReader defines read operations for catalog books.
type BookReader interface {
	FindBookByID(ctx context.Context, bookID string) (*domain.Book, error)
	FindBookByCatalogCode(ctx context.Context, catalogCode string) (*domain.Book, error)
	FindBooksByIDs(ctx context.Context, bookIDs []string) (map[string]domain.Book, error)
	ListBooks(ctx context.Context, limit int, offset int) ([]domain.Book, error)
}

// BookWriter defines write operations for catalog books.
type BookWriter interface {
	SaveBook(ctx context.Context, book domain.Book) error
	UpdateBook(ctx context.Context, book domain.Book) error
}

// PriceReader defines read operations for price lines.
type PriceReader interface {
	// FindPrice retrieves the price line for a (book, condition) pair.
	// Returns ErrNotFound when no row exists.
	FindPrice(ctx context.Context, bookID string, condition domain.Condition) (*domain.PriceLine, error)

	ListPricesByBook(ctx context.Context, bookID string) ([]domain.PriceLine, error)
}

// PriceWriter defines write operations for price lines.
type PriceWriter interface {
	UpsertPrice(ctx context.Context, price domain.PriceLine) error
}

// CatalogRepositoryFacade combines all catalog repository interfaces.
type CatalogRepositoryFacade interface {
	BookReader
	BookWriter
	PriceReader
	PriceWriter
}
