package services

import (
	"context"
	"io"

	"github.com/sebodomatias/bookstore_pos_app/internal/core/domain"
	"github.com/sebodomatias/bookstore_pos_app/internal/dto"
)

// CatalogSvcFacade manages books, their per-condition prices and stock.
type CatalogSvcFacade interface {
	CreateBook(ctx context.Context, req dto.CreateBookRequest, operatorID string) (*domain.Book, error)
	GetBookByID(ctx context.Context, bookID string) (*domain.Book, error)
	GetBookByCatalogCode(ctx context.Context, catalogCode string) (*domain.Book, error)
	UpdateBook(ctx context.Context, bookID string, req dto.UpdateBookRequest, operatorID string) (*domain.Book, error)
	ListBooks(ctx context.Context, params dto.ListBooksParams) (*dto.ListBooksResponse, error)

	// SetPrice creates or replaces the price for a (book, condition) pair.
	SetPrice(ctx context.Context, bookID string, req dto.SetPriceRequest, operatorID string) (*domain.PriceLine, error)
	ListPricesByBook(ctx context.Context, bookID string) ([]domain.PriceLine, error)

	// ImportCSV upserts books, prices and stock from a CSV stream and
	// reports per-row outcomes without aborting the whole file on bad rows.
	ImportCSV(ctx context.Context, r io.Reader, operatorID string) (*dto.ImportSummary, error)
}

// StockSvcFacade exposes stock queries and manual adjustments. Sales adjust
// stock through their own atomic path, not through this facade.
type StockSvcFacade interface {
	GetStock(ctx context.Context, bookID string) ([]domain.StockLine, error)

	// AdjustStock applies a manual delta (receiving, shrinkage correction).
	// The resulting quantity may not go below zero.
	AdjustStock(ctx context.Context, bookID string, req dto.AdjustStockRequest, operatorID string) (*domain.StockLine, error)
}
