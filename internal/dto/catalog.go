package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sebodomatias/bookstore_pos_app/internal/core/domain"
)

// CreateBookRequest creates a catalog entry.
type CreateBookRequest struct {
	CatalogCode string `json:"catalogCode" binding:"required,numeric,min=10,max=13"`
	Title       string `json:"title" binding:"required"`
	Author      string `json:"author"`
	Publisher   string `json:"publisher"`
}

// UpdateBookRequest updates catalog metadata. Nil fields are left unchanged.
type UpdateBookRequest struct {
	Title     *string `json:"title,omitempty"`
	Author    *string `json:"author,omitempty"`
	Publisher *string `json:"publisher,omitempty"`
}

// SetPriceRequest upserts the unit price of a (book, condition).
type SetPriceRequest struct {
	Condition domain.Condition `json:"condition" binding:"required,oneof=NEW DISCOUNTED"`
	UnitPrice decimal.Decimal  `json:"unitPrice"`
}

// SetStockRequest overwrites the quantity of a (book, condition).
type SetStockRequest struct {
	Condition domain.Condition `json:"condition" binding:"required,oneof=NEW DISCOUNTED"`
	Quantity  int              `json:"quantity" binding:"min=0"`
}

// AdjustStockRequest applies a signed delta to a (book, condition) quantity:
// positive for receiving, negative for shrinkage corrections.
type AdjustStockRequest struct {
	Condition domain.Condition `json:"condition" binding:"required,oneof=NEW DISCOUNTED"`
	Delta     int              `json:"delta" binding:"required"`
	Reason    string           `json:"reason"`
}

// ListBooksParams paginates the catalog listing.
type ListBooksParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListBooksResponse is a page of catalog entries.
type ListBooksResponse struct {
	Books []BookResponse `json:"books"`
}

// BookResponse is a catalog entry as returned to callers.
type BookResponse struct {
	BookID      string    `json:"bookID"`
	CatalogCode string    `json:"catalogCode"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Publisher   string    `json:"publisher"`
	CreatedAt   time.Time `json:"createdAt"`
}

// StockLineResponse is a stock line as returned to callers.
type StockLineResponse struct {
	BookID      string    `json:"bookID"`
	Condition   string    `json:"condition"`
	Quantity    int       `json:"quantity"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// PriceLineResponse is a price line as returned to callers.
type PriceLineResponse struct {
	BookID    string          `json:"bookID"`
	Condition string          `json:"condition"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// ImportSummary reports the outcome of a catalog CSV import.
type ImportSummary struct {
	Created int      `json:"created"`
	Updated int      `json:"updated"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors,omitempty"`
}

// ToBookResponse converts a domain.Book to its response DTO.
func ToBookResponse(b *domain.Book) BookResponse {
	return BookResponse{
		BookID:      b.BookID,
		CatalogCode: b.CatalogCode,
		Title:       b.Title,
		Author:      b.Author,
		Publisher:   b.Publisher,
		CreatedAt:   b.CreatedAt,
	}
}

// ToStockLineResponse converts a domain.StockLine to its response DTO.
func ToStockLineResponse(s domain.StockLine) StockLineResponse {
	return StockLineResponse{
		BookID:      s.BookID,
		Condition:   string(s.Condition),
		Quantity:    s.Quantity,
		LastUpdated: s.LastUpdated,
	}
}

// ToPriceLineResponse converts a domain.PriceLine to its response DTO.
func ToPriceLineResponse(p domain.PriceLine) PriceLineResponse {
	return PriceLineResponse{
		BookID:    p.BookID,
		Condition: string(p.Condition),
		UnitPrice: p.UnitPrice,
	}
}
