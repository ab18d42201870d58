package services

import (
	"context"

	"github.com/sebodomatias/bookstore_pos_app/internal/core/domain"
	"github.com/sebodomatias/bookstore_pos_app/internal/dto"
)

// SaleSvcFacade is the sale transaction coordinator. It is the only writer
// that touches both the stock ledger and the cash session.
type SaleSvcFacade interface {
	// CreateSale validates the cart against stock and pricing, persists the
	// sale, allocates stock and accumulates the tender against the open
	// session as one atomic unit. The returned sale carries the
	// server-computed total.
	CreateSale(ctx context.Context, req dto.CreateSaleRequest, operatorID string) (*domain.Sale, error)

	// ReverseSale undoes a completed sale: stock restored, the owning open
	// session's tender counter decremented, sale rows deleted. Refused with
	// ErrReversalNotAllowed once the owning session has closed.
	ReverseSale(ctx context.Context, saleID string, operatorID string) (*dto.ReversalSummary, error)

	// GetSaleByID retrieves a sale with its lines.
	GetSaleByID(ctx context.Context, saleID string) (*domain.Sale, error)

	// ListSales retrieves a filtered, paginated list of sales.
	ListSales(ctx context.Context, params dto.ListSalesParams) (*dto.ListSalesResponse, error)
}
