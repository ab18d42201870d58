package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sebodomatias/bookstore_pos_app/internal/apperrors"
	"github.com/sebodomatias/bookstore_pos_app/internal/core/domain"
	portsrepo "github.com/sebodomatias/bookstore_pos_app/internal/core/ports/repositories"
	portssvc "github.com/sebodomatias/bookstore_pos_app/internal/core/ports/services"
	"github.com/sebodomatias/bookstore_pos_app/internal/dto"
	"github.com/sebodomatias/bookstore_pos_app/internal/middleware"
)

var ErrZeroDelta = errors.New("stock adjustment delta must not be zero")

// stockService exposes stock queries and manual adjustments. Sale allocation
// and release never pass through here; they live inside the sale repository's
// atomic path.
type stockService struct {
	stockRepo   portsrepo.StockRepositoryFacade
	catalogRepo portsrepo.CatalogRepositoryFacade
}

// NewStockService creates a new StockService.
func NewStockService(stockRepo portsrepo.StockRepositoryFacade, catalogRepo portsrepo.CatalogRepositoryFacade) portssvc.StockSvcFacade {
	return &stockService{stockRepo: stockRepo, catalogRepo: catalogRepo}
}

var _ portssvc.StockSvcFacade = (*stockService)(nil)

// GetStock retrieves all stock lines of a book.
// Implements portssvc.StockSvcFacade
func (s *stockService) GetStock(ctx context.Context, bookID string) ([]domain.StockLine, error) {
	if _, err := s.catalogRepo.FindBookByID(ctx, bookID); err != nil {
		return nil, err
	}
	return s.stockRepo.ListStockLinesByBook(ctx, bookID)
}

// AdjustStock applies a manual delta to a stock line. The resulting quantity
// may not go below zero.
// Implements portssvc.StockSvcFacade
func (s *stockService) AdjustStock(ctx context.Context, bookID string, req dto.AdjustStockRequest, operatorID string) (*domain.StockLine, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Condition.Valid() {
		return nil, fmt.Errorf("%w: %s: %s", apperrors.ErrValidation, ErrInvalidCondition, req.Condition)
	}
	if req.Delta == 0 {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrZeroDelta)
	}
	if _, err := s.catalogRepo.FindBookByID(ctx, bookID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.stockRepo.EnsureStockLine(ctx, bookID, req.Condition, now); err != nil {
		return nil, fmt.Errorf("failed to create stock line: %w", err)
	}

	// The delta is applied relative to the stored quantity in one guarded
	// statement. Reading the quantity first and writing back an absolute
	// value would erase any sale committed in between.
	newQuantity, err := s.stockRepo.AdjustQuantity(ctx, bookID, req.Condition, req.Delta, now)
	if err != nil {
		if errors.Is(err, apperrors.ErrInsufficientStock) {
			return nil, fmt.Errorf("%w: book %s (%s) cannot absorb delta %d",
				apperrors.ErrInsufficientStock, bookID, req.Condition, req.Delta)
		}
		return nil, fmt.Errorf("failed to adjust stock quantity: %w", err)
	}

	logger.Info("Stock adjusted",
		slog.String("book_id", bookID),
		slog.String("condition", string(req.Condition)),
		slog.Int("delta", req.Delta),
		slog.Int("quantity", newQuantity),
		slog.String("reason", req.Reason))

	return &domain.StockLine{
		BookID:      bookID,
		Condition:   req.Condition,
		Quantity:    newQuantity,
		LastUpdated: now,
	}, nil
}
