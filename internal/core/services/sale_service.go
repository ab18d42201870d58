package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sebodomatias/bookstore_pos_app/internal/apperrors"
	"github.com/sebodomatias/bookstore_pos_app/internal/core/domain"
	portsrepo "github.com/sebodomatias/bookstore_pos_app/internal/core/ports/repositories"
	portssvc "github.com/sebodomatias/bookstore_pos_app/internal/core/ports/services"
	"github.com/sebodomatias/bookstore_pos_app/internal/dto"
	"github.com/sebodomatias/bookstore_pos_app/internal/middleware"
	"github.com/sebodomatias/bookstore_pos_app/internal/utils/money"
)

var (
	ErrSaleMinLines     = errors.New("sale must have at least one line")
	ErrInvalidTender    = errors.New("unknown tender type")
	ErrInvalidCondition = errors.New("unknown book condition")
	ErrInvalidDiscount  = errors.New("discount percent must be between 0 and 100")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrBookNotFound     = errors.New("book not found")
)

// saleService coordinates sale creation and reversal across the catalog, the
// stock ledger and the open cash session.
type saleService struct {
	saleRepo     portsrepo.SaleRepositoryFacade
	catalogRepo  portsrepo.CatalogRepositoryFacade
	stockRepo    portsrepo.StockReader
	sessionRepo  portsrepo.CashSessionReader
	customerRepo portsrepo.CustomerRepositoryFacade
}

// NewSaleService creates a new SaleService.
func NewSaleService(
	saleRepo portsrepo.SaleRepositoryFacade,
	catalogRepo portsrepo.CatalogRepositoryFacade,
	stockRepo portsrepo.StockReader,
	sessionRepo portsrepo.CashSessionReader,
	customerRepo portsrepo.CustomerRepositoryFacade,
) portssvc.SaleSvcFacade {
	return &saleService{
		saleRepo:     saleRepo,
		catalogRepo:  catalogRepo,
		stockRepo:    stockRepo,
		sessionRepo:  sessionRepo,
		customerRepo: customerRepo,
	}
}

var _ portssvc.SaleSvcFacade = (*saleService)(nil)

// validateSaleRequest runs the request-shape checks that need no storage access.
func (s *saleService) validateSaleRequest(req dto.CreateSaleRequest) error {
	if !req.TenderType.Valid() {
		return fmt.Errorf("%w: %s: %s", apperrors.ErrValidation, ErrInvalidTender, req.TenderType)
	}
	if len(req.Lines) == 0 {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrSaleMinLines)
	}
	hundred := decimal.NewFromInt(100)
	for _, line := range req.Lines {
		if !line.Condition.Valid() {
			return fmt.Errorf("%w: %s: %s", apperrors.ErrValidation, ErrInvalidCondition, line.Condition)
		}
		if line.Quantity <= 0 {
			return fmt.Errorf("%w: quantity must be positive for %s", apperrors.ErrValidation, line.CatalogCode)
		}
		if line.DiscountPercent.IsNegative() || line.DiscountPercent.GreaterThan(hundred) {
			return fmt.Errorf("%w: %s for %s", apperrors.ErrValidation, ErrInvalidDiscount, line.CatalogCode)
		}
	}
	return nil
}

// CreateSale validates the cart, resolves prices, and persists the sale
// together with its stock and session effects in one atomic repository call.
// Implements portssvc.SaleSvcFacade
func (s *saleService) CreateSale(ctx context.Context, req dto.CreateSaleRequest, operatorID string) (*domain.Sale, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.validateSaleRequest(req); err != nil {
		return nil, err
	}

	// Optional customer attribution must point at an existing customer.
	if req.CustomerID != nil {
		if _, err := s.customerRepo.FindCustomerByID(ctx, *req.CustomerID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: %s", ErrCustomerNotFound, *req.CustomerID)
			}
			return nil, fmt.Errorf("failed to verify customer: %w", err)
		}
	}

	// A sale needs an open session to register its tender against. The
	// repository re-checks this under lock; this early read just gives the
	// caller a clean error without burning a transaction.
	session, err := s.sessionRepo.FindOpenSession(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNoOpenSession
		}
		return nil, fmt.Errorf("failed to find open session: %w", err)
	}

	now := time.Now().UTC()
	saleID := uuid.NewString()

	// Resolve catalog codes and prices. The request's unit price is advisory;
	// the stored price table is authoritative.
	domainLines := make([]domain.SaleLine, len(req.Lines))
	for i, lineReq := range req.Lines {
		book, err := s.catalogRepo.FindBookByCatalogCode(ctx, lineReq.CatalogCode)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: catalog code %s", ErrBookNotFound, lineReq.CatalogCode)
			}
			return nil, fmt.Errorf("failed to resolve catalog code %s: %w", lineReq.CatalogCode, err)
		}

		price, err := s.catalogRepo.FindPrice(ctx, book.BookID, lineReq.Condition)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: %s (%s)", apperrors.ErrPriceNotFound, lineReq.CatalogCode, lineReq.Condition)
			}
			return nil, fmt.Errorf("failed to resolve price for %s: %w", lineReq.CatalogCode, err)
		}
		if !price.Usable() {
			return nil, fmt.Errorf("%w: %s (%s) has no usable price", apperrors.ErrPriceNotFound, lineReq.CatalogCode, lineReq.Condition)
		}

		domainLines[i] = domain.SaleLine{
			LineID:          uuid.NewString(),
			SaleID:          saleID,
			BookID:          book.BookID,
			Condition:       lineReq.Condition,
			Quantity:        lineReq.Quantity,
			UnitPrice:       price.UnitPrice,
			DiscountPercent: lineReq.DiscountPercent,
			LineTotal:       money.LineTotal(price.UnitPrice, lineReq.DiscountPercent, lineReq.Quantity),
		}
	}

	// Preliminary availability check against aggregated demand. Duplicate
	// (book, condition) lines are legal and their quantities sum. The
	// repository repeats this check under row locks; failing here avoids
	// opening a doomed transaction.
	demand := aggregateDemand(domainLines)
	for key, qty := range demand {
		stock, err := s.saleStockLine(ctx, key)
		if err != nil {
			return nil, err
		}
		if stock < qty {
			return nil, fmt.Errorf("%w: book %s (%s) has %d, requested %d",
				apperrors.ErrInsufficientStock, key.BookID, key.Condition, stock, qty)
		}
	}

	total := money.SumLineTotals(domainLines)
	if req.Total != nil && !req.Total.Equal(total) {
		logger.Info("Client sale total differs from computed total",
			slog.String("client_total", req.Total.String()),
			slog.String("computed_total", total.String()))
	}

	sessionID := session.SessionID
	sale := domain.Sale{
		SaleID:     saleID,
		SaleDate:   now,
		CustomerID: req.CustomerID,
		TenderType: req.TenderType,
		Total:      total,
		OperatorID: operatorID,
		SessionID:  &sessionID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     operatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: operatorID,
		},
	}

	if err := s.saleRepo.CreateSaleAtomic(ctx, sale, domainLines); err != nil {
		logger.Error("Failed to persist sale", slog.String("sale_id", saleID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Sale created",
		slog.String("sale_id", saleID),
		slog.String("tender", string(req.TenderType)),
		slog.String("total", total.String()),
		slog.Int("lines", len(domainLines)))

	sale.Lines = domainLines
	return &sale, nil
}

// saleStockLine reads the available quantity for a key, treating a missing
// row as zero.
func (s *saleService) saleStockLine(ctx context.Context, key domain.StockKey) (int, error) {
	line, err := s.stockRepo.FindStockLine(ctx, key.BookID, key.Condition)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read stock for book %s: %w", key.BookID, err)
	}
	return line.Quantity, nil
}

// aggregateDemand sums line quantities per (book, condition).
func aggregateDemand(lines []domain.SaleLine) map[domain.StockKey]int {
	demand := make(map[domain.StockKey]int)
	for _, line := range lines {
		key := domain.StockKey{BookID: line.BookID, Condition: line.Condition}
		demand[key] += line.Quantity
	}
	return demand
}

// ReverseSale undoes a sale: stock back, session counter down, rows gone.
// Implements portssvc.SaleSvcFacade
func (s *saleService) ReverseSale(ctx context.Context, saleID string, operatorID string) (*dto.ReversalSummary, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	sale, err := s.saleRepo.FindSaleByID(ctx, saleID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrNotFound, saleID)
		}
		return nil, fmt.Errorf("failed to load sale %s: %w", saleID, err)
	}

	// The owning session must still be open; once it closed its counters are
	// final. The repository re-checks this under lock.
	if sale.SessionID != nil {
		session, err := s.sessionRepo.FindSessionByID(ctx, *sale.SessionID)
		if err != nil {
			return nil, fmt.Errorf("failed to load owning session for sale %s: %w", saleID, err)
		}
		if !session.IsOpen() {
			return nil, fmt.Errorf("%w: session %s is closed", apperrors.ErrReversalNotAllowed, session.SessionID)
		}
	}

	lines, err := s.saleRepo.FindSaleLinesBySaleID(ctx, saleID)
	if err != nil {
		return nil, fmt.Errorf("failed to load sale lines for %s: %w", saleID, err)
	}

	if err := s.saleRepo.ReverseSaleAtomic(ctx, *sale, lines); err != nil {
		logger.Error("Failed to reverse sale", slog.String("sale_id", saleID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Sale reversed",
		slog.String("sale_id", saleID),
		slog.String("operator_id", operatorID),
		slog.String("total", sale.Total.String()))

	return &dto.ReversalSummary{
		SaleID:          saleID,
		ReversedTotal:   sale.Total,
		LineCount:       len(lines),
		SessionAffected: sale.SessionID != nil,
	}, nil
}

// GetSaleByID retrieves a sale together with its lines.
// Implements portssvc.SaleSvcFacade
func (s *saleService) GetSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	sale, err := s.saleRepo.FindSaleByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	lines, err := s.saleRepo.FindSaleLinesBySaleID(ctx, saleID)
	if err != nil {
		return nil, fmt.Errorf("failed to load sale lines for %s: %w", saleID, err)
	}
	sale.Lines = lines
	return sale, nil
}

// ListSales retrieves a filtered, paginated page of sales.
// Implements portssvc.SaleSvcFacade
func (s *saleService) ListSales(ctx context.Context, params dto.ListSalesParams) (*dto.ListSalesResponse, error) {
	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	filters := domain.SaleFilters{
		From:       params.From,
		To:         params.To,
		TenderType: params.TenderType,
		CustomerID: params.CustomerID,
	}
	sales, nextToken, err := s.saleRepo.ListSales(ctx, filters, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}

	resp := &dto.ListSalesResponse{
		Sales:     make([]dto.SaleResponse, len(sales)),
		NextToken: nextToken,
	}
	for i := range sales {
		resp.Sales[i] = dto.ToSaleResponse(&sales[i])
	}
	return resp, nil
}
