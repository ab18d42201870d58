package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
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
	ErrBadCatalogCode = errors.New("catalog code must be 10 to 13 digits")
	ErrTitleMissing   = errors.New("book title is required")
	ErrNegativePrice  = errors.New("unit price must not be negative")
)

// catalogService manages books, per-condition prices and the CSV import.
type catalogService struct {
	catalogRepo portsrepo.CatalogRepositoryFacade
	stockRepo   portsrepo.StockRepositoryFacade
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(catalogRepo portsrepo.CatalogRepositoryFacade, stockRepo portsrepo.StockRepositoryFacade) portssvc.CatalogSvcFacade {
	return &catalogService{catalogRepo: catalogRepo, stockRepo: stockRepo}
}

var _ portssvc.CatalogSvcFacade = (*catalogService)(nil)

// validCatalogCode reports whether code is an ISBN-like run of 10 to 13 digits.
func validCatalogCode(code string) bool {
	if len(code) < 10 || len(code) > 13 {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// CreateBook creates a catalog entry. The catalog code must be unique.
// Implements portssvc.CatalogSvcFacade
func (s *catalogService) CreateBook(ctx context.Context, req dto.CreateBookRequest, operatorID string) (*domain.Book, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !validCatalogCode(req.CatalogCode) {
		return nil, fmt.Errorf("%w: %s: %q", apperrors.ErrValidation, ErrBadCatalogCode, req.CatalogCode)
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrTitleMissing)
	}

	now := time.Now().UTC()
	book := domain.Book{
		BookID:      uuid.NewString(),
		CatalogCode: req.CatalogCode,
		Title:       req.Title,
		Author:      req.Author,
		Publisher:   req.Publisher,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     operatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: operatorID,
		},
	}

	if err := s.catalogRepo.SaveBook(ctx, book); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: catalog code %s", apperrors.ErrDuplicate, req.CatalogCode)
		}
		logger.Error("Failed to save book", slog.String("catalog_code", req.CatalogCode), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save book: %w", err)
	}

	return &book, nil
}

// GetBookByID retrieves a book by its id.
// Implements portssvc.CatalogSvcFacade
func (s *catalogService) GetBookByID(ctx context.Context, bookID string) (*domain.Book, error) {
	return s.catalogRepo.FindBookByID(ctx, bookID)
}

// GetBookByCatalogCode retrieves a book by its catalog code.
// Implements portssvc.CatalogSvcFacade
func (s *catalogService) GetBookByCatalogCode(ctx context.Context, catalogCode string) (*domain.Book, error) {
	return s.catalogRepo.FindBookByCatalogCode(ctx, catalogCode)
}

// UpdateBook applies the non-nil fields of the request.
// Implements portssvc.CatalogSvcFacade
func (s *catalogService) UpdateBook(ctx context.Context, bookID string, req dto.UpdateBookRequest, operatorID string) (*domain.Book, error) {
	book, err := s.catalogRepo.FindBookByID(ctx, bookID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrTitleMissing)
		}
		book.Title = *req.Title
	}
	if req.Author != nil {
		book.Author = *req.Author
	}
	if req.Publisher != nil {
		book.Publisher = *req.Publisher
	}
	book.LastUpdatedAt = time.Now().UTC()
	book.LastUpdatedBy = operatorID

	if err := s.catalogRepo.UpdateBook(ctx, *book); err != nil {
		return nil, fmt.Errorf("failed to update book %s: %w", bookID, err)
	}
	return book, nil
}

// ListBooks retrieves a page of catalog entries.
// Implements portssvc.CatalogSvcFacade
func (s *catalogService) ListBooks(ctx context.Context, params dto.ListBooksParams) (*dto.ListBooksResponse, error) {
	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}

	books, err := s.catalogRepo.ListBooks(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}

	resp := &dto.ListBooksResponse{Books: make([]dto.BookResponse, len(books))}
	for i := range books {
		resp.Books[i] = dto.ToBookResponse(&books[i])
	}
	return resp, nil
}

// SetPrice creates or replaces the price of a (book, condition). A zero price
// is stored but makes the line unsellable.
// Implements portssvc.CatalogSvcFacade
func (s *catalogService) SetPrice(ctx context.Context, bookID string, req dto.SetPriceRequest, operatorID string) (*domain.PriceLine, error) {
	if !req.Condition.Valid() {
		return nil, fmt.Errorf("%w: %s: %s", apperrors.ErrValidation, ErrInvalidCondition, req.Condition)
	}
	if req.UnitPrice.IsNegative() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrNegativePrice)
	}

	// The book must exist before it gets a price.
	if _, err := s.catalogRepo.FindBookByID(ctx, bookID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	price := domain.PriceLine{
		BookID:    bookID,
		Condition: req.Condition,
		UnitPrice: money.Round(req.UnitPrice),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     operatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: operatorID,
		},
	}

	if err := s.catalogRepo.UpsertPrice(ctx, price); err != nil {
		return nil, fmt.Errorf("failed to upsert price for book %s: %w", bookID, err)
	}

	// A priced line should also have a stock row, even at zero quantity.
	if err := s.stockRepo.EnsureStockLine(ctx, bookID, req.Condition, now); err != nil {
		return nil, fmt.Errorf("failed to ensure stock line for book %s: %w", bookID, err)
	}
	return &price, nil
}

// ListPricesByBook retrieves all price lines of a book.
// Implements portssvc.CatalogSvcFacade
func (s *catalogService) ListPricesByBook(ctx context.Context, bookID string) ([]domain.PriceLine, error) {
	if _, err := s.catalogRepo.FindBookByID(ctx, bookID); err != nil {
		return nil, err
	}
	return s.catalogRepo.ListPricesByBook(ctx, bookID)
}

// csvHeader is the expected column layout of a catalog import file.
var csvHeader = []string{"catalog_code", "title", "author", "publisher", "condition", "unit_price", "quantity"}

// ImportCSV upserts books, prices and stock from a CSV stream. Rows are
// processed independently; a bad row is reported and skipped, never aborting
// the rest of the file.
// Implements portssvc.CatalogSvcFacade
func (s *catalogService) ImportCSV(ctx context.Context, r io.Reader, operatorID string) (*dto.ImportSummary, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read CSV header: %v", apperrors.ErrValidation, err)
	}
	if len(header) != len(csvHeader) {
		return nil, fmt.Errorf("%w: expected columns %v", apperrors.ErrValidation, csvHeader)
	}
	for i, col := range csvHeader {
		if strings.TrimSpace(strings.ToLower(header[i])) != col {
			return nil, fmt.Errorf("%w: expected column %d to be %q, got %q", apperrors.ErrValidation, i+1, col, header[i])
		}
	}

	summary := &dto.ImportSummary{}
	rowNum := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		rowNum++
		if err != nil {
			summary.Skipped++
			summary.Errors = append(summary.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}

		created, err := s.importRow(ctx, record, operatorID)
		if err != nil {
			summary.Skipped++
			summary.Errors = append(summary.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}
		if created {
			summary.Created++
		} else {
			summary.Updated++
		}
	}

	logger.Info("Catalog import finished",
		slog.Int("created", summary.Created),
		slog.Int("updated", summary.Updated),
		slog.Int("skipped", summary.Skipped))
	return summary, nil
}

// importRow upserts one CSV record. Returns true when a new book was created.
func (s *catalogService) importRow(ctx context.Context, record []string, operatorID string) (bool, error) {
	catalogCode := strings.TrimSpace(record[0])
	title := strings.TrimSpace(record[1])
	author := strings.TrimSpace(record[2])
	publisher := strings.TrimSpace(record[3])
	condition := domain.Condition(strings.ToUpper(strings.TrimSpace(record[4])))

	if !validCatalogCode(catalogCode) {
		return false, ErrBadCatalogCode
	}
	if title == "" {
		return false, ErrTitleMissing
	}
	if !condition.Valid() {
		return false, fmt.Errorf("%w: %s", ErrInvalidCondition, record[4])
	}

	unitPrice, err := decimal.NewFromString(strings.TrimSpace(record[5]))
	if err != nil {
		return false, fmt.Errorf("bad unit price %q", record[5])
	}
	if unitPrice.IsNegative() {
		return false, ErrNegativePrice
	}

	quantity, err := strconv.Atoi(strings.TrimSpace(record[6]))
	if err != nil || quantity < 0 {
		return false, fmt.Errorf("bad quantity %q", record[6])
	}

	now := time.Now().UTC()
	created := false

	book, err := s.catalogRepo.FindBookByCatalogCode(ctx, catalogCode)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return false, fmt.Errorf("failed to look up catalog code %s: %w", catalogCode, err)
		}
		newBook := domain.Book{
			BookID:      uuid.NewString(),
			CatalogCode: catalogCode,
			Title:       title,
			Author:      author,
			Publisher:   publisher,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     operatorID,
				LastUpdatedAt: now,
				LastUpdatedBy: operatorID,
			},
		}
		if err := s.catalogRepo.SaveBook(ctx, newBook); err != nil {
			return false, fmt.Errorf("failed to save book: %w", err)
		}
		book = &newBook
		created = true
	} else {
		book.Title = title
		book.Author = author
		book.Publisher = publisher
		book.LastUpdatedAt = now
		book.LastUpdatedBy = operatorID
		if err := s.catalogRepo.UpdateBook(ctx, *book); err != nil {
			return false, fmt.Errorf("failed to update book: %w", err)
		}
	}

	price := domain.PriceLine{
		BookID:    book.BookID,
		Condition: condition,
		UnitPrice: money.Round(unitPrice),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     operatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: operatorID,
		},
	}
	if err := s.catalogRepo.UpsertPrice(ctx, price); err != nil {
		return false, fmt.Errorf("failed to upsert price: %w", err)
	}

	if err := s.stockRepo.EnsureStockLine(ctx, book.BookID, condition, now); err != nil {
		return false, fmt.Errorf("failed to ensure stock line: %w", err)
	}
	if err := s.stockRepo.SetQuantity(ctx, book.BookID, condition, quantity, now); err != nil {
		return false, fmt.Errorf("failed to set stock quantity: %w", err)
	}

	return created, nil
}
