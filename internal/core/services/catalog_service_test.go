package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/sebodomatias/bookstore_pos_app/internal/apperrors"
	"github.com/sebodomatias/bookstore_pos_app/internal/core/domain"
	portssvc "github.com/sebodomatias/bookstore_pos_app/internal/core/ports/services"
	"github.com/sebodomatias/bookstore_pos_app/internal/core/services"
	"github.com/sebodomatias/bookstore_pos_app/internal/dto"
)

// MockStockRepository is a mock type for the StockRepositoryFacade interface
type MockStockRepository struct {
	mock.Mock
}

func (m *MockStockRepository) FindStockLine(ctx context.Context, bookID string, condition domain.Condition) (*domain.StockLine, error) {
	args := m.Called(ctx, bookID, condition)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StockLine), args.Error(1)
}

func (m *MockStockRepository) ListStockLinesByBook(ctx context.Context, bookID string) ([]domain.StockLine, error) {
	args := m.Called(ctx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StockLine), args.Error(1)
}

func (m *MockStockRepository) EnsureStockLine(ctx context.Context, bookID string, condition domain.Condition, now time.Time) error {
	args := m.Called(ctx, bookID, condition, now)
	return args.Error(0)
}

func (m *MockStockRepository) SetQuantity(ctx context.Context, bookID string, condition domain.Condition, quantity int, now time.Time) error {
	args := m.Called(ctx, bookID, condition, quantity, now)
	return args.Error(0)
}

func (m *MockStockRepository) AdjustQuantity(ctx context.Context, bookID string, condition domain.Condition, delta int, now time.Time) (int, error) {
	args := m.Called(ctx, bookID, condition, delta, now)
	return args.Int(0), args.Error(1)
}

func (m *MockStockRepository) FindStockLinesForUpdate(ctx context.Context, tx pgx.Tx, keys []domain.StockKey) (map[domain.StockKey]domain.StockLine, error) {
	args := m.Called(ctx, tx, keys)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.StockKey]domain.StockLine), args.Error(1)
}

func (m *MockStockRepository) ApplyQuantityChangesInTx(ctx context.Context, tx pgx.Tx, changes map[domain.StockKey]int, now time.Time) error {
	args := m.Called(ctx, tx, changes, now)
	return args.Error(0)
}

// --- Test Suite Setup ---

type CatalogServiceTestSuite struct {
	suite.Suite
	mockCatalogRepo *MockCatalogRepository
	mockStockRepo   *MockStockRepository
	service         portssvc.CatalogSvcFacade
}

func (suite *CatalogServiceTestSuite) SetupTest() {
	suite.mockCatalogRepo = new(MockCatalogRepository)
	suite.mockStockRepo = new(MockStockRepository)
	suite.service = services.NewCatalogService(suite.mockCatalogRepo, suite.mockStockRepo)
}

// --- Test Cases ---

func (suite *CatalogServiceTestSuite) TestCreateBook_Success() {
	ctx := context.Background()
	operatorID := uuid.NewString()
	req := dto.CreateBookRequest{
		CatalogCode: "9781234567897",
		Title:       "Dom Casmurro",
		Author:      "Machado de Assis",
	}

	suite.mockCatalogRepo.On("SaveBook", ctx, mock.MatchedBy(func(b domain.Book) bool {
		return b.CatalogCode == req.CatalogCode && b.Title == req.Title && b.CreatedBy == operatorID
	})).Return(nil).Once()

	book, err := suite.service.CreateBook(ctx, req, operatorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(book)
	suite.NotEmpty(book.BookID)
	suite.Equal(req.CatalogCode, book.CatalogCode)
	suite.Equal(req.Title, book.Title)

	suite.mockCatalogRepo.AssertExpectations(suite.T())
}

func (suite *CatalogServiceTestSuite) TestCreateBook_BadCatalogCode() {
	ctx := context.Background()

	for _, code := range []string{"123", "12345678901234", "97812345678ab", ""} {
		req := dto.CreateBookRequest{CatalogCode: code, Title: "T"}
		book, err := suite.service.CreateBook(ctx, req, "op-1")

		suite.Require().Error(err, "code %q should be rejected", code)
		suite.Nil(book)
		suite.ErrorIs(err, apperrors.ErrValidation)
	}
	suite.mockCatalogRepo.AssertNotCalled(suite.T(), "SaveBook", mock.Anything, mock.Anything)
}

func (suite *CatalogServiceTestSuite) TestCreateBook_MissingTitle() {
	ctx := context.Background()
	req := dto.CreateBookRequest{CatalogCode: "9781234567897", Title: "   "}

	book, err := suite.service.CreateBook(ctx, req, "op-1")

	suite.Require().Error(err)
	suite.Nil(book)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *CatalogServiceTestSuite) TestCreateBook_DuplicateCode() {
	ctx := context.Background()
	req := dto.CreateBookRequest{CatalogCode: "9781234567897", Title: "T"}

	suite.mockCatalogRepo.On("SaveBook", ctx, mock.AnythingOfType("domain.Book")).Return(apperrors.ErrDuplicate).Once()

	book, err := suite.service.CreateBook(ctx, req, "op-1")

	suite.Require().Error(err)
	suite.Nil(book)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockCatalogRepo.AssertExpectations(suite.T())
}

func (suite *CatalogServiceTestSuite) TestSetPrice_Success() {
	ctx := context.Background()
	bookID := uuid.NewString()
	req := dto.SetPriceRequest{Condition: domain.ConditionNew, UnitPrice: dec("29.905")}

	suite.mockCatalogRepo.On("FindBookByID", ctx, bookID).Return(&domain.Book{BookID: bookID}, nil).Once()
	suite.mockCatalogRepo.On("UpsertPrice", ctx, mock.MatchedBy(func(p domain.PriceLine) bool {
		return p.BookID == bookID && p.Condition == domain.ConditionNew && p.UnitPrice.Equal(dec("29.91"))
	})).Return(nil).Once()
	suite.mockStockRepo.On("EnsureStockLine", ctx, bookID, domain.ConditionNew, mock.AnythingOfType("time.Time")).Return(nil).Once()

	price, err := suite.service.SetPrice(ctx, bookID, req, "op-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(price)
	suite.True(price.UnitPrice.Equal(dec("29.91")), "price should be rounded to two decimals")

	suite.mockCatalogRepo.AssertExpectations(suite.T())
	suite.mockStockRepo.AssertExpectations(suite.T())
}

func (suite *CatalogServiceTestSuite) TestSetPrice_NegativePrice() {
	ctx := context.Background()
	req := dto.SetPriceRequest{Condition: domain.ConditionNew, UnitPrice: dec("-0.01")}

	price, err := suite.service.SetPrice(ctx, uuid.NewString(), req, "op-1")

	suite.Require().Error(err)
	suite.Nil(price)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockCatalogRepo.AssertNotCalled(suite.T(), "UpsertPrice", mock.Anything, mock.Anything)
}

func (suite *CatalogServiceTestSuite) TestSetPrice_BookNotFound() {
	ctx := context.Background()
	bookID := uuid.NewString()
	req := dto.SetPriceRequest{Condition: domain.ConditionDiscounted, UnitPrice: dec("10.00")}

	suite.mockCatalogRepo.On("FindBookByID", ctx, bookID).Return(nil, apperrors.ErrNotFound).Once()

	price, err := suite.service.SetPrice(ctx, bookID, req, "op-1")

	suite.Require().Error(err)
	suite.Nil(price)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *CatalogServiceTestSuite) TestImportCSV_MixedRows() {
	ctx := context.Background()
	operatorID := uuid.NewString()

	existingBook := &domain.Book{BookID: uuid.NewString(), CatalogCode: "9780000000010", Title: "Old Title"}

	// Row 1 creates, row 2 updates, row 3 has a bad catalog code, row 4 a bad price.
	csvData := strings.Join([]string{
		"catalog_code,title,author,publisher,condition,unit_price,quantity",
		"9781234567897,New Book,Author A,Pub,NEW,25.00,5",
		"9780000000010,Fresh Title,Author B,Pub,DISCOUNTED,12.50,2",
		"12ab,Bad Code,,,NEW,5.00,1",
		"9780000000027,Bad Price,,,NEW,abc,1",
	}, "\n")

	suite.mockCatalogRepo.On("FindBookByCatalogCode", ctx, "9781234567897").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockCatalogRepo.On("SaveBook", ctx, mock.MatchedBy(func(b domain.Book) bool {
		return b.CatalogCode == "9781234567897" && b.Title == "New Book" && b.CreatedBy == operatorID
	})).Return(nil).Once()

	suite.mockCatalogRepo.On("FindBookByCatalogCode", ctx, "9780000000010").Return(existingBook, nil).Once()
	suite.mockCatalogRepo.On("UpdateBook", ctx, mock.MatchedBy(func(b domain.Book) bool {
		return b.BookID == existingBook.BookID && b.Title == "Fresh Title"
	})).Return(nil).Once()

	suite.mockCatalogRepo.On("UpsertPrice", ctx, mock.AnythingOfType("domain.PriceLine")).Return(nil).Twice()
	suite.mockStockRepo.On("EnsureStockLine", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil).Twice()
	suite.mockStockRepo.On("SetQuantity", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Twice()

	summary, err := suite.service.ImportCSV(ctx, strings.NewReader(csvData), operatorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(summary)
	suite.Equal(1, summary.Created)
	suite.Equal(1, summary.Updated)
	suite.Equal(2, summary.Skipped)
	suite.Len(summary.Errors, 2)

	suite.mockCatalogRepo.AssertExpectations(suite.T())
	suite.mockStockRepo.AssertExpectations(suite.T())
}

func (suite *CatalogServiceTestSuite) TestImportCSV_BadHeader() {
	ctx := context.Background()
	csvData := "isbn,name\n9781234567897,X"

	summary, err := suite.service.ImportCSV(ctx, strings.NewReader(csvData), "op-1")

	suite.Require().Error(err)
	suite.Nil(summary)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockCatalogRepo.AssertNotCalled(suite.T(), "SaveBook", mock.Anything, mock.Anything)
}

// --- Run Test Suite ---

func TestCatalogService(t *testing.T) {
	suite.Run(t, new(CatalogServiceTestSuite))
}
