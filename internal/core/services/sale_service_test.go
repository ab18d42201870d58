package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/sebodomatias/bookstore_pos_app/internal/apperrors"
	"github.com/sebodomatias/bookstore_pos_app/internal/core/domain"
	portssvc "github.com/sebodomatias/bookstore_pos_app/internal/core/ports/services"
	"github.com/sebodomatias/bookstore_pos_app/internal/core/services"
	"github.com/sebodomatias/bookstore_pos_app/internal/dto"
)

// MockSaleRepository is a mock type for the SaleRepositoryFacade interface
type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindSaleLinesBySaleID(ctx context.Context, saleID string) ([]domain.SaleLine, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SaleLine), args.Error(1)
}

func (m *MockSaleRepository) ListSales(ctx context.Context, filters domain.SaleFilters, limit int, nextToken *string) ([]domain.Sale, *string, error) {
	args := m.Called(ctx, filters, limit, nextToken)
	var sales []domain.Sale
	if args.Get(0) != nil {
		sales = args.Get(0).([]domain.Sale)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return sales, token, args.Error(2)
}

func (m *MockSaleRepository) CreateSaleAtomic(ctx context.Context, sale domain.Sale, lines []domain.SaleLine) error {
	args := m.Called(ctx, sale, lines)
	return args.Error(0)
}

func (m *MockSaleRepository) ReverseSaleAtomic(ctx context.Context, sale domain.Sale, lines []domain.SaleLine) error {
	args := m.Called(ctx, sale, lines)
	return args.Error(0)
}

// MockCatalogRepository is a mock type for the CatalogRepositoryFacade interface
type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) FindBookByID(ctx context.Context, bookID string) (*domain.Book, error) {
	args := m.Called(ctx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Book), args.Error(1)
}

func (m *MockCatalogRepository) FindBookByCatalogCode(ctx context.Context, catalogCode string) (*domain.Book, error) {
	args := m.Called(ctx, catalogCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Book), args.Error(1)
}

func (m *MockCatalogRepository) FindBooksByIDs(ctx context.Context, bookIDs []string) (map[string]domain.Book, error) {
	args := m.Called(ctx, bookIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Book), args.Error(1)
}

func (m *MockCatalogRepository) ListBooks(ctx context.Context, limit int, offset int) ([]domain.Book, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Book), args.Error(1)
}

func (m *MockCatalogRepository) SaveBook(ctx context.Context, book domain.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *MockCatalogRepository) UpdateBook(ctx context.Context, book domain.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *MockCatalogRepository) FindPrice(ctx context.Context, bookID string, condition domain.Condition) (*domain.PriceLine, error) {
	args := m.Called(ctx, bookID, condition)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PriceLine), args.Error(1)
}

func (m *MockCatalogRepository) ListPricesByBook(ctx context.Context, bookID string) ([]domain.PriceLine, error) {
	args := m.Called(ctx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PriceLine), args.Error(1)
}

func (m *MockCatalogRepository) UpsertPrice(ctx context.Context, price domain.PriceLine) error {
	args := m.Called(ctx, price)
	return args.Error(0)
}

// MockStockReader is a mock type for the StockReader interface
type MockStockReader struct {
	mock.Mock
}

func (m *MockStockReader) FindStockLine(ctx context.Context, bookID string, condition domain.Condition) (*domain.StockLine, error) {
	args := m.Called(ctx, bookID, condition)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StockLine), args.Error(1)
}

func (m *MockStockReader) ListStockLinesByBook(ctx context.Context, bookID string) ([]domain.StockLine, error) {
	args := m.Called(ctx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StockLine), args.Error(1)
}

// MockCustomerRepository is a mock type for the CustomerRepositoryFacade interface
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) ListCustomers(ctx context.Context, limit int, offset int) ([]domain.Customer, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) UpdateCustomer(ctx context.Context, customer domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) DeleteCustomer(ctx context.Context, customerID string) error {
	args := m.Called(ctx, customerID)
	return args.Error(0)
}

// --- Test Suite Setup ---

type SaleServiceTestSuite struct {
	suite.Suite
	mockSaleRepo     *MockSaleRepository
	mockCatalogRepo  *MockCatalogRepository
	mockStockRepo    *MockStockReader
	mockSessionRepo  *MockCashSessionRepository
	mockCustomerRepo *MockCustomerRepository
	service          portssvc.SaleSvcFacade
}

func (suite *SaleServiceTestSuite) SetupTest() {
	suite.mockSaleRepo = new(MockSaleRepository)
	suite.mockCatalogRepo = new(MockCatalogRepository)
	suite.mockStockRepo = new(MockStockReader)
	suite.mockSessionRepo = new(MockCashSessionRepository)
	suite.mockCustomerRepo = new(MockCustomerRepository)
	suite.service = services.NewSaleService(
		suite.mockSaleRepo,
		suite.mockCatalogRepo,
		suite.mockStockRepo,
		suite.mockSessionRepo,
		suite.mockCustomerRepo,
	)
}

func (suite *SaleServiceTestSuite) expectBook(catalogCode string, price decimal.Decimal, condition domain.Condition, stock int) *domain.Book {
	book := &domain.Book{
		BookID:      uuid.NewString(),
		CatalogCode: catalogCode,
		Title:       "Fixture Title",
	}
	suite.mockCatalogRepo.On("FindBookByCatalogCode", mock.Anything, catalogCode).Return(book, nil)
	suite.mockCatalogRepo.On("FindPrice", mock.Anything, book.BookID, condition).Return(&domain.PriceLine{
		BookID:    book.BookID,
		Condition: condition,
		UnitPrice: price,
	}, nil)
	suite.mockStockRepo.On("FindStockLine", mock.Anything, book.BookID, condition).Return(&domain.StockLine{
		BookID:    book.BookID,
		Condition: condition,
		Quantity:  stock,
	}, nil)
	return book
}

// --- CreateSale ---

func (suite *SaleServiceTestSuite) TestCreateSale_Success() {
	ctx := context.Background()
	operatorID := uuid.NewString()
	open := openSessionFixture()

	suite.mockSessionRepo.On("FindOpenSession", ctx).Return(open, nil).Once()
	book := suite.expectBook("9781234567897", dec("25.00"), domain.ConditionNew, 5)

	req := dto.CreateSaleRequest{
		TenderType: domain.TenderCredit,
		Lines: []dto.CreateSaleLineRequest{
			{CatalogCode: "9781234567897", Condition: domain.ConditionNew, Quantity: 2, DiscountPercent: dec("10")},
		},
	}

	suite.mockSaleRepo.On("CreateSaleAtomic", ctx, mock.MatchedBy(func(s domain.Sale) bool {
		return s.TenderType == domain.TenderCredit &&
			s.Total.Equal(dec("45.00")) &&
			s.OperatorID == operatorID &&
			s.SessionID != nil && *s.SessionID == open.SessionID
	}), mock.AnythingOfType("[]domain.SaleLine")).Return(nil).Once()

	sale, err := suite.service.CreateSale(ctx, req, operatorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(sale)
	suite.True(sale.Total.Equal(dec("45.00")), "total: %s", sale.Total)
	suite.Require().Len(sale.Lines, 1)
	suite.Equal(book.BookID, sale.Lines[0].BookID)
	suite.True(sale.Lines[0].UnitPrice.Equal(dec("25.00")), "stored price is authoritative")
	suite.True(sale.Lines[0].LineTotal.Equal(dec("45.00")))
	suite.WithinDuration(time.Now(), sale.SaleDate, time.Second)

	suite.mockSaleRepo.AssertExpectations(suite.T())
	suite.mockSessionRepo.AssertExpectations(suite.T())
}

func (suite *SaleServiceTestSuite) TestCreateSale_QuantityEqualsAvailableStock() {
	ctx := context.Background()
	open := openSessionFixture()

	suite.mockSessionRepo.On("FindOpenSession", ctx).Return(open, nil).Once()
	book := suite.expectBook("9781111111116", dec("50.00"), domain.ConditionNew, 3)

	req := dto.CreateSaleRequest{
		TenderType: domain.TenderCash,
		Lines: []dto.CreateSaleLineRequest{
			{CatalogCode: "9781111111116", Condition: domain.ConditionNew, Quantity: 3},
		},
	}

	suite.mockSaleRepo.On("CreateSaleAtomic", ctx, mock.AnythingOfType("domain.Sale"), mock.AnythingOfType("[]domain.SaleLine")).Return(nil).Once()

	sale, err := suite.service.CreateSale(ctx, req, "op-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(sale)
	suite.True(sale.Total.Equal(dec("150.00")), "total: %s", sale.Total)
	suite.Require().Len(sale.Lines, 1)
	suite.Equal(book.BookID, sale.Lines[0].BookID)
	suite.Equal(3, sale.Lines[0].Quantity)
	suite.mockSaleRepo.AssertExpectations(suite.T())
}

func (suite *SaleServiceTestSuite) TestCreateSale_AdvisoryClientTotalIgnored() {
	ctx := context.Background()
	open := openSessionFixture()

	suite.mockSessionRepo.On("FindOpenSession", ctx).Return(open, nil).Once()
	suite.expectBook("9780000000002", dec("19.99"), domain.ConditionDiscounted, 3)

	wrongTotal := dec("1.00")
	req := dto.CreateSaleRequest{
		TenderType: domain.TenderCash,
		Total:      &wrongTotal,
		Lines: []dto.CreateSaleLineRequest{
			{CatalogCode: "9780000000002", Condition: domain.ConditionDiscounted, Quantity: 1},
		},
	}

	suite.mockSaleRepo.On("CreateSaleAtomic", ctx, mock.AnythingOfType("domain.Sale"), mock.AnythingOfType("[]domain.SaleLine")).Return(nil).Once()

	sale, err := suite.service.CreateSale(ctx, req, "op-1")

	suite.Require().NoError(err)
	suite.True(sale.Total.Equal(dec("19.99")), "server total wins over the advisory client total")

	suite.mockSaleRepo.AssertExpectations(suite.T())
}

func (suite *SaleServiceTestSuite) TestCreateSale_InvalidTender() {
	ctx := context.Background()
	req := dto.CreateSaleRequest{
		TenderType: "CHEQUE",
		Lines: []dto.CreateSaleLineRequest{
			{CatalogCode: "9781234567897", Condition: domain.ConditionNew, Quantity: 1},
		},
	}

	sale, err := suite.service.CreateSale(ctx, req, "op-1")

	suite.Require().Error(err)
	suite.Nil(sale)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockSaleRepo.AssertNotCalled(suite.T(), "CreateSaleAtomic", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SaleServiceTestSuite) TestCreateSale_NoLines() {
	ctx := context.Background()
	req := dto.CreateSaleRequest{TenderType: domain.TenderCash}

	sale, err := suite.service.CreateSale(ctx, req, "op-1")

	suite.Require().Error(err)
	suite.Nil(sale)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *SaleServiceTestSuite) TestCreateSale_DiscountOutOfRange() {
	ctx := context.Background()
	req := dto.CreateSaleRequest{
		TenderType: domain.TenderCash,
		Lines: []dto.CreateSaleLineRequest{
			{CatalogCode: "9781234567897", Condition: domain.ConditionNew, Quantity: 1, DiscountPercent: dec("101")},
		},
	}

	sale, err := suite.service.CreateSale(ctx, req, "op-1")

	suite.Require().Error(err)
	suite.Nil(sale)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *SaleServiceTestSuite) TestCreateSale_CustomerNotFound() {
	ctx := context.Background()
	customerID := uuid.NewString()

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, customerID).Return(nil, apperrors.ErrNotFound).Once()

	req := dto.CreateSaleRequest{
		CustomerID: &customerID,
		TenderType: domain.TenderPix,
		Lines: []dto.CreateSaleLineRequest{
			{CatalogCode: "9781234567897", Condition: domain.ConditionNew, Quantity: 1},
		},
	}

	sale, err := suite.service.CreateSale(ctx, req, "op-1")

	suite.Require().Error(err)
	suite.Nil(sale)
	suite.ErrorIs(err, services.ErrCustomerNotFound)
	suite.mockCustomerRepo.AssertExpectations(suite.T())
}

func (suite *SaleServiceTestSuite) TestCreateSale_NoOpenSession() {
	ctx := context.Background()

	suite.mockSessionRepo.On("FindOpenSession", ctx).Return(nil, apperrors.ErrNotFound).Once()

	req := dto.CreateSaleRequest{
		TenderType: domain.TenderCash,
		Lines: []dto.CreateSaleLineRequest{
			{CatalogCode: "9781234567897", Condition: domain.ConditionNew, Quantity: 1},
		},
	}

	sale, err := suite.service.CreateSale(ctx, req, "op-1")

	suite.Require().Error(err)
	suite.Nil(sale)
	suite.ErrorIs(err, apperrors.ErrNoOpenSession)
	suite.mockSaleRepo.AssertNotCalled(suite.T(), "CreateSaleAtomic", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SaleServiceTestSuite) TestCreateSale_UnknownCatalogCode() {
	ctx := context.Background()
	open := openSessionFixture()

	suite.mockSessionRepo.On("FindOpenSession", ctx).Return(open, nil).Once()
	suite.mockCatalogRepo.On("FindBookByCatalogCode", ctx, "9999999999999").Return(nil, apperrors.ErrNotFound).Once()

	req := dto.CreateSaleRequest{
		TenderType: domain.TenderCash,
		Lines: []dto.CreateSaleLineRequest{
			{CatalogCode: "9999999999999", Condition: domain.ConditionNew, Quantity: 1},
		},
	}

	sale, err := suite.service.CreateSale(ctx, req, "op-1")

	suite.Require().Error(err)
	suite.Nil(sale)
	suite.ErrorIs(err, services.ErrBookNotFound)
	suite.mockCatalogRepo.AssertExpectations(suite.T())
}

func (suite *SaleServiceTestSuite) TestCreateSale_PriceMissing() {
	ctx := context.Background()
	open := openSessionFixture()
	book := &domain.Book{BookID: uuid.NewString(), CatalogCode: "9781111111113"}

	suite.mockSessionRepo.On("FindOpenSession", ctx).Return(open, nil).Once()
	suite.mockCatalogRepo.On("FindBookByCatalogCode", ctx, book.CatalogCode).Return(book, nil).Once()
	suite.mockCatalogRepo.On("FindPrice", ctx, book.BookID, domain.ConditionDiscounted).Return(nil, apperrors.ErrNotFound).Once()

	req := dto.CreateSaleRequest{
		TenderType: domain.TenderCash,
		Lines: []dto.CreateSaleLineRequest{
			{CatalogCode: book.CatalogCode, Condition: domain.ConditionDiscounted, Quantity: 1},
		},
	}

	sale, err := suite.service.CreateSale(ctx, req, "op-1")

	suite.Require().Error(err)
	suite.Nil(sale)
	suite.ErrorIs(err, apperrors.ErrPriceNotFound)
}

func (suite *SaleServiceTestSuite) TestCreateSale_ZeroPriceUnusable() {
	ctx := context.Background()
	open := openSessionFixture()
	book := &domain.Book{BookID: uuid.NewString(), CatalogCode: "9782222222220"}

	suite.mockSessionRepo.On("FindOpenSession", ctx).Return(open, nil).Once()
	suite.mockCatalogRepo.On("FindBookByCatalogCode", ctx, book.CatalogCode).Return(book, nil).Once()
	suite.mockCatalogRepo.On("FindPrice", ctx, book.BookID, domain.ConditionNew).Return(&domain.PriceLine{
		BookID:    book.BookID,
		Condition: domain.ConditionNew,
		UnitPrice: decimal.Zero,
	}, nil).Once()

	req := dto.CreateSaleRequest{
		TenderType: domain.TenderCash,
		Lines: []dto.CreateSaleLineRequest{
			{CatalogCode: book.CatalogCode, Condition: domain.ConditionNew, Quantity: 1},
		},
	}

	sale, err := suite.service.CreateSale(ctx, req, "op-1")

	suite.Require().Error(err)
	suite.Nil(sale)
	suite.ErrorIs(err, apperrors.ErrPriceNotFound)
}

func (suite *SaleServiceTestSuite) TestCreateSale_InsufficientStock() {
	ctx := context.Background()
	open := openSessionFixture()

	suite.mockSessionRepo.On("FindOpenSession", ctx).Return(open, nil).Once()
	// Two lines for the same (book, condition) whose quantities sum past stock
	suite.expectBook("9783333333337", dec("10.00"), domain.ConditionNew, 3)

	req := dto.CreateSaleRequest{
		TenderType: domain.TenderCash,
		Lines: []dto.CreateSaleLineRequest{
			{CatalogCode: "9783333333337", Condition: domain.ConditionNew, Quantity: 2},
			{CatalogCode: "9783333333337", Condition: domain.ConditionNew, Quantity: 2},
		},
	}

	sale, err := suite.service.CreateSale(ctx, req, "op-1")

	suite.Require().Error(err)
	suite.Nil(sale)
	suite.ErrorIs(err, apperrors.ErrInsufficientStock)
	suite.mockSaleRepo.AssertNotCalled(suite.T(), "CreateSaleAtomic", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SaleServiceTestSuite) TestCreateSale_MissingStockRowIsZero() {
	ctx := context.Background()
	open := openSessionFixture()
	book := &domain.Book{BookID: uuid.NewString(), CatalogCode: "9784444444444"}

	suite.mockSessionRepo.On("FindOpenSession", ctx).Return(open, nil).Once()
	suite.mockCatalogRepo.On("FindBookByCatalogCode", ctx, book.CatalogCode).Return(book, nil).Once()
	suite.mockCatalogRepo.On("FindPrice", ctx, book.BookID, domain.ConditionNew).Return(&domain.PriceLine{
		BookID:    book.BookID,
		Condition: domain.ConditionNew,
		UnitPrice: dec("15.00"),
	}, nil).Once()
	suite.mockStockRepo.On("FindStockLine", ctx, book.BookID, domain.ConditionNew).Return(nil, apperrors.ErrNotFound).Once()

	req := dto.CreateSaleRequest{
		TenderType: domain.TenderCash,
		Lines: []dto.CreateSaleLineRequest{
			{CatalogCode: book.CatalogCode, Condition: domain.ConditionNew, Quantity: 1},
		},
	}

	sale, err := suite.service.CreateSale(ctx, req, "op-1")

	suite.Require().Error(err)
	suite.Nil(sale)
	suite.ErrorIs(err, apperrors.ErrInsufficientStock)
}

func (suite *SaleServiceTestSuite) TestCreateSale_RepoError() {
	ctx := context.Background()
	open := openSessionFixture()

	suite.mockSessionRepo.On("FindOpenSession", ctx).Return(open, nil).Once()
	suite.expectBook("9785555555551", dec("12.00"), domain.ConditionNew, 10)

	expectedErr := assert.AnError
	suite.mockSaleRepo.On("CreateSaleAtomic", ctx, mock.AnythingOfType("domain.Sale"), mock.AnythingOfType("[]domain.SaleLine")).Return(expectedErr).Once()

	req := dto.CreateSaleRequest{
		TenderType: domain.TenderCash,
		Lines: []dto.CreateSaleLineRequest{
			{CatalogCode: "9785555555551", Condition: domain.ConditionNew, Quantity: 1},
		},
	}

	sale, err := suite.service.CreateSale(ctx, req, "op-1")

	suite.Require().Error(err)
	suite.Nil(sale)
	suite.ErrorIs(err, expectedErr)
}

// --- ReverseSale ---

func (suite *SaleServiceTestSuite) TestReverseSale_Success() {
	ctx := context.Background()
	open := openSessionFixture()
	saleID := uuid.NewString()
	sale := &domain.Sale{
		SaleID:     saleID,
		TenderType: domain.TenderCash,
		Total:      dec("45.00"),
		SessionID:  &open.SessionID,
		OperatorID: "op-1",
	}
	lines := []domain.SaleLine{
		{LineID: uuid.NewString(), SaleID: saleID, BookID: uuid.NewString(), Condition: domain.ConditionNew, Quantity: 2},
	}

	suite.mockSaleRepo.On("FindSaleByID", ctx, saleID).Return(sale, nil).Once()
	suite.mockSessionRepo.On("FindSessionByID", ctx, open.SessionID).Return(open, nil).Once()
	suite.mockSaleRepo.On("FindSaleLinesBySaleID", ctx, saleID).Return(lines, nil).Once()
	suite.mockSaleRepo.On("ReverseSaleAtomic", ctx, *sale, lines).Return(nil).Once()

	summary, err := suite.service.ReverseSale(ctx, saleID, "op-2")

	suite.Require().NoError(err)
	suite.Require().NotNil(summary)
	suite.Equal(saleID, summary.SaleID)
	suite.True(summary.ReversedTotal.Equal(dec("45.00")))
	suite.Equal(1, summary.LineCount)
	suite.True(summary.SessionAffected)

	suite.mockSaleRepo.AssertExpectations(suite.T())
	suite.mockSessionRepo.AssertExpectations(suite.T())
}

func (suite *SaleServiceTestSuite) TestReverseSale_NotFound() {
	ctx := context.Background()
	saleID := uuid.NewString()

	suite.mockSaleRepo.On("FindSaleByID", ctx, saleID).Return(nil, apperrors.ErrNotFound).Once()

	summary, err := suite.service.ReverseSale(ctx, saleID, "op-1")

	suite.Require().Error(err)
	suite.Nil(summary)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockSaleRepo.AssertNotCalled(suite.T(), "ReverseSaleAtomic", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SaleServiceTestSuite) TestReverseSale_SessionClosed() {
	ctx := context.Background()
	closed := openSessionFixture()
	closed.Status = domain.SessionClosed
	saleID := uuid.NewString()
	sale := &domain.Sale{
		SaleID:     saleID,
		TenderType: domain.TenderDebit,
		Total:      dec("30.00"),
		SessionID:  &closed.SessionID,
	}

	suite.mockSaleRepo.On("FindSaleByID", ctx, saleID).Return(sale, nil).Once()
	suite.mockSessionRepo.On("FindSessionByID", ctx, closed.SessionID).Return(closed, nil).Once()

	summary, err := suite.service.ReverseSale(ctx, saleID, "op-1")

	suite.Require().Error(err)
	suite.Nil(summary)
	suite.ErrorIs(err, apperrors.ErrReversalNotAllowed)
	suite.mockSaleRepo.AssertNotCalled(suite.T(), "ReverseSaleAtomic", mock.Anything, mock.Anything, mock.Anything)
}

// --- Reads ---

func (suite *SaleServiceTestSuite) TestGetSaleByID_Success() {
	ctx := context.Background()
	saleID := uuid.NewString()
	sale := &domain.Sale{SaleID: saleID, TenderType: domain.TenderCash, Total: dec("19.99")}
	lines := []domain.SaleLine{{LineID: uuid.NewString(), SaleID: saleID}}

	suite.mockSaleRepo.On("FindSaleByID", ctx, saleID).Return(sale, nil).Once()
	suite.mockSaleRepo.On("FindSaleLinesBySaleID", ctx, saleID).Return(lines, nil).Once()

	got, err := suite.service.GetSaleByID(ctx, saleID)

	suite.Require().NoError(err)
	suite.Require().NotNil(got)
	suite.Len(got.Lines, 1)
	suite.mockSaleRepo.AssertExpectations(suite.T())
}

func (suite *SaleServiceTestSuite) TestListSales_DefaultLimit() {
	ctx := context.Background()
	sales := []domain.Sale{
		{SaleID: uuid.NewString(), TenderType: domain.TenderCash, Total: dec("10.00")},
		{SaleID: uuid.NewString(), TenderType: domain.TenderPix, Total: dec("20.00")},
	}
	token := "next-page"

	suite.mockSaleRepo.On("ListSales", ctx, mock.AnythingOfType("domain.SaleFilters"), 20, (*string)(nil)).
		Return(sales, &token, nil).Once()

	resp, err := suite.service.ListSales(ctx, dto.ListSalesParams{})

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.Len(resp.Sales, 2)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal(token, *resp.NextToken)
	suite.mockSaleRepo.AssertExpectations(suite.T())
}

// --- Run Test Suite ---

func TestSaleService(t *testing.T) {
	suite.Run(t, new(SaleServiceTestSuite))
}
