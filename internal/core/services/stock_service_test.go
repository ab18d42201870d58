package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/sebodomatias/bookstore_pos_app/internal/apperrors"
	"github.com/sebodomatias/bookstore_pos_app/internal/core/domain"
	portssvc "github.com/sebodomatias/bookstore_pos_app/internal/core/ports/services"
	"github.com/sebodomatias/bookstore_pos_app/internal/core/services"
	"github.com/sebodomatias/bookstore_pos_app/internal/dto"
)

type StockServiceTestSuite struct {
	suite.Suite
	mockStockRepo   *MockStockRepository
	mockCatalogRepo *MockCatalogRepository
	service         portssvc.StockSvcFacade
}

func (suite *StockServiceTestSuite) SetupTest() {
	suite.mockStockRepo = new(MockStockRepository)
	suite.mockCatalogRepo = new(MockCatalogRepository)
	suite.service = services.NewStockService(suite.mockStockRepo, suite.mockCatalogRepo)
}

func (suite *StockServiceTestSuite) TestGetStock_Success() {
	ctx := context.Background()
	bookID := uuid.NewString()
	lines := []domain.StockLine{
		{BookID: bookID, Condition: domain.ConditionNew, Quantity: 4},
		{BookID: bookID, Condition: domain.ConditionDiscounted, Quantity: 1},
	}

	suite.mockCatalogRepo.On("FindBookByID", ctx, bookID).Return(&domain.Book{BookID: bookID}, nil).Once()
	suite.mockStockRepo.On("ListStockLinesByBook", ctx, bookID).Return(lines, nil).Once()

	got, err := suite.service.GetStock(ctx, bookID)

	suite.Require().NoError(err)
	suite.Equal(lines, got)
	suite.mockStockRepo.AssertExpectations(suite.T())
}

func (suite *StockServiceTestSuite) TestGetStock_BookNotFound() {
	ctx := context.Background()
	bookID := uuid.NewString()

	suite.mockCatalogRepo.On("FindBookByID", ctx, bookID).Return(nil, apperrors.ErrNotFound).Once()

	got, err := suite.service.GetStock(ctx, bookID)

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockStockRepo.AssertNotCalled(suite.T(), "ListStockLinesByBook", mock.Anything, mock.Anything)
}

func (suite *StockServiceTestSuite) TestAdjustStock_Receive() {
	ctx := context.Background()
	bookID := uuid.NewString()
	req := dto.AdjustStockRequest{Condition: domain.ConditionNew, Delta: 5, Reason: "delivery"}

	suite.mockCatalogRepo.On("FindBookByID", ctx, bookID).Return(&domain.Book{BookID: bookID}, nil).Once()
	suite.mockStockRepo.On("EnsureStockLine", ctx, bookID, domain.ConditionNew, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockStockRepo.On("AdjustQuantity", ctx, bookID, domain.ConditionNew, 5, mock.AnythingOfType("time.Time")).Return(8, nil).Once()

	line, err := suite.service.AdjustStock(ctx, bookID, req, "op-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(line)
	suite.Equal(8, line.Quantity)
	suite.mockStockRepo.AssertExpectations(suite.T())
}

// The adjustment must reach the repository as a relative delta. Reading the
// quantity and writing back an absolute value would overwrite a concurrent
// sale's decrement with stale data.
func (suite *StockServiceTestSuite) TestAdjustStock_NeverWritesAbsoluteQuantity() {
	ctx := context.Background()
	bookID := uuid.NewString()
	req := dto.AdjustStockRequest{Condition: domain.ConditionNew, Delta: 1, Reason: "recount"}

	suite.mockCatalogRepo.On("FindBookByID", ctx, bookID).Return(&domain.Book{BookID: bookID}, nil).Once()
	suite.mockStockRepo.On("EnsureStockLine", ctx, bookID, domain.ConditionNew, mock.AnythingOfType("time.Time")).Return(nil).Once()
	// A sale has dropped the quantity from 5 to 4 by the time the delta lands.
	suite.mockStockRepo.On("AdjustQuantity", ctx, bookID, domain.ConditionNew, 1, mock.AnythingOfType("time.Time")).Return(5, nil).Once()

	line, err := suite.service.AdjustStock(ctx, bookID, req, "op-1")

	suite.Require().NoError(err)
	suite.Equal(5, line.Quantity)
	suite.mockStockRepo.AssertNotCalled(suite.T(), "FindStockLine", mock.Anything, mock.Anything, mock.Anything)
	suite.mockStockRepo.AssertNotCalled(suite.T(), "SetQuantity", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockStockRepo.AssertExpectations(suite.T())
}

func (suite *StockServiceTestSuite) TestAdjustStock_MissingLineCreated() {
	ctx := context.Background()
	bookID := uuid.NewString()
	req := dto.AdjustStockRequest{Condition: domain.ConditionDiscounted, Delta: 2}

	suite.mockCatalogRepo.On("FindBookByID", ctx, bookID).Return(&domain.Book{BookID: bookID}, nil).Once()
	suite.mockStockRepo.On("EnsureStockLine", ctx, bookID, domain.ConditionDiscounted, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockStockRepo.On("AdjustQuantity", ctx, bookID, domain.ConditionDiscounted, 2, mock.AnythingOfType("time.Time")).Return(2, nil).Once()

	line, err := suite.service.AdjustStock(ctx, bookID, req, "op-1")

	suite.Require().NoError(err)
	suite.Equal(2, line.Quantity)
	suite.mockStockRepo.AssertExpectations(suite.T())
}

func (suite *StockServiceTestSuite) TestAdjustStock_ZeroDelta() {
	ctx := context.Background()
	req := dto.AdjustStockRequest{Condition: domain.ConditionNew, Delta: 0}

	line, err := suite.service.AdjustStock(ctx, uuid.NewString(), req, "op-1")

	suite.Require().Error(err)
	suite.Nil(line)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockStockRepo.AssertNotCalled(suite.T(), "AdjustQuantity", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *StockServiceTestSuite) TestAdjustStock_WouldGoNegative() {
	ctx := context.Background()
	bookID := uuid.NewString()
	req := dto.AdjustStockRequest{Condition: domain.ConditionNew, Delta: -5, Reason: "shrinkage"}

	suite.mockCatalogRepo.On("FindBookByID", ctx, bookID).Return(&domain.Book{BookID: bookID}, nil).Once()
	suite.mockStockRepo.On("EnsureStockLine", ctx, bookID, domain.ConditionNew, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockStockRepo.On("AdjustQuantity", ctx, bookID, domain.ConditionNew, -5, mock.AnythingOfType("time.Time")).Return(0, apperrors.ErrInsufficientStock).Once()

	line, err := suite.service.AdjustStock(ctx, bookID, req, "op-1")

	suite.Require().Error(err)
	suite.Nil(line)
	suite.ErrorIs(err, apperrors.ErrInsufficientStock)
	suite.mockStockRepo.AssertExpectations(suite.T())
}

func (suite *StockServiceTestSuite) TestAdjustStock_InvalidCondition() {
	ctx := context.Background()
	req := dto.AdjustStockRequest{Condition: "USED", Delta: 1}

	line, err := suite.service.AdjustStock(ctx, uuid.NewString(), req, "op-1")

	suite.Require().Error(err)
	suite.Nil(line)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- Run Test Suite ---

func TestStockService(t *testing.T) {
	suite.Run(t, new(StockServiceTestSuite))
}
