package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sebodomatias/bookstore_pos_app/internal/apperrors"
	"github.com/sebodomatias/bookstore_pos_app/internal/core/domain"
	portssvc "github.com/sebodomatias/bookstore_pos_app/internal/core/ports/services"
	"github.com/sebodomatias/bookstore_pos_app/internal/core/services"
	"github.com/sebodomatias/bookstore_pos_app/internal/dto"
	"github.com/sebodomatias/bookstore_pos_app/internal/middleware"
)

// saleHandler handles sale creation, reversal and lookups.
type saleHandler struct {
	saleService portssvc.SaleSvcFacade
}

func newSaleHandler(ss portssvc.SaleSvcFacade) *saleHandler {
	return &saleHandler{saleService: ss}
}

func registerSaleRoutes(rg *gin.RouterGroup, saleService portssvc.SaleSvcFacade) {
	h := newSaleHandler(saleService)

	sales := rg.Group("/sales")
	{
		sales.POST("", h.createSale)
		sales.GET("", h.listSales)
		sales.GET("/:saleID", h.getSale)
		sales.DELETE("/:saleID", h.reverseSale)
	}
}

// createSale godoc
// @Summary Record a sale
// @Description Validates the cart, decrements stock and registers the tender against the open session as one atomic unit. The server-computed total is authoritative.
// @Tags sales
// @Accept json
// @Produce json
// @Param sale body dto.CreateSaleRequest true "Cart lines, tender and optional customer"
// @Success 201 {object} dto.SaleResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "No open cash session"
// @Failure 422 {object} ErrorResponse "Unknown book, missing price or insufficient stock"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /sales [post]
func (h *saleHandler) createSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	operatorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	sale, err := h.saleService.CreateSale(c.Request.Context(), req, operatorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrNoOpenSession):
			c.JSON(http.StatusConflict, ErrorResponse{Error: "No open cash session"})
		case errors.Is(err, services.ErrBookNotFound),
			errors.Is(err, services.ErrCustomerNotFound),
			errors.Is(err, apperrors.ErrPriceNotFound),
			errors.Is(err, apperrors.ErrInsufficientStock):
			c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to create sale", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create sale"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToSaleResponse(sale))
}

// getSale godoc
// @Summary Get a sale with its lines
// @Tags sales
// @Produce json
// @Param saleID path string true "Sale ID"
// @Success 200 {object} dto.SaleResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /sales/{saleID} [get]
func (h *saleHandler) getSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	saleID := c.Param("saleID")

	sale, err := h.saleService.GetSaleByID(c.Request.Context(), saleID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Sale not found"})
			return
		}
		logger.Error("Failed to get sale", slog.String("error", err.Error()), slog.String("sale_id", saleID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve sale"})
		return
	}

	c.JSON(http.StatusOK, dto.ToSaleResponse(sale))
}

// listSales godoc
// @Summary List sales
// @Description Lists sale headers newest first, filtered by date range, tender or customer, with cursor pagination.
// @Tags sales
// @Produce json
// @Param from query string false "Start of date range (RFC3339)"
// @Param to query string false "End of date range (RFC3339)"
// @Param tenderType query string false "Tender type filter" Enums(CASH, CREDIT, DEBIT, PIX, OTHER)
// @Param customerID query string false "Customer filter"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Cursor from the previous page"
// @Success 200 {object} dto.ListSalesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /sales [get]
func (h *saleHandler) listSales(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	params, err := parseListSalesParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	resp, err := h.saleService.ListSales(c.Request.Context(), *params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to list sales", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list sales"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// reverseSale godoc
// @Summary Reverse a sale
// @Description Undoes a sale: restores stock, subtracts the total from the owning session's tender counter and deletes the sale. Refused once that session has closed.
// @Tags sales
// @Produce json
// @Param saleID path string true "Sale ID"
// @Success 200 {object} dto.ReversalSummary
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Owning session already closed"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /sales/{saleID} [delete]
func (h *saleHandler) reverseSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	saleID := c.Param("saleID")

	operatorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	summary, err := h.saleService.ReverseSale(c.Request.Context(), saleID, operatorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Sale not found"})
		case errors.Is(err, apperrors.ErrReversalNotAllowed):
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to reverse sale", slog.String("error", err.Error()), slog.String("sale_id", saleID))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to reverse sale"})
		}
		return
	}

	logger.Info("Sale reversed", slog.String("sale_id", saleID), slog.String("operator_id", operatorID))
	c.JSON(http.StatusOK, summary)
}

// parseListSalesParams reads the listing filters from the query string.
func parseListSalesParams(c *gin.Context) (*dto.ListSalesParams, error) {
	params := dto.ListSalesParams{Limit: 20}

	if v := c.Query("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return nil, errors.New("invalid 'from' timestamp, expected RFC3339")
		}
		params.From = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return nil, errors.New("invalid 'to' timestamp, expected RFC3339")
		}
		params.To = &t
	}
	if v := c.Query("tenderType"); v != "" {
		tender := domain.TenderType(v)
		if !tender.Valid() {
			return nil, errors.New("invalid tender type: " + v)
		}
		params.TenderType = &tender
	}
	if v := c.Query("customerID"); v != "" {
		params.CustomerID = &v
	}
	if v := c.Query("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit <= 0 {
			return nil, errors.New("invalid limit")
		}
		params.Limit = limit
	}
	if v := c.Query("nextToken"); v != "" {
		params.NextToken = &v
	}
	return &params, nil
}
