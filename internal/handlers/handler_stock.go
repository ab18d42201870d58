package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sebodomatias/bookstore_pos_app/internal/apperrors"
	portssvc "github.com/sebodomatias/bookstore_pos_app/internal/core/ports/services"
	"github.com/sebodomatias/bookstore_pos_app/internal/dto"
	"github.com/sebodomatias/bookstore_pos_app/internal/middleware"
)

// stockHandler handles stock queries and manual adjustments.
type stockHandler struct {
	stockService portssvc.StockSvcFacade
}

func newStockHandler(ss portssvc.StockSvcFacade) *stockHandler {
	return &stockHandler{stockService: ss}
}

func registerStockRoutes(rg *gin.RouterGroup, stockService portssvc.StockSvcFacade) {
	h := newStockHandler(stockService)

	stock := rg.Group("/books/:bookID/stock")
	{
		stock.GET("", h.getStock)
		stock.POST("/adjustments", h.adjustStock)
	}
}

// getStock godoc
// @Summary Get the stock lines of a book
// @Description Returns the per-condition quantities of a book.
// @Tags stock
// @Produce json
// @Param bookID path string true "Book ID"
// @Success 200 {array} dto.StockLineResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /books/{bookID}/stock [get]
func (h *stockHandler) getStock(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bookID := c.Param("bookID")

	lines, err := h.stockService.GetStock(c.Request.Context(), bookID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Book not found"})
			return
		}
		logger.Error("Failed to get stock", slog.String("error", err.Error()), slog.String("book_id", bookID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve stock"})
		return
	}

	resp := make([]dto.StockLineResponse, len(lines))
	for i, line := range lines {
		resp[i] = dto.ToStockLineResponse(line)
	}
	c.JSON(http.StatusOK, resp)
}

// adjustStock godoc
// @Summary Apply a manual stock adjustment
// @Description Applies a signed quantity delta for receiving or shrinkage corrections. The resulting quantity may not go below zero.
// @Tags stock
// @Accept json
// @Produce json
// @Param bookID path string true "Book ID"
// @Param adjustment body dto.AdjustStockRequest true "Condition, delta and optional reason"
// @Success 200 {object} dto.StockLineResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "Adjustment would make the quantity negative"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /books/{bookID}/stock/adjustments [post]
func (h *stockHandler) adjustStock(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bookID := c.Param("bookID")

	var req dto.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	operatorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	line, err := h.stockService.AdjustStock(c.Request.Context(), bookID, req, operatorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Book not found"})
		case errors.Is(err, apperrors.ErrInsufficientStock):
			c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to adjust stock", slog.String("error", err.Error()), slog.String("book_id", bookID))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to adjust stock"})
		}
		return
	}

	logger.Info("Stock adjusted",
		slog.String("book_id", bookID),
		slog.String("condition", string(line.Condition)),
		slog.Int("delta", req.Delta),
		slog.Int("quantity", line.Quantity),
	)
	c.JSON(http.StatusOK, dto.ToStockLineResponse(*line))
}
