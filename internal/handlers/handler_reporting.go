package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/sebodomatias/bookstore_pos_app/internal/core/ports/services"
	"github.com/sebodomatias/bookstore_pos_app/internal/dto"
	"github.com/sebodomatias/bookstore_pos_app/internal/middleware"
)

// reportingHandler handles the read-only store reports.
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/tender-totals", h.tenderTotals)
		reports.GET("/book-sales", h.bookSales)
		reports.GET("/session-history", h.sessionHistory)
	}
}

// reportRange reads the from/to query params. Missing bounds default to the
// last 30 days.
func reportRange(c *gin.Context) (time.Time, time.Time, error) {
	to := time.Now().UTC()
	from := to.AddDate(0, 0, -30)

	if v := c.Query("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return time.Time{}, time.Time{}, errors.New("invalid 'from' timestamp, expected RFC3339")
		}
		from = t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return time.Time{}, time.Time{}, errors.New("invalid 'to' timestamp, expected RFC3339")
		}
		to = t
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, errors.New("'to' must not be before 'from'")
	}
	return from, to, nil
}

// tenderTotals godoc
// @Summary Sale totals per tender type
// @Description Aggregates sale counts and totals per tender type over a date range (default last 30 days).
// @Tags reports
// @Produce json
// @Param from query string false "Start of date range (RFC3339)"
// @Param to query string false "End of date range (RFC3339)"
// @Success 200 {array} dto.TenderTotalResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/tender-totals [get]
func (h *reportingHandler) tenderTotals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	from, to, err := reportRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	rows, err := h.reportingService.TotalsByTender(c.Request.Context(), from, to)
	if err != nil {
		logger.Error("Failed to build tender totals report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to build report"})
		return
	}

	c.JSON(http.StatusOK, dto.ToTenderTotalResponses(rows))
}

// bookSales godoc
// @Summary Sold quantity and revenue per book
// @Description Aggregates quantity sold, revenue and average unit price per (book, condition) over a date range (default last 30 days).
// @Tags reports
// @Produce json
// @Param from query string false "Start of date range (RFC3339)"
// @Param to query string false "End of date range (RFC3339)"
// @Success 200 {array} dto.BookSalesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/book-sales [get]
func (h *reportingHandler) bookSales(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	from, to, err := reportRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	rows, err := h.reportingService.SalesByBook(c.Request.Context(), from, to)
	if err != nil {
		logger.Error("Failed to build book sales report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to build report"})
		return
	}

	c.JSON(http.StatusOK, dto.ToBookSalesResponses(rows))
}

// sessionHistory godoc
// @Summary Cash session history
// @Description Lists sessions over a date range with movements and, for closed sessions, the reconciliation recomputed from stored fields.
// @Tags reports
// @Produce json
// @Param from query string false "Start of date range (RFC3339)"
// @Param to query string false "End of date range (RFC3339)"
// @Success 200 {array} dto.SessionHistoryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/session-history [get]
func (h *reportingHandler) sessionHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	from, to, err := reportRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	entries, err := h.reportingService.SessionHistory(c.Request.Context(), from, to)
	if err != nil {
		logger.Error("Failed to build session history report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to build report"})
		return
	}

	c.JSON(http.StatusOK, dto.ToSessionHistoryResponses(entries))
}
