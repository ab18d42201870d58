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

// catalogHandler handles HTTP requests for books, prices and CSV imports.
type catalogHandler struct {
	catalogService portssvc.CatalogSvcFacade
}

func newCatalogHandler(cs portssvc.CatalogSvcFacade) *catalogHandler {
	return &catalogHandler{catalogService: cs}
}

func registerCatalogRoutes(rg *gin.RouterGroup, catalogService portssvc.CatalogSvcFacade) {
	h := newCatalogHandler(catalogService)

	books := rg.Group("/books")
	{
		books.POST("", h.createBook)
		books.GET("", h.listBooks)
		books.GET("/:bookID", h.getBook)
		books.PUT("/:bookID", h.updateBook)
		books.PUT("/:bookID/prices", h.setPrice)
		books.GET("/:bookID/prices", h.listPrices)
		books.POST("/import", h.importCSV)
	}
	// Catalog code lookup sits outside /books/:bookID to keep route params
	// unambiguous.
	rg.GET("/catalog/:catalogCode", h.getBookByCatalogCode)
}

// createBook godoc
// @Summary Create a catalog entry
// @Tags books
// @Accept json
// @Produce json
// @Param book body dto.CreateBookRequest true "Book details"
// @Success 201 {object} dto.BookResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Catalog code already registered"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /books [post]
func (h *catalogHandler) createBook(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	operatorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	book, err := h.catalogService.CreateBook(c.Request.Context(), req, operatorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, ErrorResponse{Error: "Catalog code already registered"})
		default:
			logger.Error("Failed to create book", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create book"})
		}
		return
	}

	logger.Info("Book created", slog.String("book_id", book.BookID), slog.String("catalog_code", book.CatalogCode))
	c.JSON(http.StatusCreated, dto.ToBookResponse(book))
}

// getBook godoc
// @Summary Get a book by ID
// @Tags books
// @Produce json
// @Param bookID path string true "Book ID"
// @Success 200 {object} dto.BookResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /books/{bookID} [get]
func (h *catalogHandler) getBook(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bookID := c.Param("bookID")

	book, err := h.catalogService.GetBookByID(c.Request.Context(), bookID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Book not found"})
			return
		}
		logger.Error("Failed to get book", slog.String("error", err.Error()), slog.String("book_id", bookID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve book"})
		return
	}

	c.JSON(http.StatusOK, dto.ToBookResponse(book))
}

// getBookByCatalogCode godoc
// @Summary Get a book by its catalog code
// @Description Looks a book up by the code on its sticker, the way terminals do at sale time.
// @Tags books
// @Produce json
// @Param catalogCode path string true "Catalog code"
// @Success 200 {object} dto.BookResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /catalog/{catalogCode} [get]
func (h *catalogHandler) getBookByCatalogCode(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	catalogCode := c.Param("catalogCode")

	book, err := h.catalogService.GetBookByCatalogCode(c.Request.Context(), catalogCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Book not found"})
			return
		}
		logger.Error("Failed to get book by catalog code", slog.String("error", err.Error()), slog.String("catalog_code", catalogCode))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve book"})
		return
	}

	c.JSON(http.StatusOK, dto.ToBookResponse(book))
}

// listBooks godoc
// @Summary List catalog entries
// @Tags books
// @Produce json
// @Param limit query int false "Limit number of results" default(20)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListBooksResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /books [get]
func (h *catalogHandler) listBooks(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListBooksParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.catalogService.ListBooks(c.Request.Context(), params)
	if err != nil {
		logger.Error("Failed to list books", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list books"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// updateBook godoc
// @Summary Update a book
// @Description Updates catalog metadata. Nil fields are left unchanged.
// @Tags books
// @Accept json
// @Produce json
// @Param bookID path string true "Book ID"
// @Param book body dto.UpdateBookRequest true "Fields to update"
// @Success 200 {object} dto.BookResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /books/{bookID} [put]
func (h *catalogHandler) updateBook(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bookID := c.Param("bookID")

	var req dto.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	operatorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	book, err := h.catalogService.UpdateBook(c.Request.Context(), bookID, req, operatorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Book not found"})
		default:
			logger.Error("Failed to update book", slog.String("error", err.Error()), slog.String("book_id", bookID))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update book"})
		}
		return
	}

	logger.Info("Book updated", slog.String("book_id", bookID))
	c.JSON(http.StatusOK, dto.ToBookResponse(book))
}

// setPrice godoc
// @Summary Set the price for a (book, condition)
// @Description Creates or replaces the unit price for one condition of a book.
// @Tags books
// @Accept json
// @Produce json
// @Param bookID path string true "Book ID"
// @Param price body dto.SetPriceRequest true "Condition and unit price"
// @Success 200 {object} dto.PriceLineResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /books/{bookID}/prices [put]
func (h *catalogHandler) setPrice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bookID := c.Param("bookID")

	var req dto.SetPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	operatorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	price, err := h.catalogService.SetPrice(c.Request.Context(), bookID, req, operatorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Book not found"})
		default:
			logger.Error("Failed to set price", slog.String("error", err.Error()), slog.String("book_id", bookID))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to set price"})
		}
		return
	}

	logger.Info("Price set", slog.String("book_id", bookID), slog.String("condition", string(price.Condition)))
	c.JSON(http.StatusOK, dto.ToPriceLineResponse(*price))
}

// listPrices godoc
// @Summary List the prices of a book
// @Tags books
// @Produce json
// @Param bookID path string true "Book ID"
// @Success 200 {array} dto.PriceLineResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /books/{bookID}/prices [get]
func (h *catalogHandler) listPrices(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bookID := c.Param("bookID")

	prices, err := h.catalogService.ListPricesByBook(c.Request.Context(), bookID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Book not found"})
			return
		}
		logger.Error("Failed to list prices", slog.String("error", err.Error()), slog.String("book_id", bookID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list prices"})
		return
	}

	resp := make([]dto.PriceLineResponse, len(prices))
	for i, p := range prices {
		resp[i] = dto.ToPriceLineResponse(p)
	}
	c.JSON(http.StatusOK, resp)
}

// importCSV godoc
// @Summary Import catalog entries from CSV
// @Description Upserts books, prices and stock from an uploaded CSV file. Bad rows are skipped and reported; good rows still apply.
// @Tags books
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file"
// @Success 200 {object} dto.ImportSummary
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /books/import [post]
func (h *catalogHandler) importCSV(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	operatorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "CSV file is required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		logger.Error("Failed to open uploaded CSV", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to read uploaded file"})
		return
	}
	defer file.Close()

	summary, err := h.catalogService.ImportCSV(c.Request.Context(), file, operatorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to import CSV", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to import CSV"})
		return
	}

	logger.Info("Catalog CSV imported",
		slog.Int("created", summary.Created),
		slog.Int("updated", summary.Updated),
		slog.Int("skipped", summary.Skipped),
	)
	c.JSON(http.StatusOK, summary)
}
