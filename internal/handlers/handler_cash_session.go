package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sebodomatias/bookstore_pos_app/internal/apperrors"
	portssvc "github.com/sebodomatias/bookstore_pos_app/internal/core/ports/services"
	"github.com/sebodomatias/bookstore_pos_app/internal/dto"
	"github.com/sebodomatias/bookstore_pos_app/internal/middleware"
)

// cashSessionHandler handles the daily cash session lifecycle.
type cashSessionHandler struct {
	sessionService portssvc.CashSessionSvcFacade
}

func newCashSessionHandler(cs portssvc.CashSessionSvcFacade) *cashSessionHandler {
	return &cashSessionHandler{sessionService: cs}
}

func registerCashSessionRoutes(rg *gin.RouterGroup, sessionService portssvc.CashSessionSvcFacade) {
	h := newCashSessionHandler(sessionService)

	sessions := rg.Group("/cash-sessions")
	{
		sessions.POST("", h.openSession)
		sessions.GET("", h.listSessions)
		sessions.GET("/current", h.currentSession)
		sessions.POST("/current/movements", h.recordMovement)
		sessions.GET("/:sessionID", h.getSession)
		sessions.POST("/:sessionID/close", h.closeSession)
	}
}

// openSession godoc
// @Summary Open a cash session
// @Description Opens the day's session with the operator-counted opening float. Only one session may be open at a time.
// @Tags cash-sessions
// @Accept json
// @Produce json
// @Param session body dto.OpenSessionRequest true "Opening float"
// @Success 201 {object} dto.CashSessionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "A session is already open"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /cash-sessions [post]
func (h *cashSessionHandler) openSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.OpenSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	operatorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	session, err := h.sessionService.OpenSession(c.Request.Context(), req, operatorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrSessionAlreadyOpen):
			c.JSON(http.StatusConflict, ErrorResponse{Error: "A cash session is already open"})
		default:
			logger.Error("Failed to open cash session", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to open session"})
		}
		return
	}

	logger.Info("Cash session opened", slog.String("session_id", session.SessionID), slog.String("operator_id", operatorID))
	c.JSON(http.StatusCreated, dto.ToCashSessionResponse(session, nil, nil))
}

// currentSession godoc
// @Summary Get the open session
// @Description Returns the currently open session with its manual movements.
// @Tags cash-sessions
// @Produce json
// @Success 200 {object} dto.CashSessionResponse
// @Failure 404 {object} ErrorResponse "No open session"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /cash-sessions/current [get]
func (h *cashSessionHandler) currentSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	session, movements, err := h.sessionService.CurrentSession(c.Request.Context())
	if err != nil {
		if errors.Is(err, apperrors.ErrNoOpenSession) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "No open cash session"})
			return
		}
		logger.Error("Failed to get current session", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve session"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCashSessionResponse(session, movements, nil))
}

// recordMovement godoc
// @Summary Record a manual cash movement
// @Description Records a deposit or withdrawal against the open session. Requires a reason.
// @Tags cash-sessions
// @Accept json
// @Produce json
// @Param movement body dto.ManualMovementRequest true "Movement type, amount and reason"
// @Success 201 {object} dto.CashMovementResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "No open session"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /cash-sessions/current/movements [post]
func (h *cashSessionHandler) recordMovement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ManualMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	operatorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	movement, err := h.sessionService.RecordManualMovement(c.Request.Context(), req, operatorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrNoOpenSession):
			c.JSON(http.StatusConflict, ErrorResponse{Error: "No open cash session"})
		default:
			logger.Error("Failed to record movement", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to record movement"})
		}
		return
	}

	logger.Info("Manual movement recorded",
		slog.String("movement_id", movement.MovementID),
		slog.String("type", string(movement.Type)),
		slog.String("amount", movement.Amount.String()),
	)
	c.JSON(http.StatusCreated, dto.ToCashMovementResponse(*movement))
}

// closeSession godoc
// @Summary Close a cash session
// @Description Closes the session using the operator's counted amounts and returns it with the reconciliation.
// @Tags cash-sessions
// @Accept json
// @Produce json
// @Param sessionID path string true "Session ID"
// @Param close body dto.CloseSessionRequest true "Counted amounts per tender"
// @Success 200 {object} dto.CashSessionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Session is not open"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /cash-sessions/{sessionID}/close [post]
func (h *cashSessionHandler) closeSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID := c.Param("sessionID")

	var req dto.CloseSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	operatorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	session, rec, err := h.sessionService.CloseSession(c.Request.Context(), sessionID, req, operatorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Session not found"})
		case errors.Is(err, apperrors.ErrSessionNotOpen):
			c.JSON(http.StatusConflict, ErrorResponse{Error: "Session is not open"})
		default:
			logger.Error("Failed to close session", slog.String("error", err.Error()), slog.String("session_id", sessionID))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to close session"})
		}
		return
	}

	logger.Info("Cash session closed",
		slog.String("session_id", sessionID),
		slog.String("operator_id", operatorID),
		slog.String("total_variance", rec.TotalVariance.String()),
	)
	c.JSON(http.StatusOK, dto.ToCashSessionResponse(session, nil, rec))
}

// getSession godoc
// @Summary Get a session by ID
// @Description Returns a session with its movements; closed sessions also carry the reconciliation recomputed from stored fields.
// @Tags cash-sessions
// @Produce json
// @Param sessionID path string true "Session ID"
// @Success 200 {object} dto.CashSessionResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /cash-sessions/{sessionID} [get]
func (h *cashSessionHandler) getSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID := c.Param("sessionID")

	session, movements, rec, err := h.sessionService.GetSession(c.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Session not found"})
			return
		}
		logger.Error("Failed to get session", slog.String("error", err.Error()), slog.String("session_id", sessionID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve session"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCashSessionResponse(session, movements, rec))
}

// listSessions godoc
// @Summary List cash sessions
// @Description Lists sessions newest first within an optional date range.
// @Tags cash-sessions
// @Produce json
// @Param from query string false "Start of date range (RFC3339)"
// @Param to query string false "End of date range (RFC3339)"
// @Success 200 {array} dto.CashSessionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /cash-sessions [get]
func (h *cashSessionHandler) listSessions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var from, to *time.Time
	if v := c.Query("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid 'from' timestamp, expected RFC3339"})
			return
		}
		from = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid 'to' timestamp, expected RFC3339"})
			return
		}
		to = &t
	}

	sessions, err := h.sessionService.ListSessions(c.Request.Context(), from, to)
	if err != nil {
		logger.Error("Failed to list sessions", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list sessions"})
		return
	}

	resp := make([]dto.CashSessionResponse, len(sessions))
	for i := range sessions {
		resp[i] = dto.ToCashSessionResponse(&sessions[i], nil, nil)
	}
	c.JSON(http.StatusOK, resp)
}
