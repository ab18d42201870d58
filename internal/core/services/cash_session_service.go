package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/sebodomatias/bookstore_pos_app/internal/apperrors"
	"github.com/sebodomatias/bookstore_pos_app/internal/core/domain"
	portsrepo "github.com/sebodomatias/bookstore_pos_app/internal/core/ports/repositories"
	portssvc "github.com/sebodomatias/bookstore_pos_app/internal/core/ports/services"
	"github.com/sebodomatias/bookstore_pos_app/internal/dto"
	"github.com/sebodomatias/bookstore_pos_app/internal/middleware"
	"github.com/sebodomatias/bookstore_pos_app/internal/utils/money"
)

var (
	ErrNegativeFloat     = errors.New("opening float must not be negative")
	ErrNegativeCount     = errors.New("counted amounts must not be negative")
	ErrNonPositiveAmount = errors.New("movement amount must be positive")
	ErrInvalidMovement   = errors.New("unknown movement type")
	ErrMovementNoReason  = errors.New("movement reason is required")
)

// cashSessionService manages the session lifecycle: open, accumulate, close.
// Close and manual movements run inside repository transactions so counters
// and movements never drift from each other.
type cashSessionService struct {
	sessionRepo portsrepo.CashSessionRepositoryWithTx
}

// NewCashSessionService creates a new CashSessionService.
func NewCashSessionService(sessionRepo portsrepo.CashSessionRepositoryWithTx) portssvc.CashSessionSvcFacade {
	return &cashSessionService{sessionRepo: sessionRepo}
}

var _ portssvc.CashSessionSvcFacade = (*cashSessionService)(nil)

// OpenSession opens a new session. The database's single-OPEN-session
// constraint is the final arbiter under concurrent opens.
// Implements portssvc.CashSessionSvcFacade
func (s *cashSessionService) OpenSession(ctx context.Context, req dto.OpenSessionRequest, operatorID string) (*domain.CashSession, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.OpeningFloat.IsNegative() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrNegativeFloat)
	}

	now := time.Now().UTC()
	session := domain.CashSession{
		SessionID:    uuid.NewString(),
		Status:       domain.SessionOpen,
		OpenedAt:     now,
		OpeningFloat: money.Round(req.OpeningFloat),
		OpenedBy:     operatorID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     operatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: operatorID,
		},
	}

	if err := s.sessionRepo.CreateSession(ctx, session); err != nil {
		if errors.Is(err, apperrors.ErrSessionAlreadyOpen) {
			return nil, err
		}
		logger.Error("Failed to open session", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to open session: %w", err)
	}

	logger.Info("Cash session opened",
		slog.String("session_id", session.SessionID),
		slog.String("opening_float", session.OpeningFloat.String()))
	return &session, nil
}

// CurrentSession returns the open session and its movements.
// Implements portssvc.CashSessionSvcFacade
func (s *cashSessionService) CurrentSession(ctx context.Context) (*domain.CashSession, []domain.CashMovement, error) {
	session, err := s.sessionRepo.FindOpenSession(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, apperrors.ErrNoOpenSession
		}
		return nil, nil, fmt.Errorf("failed to find open session: %w", err)
	}
	movements, err := s.sessionRepo.FindMovementsBySessionID(ctx, session.SessionID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load session movements: %w", err)
	}
	return session, movements, nil
}

// RecordManualMovement appends a deposit or withdrawal to the open session.
// Implements portssvc.CashSessionSvcFacade
func (s *cashSessionService) RecordManualMovement(ctx context.Context, req dto.ManualMovementRequest, operatorID string) (*domain.CashMovement, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Type.Valid() {
		return nil, fmt.Errorf("%w: %s: %s", apperrors.ErrValidation, ErrInvalidMovement, req.Type)
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrNonPositiveAmount)
	}
	if req.Reason == "" {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrMovementNoReason)
	}

	tx, err := s.sessionRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction for movement: %w", err)
	}
	defer s.sessionRepo.Rollback(ctx, tx)

	// Lock the open session so a concurrent close cannot slip between the
	// check and the insert.
	session, err := s.sessionRepo.FindOpenSessionForUpdate(ctx, tx)
	if err != nil {
		return nil, err
	}

	movement := domain.CashMovement{
		MovementID: uuid.NewString(),
		SessionID:  session.SessionID,
		Type:       req.Type,
		Amount:     money.Round(req.Amount),
		Reason:     req.Reason,
		OperatorID: operatorID,
		OccurredAt: time.Now().UTC(),
	}

	if err := s.sessionRepo.SaveMovementInTx(ctx, tx, movement); err != nil {
		logger.Error("Failed to save movement", slog.String("session_id", session.SessionID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save movement: %w", err)
	}

	if err := s.sessionRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("Manual movement recorded",
		slog.String("session_id", session.SessionID),
		slog.String("type", string(movement.Type)),
		slog.String("amount", movement.Amount.String()))
	return &movement, nil
}

// CloseSession reconciles and closes the open session. The reconciliation is
// computed from the locked session row and its movements, then the closing
// fields are persisted in the same transaction.
// Implements portssvc.CashSessionSvcFacade
func (s *cashSessionService) CloseSession(ctx context.Context, sessionID string, req dto.CloseSessionRequest, operatorID string) (*domain.CashSession, *domain.Reconciliation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	counted := money.CountedAmounts{
		FinalCashCount:  money.Round(req.FinalCashCount),
		ConferredCredit: money.Round(req.ConferredCredit),
		ConferredDebit:  money.Round(req.ConferredDebit),
		ConferredPix:    money.Round(req.ConferredPix),
		ConferredOther:  money.Round(req.ConferredOther),
	}
	if counted.FinalCashCount.IsNegative() || counted.ConferredCredit.IsNegative() ||
		counted.ConferredDebit.IsNegative() || counted.ConferredPix.IsNegative() ||
		counted.ConferredOther.IsNegative() {
		return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrNegativeCount)
	}

	tx, err := s.sessionRepo.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction for close: %w", err)
	}
	defer s.sessionRepo.Rollback(ctx, tx)

	session, err := s.sessionRepo.FindSessionByIDForUpdate(ctx, tx, sessionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: session %s", apperrors.ErrNotFound, sessionID)
		}
		return nil, nil, fmt.Errorf("failed to lock session %s: %w", sessionID, err)
	}
	if !session.IsOpen() {
		return nil, nil, fmt.Errorf("%w: session %s", apperrors.ErrSessionNotOpen, sessionID)
	}

	movements, err := s.sessionRepo.FindMovementsBySessionID(ctx, sessionID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load movements for close: %w", err)
	}

	rec := money.Reconcile(*session, movements, counted)

	now := time.Now().UTC()
	session.Status = domain.SessionClosed
	session.ClosedAt = &now
	session.ClosedBy = &operatorID
	session.FinalCashCount = &counted.FinalCashCount
	session.ConferredCredit = &counted.ConferredCredit
	session.ConferredDebit = &counted.ConferredDebit
	session.ConferredPix = &counted.ConferredPix
	session.ConferredOther = &counted.ConferredOther
	session.LastUpdatedAt = now
	session.LastUpdatedBy = operatorID

	if err := s.sessionRepo.CloseSessionInTx(ctx, tx, *session); err != nil {
		logger.Error("Failed to close session", slog.String("session_id", sessionID), slog.String("error", err.Error()))
		return nil, nil, err
	}

	if err := s.sessionRepo.Commit(ctx, tx); err != nil {
		return nil, nil, err
	}

	logger.Info("Cash session closed",
		slog.String("session_id", sessionID),
		slog.String("cash_variance", rec.CashVariance.String()),
		slog.String("total_variance", rec.TotalVariance.String()))
	return session, &rec, nil
}

// GetSession retrieves any session with movements; closed sessions also get
// their reconciliation recomputed from stored fields.
// Implements portssvc.CashSessionSvcFacade
func (s *cashSessionService) GetSession(ctx context.Context, sessionID string) (*domain.CashSession, []domain.CashMovement, *domain.Reconciliation, error) {
	session, err := s.sessionRepo.FindSessionByID(ctx, sessionID)
	if err != nil {
		return nil, nil, nil, err
	}
	movements, err := s.sessionRepo.FindMovementsBySessionID(ctx, sessionID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load session movements: %w", err)
	}

	var rec *domain.Reconciliation
	if !session.IsOpen() {
		r := money.Reconcile(*session, movements, money.CountedFromSession(*session))
		rec = &r
	}
	return session, movements, rec, nil
}

// ListSessions retrieves sessions newest first, optionally bounded by range.
// Implements portssvc.CashSessionSvcFacade
func (s *cashSessionService) ListSessions(ctx context.Context, from *time.Time, to *time.Time) ([]domain.CashSession, error) {
	sessions, err := s.sessionRepo.ListSessions(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return sessions, nil
}
