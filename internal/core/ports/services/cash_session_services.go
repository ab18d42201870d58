package services

import (
	"context"
	"time"

	"github.com/sebodomatias/bookstore_pos_app/internal/core/domain"
	"github.com/sebodomatias/bookstore_pos_app/internal/dto"
)

// CashSessionSvcFacade manages the daily cash session lifecycle.
type CashSessionSvcFacade interface {
	// OpenSession opens a new session with the given float. Fails with
	// ErrSessionAlreadyOpen when another session is still open.
	OpenSession(ctx context.Context, req dto.OpenSessionRequest, operatorID string) (*domain.CashSession, error)

	// CurrentSession returns the open session, or ErrNoOpenSession.
	CurrentSession(ctx context.Context) (*domain.CashSession, []domain.CashMovement, error)

	// RecordManualMovement records a deposit or withdrawal against the open
	// session.
	RecordManualMovement(ctx context.Context, req dto.ManualMovementRequest, operatorID string) (*domain.CashMovement, error)

	// CloseSession closes the open session using the operator's counted
	// amounts and returns the session together with its reconciliation.
	CloseSession(ctx context.Context, sessionID string, req dto.CloseSessionRequest, operatorID string) (*domain.CashSession, *domain.Reconciliation, error)

	// GetSession retrieves a session by id with its movements; closed
	// sessions also carry their reconciliation.
	GetSession(ctx context.Context, sessionID string) (*domain.CashSession, []domain.CashMovement, *domain.Reconciliation, error)

	// ListSessions retrieves sessions within an optional date range, newest
	// first.
	ListSessions(ctx context.Context, from *time.Time, to *time.Time) ([]domain.CashSession, error)
}
