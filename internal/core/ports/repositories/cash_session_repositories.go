package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/sebodomatias/bookstore_pos_app/internal/core/domain"
)

// CashSessionReader defines read operations for cash sessions and movements.
type CashSessionReader interface {
	// FindSessionByID retrieves a session by id. Returns ErrNotFound if absent.
	FindSessionByID(ctx context.Context, sessionID string) (*domain.CashSession, error)

	// FindOpenSession retrieves the single OPEN session. Returns ErrNotFound
	// when no session is open.
	FindOpenSession(ctx context.Context) (*domain.CashSession, error)

	// ListSessions retrieves sessions ordered by opening time descending,
	// optionally bounded by an opened-at range.
	ListSessions(ctx context.Context, from, to *time.Time) ([]domain.CashSession, error)

	// FindMovementsBySessionID retrieves a session's movements in occurrence order.
	FindMovementsBySessionID(ctx context.Context, sessionID string) ([]domain.CashMovement, error)
}

// CashSessionWriter defines standalone write operations.
type CashSessionWriter interface {
	// CreateSession inserts a new OPEN session. The single-OPEN-session
	// uniqueness violation maps to ErrSessionAlreadyOpen.
	CreateSession(ctx context.Context, session domain.CashSession) error
}

// CashSessionTxOps defines the session mutations used inside a transaction.
type CashSessionTxOps interface {
	// FindOpenSessionForUpdate locks and returns the OPEN session, or
	// ErrNoOpenSession when there is none.
	FindOpenSessionForUpdate(ctx context.Context, tx pgx.Tx) (*domain.CashSession, error)

	// FindSessionByIDForUpdate locks and returns the given session.
	FindSessionByIDForUpdate(ctx context.Context, tx pgx.Tx, sessionID string) (*domain.CashSession, error)

	// AddRegisteredAmountInTx adds amount (negative on reversal) to the
	// registered counter of the given tender on an OPEN session.
	AddRegisteredAmountInTx(ctx context.Context, tx pgx.Tx, sessionID string, tender domain.TenderType, amount decimal.Decimal, updatedBy string, now time.Time) error

	// SaveMovementInTx appends a manual movement.
	SaveMovementInTx(ctx context.Context, tx pgx.Tx, movement domain.CashMovement) error

	// CloseSessionInTx persists the closing fields and flips status to CLOSED.
	// Fails with ErrSessionNotOpen if the row is no longer OPEN.
	CloseSessionInTx(ctx context.Context, tx pgx.Tx, session domain.CashSession) error
}

// CashSessionRepositoryFacade combines all cash-session repository interfaces.
type CashSessionRepositoryFacade interface {
	CashSessionReader
	CashSessionWriter
	CashSessionTxOps
}

// CashSessionRepositoryWithTx extends the facade with transaction management.
type CashSessionRepositoryWithTx interface {
	CashSessionRepositoryFacade
	TransactionManager
}
