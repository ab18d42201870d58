package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/sebodomatias/bookstore_pos_app/internal/apperrors"
	"github.com/sebodomatias/bookstore_pos_app/internal/core/domain"
	portsrepo "github.com/sebodomatias/bookstore_pos_app/internal/core/ports/repositories"
	"github.com/sebodomatias/bookstore_pos_app/internal/models"
	"github.com/sebodomatias/bookstore_pos_app/internal/utils/mapping"
)

type PgxCashSessionRepository struct {
	BaseRepository
}

func newPgxCashSessionRepository(pool *pgxpool.Pool) portsrepo.CashSessionRepositoryWithTx {
	return &PgxCashSessionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxCashSessionRepository implements portsrepo.CashSessionRepositoryWithTx
var _ portsrepo.CashSessionRepositoryWithTx = (*PgxCashSessionRepository)(nil)

const sessionColumns = `session_id, status, opened_at, closed_at, opening_float,
	registered_cash, registered_credit, registered_debit, registered_pix, registered_other,
	final_cash_count, conferred_credit, conferred_debit, conferred_pix, conferred_other,
	opened_by, closed_by, created_at, created_by, last_updated_at, last_updated_by`

func scanSession(row pgx.Row) (*models.CashSession, error) {
	var m models.CashSession
	err := row.Scan(
		&m.SessionID,
		&m.Status,
		&m.OpenedAt,
		&m.ClosedAt,
		&m.OpeningFloat,
		&m.RegisteredCash,
		&m.RegisteredCredit,
		&m.RegisteredDebit,
		&m.RegisteredPix,
		&m.RegisteredOther,
		&m.FinalCashCount,
		&m.ConferredCredit,
		&m.ConferredDebit,
		&m.ConferredPix,
		&m.ConferredOther,
		&m.OpenedBy,
		&m.ClosedBy,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgxCashSessionRepository) CreateSession(ctx context.Context, session domain.CashSession) error {
	m := mapping.ToModelCashSession(session)
	query := `
		INSERT INTO cash_sessions (
			session_id, status, opened_at, opening_float,
			registered_cash, registered_credit, registered_debit, registered_pix, registered_other,
			opened_by, created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, 0, 0, 0, 0, 0, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.SessionID,
		m.Status,
		m.OpenedAt,
		m.OpeningFloat,
		m.OpenedBy,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // partial unique index on OPEN status
			return apperrors.ErrSessionAlreadyOpen
		}
		return fmt.Errorf("failed to create cash session: %w", err)
	}
	return nil
}

func (r *PgxCashSessionRepository) FindSessionByID(ctx context.Context, sessionID string) (*domain.CashSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM cash_sessions WHERE session_id = $1;`
	m, err := scanSession(r.Pool.QueryRow(ctx, query, sessionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find session by ID %s: %w", sessionID, err)
	}
	session := mapping.ToDomainCashSession(*m)
	return &session, nil
}

func (r *PgxCashSessionRepository) FindOpenSession(ctx context.Context) (*domain.CashSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM cash_sessions WHERE status = 'OPEN';`
	m, err := scanSession(r.Pool.QueryRow(ctx, query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find open session: %w", err)
	}
	session := mapping.ToDomainCashSession(*m)
	return &session, nil
}

func (r *PgxCashSessionRepository) ListSessions(ctx context.Context, from, to *time.Time) ([]domain.CashSession, error) {
	query := `SELECT ` + sessionColumns + `
		FROM cash_sessions
		WHERE ($1::timestamptz IS NULL OR opened_at >= $1)
		  AND ($2::timestamptz IS NULL OR opened_at <= $2)
		ORDER BY opened_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	modelSessions := []models.CashSession{}
	for rows.Next() {
		m, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session row: %w", err)
		}
		modelSessions = append(modelSessions, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating session rows: %w", err)
	}
	return mapping.ToDomainCashSessionSlice(modelSessions), nil
}

func (r *PgxCashSessionRepository) FindMovementsBySessionID(ctx context.Context, sessionID string) ([]domain.CashMovement, error) {
	query := `
		SELECT movement_id, session_id, movement_type, amount, reason, operator_id, occurred_at
		FROM cash_movements
		WHERE session_id = $1
		ORDER BY occurred_at, movement_id;
	`
	rows, err := r.Pool.Query(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query movements for session %s: %w", sessionID, err)
	}
	defer rows.Close()

	modelMovements := []models.CashMovement{}
	for rows.Next() {
		var m models.CashMovement
		err := rows.Scan(
			&m.MovementID,
			&m.SessionID,
			&m.Type,
			&m.Amount,
			&m.Reason,
			&m.OperatorID,
			&m.OccurredAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan movement row: %w", err)
		}
		modelMovements = append(modelMovements, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating movement rows: %w", err)
	}
	return mapping.ToDomainCashMovementSlice(modelMovements), nil
}

// FindOpenSessionForUpdate locks the OPEN session row for the duration of the
// transaction.
func (r *PgxCashSessionRepository) FindOpenSessionForUpdate(ctx context.Context, tx pgx.Tx) (*domain.CashSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM cash_sessions WHERE status = 'OPEN' FOR UPDATE;`
	m, err := scanSession(tx.QueryRow(ctx, query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNoOpenSession
		}
		return nil, fmt.Errorf("failed to lock open session: %w", err)
	}
	session := mapping.ToDomainCashSession(*m)
	return &session, nil
}

// FindSessionByIDForUpdate locks the given session row for the duration of
// the transaction.
func (r *PgxCashSessionRepository) FindSessionByIDForUpdate(ctx context.Context, tx pgx.Tx, sessionID string) (*domain.CashSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM cash_sessions WHERE session_id = $1 FOR UPDATE;`
	m, err := scanSession(tx.QueryRow(ctx, query, sessionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock session %s: %w", sessionID, err)
	}
	session := mapping.ToDomainCashSession(*m)
	return &session, nil
}

// registeredColumnFor maps a tender type to its counter column. The returned
// name is interpolated into SQL, so it must come from this fixed set only.
func registeredColumnFor(tender domain.TenderType) (string, error) {
	switch tender {
	case domain.TenderCash:
		return "registered_cash", nil
	case domain.TenderCredit:
		return "registered_credit", nil
	case domain.TenderDebit:
		return "registered_debit", nil
	case domain.TenderPix:
		return "registered_pix", nil
	case domain.TenderOther:
		return "registered_other", nil
	}
	return "", fmt.Errorf("%w: unknown tender type %s", apperrors.ErrValidation, tender)
}

// AddRegisteredAmountInTx adds amount (negative on reversal) to the
// registered counter of the given tender. The session must be OPEN.
func (r *PgxCashSessionRepository) AddRegisteredAmountInTx(ctx context.Context, tx pgx.Tx, sessionID string, tender domain.TenderType, amount decimal.Decimal, updatedBy string, now time.Time) error {
	column, err := registeredColumnFor(tender)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		UPDATE cash_sessions
		SET %s = %s + $2, last_updated_at = $3, last_updated_by = $4
		WHERE session_id = $1 AND status = 'OPEN';
	`, column, column)

	ct, err := tx.Exec(ctx, query, sessionID, amount, now, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to update %s for session %s: %w", column, sessionID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: session %s", apperrors.ErrSessionNotOpen, sessionID)
	}
	return nil
}

func (r *PgxCashSessionRepository) SaveMovementInTx(ctx context.Context, tx pgx.Tx, movement domain.CashMovement) error {
	m := mapping.ToModelCashMovement(movement)
	query := `
		INSERT INTO cash_movements (movement_id, session_id, movement_type, amount, reason, operator_id, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := tx.Exec(ctx, query,
		m.MovementID,
		m.SessionID,
		m.Type,
		m.Amount,
		m.Reason,
		m.OperatorID,
		m.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save movement for session %s: %w", movement.SessionID, err)
	}
	return nil
}

// CloseSessionInTx persists the closing fields and flips status to CLOSED.
// The WHERE status = 'OPEN' guard makes close idempotent-safe under races.
func (r *PgxCashSessionRepository) CloseSessionInTx(ctx context.Context, tx pgx.Tx, session domain.CashSession) error {
	m := mapping.ToModelCashSession(session)
	query := `
		UPDATE cash_sessions
		SET status = 'CLOSED',
			closed_at = $2,
			closed_by = $3,
			final_cash_count = $4,
			conferred_credit = $5,
			conferred_debit = $6,
			conferred_pix = $7,
			conferred_other = $8,
			last_updated_at = $9,
			last_updated_by = $10
		WHERE session_id = $1 AND status = 'OPEN';
	`
	ct, err := tx.Exec(ctx, query,
		m.SessionID,
		m.ClosedAt,
		m.ClosedBy,
		m.FinalCashCount,
		m.ConferredCredit,
		m.ConferredDebit,
		m.ConferredPix,
		m.ConferredOther,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to close session %s: %w", session.SessionID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: session %s", apperrors.ErrSessionNotOpen, session.SessionID)
	}
	return nil
}
