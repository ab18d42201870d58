package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sebodomatias/bookstore_pos_app/internal/apperrors"
	"github.com/sebodomatias/bookstore_pos_app/internal/core/domain"
	portsrepo "github.com/sebodomatias/bookstore_pos_app/internal/core/ports/repositories"
	"github.com/sebodomatias/bookstore_pos_app/internal/models"
	"github.com/sebodomatias/bookstore_pos_app/internal/utils/mapping"
)

type PgxStockRepository struct {
	db *pgxpool.Pool
}

func newPgxStockRepository(db *pgxpool.Pool) portsrepo.StockRepositoryFacade {
	return &PgxStockRepository{db: db}
}

// Ensure PgxStockRepository implements portsrepo.StockRepositoryFacade
var _ portsrepo.StockRepositoryFacade = (*PgxStockRepository)(nil)

func (r *PgxStockRepository) FindStockLine(ctx context.Context, bookID string, condition domain.Condition) (*domain.StockLine, error) {
	query := `
		SELECT book_id, condition, quantity, last_updated
		FROM stock_lines
		WHERE book_id = $1 AND condition = $2;
	`
	var m models.StockLine
	err := r.db.QueryRow(ctx, query, bookID, string(condition)).Scan(
		&m.BookID,
		&m.Condition,
		&m.Quantity,
		&m.LastUpdated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find stock line for book %s (%s): %w", bookID, condition, err)
	}
	line := mapping.ToDomainStockLine(m)
	return &line, nil
}

func (r *PgxStockRepository) ListStockLinesByBook(ctx context.Context, bookID string) ([]domain.StockLine, error) {
	query := `
		SELECT book_id, condition, quantity, last_updated
		FROM stock_lines
		WHERE book_id = $1
		ORDER BY condition;
	`
	rows, err := r.db.Query(ctx, query, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock lines for book %s: %w", bookID, err)
	}
	defer rows.Close()

	modelLines := []models.StockLine{}
	for rows.Next() {
		var m models.StockLine
		if err := rows.Scan(&m.BookID, &m.Condition, &m.Quantity, &m.LastUpdated); err != nil {
			return nil, fmt.Errorf("failed to scan stock line row: %w", err)
		}
		modelLines = append(modelLines, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stock line rows: %w", err)
	}
	return mapping.ToDomainStockLineSlice(modelLines), nil
}

func (r *PgxStockRepository) EnsureStockLine(ctx context.Context, bookID string, condition domain.Condition, now time.Time) error {
	query := `
		INSERT INTO stock_lines (book_id, condition, quantity, last_updated)
		VALUES ($1, $2, 0, $3)
		ON CONFLICT (book_id, condition) DO NOTHING;
	`
	if _, err := r.db.Exec(ctx, query, bookID, string(condition), now); err != nil {
		return fmt.Errorf("failed to ensure stock line for book %s (%s): %w", bookID, condition, err)
	}
	return nil
}

func (r *PgxStockRepository) SetQuantity(ctx context.Context, bookID string, condition domain.Condition, quantity int, now time.Time) error {
	query := `
		UPDATE stock_lines
		SET quantity = $3, last_updated = $4
		WHERE book_id = $1 AND condition = $2;
	`
	ct, err := r.db.Exec(ctx, query, bookID, string(condition), quantity, now)
	if err != nil {
		return fmt.Errorf("failed to set stock quantity for book %s (%s): %w", bookID, condition, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// AdjustQuantity applies a signed delta in one guarded UPDATE so concurrent
// sales committing between a read and a write can never be overwritten with
// a stale absolute value.
func (r *PgxStockRepository) AdjustQuantity(ctx context.Context, bookID string, condition domain.Condition, delta int, now time.Time) (int, error) {
	query := `
		UPDATE stock_lines
		SET quantity = quantity + $3, last_updated = $4
		WHERE book_id = $1 AND condition = $2 AND quantity + $3 >= 0
		RETURNING quantity;
	`
	var quantity int
	err := r.db.QueryRow(ctx, query, bookID, string(condition), delta, now).Scan(&quantity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// The row exists (callers ensure it), so the guard rejected the delta.
			return 0, apperrors.ErrInsufficientStock
		}
		return 0, fmt.Errorf("failed to adjust stock quantity for book %s (%s): %w", bookID, condition, err)
	}
	return quantity, nil
}

// FindStockLinesForUpdate locks the given stock lines for the duration of the
// transaction. Missing rows are simply absent from the result map.
func (r *PgxStockRepository) FindStockLinesForUpdate(ctx context.Context, tx pgx.Tx, keys []domain.StockKey) (map[domain.StockKey]domain.StockLine, error) {
	if len(keys) == 0 {
		return map[domain.StockKey]domain.StockLine{}, nil
	}

	bookIDs := make([]string, len(keys))
	conditions := make([]string, len(keys))
	for i, key := range keys {
		bookIDs[i] = key.BookID
		conditions[i] = string(key.Condition)
	}

	// Match (book_id, condition) pairs positionally via unnest so one query
	// locks exactly the requested rows. Rows are locked in key order so
	// concurrent multi-book transactions acquire locks in the same sequence.
	query := `
		SELECT s.book_id, s.condition, s.quantity, s.last_updated
		FROM stock_lines s
		JOIN unnest($1::text[], $2::text[]) AS k(book_id, condition)
			ON s.book_id = k.book_id AND s.condition = k.condition
		ORDER BY s.book_id, s.condition
		FOR UPDATE OF s;
	`
	rows, err := tx.Query(ctx, query, bookIDs, conditions)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock lines for update: %w", err)
	}
	defer rows.Close()

	linesMap := make(map[domain.StockKey]domain.StockLine)
	for rows.Next() {
		var m models.StockLine
		if err := rows.Scan(&m.BookID, &m.Condition, &m.Quantity, &m.LastUpdated); err != nil {
			return nil, fmt.Errorf("failed to scan locked stock line row: %w", err)
		}
		line := mapping.ToDomainStockLine(m)
		linesMap[domain.StockKey{BookID: line.BookID, Condition: line.Condition}] = line
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating locked stock line rows: %w", err)
	}
	return linesMap, nil
}

// ApplyQuantityChangesInTx applies signed deltas to previously locked rows.
// The quantity CHECK constraint is the last line of defense; callers verify
// availability against the locked rows first.
func (r *PgxStockRepository) ApplyQuantityChangesInTx(ctx context.Context, tx pgx.Tx, changes map[domain.StockKey]int, now time.Time) error {
	if len(changes) == 0 {
		return nil
	}

	query := `
		UPDATE stock_lines
		SET quantity = quantity + $3, last_updated = $4
		WHERE book_id = $1 AND condition = $2;
	`

	batch := &pgx.Batch{}
	keys := make([]domain.StockKey, 0, len(changes))
	for key, delta := range changes {
		if delta == 0 {
			continue
		}
		batch.Queue(query, key.BookID, string(key.Condition), delta, now)
		keys = append(keys, key)
	}
	if batch.Len() == 0 {
		return nil
	}

	br := tx.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		ct, err := br.Exec()
		if err != nil {
			if batchErr == nil {
				batchErr = fmt.Errorf("failed to apply stock change for book %s (%s): %w", keys[i].BookID, keys[i].Condition, err)
			}
		} else if ct.RowsAffected() == 0 {
			if batchErr == nil {
				batchErr = fmt.Errorf("%w: stock line for book %s (%s) not found during update", apperrors.ErrNotFound, keys[i].BookID, keys[i].Condition)
			}
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = fmt.Errorf("failed to close stock update batch: %w", err)
	}
	return batchErr
}
