package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/sebodomatias/bookstore_pos_app/internal/core/domain"
)

// StockReader defines read operations for stock lines.
type StockReader interface {
	// FindStockLine retrieves the stock line for a (book, condition) pair.
	// Returns ErrNotFound when no row exists; callers treat that as zero.
	FindStockLine(ctx context.Context, bookID string, condition domain.Condition) (*domain.StockLine, error)

	// ListStockLinesByBook retrieves all stock lines of a book.
	ListStockLinesByBook(ctx context.Context, bookID string) ([]domain.StockLine, error)
}

// StockWriter defines standalone write operations for stock lines, used by
// the catalog import and bulk-update paths.
type StockWriter interface {
	// EnsureStockLine lazily creates a zero-quantity stock line if missing.
	EnsureStockLine(ctx context.Context, bookID string, condition domain.Condition, now time.Time) error

	// SetQuantity overwrites the quantity of a stock line (bulk update path).
	SetQuantity(ctx context.Context, bookID string, condition domain.Condition, quantity int, now time.Time) error

	// AdjustQuantity applies a signed delta to a stock line in a single
	// guarded statement and returns the resulting quantity. Returns
	// ErrInsufficientStock when the delta would take the quantity below
	// zero. The row must already exist; use EnsureStockLine first.
	AdjustQuantity(ctx context.Context, bookID string, condition domain.Condition, delta int, now time.Time) (int, error)
}

// StockTxOps defines the serialized stock mutations used inside a sale or
// reversal transaction. Locking and decrementing the same rows in one
// transaction is what keeps quantities non-negative under concurrent sales.
type StockTxOps interface {
	// FindStockLinesForUpdate locks the given stock lines (SELECT ... FOR
	// UPDATE) and returns them keyed by (book, condition). Missing rows are
	// absent from the map, not an error.
	FindStockLinesForUpdate(ctx context.Context, tx pgx.Tx, keys []domain.StockKey) (map[domain.StockKey]domain.StockLine, error)

	// ApplyQuantityChangesInTx applies signed quantity deltas to previously
	// locked rows: negative for allocation, positive for release.
	ApplyQuantityChangesInTx(ctx context.Context, tx pgx.Tx, changes map[domain.StockKey]int, now time.Time) error
}

// StockRepositoryFacade combines all stock repository interfaces.
type StockRepositoryFacade interface {
	StockReader
	StockWriter
	StockTxOps
}
