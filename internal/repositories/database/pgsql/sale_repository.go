package pgsql

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sebodomatias/bookstore_pos_app/internal/apperrors"
	"github.com/sebodomatias/bookstore_pos_app/internal/core/domain"
	portsrepo "github.com/sebodomatias/bookstore_pos_app/internal/core/ports/repositories"
	"github.com/sebodomatias/bookstore_pos_app/internal/models"
	"github.com/sebodomatias/bookstore_pos_app/internal/utils/mapping"
	"github.com/sebodomatias/bookstore_pos_app/internal/utils/pagination"
)

// PgxSaleRepository persists sales and owns the two atomic mutations that
// span sale rows, stock lines and the open cash session. The stock and
// session repositories are injected so their InTx operations run on the same
// transaction.
type PgxSaleRepository struct {
	BaseRepository
	stockRepo   portsrepo.StockRepositoryFacade
	sessionRepo portsrepo.CashSessionRepositoryWithTx
}

func newPgxSaleRepository(pool *pgxpool.Pool, stockRepo portsrepo.StockRepositoryFacade, sessionRepo portsrepo.CashSessionRepositoryWithTx) portsrepo.SaleRepositoryFacade {
	return &PgxSaleRepository{
		BaseRepository: BaseRepository{Pool: pool},
		stockRepo:      stockRepo,
		sessionRepo:    sessionRepo,
	}
}

// Ensure PgxSaleRepository implements portsrepo.SaleRepositoryFacade
var _ portsrepo.SaleRepositoryFacade = (*PgxSaleRepository)(nil)

const saleColumns = `sale_id, sale_date, customer_id, tender_type, total, operator_id, session_id,
	created_at, created_by, last_updated_at, last_updated_by`

func scanSale(row pgx.Row) (*models.Sale, error) {
	var m models.Sale
	err := row.Scan(
		&m.SaleID,
		&m.SaleDate,
		&m.CustomerID,
		&m.TenderType,
		&m.Total,
		&m.OperatorID,
		&m.SessionID,
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

// sortedStockKeys returns the keys of a per-(book, condition) quantity map
// in a fixed order. Create and reversal transactions lock stock rows in this
// order, after the session row, so they cannot deadlock each other.
func sortedStockKeys(quantities map[domain.StockKey]int) []domain.StockKey {
	keys := make([]domain.StockKey, 0, len(quantities))
	for key := range quantities {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].BookID != keys[j].BookID {
			return keys[i].BookID < keys[j].BookID
		}
		return keys[i].Condition < keys[j].Condition
	})
	return keys
}

// CreateSaleAtomic persists the sale and its effects as one transaction:
// lock the open session, lock stock rows, re-check availability, decrement,
// insert the sale header and lines, add the total to the session's tender
// counter.
func (r *PgxSaleRepository) CreateSaleAtomic(ctx context.Context, sale domain.Sale, lines []domain.SaleLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	now := sale.CreatedAt

	// 1. Lock the open session first, matching the reversal path's lock
	// order, and verify it is still the one the sale was attributed to (the
	// session id on the sale was read before the transaction began).
	session, err := r.sessionRepo.FindOpenSessionForUpdate(ctx, tx)
	if err != nil {
		return err
	}
	if sale.SessionID == nil || session.SessionID != *sale.SessionID {
		return fmt.Errorf("%w: open session changed during sale", apperrors.ErrNoOpenSession)
	}

	// 2. Aggregate demand per (book, condition); duplicate lines sum.
	demand := make(map[domain.StockKey]int)
	for _, line := range lines {
		key := domain.StockKey{BookID: line.BookID, Condition: line.Condition}
		demand[key] += line.Quantity
	}
	keys := sortedStockKeys(demand)

	// 3. Lock the stock rows and re-check availability under the lock. This
	// is the serialization point that keeps quantities non-negative under
	// concurrent sales.
	locked, err := r.stockRepo.FindStockLinesForUpdate(ctx, tx, keys)
	if err != nil {
		return apperrors.NewAppError(500, "failed to lock stock lines for sale "+sale.SaleID, err)
	}
	changes := make(map[domain.StockKey]int, len(demand))
	for key, qty := range demand {
		line, found := locked[key]
		available := 0
		if found {
			available = line.Quantity
		}
		if available < qty {
			return fmt.Errorf("%w: book %s (%s) has %d, requested %d",
				apperrors.ErrInsufficientStock, key.BookID, key.Condition, available, qty)
		}
		changes[key] = -qty
	}

	// 4. Decrement the locked rows.
	if err := r.stockRepo.ApplyQuantityChangesInTx(ctx, tx, changes, now); err != nil {
		return apperrors.NewAppError(500, "failed to decrement stock for sale "+sale.SaleID, err)
	}

	// 5. Insert the sale header.
	modelSale := mapping.ToModelSale(sale)
	saleQuery := `
		INSERT INTO sales (sale_id, sale_date, customer_id, tender_type, total, operator_id, session_id,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = tx.Exec(ctx, saleQuery,
		modelSale.SaleID,
		modelSale.SaleDate,
		modelSale.CustomerID,
		modelSale.TenderType,
		modelSale.Total,
		modelSale.OperatorID,
		modelSale.SessionID,
		modelSale.CreatedAt,
		modelSale.CreatedBy,
		modelSale.LastUpdatedAt,
		modelSale.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert sale "+sale.SaleID, err)
	}

	// 6. Batch-insert the lines.
	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO sale_lines (line_id, sale_id, book_id, condition, quantity, unit_price, discount_percent, line_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	for _, line := range lines {
		m := mapping.ToModelSaleLine(line)
		batch.Queue(lineQuery,
			m.LineID,
			m.SaleID,
			m.BookID,
			m.Condition,
			m.Quantity,
			m.UnitPrice,
			m.DiscountPercent,
			m.LineTotal,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert sale lines for sale "+sale.SaleID, err)
	}

	// 7. Register the tender amount against the already locked session.
	if err := r.sessionRepo.AddRegisteredAmountInTx(ctx, tx, session.SessionID, sale.TenderType, sale.Total, sale.CreatedBy, now); err != nil {
		return err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return apperrors.NewAppError(500, "failed to commit sale "+sale.SaleID, err)
	}
	return nil
}

// ReverseSaleAtomic undoes a sale as one transaction: lock the owning
// session and verify it is still open, restore stock, subtract the total
// from the session's tender counter, and delete the sale rows.
func (r *PgxSaleRepository) ReverseSaleAtomic(ctx context.Context, sale domain.Sale, lines []domain.SaleLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	now := time.Now().UTC()

	// 1. The owning session must still be open; reversal against a closed
	// session would silently corrupt its final counters.
	if sale.SessionID != nil {
		session, err := r.sessionRepo.FindSessionByIDForUpdate(ctx, tx, *sale.SessionID)
		if err != nil {
			return apperrors.NewAppError(500, "failed to lock owning session for sale "+sale.SaleID, err)
		}
		if !session.IsOpen() {
			return fmt.Errorf("%w: session %s is closed", apperrors.ErrReversalNotAllowed, session.SessionID)
		}
	}

	// 2. Restore stock. Lock first so concurrent sales serialize against the
	// same rows.
	release := make(map[domain.StockKey]int)
	for _, line := range lines {
		key := domain.StockKey{BookID: line.BookID, Condition: line.Condition}
		release[key] += line.Quantity
	}
	if _, err := r.stockRepo.FindStockLinesForUpdate(ctx, tx, sortedStockKeys(release)); err != nil {
		return apperrors.NewAppError(500, "failed to lock stock lines for reversal of sale "+sale.SaleID, err)
	}
	if err := r.stockRepo.ApplyQuantityChangesInTx(ctx, tx, release, now); err != nil {
		return apperrors.NewAppError(500, "failed to restore stock for sale "+sale.SaleID, err)
	}

	// 3. Subtract the sale total from the session's tender counter.
	if sale.SessionID != nil {
		if err := r.sessionRepo.AddRegisteredAmountInTx(ctx, tx, *sale.SessionID, sale.TenderType, sale.Total.Neg(), sale.OperatorID, now); err != nil {
			return err
		}
	}

	// 4. Delete lines, then the header.
	if _, err := tx.Exec(ctx, `DELETE FROM sale_lines WHERE sale_id = $1;`, sale.SaleID); err != nil {
		return apperrors.NewAppError(500, "failed to delete sale lines for sale "+sale.SaleID, err)
	}
	ct, err := tx.Exec(ctx, `DELETE FROM sales WHERE sale_id = $1;`, sale.SaleID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete sale "+sale.SaleID, err)
	}
	if ct.RowsAffected() == 0 {
		// Someone else reversed it first.
		return apperrors.ErrNotFound
	}

	if err := r.Commit(ctx, tx); err != nil {
		return apperrors.NewAppError(500, "failed to commit reversal of sale "+sale.SaleID, err)
	}
	return nil
}

func (r *PgxSaleRepository) FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE sale_id = $1;`
	m, err := scanSale(r.Pool.QueryRow(ctx, query, saleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find sale by ID %s: %w", saleID, err)
	}
	sale := mapping.ToDomainSale(*m)
	return &sale, nil
}

func (r *PgxSaleRepository) FindSaleLinesBySaleID(ctx context.Context, saleID string) ([]domain.SaleLine, error) {
	query := `
		SELECT line_id, sale_id, book_id, condition, quantity, unit_price, discount_percent, line_total
		FROM sale_lines
		WHERE sale_id = $1
		ORDER BY line_id;
	`
	rows, err := r.Pool.Query(ctx, query, saleID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sale lines for %s: %w", saleID, err)
	}
	defer rows.Close()

	modelLines := []models.SaleLine{}
	for rows.Next() {
		var m models.SaleLine
		err := rows.Scan(
			&m.LineID,
			&m.SaleID,
			&m.BookID,
			&m.Condition,
			&m.Quantity,
			&m.UnitPrice,
			&m.DiscountPercent,
			&m.LineTotal,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sale line row: %w", err)
		}
		modelLines = append(modelLines, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sale line rows: %w", err)
	}
	return mapping.ToDomainSaleLineSlice(modelLines), nil
}

// ListSales retrieves sale headers newest first with keyset pagination on
// (sale_date, created_at).
func (r *PgxSaleRepository) ListSales(ctx context.Context, filters domain.SaleFilters, limit int, nextToken *string) ([]domain.Sale, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	var tenderType *string
	if filters.TenderType != nil {
		t := string(*filters.TenderType)
		tenderType = &t
	}

	var cursorSaleDate, cursorCreatedAt *time.Time
	if nextToken != nil && *nextToken != "" {
		saleDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		cursorSaleDate = &saleDate
		cursorCreatedAt = &createdAt
	}

	// Fetch one extra row to know whether another page exists.
	query := `SELECT ` + saleColumns + `
		FROM sales
		WHERE ($1::timestamptz IS NULL OR sale_date >= $1)
		  AND ($2::timestamptz IS NULL OR sale_date <= $2)
		  AND ($3::text IS NULL OR tender_type = $3)
		  AND ($4::text IS NULL OR customer_id = $4)
		  AND ($5::timestamptz IS NULL OR (sale_date, created_at) < ($5, $6))
		ORDER BY sale_date DESC, created_at DESC
		LIMIT $7;
	`
	rows, err := r.Pool.Query(ctx, query,
		filters.From,
		filters.To,
		tenderType,
		filters.CustomerID,
		cursorSaleDate,
		cursorCreatedAt,
		limit+1,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query sales: %w", err)
	}
	defer rows.Close()

	modelSales := []models.Sale{}
	for rows.Next() {
		m, err := scanSale(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan sale row: %w", err)
		}
		modelSales = append(modelSales, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating sale rows: %w", err)
	}

	var newNextToken *string
	if len(modelSales) > limit {
		modelSales = modelSales[:limit]
		last := modelSales[len(modelSales)-1]
		token := pagination.EncodeToken(last.SaleDate, last.CreatedAt)
		newNextToken = &token
	}

	return mapping.ToDomainSaleSlice(modelSales), newNextToken, nil
}
