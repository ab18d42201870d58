package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sebodomatias/bookstore_pos_app/internal/apperrors"
	"github.com/sebodomatias/bookstore_pos_app/internal/core/domain"
	portsrepo "github.com/sebodomatias/bookstore_pos_app/internal/core/ports/repositories"
	"github.com/sebodomatias/bookstore_pos_app/internal/models"
	"github.com/sebodomatias/bookstore_pos_app/internal/utils/mapping"
)

type PgxCatalogRepository struct {
	db *pgxpool.Pool
}

func newPgxCatalogRepository(db *pgxpool.Pool) portsrepo.CatalogRepositoryFacade {
	return &PgxCatalogRepository{db: db}
}

// Ensure PgxCatalogRepository implements portsrepo.CatalogRepositoryFacade
var _ portsrepo.CatalogRepositoryFacade = (*PgxCatalogRepository)(nil)

const bookColumns = `book_id, catalog_code, title, author, publisher, created_at, created_by, last_updated_at, last_updated_by`

func scanBook(row pgx.Row) (*models.Book, error) {
	var m models.Book
	err := row.Scan(
		&m.BookID,
		&m.CatalogCode,
		&m.Title,
		&m.Author,
		&m.Publisher,
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

func (r *PgxCatalogRepository) SaveBook(ctx context.Context, book domain.Book) error {
	m := mapping.ToModelBook(book)
	query := `
		INSERT INTO books (book_id, catalog_code, title, author, publisher, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.db.Exec(ctx, query,
		m.BookID,
		m.CatalogCode,
		m.Title,
		m.Author,
		m.Publisher,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("%w: catalog code %s", apperrors.ErrDuplicate, book.CatalogCode)
		}
		return fmt.Errorf("failed to save book: %w", err)
	}
	return nil
}

func (r *PgxCatalogRepository) FindBookByID(ctx context.Context, bookID string) (*domain.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE book_id = $1;`
	m, err := scanBook(r.db.QueryRow(ctx, query, bookID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find book by ID %s: %w", bookID, err)
	}
	book := mapping.ToDomainBook(*m)
	return &book, nil
}

func (r *PgxCatalogRepository) FindBookByCatalogCode(ctx context.Context, catalogCode string) (*domain.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE catalog_code = $1;`
	m, err := scanBook(r.db.QueryRow(ctx, query, catalogCode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find book by catalog code %s: %w", catalogCode, err)
	}
	book := mapping.ToDomainBook(*m)
	return &book, nil
}

func (r *PgxCatalogRepository) FindBooksByIDs(ctx context.Context, bookIDs []string) (map[string]domain.Book, error) {
	if len(bookIDs) == 0 {
		return map[string]domain.Book{}, nil
	}

	query := `SELECT ` + bookColumns + ` FROM books WHERE book_id = ANY($1);`
	rows, err := r.db.Query(ctx, query, bookIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query books by IDs: %w", err)
	}
	defer rows.Close()

	booksMap := make(map[string]domain.Book)
	for rows.Next() {
		m, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book row: %w", err)
		}
		booksMap[m.BookID] = mapping.ToDomainBook(*m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating book rows: %w", err)
	}
	return booksMap, nil
}

func (r *PgxCatalogRepository) ListBooks(ctx context.Context, limit int, offset int) ([]domain.Book, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + bookColumns + ` FROM books ORDER BY title, book_id LIMIT $1 OFFSET $2;`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query books: %w", err)
	}
	defer rows.Close()

	modelBooks := []models.Book{}
	for rows.Next() {
		m, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book row: %w", err)
		}
		modelBooks = append(modelBooks, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating book rows: %w", err)
	}
	return mapping.ToDomainBookSlice(modelBooks), nil
}

func (r *PgxCatalogRepository) UpdateBook(ctx context.Context, book domain.Book) error {
	m := mapping.ToModelBook(book)
	query := `
		UPDATE books
		SET title = $2, author = $3, publisher = $4, last_updated_at = $5, last_updated_by = $6
		WHERE book_id = $1;
	`
	ct, err := r.db.Exec(ctx, query,
		m.BookID,
		m.Title,
		m.Author,
		m.Publisher,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update book %s: %w", book.BookID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxCatalogRepository) FindPrice(ctx context.Context, bookID string, condition domain.Condition) (*domain.PriceLine, error) {
	query := `
		SELECT book_id, condition, unit_price, created_at, created_by, last_updated_at, last_updated_by
		FROM price_lines
		WHERE book_id = $1 AND condition = $2;
	`
	var m models.PriceLine
	err := r.db.QueryRow(ctx, query, bookID, string(condition)).Scan(
		&m.BookID,
		&m.Condition,
		&m.UnitPrice,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find price for book %s (%s): %w", bookID, condition, err)
	}
	price := mapping.ToDomainPriceLine(m)
	return &price, nil
}

func (r *PgxCatalogRepository) ListPricesByBook(ctx context.Context, bookID string) ([]domain.PriceLine, error) {
	query := `
		SELECT book_id, condition, unit_price, created_at, created_by, last_updated_at, last_updated_by
		FROM price_lines
		WHERE book_id = $1
		ORDER BY condition;
	`
	rows, err := r.db.Query(ctx, query, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to query prices for book %s: %w", bookID, err)
	}
	defer rows.Close()

	prices := []domain.PriceLine{}
	for rows.Next() {
		var m models.PriceLine
		err := rows.Scan(
			&m.BookID,
			&m.Condition,
			&m.UnitPrice,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan price row: %w", err)
		}
		prices = append(prices, mapping.ToDomainPriceLine(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating price rows: %w", err)
	}
	return prices, nil
}

func (r *PgxCatalogRepository) UpsertPrice(ctx context.Context, price domain.PriceLine) error {
	m := mapping.ToModelPriceLine(price)
	query := `
		INSERT INTO price_lines (book_id, condition, unit_price, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (book_id, condition) DO UPDATE SET
			unit_price = EXCLUDED.unit_price,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.db.Exec(ctx, query,
		m.BookID,
		m.Condition,
		m.UnitPrice,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert price for book %s: %w", price.BookID, err)
	}
	return nil
}
