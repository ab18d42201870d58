package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Book is the catalog row.
type Book struct {
	BookID      string `db:"book_id"`
	CatalogCode string `db:"catalog_code"`
	Title       string `db:"title"`
	Author      string `db:"author"`
	Publisher   string `db:"publisher"`
	AuditFields
}

// StockLine is the per-(book, condition) quantity row. The quantity column
// carries a CHECK (quantity >= 0) constraint.
type StockLine struct {
	BookID      string    `db:"book_id"`
	Condition   string    `db:"condition"`
	Quantity    int       `db:"quantity"`
	LastUpdated time.Time `db:"last_updated"`
}

// PriceLine is the per-(book, condition) unit price row.
type PriceLine struct {
	BookID    string          `db:"book_id"`
	Condition string          `db:"condition"`
	UnitPrice decimal.Decimal `db:"unit_price"`
	AuditFields
}
