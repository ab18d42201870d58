package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashSession is the cash_sessions row. A partial unique index on status
// enforces the single-OPEN-session invariant at the database level.
type CashSession struct {
	SessionID    string          `db:"session_id"`
	Status       string          `db:"status"`
	OpenedAt     time.Time       `db:"opened_at"`
	ClosedAt     *time.Time      `db:"closed_at"`
	OpeningFloat decimal.Decimal `db:"opening_float"`

	RegisteredCash   decimal.Decimal `db:"registered_cash"`
	RegisteredCredit decimal.Decimal `db:"registered_credit"`
	RegisteredDebit  decimal.Decimal `db:"registered_debit"`
	RegisteredPix    decimal.Decimal `db:"registered_pix"`
	RegisteredOther  decimal.Decimal `db:"registered_other"`

	FinalCashCount  *decimal.Decimal `db:"final_cash_count"`
	ConferredCredit *decimal.Decimal `db:"conferred_credit"`
	ConferredDebit  *decimal.Decimal `db:"conferred_debit"`
	ConferredPix    *decimal.Decimal `db:"conferred_pix"`
	ConferredOther  *decimal.Decimal `db:"conferred_other"`

	OpenedBy string  `db:"opened_by"`
	ClosedBy *string `db:"closed_by"`
	AuditFields
}

// CashMovement is the cash_movements row. Append-only.
type CashMovement struct {
	MovementID string          `db:"movement_id"`
	SessionID  string          `db:"session_id"`
	Type       string          `db:"movement_type"`
	Amount     decimal.Decimal `db:"amount"`
	Reason     string          `db:"reason"`
	OperatorID string          `db:"operator_id"`
	OccurredAt time.Time       `db:"occurred_at"`
}
