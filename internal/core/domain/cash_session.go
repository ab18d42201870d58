package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashSessionStatus indicates the lifecycle state of a cash session.
type CashSessionStatus string

const (
	SessionOpen   CashSessionStatus = "OPEN"
	SessionClosed CashSessionStatus = "CLOSED"
)

// CashSession is a bounded period (open -> close) during which sales and
// manual movements accumulate against a single set of per-tender counters.
// At most one session is OPEN system-wide at any time; once CLOSED a session
// is immutable.
type CashSession struct {
	SessionID    string            `json:"sessionID"` // Primary Key (UUID)
	Status       CashSessionStatus `json:"status"`
	OpenedAt     time.Time         `json:"openedAt"`
	ClosedAt     *time.Time        `json:"closedAt,omitempty"`
	OpeningFloat decimal.Decimal   `json:"openingFloat"` // operator-supplied, >= 0

	// Registered running totals, accumulated from sales. Each starts at zero
	// and only moves via recorded sale tenders (or their reversal while the
	// session is still open).
	RegisteredCash   decimal.Decimal `json:"registeredCash"`
	RegisteredCredit decimal.Decimal `json:"registeredCredit"`
	RegisteredDebit  decimal.Decimal `json:"registeredDebit"`
	RegisteredPix    decimal.Decimal `json:"registeredPix"`
	RegisteredOther  decimal.Decimal `json:"registeredOther"`

	// Conferred amounts, operator-supplied at close time. Nil until closed.
	FinalCashCount  *decimal.Decimal `json:"finalCashCount,omitempty"`
	ConferredCredit *decimal.Decimal `json:"conferredCredit,omitempty"`
	ConferredDebit  *decimal.Decimal `json:"conferredDebit,omitempty"`
	ConferredPix    *decimal.Decimal `json:"conferredPix,omitempty"`
	ConferredOther  *decimal.Decimal `json:"conferredOther,omitempty"`

	OpenedBy string  `json:"openedBy"`
	ClosedBy *string `json:"closedBy,omitempty"`
	AuditFields
}

// RegisteredFor returns the registered counter for the given tender type.
func (s *CashSession) RegisteredFor(t TenderType) decimal.Decimal {
	switch t {
	case TenderCash:
		return s.RegisteredCash
	case TenderCredit:
		return s.RegisteredCredit
	case TenderDebit:
		return s.RegisteredDebit
	case TenderPix:
		return s.RegisteredPix
	case TenderOther:
		return s.RegisteredOther
	}
	return decimal.Zero
}

// IsOpen reports whether the session is still accepting sales and movements.
func (s *CashSession) IsOpen() bool {
	return s.Status == SessionOpen
}

// MovementType classifies a manual cash movement.
type MovementType string

const (
	MovementDeposit    MovementType = "DEPOSIT"
	MovementWithdrawal MovementType = "WITHDRAWAL"
)

// Valid reports whether t is a known movement type.
func (t MovementType) Valid() bool {
	return t == MovementDeposit || t == MovementWithdrawal
}

// CashMovement is a manual cash adjustment inside a session. Movements are
// append-only: a withdrawal that needs undoing is modeled as a compensating
// deposit, never an edit.
type CashMovement struct {
	MovementID string          `json:"movementID"` // Primary Key (UUID)
	SessionID  string          `json:"sessionID"`
	Type       MovementType    `json:"type"`
	Amount     decimal.Decimal `json:"amount"` // strictly positive
	Reason     string          `json:"reason"`
	OperatorID string          `json:"operatorID"`
	OccurredAt time.Time       `json:"occurredAt"`
}

// SignedAmount returns the movement amount with a sign matching its effect on
// the drawer: positive for deposits, negative for withdrawals.
func (m CashMovement) SignedAmount() decimal.Decimal {
	if m.Type == MovementWithdrawal {
		return m.Amount.Neg()
	}
	return m.Amount
}
