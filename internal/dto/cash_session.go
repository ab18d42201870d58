package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sebodomatias/bookstore_pos_app/internal/core/domain"
)

// OpenSessionRequest opens a new cash session with an operator-counted float.
type OpenSessionRequest struct {
	OpeningFloat decimal.Decimal `json:"openingFloat"`
}

// ManualMovementRequest records a manual deposit or withdrawal inside the
// open session.
type ManualMovementRequest struct {
	Type   domain.MovementType `json:"type" binding:"required,oneof=DEPOSIT WITHDRAWAL"`
	Amount decimal.Decimal     `json:"amount"`
	Reason string              `json:"reason" binding:"required"`
}

// CloseSessionRequest carries the operator-counted amounts at close time.
type CloseSessionRequest struct {
	FinalCashCount  decimal.Decimal `json:"finalCashCount"`
	ConferredCredit decimal.Decimal `json:"conferredCredit"`
	ConferredDebit  decimal.Decimal `json:"conferredDebit"`
	ConferredPix    decimal.Decimal `json:"conferredPix"`
	ConferredOther  decimal.Decimal `json:"conferredOther"`
}

// CashMovementResponse is a manual movement as returned to callers.
type CashMovementResponse struct {
	MovementID string          `json:"movementID"`
	Type       string          `json:"type"`
	Amount     decimal.Decimal `json:"amount"`
	Reason     string          `json:"reason"`
	OperatorID string          `json:"operatorID"`
	OccurredAt time.Time       `json:"occurredAt"`
}

// RegisteredTotals groups the five registered counters of a session.
type RegisteredTotals struct {
	Cash   decimal.Decimal `json:"cash"`
	Credit decimal.Decimal `json:"credit"`
	Debit  decimal.Decimal `json:"debit"`
	Pix    decimal.Decimal `json:"pix"`
	Other  decimal.Decimal `json:"other"`
}

// ReconciliationResponse mirrors the close-time arithmetic of a session.
type ReconciliationResponse struct {
	ManualNet      decimal.Decimal `json:"manualNet"`
	ExpectedCash   decimal.Decimal `json:"expectedCash"`
	CashVariance   decimal.Decimal `json:"cashVariance"`
	CreditVariance decimal.Decimal `json:"creditVariance"`
	DebitVariance  decimal.Decimal `json:"debitVariance"`
	PixVariance    decimal.Decimal `json:"pixVariance"`
	OtherVariance  decimal.Decimal `json:"otherVariance"`
	TotalVariance  decimal.Decimal `json:"totalVariance"`
}

// CashSessionResponse is a session as returned to callers.
type CashSessionResponse struct {
	SessionID    string                  `json:"sessionID"`
	Status       string                  `json:"status"`
	OpenedAt     time.Time               `json:"openedAt"`
	ClosedAt     *time.Time              `json:"closedAt,omitempty"`
	OpeningFloat decimal.Decimal         `json:"openingFloat"`
	Registered   RegisteredTotals        `json:"registered"`
	OpenedBy     string                  `json:"openedBy"`
	ClosedBy     *string                 `json:"closedBy,omitempty"`
	Movements    []CashMovementResponse  `json:"movements,omitempty"`
	Reconciled   *ReconciliationResponse `json:"reconciliation,omitempty"`
}

// ToCashMovementResponse converts a domain movement to its response DTO.
func ToCashMovementResponse(m domain.CashMovement) CashMovementResponse {
	return CashMovementResponse{
		MovementID: m.MovementID,
		Type:       string(m.Type),
		Amount:     m.Amount,
		Reason:     m.Reason,
		OperatorID: m.OperatorID,
		OccurredAt: m.OccurredAt,
	}
}

// ToReconciliationResponse converts a domain reconciliation to its response DTO.
func ToReconciliationResponse(r domain.Reconciliation) ReconciliationResponse {
	return ReconciliationResponse{
		ManualNet:      r.ManualNet,
		ExpectedCash:   r.ExpectedCash,
		CashVariance:   r.CashVariance,
		CreditVariance: r.CreditVariance,
		DebitVariance:  r.DebitVariance,
		PixVariance:    r.PixVariance,
		OtherVariance:  r.OtherVariance,
		TotalVariance:  r.TotalVariance,
	}
}

// ToCashSessionResponse converts a session plus optional movements and
// reconciliation to the response DTO.
func ToCashSessionResponse(s *domain.CashSession, movements []domain.CashMovement, rec *domain.Reconciliation) CashSessionResponse {
	resp := CashSessionResponse{
		SessionID:    s.SessionID,
		Status:       string(s.Status),
		OpenedAt:     s.OpenedAt,
		ClosedAt:     s.ClosedAt,
		OpeningFloat: s.OpeningFloat,
		Registered: RegisteredTotals{
			Cash:   s.RegisteredCash,
			Credit: s.RegisteredCredit,
			Debit:  s.RegisteredDebit,
			Pix:    s.RegisteredPix,
			Other:  s.RegisteredOther,
		},
		OpenedBy: s.OpenedBy,
		ClosedBy: s.ClosedBy,
	}
	if movements != nil {
		resp.Movements = make([]CashMovementResponse, len(movements))
		for i, m := range movements {
			resp.Movements[i] = ToCashMovementResponse(m)
		}
	}
	if rec != nil {
		r := ToReconciliationResponse(*rec)
		resp.Reconciled = &r
	}
	return resp
}
