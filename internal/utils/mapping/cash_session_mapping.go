package mapping

import (
	"github.com/sebodomatias/bookstore_pos_app/internal/core/domain"
	"github.com/sebodomatias/bookstore_pos_app/internal/models"
)

func ToModelCashSession(d domain.CashSession) models.CashSession {
	return models.CashSession{
		SessionID:        d.SessionID,
		Status:           string(d.Status),
		OpenedAt:         d.OpenedAt,
		ClosedAt:         d.ClosedAt,
		OpeningFloat:     d.OpeningFloat,
		RegisteredCash:   d.RegisteredCash,
		RegisteredCredit: d.RegisteredCredit,
		RegisteredDebit:  d.RegisteredDebit,
		RegisteredPix:    d.RegisteredPix,
		RegisteredOther:  d.RegisteredOther,
		FinalCashCount:   d.FinalCashCount,
		ConferredCredit:  d.ConferredCredit,
		ConferredDebit:   d.ConferredDebit,
		ConferredPix:     d.ConferredPix,
		ConferredOther:   d.ConferredOther,
		OpenedBy:         d.OpenedBy,
		ClosedBy:         d.ClosedBy,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainCashSession(m models.CashSession) domain.CashSession {
	return domain.CashSession{
		SessionID:        m.SessionID,
		Status:           domain.CashSessionStatus(m.Status),
		OpenedAt:         m.OpenedAt,
		ClosedAt:         m.ClosedAt,
		OpeningFloat:     m.OpeningFloat,
		RegisteredCash:   m.RegisteredCash,
		RegisteredCredit: m.RegisteredCredit,
		RegisteredDebit:  m.RegisteredDebit,
		RegisteredPix:    m.RegisteredPix,
		RegisteredOther:  m.RegisteredOther,
		FinalCashCount:   m.FinalCashCount,
		ConferredCredit:  m.ConferredCredit,
		ConferredDebit:   m.ConferredDebit,
		ConferredPix:     m.ConferredPix,
		ConferredOther:   m.ConferredOther,
		OpenedBy:         m.OpenedBy,
		ClosedBy:         m.ClosedBy,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainCashSessionSlice(ms []models.CashSession) []domain.CashSession {
	ds := make([]domain.CashSession, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCashSession(m)
	}
	return ds
}

func ToModelCashMovement(d domain.CashMovement) models.CashMovement {
	return models.CashMovement{
		MovementID: d.MovementID,
		SessionID:  d.SessionID,
		Type:       string(d.Type),
		Amount:     d.Amount,
		Reason:     d.Reason,
		OperatorID: d.OperatorID,
		OccurredAt: d.OccurredAt,
	}
}

func ToDomainCashMovement(m models.CashMovement) domain.CashMovement {
	return domain.CashMovement{
		MovementID: m.MovementID,
		SessionID:  m.SessionID,
		Type:       domain.MovementType(m.Type),
		Amount:     m.Amount,
		Reason:     m.Reason,
		OperatorID: m.OperatorID,
		OccurredAt: m.OccurredAt,
	}
}

func ToDomainCashMovementSlice(ms []models.CashMovement) []domain.CashMovement {
	ds := make([]domain.CashMovement, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCashMovement(m)
	}
	return ds
}
