package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sebodomatias/bookstore_pos_app/internal/core/domain"
	portsrepo "github.com/sebodomatias/bookstore_pos_app/internal/core/ports/repositories"
	portssvc "github.com/sebodomatias/bookstore_pos_app/internal/core/ports/services"
	"github.com/sebodomatias/bookstore_pos_app/internal/utils/money"
)

// reportingService assembles store reports from aggregate queries. It never
// stores derived figures: session reconciliations are recomputed on demand
// from the stored counters and conferred amounts.
type reportingService struct {
	reportingRepo portsrepo.ReportingRepository
	sessionRepo   portsrepo.CashSessionReader
}

// NewReportingService creates a new ReportingService.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, sessionRepo portsrepo.CashSessionReader) portssvc.ReportingService {
	return &reportingService{
		reportingRepo: reportingRepo,
		sessionRepo:   sessionRepo,
	}
}

var _ portssvc.ReportingService = (*reportingService)(nil)

// TotalsByTender aggregates sale counts and totals per tender type.
// Implements portssvc.ReportingService
func (s *reportingService) TotalsByTender(ctx context.Context, from, to time.Time) ([]domain.TenderTotalRow, error) {
	rows, err := s.reportingRepo.SalesTotalsByTender(ctx, &from, &to)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate totals by tender: %w", err)
	}
	return rows, nil
}

// SalesByBook aggregates quantity sold and revenue per (book, condition).
// Implements portssvc.ReportingService
func (s *reportingService) SalesByBook(ctx context.Context, from, to time.Time) ([]domain.BookSalesRow, error) {
	rows, err := s.reportingRepo.SalesByBook(ctx, &from, &to)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate sales by book: %w", err)
	}
	return rows, nil
}

// SessionHistory returns sessions in a date range with their movements.
// Closed sessions carry a reconciliation recomputed from stored fields, so
// historical views always reflect the current reconciliation arithmetic.
// Implements portssvc.ReportingService
func (s *reportingService) SessionHistory(ctx context.Context, from, to time.Time) ([]domain.SessionHistoryEntry, error) {
	sessions, err := s.sessionRepo.ListSessions(ctx, &from, &to)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions for history: %w", err)
	}

	entries := make([]domain.SessionHistoryEntry, len(sessions))
	for i, session := range sessions {
		movements, err := s.sessionRepo.FindMovementsBySessionID(ctx, session.SessionID)
		if err != nil {
			return nil, fmt.Errorf("failed to load movements for session %s: %w", session.SessionID, err)
		}

		entry := domain.SessionHistoryEntry{
			Session:   session,
			Movements: movements,
		}
		if !session.IsOpen() {
			rec := money.Reconcile(session, movements, money.CountedFromSession(session))
			entry.Reconciliation = &rec
		}
		entries[i] = entry
	}
	return entries, nil
}
