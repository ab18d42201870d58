package money

import (
	"github.com/shopspring/decimal"

	"github.com/sebodomatias/bookstore_pos_app/internal/core/domain"
)

// CountedAmounts are the operator-supplied physically-counted totals per
// tender type at close time.
type CountedAmounts struct {
	FinalCashCount  decimal.Decimal
	ConferredCredit decimal.Decimal
	ConferredDebit  decimal.Decimal
	ConferredPix    decimal.Decimal
	ConferredOther  decimal.Decimal
}

// Reconcile computes the close-time reconciliation of a cash session:
//
//	manualNet      = sum(deposits) - sum(withdrawals)
//	expectedCash   = openingFloat + manualNet + registeredCash
//	cashVariance   = finalCashCount - expectedCash
//	variance[t]    = conferred[t] - registered[t]   for each non-cash tender
//	totalVariance  = cashVariance + sum(variance[t])
//
// All results are rounded to two decimals. The same function serves close-time
// computation and historical recomputation from stored session fields.
func Reconcile(session domain.CashSession, movements []domain.CashMovement, counted CountedAmounts) domain.Reconciliation {
	manualNet := ManualNet(movements)
	expectedCash := Round(session.OpeningFloat.Add(manualNet).Add(session.RegisteredCash))

	rec := domain.Reconciliation{
		ManualNet:      manualNet,
		ExpectedCash:   expectedCash,
		CashVariance:   Round(counted.FinalCashCount.Sub(expectedCash)),
		CreditVariance: Round(counted.ConferredCredit.Sub(session.RegisteredCredit)),
		DebitVariance:  Round(counted.ConferredDebit.Sub(session.RegisteredDebit)),
		PixVariance:    Round(counted.ConferredPix.Sub(session.RegisteredPix)),
		OtherVariance:  Round(counted.ConferredOther.Sub(session.RegisteredOther)),
	}
	rec.TotalVariance = Round(rec.CashVariance.
		Add(rec.CreditVariance).
		Add(rec.DebitVariance).
		Add(rec.PixVariance).
		Add(rec.OtherVariance))
	return rec
}

// CountedFromSession rebuilds CountedAmounts from the conferred fields stored
// on a closed session. Missing values count as zero.
func CountedFromSession(session domain.CashSession) CountedAmounts {
	deref := func(d *decimal.Decimal) decimal.Decimal {
		if d == nil {
			return decimal.Zero
		}
		return *d
	}
	return CountedAmounts{
		FinalCashCount:  deref(session.FinalCashCount),
		ConferredCredit: deref(session.ConferredCredit),
		ConferredDebit:  deref(session.ConferredDebit),
		ConferredPix:    deref(session.ConferredPix),
		ConferredOther:  deref(session.ConferredOther),
	}
}
