package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/sebodomatias/bookstore_pos_app/internal/core/domain"
)

func TestReconcile(t *testing.T) {
	session := domain.CashSession{
		SessionID:        "sess-1",
		Status:           domain.SessionOpen,
		OpeningFloat:     dec("200.00"),
		RegisteredCash:   dec("500.00"),
		RegisteredCredit: dec("300.00"),
		RegisteredDebit:  dec("100.00"),
		RegisteredPix:    dec("80.00"),
		RegisteredOther:  decimal.Zero,
	}
	movements := []domain.CashMovement{
		{Type: domain.MovementDeposit, Amount: dec("50.00")},
		{Type: domain.MovementWithdrawal, Amount: dec("30.00")},
	}
	counted := CountedAmounts{
		FinalCashCount:  dec("715.00"),
		ConferredCredit: dec("300.00"),
		ConferredDebit:  dec("110.00"),
		ConferredPix:    dec("80.00"),
		ConferredOther:  decimal.Zero,
	}

	rec := Reconcile(session, movements, counted)

	assert.True(t, dec("20.00").Equal(rec.ManualNet), "manual net: %s", rec.ManualNet)
	// 200 float + 20 manual + 500 cash sales
	assert.True(t, dec("720.00").Equal(rec.ExpectedCash), "expected cash: %s", rec.ExpectedCash)
	assert.True(t, dec("-5.00").Equal(rec.CashVariance), "cash variance: %s", rec.CashVariance)
	assert.True(t, decimal.Zero.Equal(rec.CreditVariance))
	assert.True(t, dec("10.00").Equal(rec.DebitVariance))
	assert.True(t, decimal.Zero.Equal(rec.PixVariance))
	assert.True(t, decimal.Zero.Equal(rec.OtherVariance))
	assert.True(t, dec("5.00").Equal(rec.TotalVariance), "total variance: %s", rec.TotalVariance)
}

func TestReconcileNoMovementsExactCount(t *testing.T) {
	session := domain.CashSession{
		OpeningFloat:   dec("100.00"),
		RegisteredCash: dec("250.00"),
	}
	counted := CountedAmounts{FinalCashCount: dec("350.00")}

	rec := Reconcile(session, nil, counted)

	assert.True(t, decimal.Zero.Equal(rec.ManualNet))
	assert.True(t, dec("350.00").Equal(rec.ExpectedCash))
	assert.True(t, decimal.Zero.Equal(rec.CashVariance))
	assert.True(t, decimal.Zero.Equal(rec.TotalVariance))
}

func TestReconcileVariancesCancelOut(t *testing.T) {
	// A cash shortage offset by a credit surplus still shows per-tender
	// variances even though the total nets to zero.
	session := domain.CashSession{
		OpeningFloat:     dec("50.00"),
		RegisteredCash:   dec("100.00"),
		RegisteredCredit: dec("200.00"),
	}
	counted := CountedAmounts{
		FinalCashCount:  dec("140.00"),
		ConferredCredit: dec("210.00"),
	}

	rec := Reconcile(session, nil, counted)

	assert.True(t, dec("-10.00").Equal(rec.CashVariance))
	assert.True(t, dec("10.00").Equal(rec.CreditVariance))
	assert.True(t, decimal.Zero.Equal(rec.TotalVariance))
}

func TestCountedFromSession(t *testing.T) {
	// Closed session with stored conferred fields
	cash := dec("715.00")
	credit := dec("300.00")
	closed := domain.CashSession{
		Status:          domain.SessionClosed,
		FinalCashCount:  &cash,
		ConferredCredit: &credit,
	}

	counted := CountedFromSession(closed)
	assert.True(t, cash.Equal(counted.FinalCashCount))
	assert.True(t, credit.Equal(counted.ConferredCredit))
	assert.True(t, decimal.Zero.Equal(counted.ConferredDebit), "Missing fields count as zero")
	assert.True(t, decimal.Zero.Equal(counted.ConferredPix))
	assert.True(t, decimal.Zero.Equal(counted.ConferredOther))
}
