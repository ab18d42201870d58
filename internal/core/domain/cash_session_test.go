package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/sebodomatias/bookstore_pos_app/internal/core/domain"
)

func TestCashSession_RegisteredFor(t *testing.T) {
	session := domain.CashSession{
		RegisteredCash:   decimal.NewFromFloat(100.00),
		RegisteredCredit: decimal.NewFromFloat(200.00),
		RegisteredDebit:  decimal.NewFromFloat(300.00),
		RegisteredPix:    decimal.NewFromFloat(400.00),
		RegisteredOther:  decimal.NewFromFloat(500.00),
	}

	tests := []struct {
		name   string
		tender domain.TenderType
		want   decimal.Decimal
	}{
		{"cash counter", domain.TenderCash, decimal.NewFromFloat(100.00)},
		{"credit counter", domain.TenderCredit, decimal.NewFromFloat(200.00)},
		{"debit counter", domain.TenderDebit, decimal.NewFromFloat(300.00)},
		{"pix counter", domain.TenderPix, decimal.NewFromFloat(400.00)},
		{"other counter", domain.TenderOther, decimal.NewFromFloat(500.00)},
		{"unknown tender yields zero", domain.TenderType("CHEQUE"), decimal.Zero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := session.RegisteredFor(tt.tender)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}
}

func TestCashMovement_SignedAmount(t *testing.T) {
	deposit := domain.CashMovement{Type: domain.MovementDeposit, Amount: decimal.NewFromFloat(50.00)}
	withdrawal := domain.CashMovement{Type: domain.MovementWithdrawal, Amount: decimal.NewFromFloat(30.00)}

	assert.True(t, decimal.NewFromFloat(50.00).Equal(deposit.SignedAmount()))
	assert.True(t, decimal.NewFromFloat(-30.00).Equal(withdrawal.SignedAmount()))
}

func TestCashSession_IsOpen(t *testing.T) {
	open := domain.CashSession{Status: domain.SessionOpen}
	closed := domain.CashSession{Status: domain.SessionClosed}

	assert.True(t, open.IsOpen())
	assert.False(t, closed.IsOpen())
}

func TestTenderType_Valid(t *testing.T) {
	for _, tender := range domain.TenderTypes {
		assert.True(t, tender.Valid(), "%s should be valid", tender)
	}
	assert.False(t, domain.TenderType("CHEQUE").Valid())
	assert.False(t, domain.TenderType("").Valid())
	assert.False(t, domain.TenderType("cash").Valid(), "tender types are case sensitive")
}

func TestCondition_Valid(t *testing.T) {
	assert.True(t, domain.ConditionNew.Valid())
	assert.True(t, domain.ConditionDiscounted.Valid())
	assert.False(t, domain.Condition("USED").Valid())
	assert.False(t, domain.Condition("").Valid())
}
