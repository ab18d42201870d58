package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/sebodomatias/bookstore_pos_app/internal/core/domain"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestRound(t *testing.T) {
	assert.Equal(t, "10.01", Round(dec("10.005")).String(), "Should round half up")
	assert.Equal(t, "10", Round(dec("10.004")).String(), "Should round down below half")
	assert.Equal(t, "-10.01", Round(dec("-10.005")).String(), "Should round half away from zero")
	assert.Equal(t, "25.5", Round(dec("25.50")).String())
}

func TestLineTotal(t *testing.T) {
	// No discount, single unit
	assert.True(t, dec("19.99").Equal(LineTotal(dec("19.99"), decimal.Zero, 1)))

	// 10% discount over two units: 25.00 * 0.9 * 2
	assert.True(t, dec("45.00").Equal(LineTotal(dec("25.00"), dec("10"), 2)))

	// Half-up rounding: 3.33 * 0.5 = 1.665 -> 1.67
	assert.True(t, dec("1.67").Equal(LineTotal(dec("3.33"), dec("50"), 1)))

	// Full discount zeroes the line
	assert.True(t, decimal.Zero.Equal(LineTotal(dec("99.90"), dec("100"), 3)))
}

func TestSumLineTotals(t *testing.T) {
	lines := []domain.SaleLine{
		{LineTotal: dec("45.00")},
		{LineTotal: dec("19.99")},
		{LineTotal: dec("1.67")},
	}
	assert.True(t, dec("66.66").Equal(SumLineTotals(lines)))

	assert.True(t, decimal.Zero.Equal(SumLineTotals(nil)), "Empty input should sum to zero")
}

func TestManualNet(t *testing.T) {
	movements := []domain.CashMovement{
		{Type: domain.MovementDeposit, Amount: dec("100.00")},
		{Type: domain.MovementDeposit, Amount: dec("50.00")},
		{Type: domain.MovementWithdrawal, Amount: dec("30.00")},
	}
	assert.True(t, dec("120.00").Equal(ManualNet(movements)))

	// Withdrawals alone drive the net negative
	onlyOut := []domain.CashMovement{
		{Type: domain.MovementWithdrawal, Amount: dec("75.50")},
	}
	assert.True(t, dec("-75.50").Equal(ManualNet(onlyOut)))

	assert.True(t, decimal.Zero.Equal(ManualNet(nil)))
}
