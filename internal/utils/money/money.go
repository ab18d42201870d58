// Package money consolidates the monetary arithmetic shared by the sale
// coordinator, the cash-session manager and the reporting surface. Every
// persisted or reported monetary value goes through Round exactly once.
package money

import (
	"github.com/shopspring/decimal"

	"github.com/sebodomatias/bookstore_pos_app/internal/core/domain"
)

// Round rounds a monetary value to two decimal places using round-half-up.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// LineTotal computes the total of a sale line:
// unitPrice * (1 - discountPercent/100) * quantity, rounded to two decimals.
func LineTotal(unitPrice decimal.Decimal, discountPercent decimal.Decimal, quantity int) decimal.Decimal {
	factor := decimal.NewFromInt(100).Sub(discountPercent).Div(decimal.NewFromInt(100))
	return Round(unitPrice.Mul(factor).Mul(decimal.NewFromInt(int64(quantity))))
}

// SumLineTotals computes the authoritative sale total.
func SumLineTotals(lines []domain.SaleLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.LineTotal)
	}
	return Round(total)
}

// ManualNet computes the net effect of a session's manual movements on the
// drawer: sum of deposits minus sum of withdrawals.
func ManualNet(movements []domain.CashMovement) decimal.Decimal {
	net := decimal.Zero
	for _, m := range movements {
		net = net.Add(m.SignedAmount())
	}
	return Round(net)
}
