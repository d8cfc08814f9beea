package calculator

import (
	"github.com/shopspring/decimal"
)

// Tolerance is the amount below which a balance is treated as settled.
var Tolerance = decimal.New(1, -2)

// sharePrecision is the number of decimal places kept on per-person shares
// before the final balances are rounded.
const sharePrecision = 16

// RoundCents rounds to two decimal places, half away from zero.
func RoundCents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Share returns amount divided among n people, unrounded to cents.
// Returns zero when n <= 0.
func Share(amount decimal.Decimal, n int) decimal.Decimal {
	if n <= 0 {
		return decimal.Zero
	}
	return amount.DivRound(decimal.NewFromInt(int64(n)), sharePrecision)
}
