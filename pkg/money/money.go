package money

import (
	"github.com/shopspring/decimal"
)

// Money is a decimal amount. All stored or returned figures are rounded to
// two places with Round.
type Money = decimal.Decimal

var (
	Zero    = decimal.Zero
	hundred = decimal.NewFromInt(100)
)

// Round rounds half away from zero to 2 decimal places, which is half-up for
// the non-negative amounts a ledger produces.
func Round(m Money) Money { return m.Round(2) }

// FromString parses a decimal literal such as "1500.50".
func FromString(s string) (Money, error) { return decimal.NewFromString(s) }

// MustParse is FromString for constants and tests.
func MustParse(s string) Money { return decimal.RequireFromString(s) }

// FromInt builds a whole-unit amount.
func FromInt(n int64) Money { return decimal.NewFromInt(n) }

// Percent converts a percentage (10 for 10%) to a fraction.
func Percent(p decimal.Decimal) decimal.Decimal { return p.Div(hundred) }

// Sum adds amounts without intermediate rounding.
func Sum(ms ...Money) Money {
	out := decimal.Zero
	for _, m := range ms {
		out = out.Add(m)
	}
	return out
}

// Max returns the larger of a and b.
func Max(a, b Money) Money {
	if a.GreaterThan(b) {
		return a
	}
	return b
}
