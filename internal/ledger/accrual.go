package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"tablebanking/pkg/money"
)

var daysInYear = decimal.NewFromInt(365)

// Accrue returns simple interest on balance for days at annualRatePercent,
// rounded to cents. It panics on a negative day count.
func Accrue(balance money.Money, annualRatePercent decimal.Decimal, days int) money.Money {
	if days < 0 {
		panic(fmt.Sprintf("ledger: negative accrual interval (%d days)", days))
	}
	if days == 0 || balance.IsZero() || annualRatePercent.IsZero() {
		return money.Zero
	}
	interest := balance.
		Mul(money.Percent(annualRatePercent)).
		Mul(decimal.NewFromInt(int64(days))).
		Div(daysInYear)
	return money.Round(interest)
}
