package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"tablebanking/pkg/money"
)

// AmortizationRow is one month of a flat-principal schedule.
type AmortizationRow struct {
	Month            int         `json:"month"`
	OpeningBalance   money.Money `json:"opening_balance"`
	Interest         money.Money `json:"interest"`
	PrincipalPaid    money.Money `json:"principal_paid"`
	TotalInstallment money.Money `json:"total_installment"`
	ClosingBalance   money.Money `json:"closing_balance"`
	DueDate          string      `json:"due_date"`
}

// PreviewSchedule projects the fixed-term schedule: principal split evenly
// over terms.Months, the last month taking the remainder, and interest at the
// monthly rate on each month's opening balance.
func PreviewSchedule(principal money.Money, issueDate time.Time, terms FixedTermTerms) ([]AmortizationRow, error) {
	if !principal.IsPositive() {
		return nil, validationf("principal must be > 0")
	}
	if issueDate.IsZero() {
		return nil, validationf("issue date is required")
	}
	if terms.Months <= 0 {
		return nil, validationf("term must be at least one month")
	}
	if terms.MonthlyRatePercent.IsNegative() {
		return nil, validationf("monthly rate must be >= 0")
	}

	rate := money.Percent(terms.MonthlyRatePercent)
	opening := money.Round(principal)
	monthly := money.Round(principal.Div(decimal.NewFromInt(int64(terms.Months))))

	rows := make([]AmortizationRow, 0, terms.Months)
	for m := 1; m <= terms.Months; m++ {
		interest := money.Round(opening.Mul(rate))
		paid := monthly
		if m == terms.Months {
			paid = opening
		}
		closing := money.Max(money.Round(opening.Sub(paid)), money.Zero)
		rows = append(rows, AmortizationRow{
			Month:            m,
			OpeningBalance:   opening,
			Interest:         interest,
			PrincipalPaid:    paid,
			TotalInstallment: money.Round(interest.Add(paid)),
			ClosingBalance:   closing,
			DueDate:          money.FormatDate(money.AddMonths(issueDate, m)),
		})
		opening = closing
	}
	return rows, nil
}
