package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"tablebanking/pkg/money"
)

// Loan is the slice of a loan record the ledger computes over.
type Loan struct {
	Principal         money.Money
	AnnualRatePercent decimal.Decimal
	IssueDate         time.Time
	DueDate           time.Time
	Status            LoanStatus
	Strategy          Strategy
}

func (l Loan) Validate() error {
	if !l.Principal.IsPositive() {
		return validationf("principal must be > 0")
	}
	if l.AnnualRatePercent.IsNegative() {
		return validationf("annual rate must be >= 0")
	}
	if l.IssueDate.IsZero() {
		return validationf("issue date is required")
	}
	if !l.DueDate.IsZero() && money.DateOf(l.DueDate).Before(money.DateOf(l.IssueDate)) {
		return validationf("due date %s is before issue date %s", money.FormatDate(l.DueDate), money.FormatDate(l.IssueDate))
	}
	return nil
}

type Repayment struct {
	Amount      money.Money
	PaymentDate time.Time
}

// PaymentEvent is one replayed repayment.
type PaymentEvent struct {
	PaymentDate  time.Time   `json:"payment_date"`
	Days         int         `json:"days"`
	Interest     money.Money `json:"interest"`
	AmountPaid   money.Money `json:"amount_paid"`
	Applied      money.Money `json:"applied"`
	BalanceAfter money.Money `json:"balance_after"`
}

type Allocation struct {
	Balance       money.Money
	TotalInterest money.Money
	TotalPaid     money.Money
	// Absorbed is the overpayment dropped when the balance clamped at zero.
	Absorbed money.Money
	Events   []PaymentEvent
}

// Allocate replays repayments in payment-date order against a reducing
// balance, accruing simple interest between events. Input order does not
// matter; equal dates keep their input order. Non-positive repayments and
// repayments dated after asOf are skipped. An asOf before the issue date is
// treated as the issue date.
func Allocate(loan Loan, repayments []Repayment, asOf time.Time) (Allocation, error) {
	if err := loan.Validate(); err != nil {
		return Allocation{}, err
	}
	issue := money.DateOf(loan.IssueDate)
	asOf = money.DateOf(asOf)
	if asOf.Before(issue) {
		asOf = issue
	}

	ordered := sortedRepayments(repayments, asOf)

	out := Allocation{
		Balance:       money.Round(loan.Principal),
		TotalInterest: money.Zero,
		TotalPaid:     money.Zero,
		Absorbed:      money.Zero,
		Events:        make([]PaymentEvent, 0, len(ordered)),
	}
	cursor := issue
	for _, r := range ordered {
		date := money.DateOf(r.PaymentDate)
		days := money.DaysBetween(cursor, date)
		if days < 0 {
			if date.Before(issue) {
				return Allocation{}, invariantf("repayment dated %s precedes issue date %s", money.FormatDate(date), money.FormatDate(issue))
			}
			return Allocation{}, invariantf("repayments out of order after sort at %s", money.FormatDate(date))
		}
		interest := Accrue(out.Balance, loan.AnnualRatePercent, days)
		out.TotalInterest = out.TotalInterest.Add(interest)
		due := out.Balance.Add(interest)

		amount := money.Round(r.Amount)
		out.TotalPaid = out.TotalPaid.Add(amount)
		applied := amount
		if amount.GreaterThan(due) {
			applied = due
			out.Absorbed = out.Absorbed.Add(amount.Sub(due))
		}
		out.Balance = due.Sub(applied)
		out.Events = append(out.Events, PaymentEvent{
			PaymentDate:  date,
			Days:         days,
			Interest:     interest,
			AmountPaid:   amount,
			Applied:      applied,
			BalanceAfter: out.Balance,
		})
		cursor = date
	}

	tail := Accrue(out.Balance, loan.AnnualRatePercent, money.DaysBetween(cursor, asOf))
	out.TotalInterest = out.TotalInterest.Add(tail)
	out.Balance = out.Balance.Add(tail)
	return out, nil
}

func sortedRepayments(in []Repayment, asOf time.Time) []Repayment {
	out := make([]Repayment, 0, len(in))
	for _, r := range in {
		if !r.Amount.IsPositive() {
			continue
		}
		if money.DateOf(r.PaymentDate).After(asOf) {
			continue
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return money.DateOf(out[i].PaymentDate).Before(money.DateOf(out[j].PaymentDate))
	})
	return out
}
