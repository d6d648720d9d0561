package ledger

import (
	"fmt"
	"time"

	"tablebanking/pkg/money"
)

// LoanState is a loan's live totals as of a date. It is always recomputed
// from the loan and its full repayment history, never cached.
type LoanState struct {
	Strategy       Strategy          `json:"strategy"`
	Status         LoanStatus        `json:"status"`
	AsOf           string            `json:"as_of"`
	InterestAmount money.Money       `json:"interest_amount"`
	TotalAmount    money.Money       `json:"total_amount"`
	TotalPaid      money.Money       `json:"total_paid"`
	Balance        money.Money       `json:"balance"`
	Absorbed       money.Money       `json:"absorbed"`
	Events         []PaymentEvent    `json:"events,omitempty"`
	Schedule       []AmortizationRow `json:"schedule,omitempty"`
}

func (s LoanState) IsFullySettled() bool { return !s.Balance.IsPositive() }

// ComputeLoanState runs the loan's strategy as of asOf. The returned Status is
// the reconciled status (Ongoing becomes Completed once settled).
func ComputeLoanState(loan Loan, repayments []Repayment, asOf time.Time, terms FixedTermTerms) (LoanState, error) {
	strategy := loan.Strategy
	if strategy == "" {
		strategy = StrategyContinuous
	}
	var (
		st  LoanState
		err error
	)
	switch strategy {
	case StrategyContinuous:
		st, err = continuousState(loan, repayments, asOf)
	case StrategyFixedTerm:
		st, err = fixedTermState(loan, repayments, asOf, terms)
	default:
		return LoanState{}, fmt.Errorf("%w: unknown strategy %q", ErrValidation, strategy)
	}
	if err != nil {
		return LoanState{}, err
	}
	st.Strategy = strategy
	st.AsOf = money.FormatDate(asOf)
	st.Status = Reconcile(loan.Status, st.IsFullySettled())
	return st, nil
}

func continuousState(loan Loan, repayments []Repayment, asOf time.Time) (LoanState, error) {
	a, err := Allocate(loan, repayments, asOf)
	if err != nil {
		return LoanState{}, err
	}
	return LoanState{
		InterestAmount: a.TotalInterest,
		TotalAmount:    money.Round(loan.Principal).Add(a.TotalInterest),
		TotalPaid:      a.TotalPaid,
		Balance:        a.Balance,
		Absorbed:       a.Absorbed,
		Events:         a.Events,
	}, nil
}

// fixedTermState charges the whole schedule's interest up front; repayments
// only reduce the balance. Payment dates do not matter here beyond the asOf
// cut-off.
func fixedTermState(loan Loan, repayments []Repayment, asOf time.Time, terms FixedTermTerms) (LoanState, error) {
	if err := loan.Validate(); err != nil {
		return LoanState{}, err
	}
	rows, err := PreviewSchedule(loan.Principal, loan.IssueDate, terms)
	if err != nil {
		return LoanState{}, err
	}
	interest := money.Zero
	for _, r := range rows {
		interest = interest.Add(r.Interest)
	}
	total := money.Round(loan.Principal).Add(interest)

	asOfDay := money.DateOf(asOf)
	issue := money.DateOf(loan.IssueDate)
	if asOfDay.Before(issue) {
		asOfDay = issue
	}
	paid := money.Zero
	for _, r := range sortedRepayments(repayments, asOfDay) {
		if money.DateOf(r.PaymentDate).Before(issue) {
			return LoanState{}, invariantf("repayment dated %s precedes issue date %s", money.FormatDate(r.PaymentDate), money.FormatDate(issue))
		}
		paid = paid.Add(money.Round(r.Amount))
	}
	remaining := total.Sub(paid)
	absorbed := money.Zero
	if remaining.IsNegative() {
		absorbed = remaining.Neg()
	}
	return LoanState{
		InterestAmount: interest,
		TotalAmount:    total,
		TotalPaid:      paid,
		Balance:        money.Max(remaining, money.Zero),
		Absorbed:       absorbed,
		Schedule:       rows,
	}, nil
}

// CheckEdit recomputes an edited loan against its recorded repayments. The
// edit is rejected when it would make those repayments exceed the loan total
// by more than they already do, or when the new issue date falls after a
// recorded repayment.
func CheckEdit(current, edited Loan, repayments []Repayment, asOf time.Time, terms FixedTermTerms) (LoanState, error) {
	issue := money.DateOf(edited.IssueDate)
	for _, r := range repayments {
		if money.DateOf(r.PaymentDate).Before(issue) {
			return LoanState{}, validationf("issue date %s is after the repayment recorded on %s", money.FormatDate(edited.IssueDate), money.FormatDate(r.PaymentDate))
		}
	}
	before, err := ComputeLoanState(current, repayments, asOf, terms)
	if err != nil {
		return LoanState{}, err
	}
	st, err := ComputeLoanState(edited, repayments, asOf, terms)
	if err != nil {
		return LoanState{}, err
	}
	if st.Absorbed.GreaterThan(before.Absorbed) {
		excess := st.Absorbed.Sub(before.Absorbed)
		return LoanState{}, &Rejection{
			Reason:  ReasonBalanceWouldGoNegative,
			Message: fmt.Sprintf("recorded repayments exceed the edited loan total by %s", excess.StringFixed(2)),
			Excess:  excess,
		}
	}
	return st, nil
}

// CheckRepayment enforces the overpayment policy for a new repayment. The
// repayment is replayed together with the existing ones up to the latest
// payment date, so a backdated payment is also checked against everything
// recorded after it.
func CheckRepayment(loan Loan, existing []Repayment, next Repayment, settings Settings) error {
	if !next.Amount.IsPositive() {
		return validationf("amount paid must be > 0")
	}
	if next.PaymentDate.IsZero() {
		return validationf("payment date is required")
	}
	if money.DateOf(next.PaymentDate).Before(money.DateOf(loan.IssueDate)) {
		return validationf("payment date %s is before the loan issue date %s", money.FormatDate(next.PaymentDate), money.FormatDate(loan.IssueDate))
	}
	if settings.Overpayment != OverpaymentReject {
		return nil
	}
	asOf := money.DateOf(next.PaymentDate)
	for _, r := range existing {
		if pd := money.DateOf(r.PaymentDate); pd.After(asOf) {
			asOf = pd
		}
	}
	before, err := ComputeLoanState(loan, existing, asOf, settings.FixedTerm)
	if err != nil {
		return err
	}
	all := make([]Repayment, 0, len(existing)+1)
	all = append(all, existing...)
	all = append(all, next)
	after, err := ComputeLoanState(loan, all, asOf, settings.FixedTerm)
	if err != nil {
		return err
	}
	if excess := after.Absorbed.Sub(before.Absorbed); excess.IsPositive() {
		available := money.Max(next.Amount.Sub(excess), money.Zero)
		return &Rejection{
			Reason:    ReasonPaymentExceedsBalance,
			Message:   fmt.Sprintf("payment of %s exceeds the balance of %s", next.Amount.StringFixed(2), available.StringFixed(2)),
			Requested: next.Amount,
			Available: available,
		}
	}
	return nil
}
