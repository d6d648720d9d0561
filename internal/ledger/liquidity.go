package ledger

import (
	"time"

	"tablebanking/pkg/money"
)

// PoolTotals are the aggregate sums of every cash-affecting ledger.
type PoolTotals struct {
	Contributions    money.Money `json:"total_contributions"`
	Repaid           money.Money `json:"total_repaid"`
	ExternalFunds    money.Money `json:"total_external_funds"`
	RegistrationFees money.Money `json:"total_registration_fees"`
	FinesPaid        money.Money `json:"total_fines_paid"`
	PrincipalLent    money.Money `json:"total_principal_lent"`
	Expenses         money.Money `json:"total_expenses"`
}

// Pool is every inflow ever recorded minus every outflow.
func (t PoolTotals) Pool() money.Money {
	in := money.Sum(t.Contributions, t.Repaid, t.ExternalFunds, t.RegistrationFees, t.FinesPaid)
	return money.Round(in.Sub(t.PrincipalLent).Sub(t.Expenses))
}

// LoanRecord pairs a loan with its full repayment history.
type LoanRecord struct {
	Loan       Loan
	Repayments []Repayment
}

// PoolSnapshot is derived on every check and never stored.
type PoolSnapshot struct {
	PoolTotals
	PoolTotal           money.Money `json:"pool_total"`
	OutstandingBalance  money.Money `json:"total_outstanding_balance"`
	AvailableCash       money.Money `json:"available_cash"`
	TotalInterestEarned money.Money `json:"total_interest_earned"`
	TotalDefaulted      money.Money `json:"total_defaulted"`
	ActiveLoans         int         `json:"active_loans"`
}

// ComputeAvailableCash subtracts the live balance of every loan still out
// (Ongoing, Pending, Defaulted) from the pool. The result may be negative,
// which means no lending capacity.
func ComputeAvailableCash(totals PoolTotals, loans []LoanRecord, asOf time.Time, terms FixedTermTerms) (PoolSnapshot, error) {
	snap := PoolSnapshot{
		PoolTotals:          totals,
		PoolTotal:           totals.Pool(),
		OutstandingBalance:  money.Zero,
		TotalInterestEarned: money.Zero,
		TotalDefaulted:      money.Zero,
	}
	for _, rec := range loans {
		st, err := ComputeLoanState(rec.Loan, rec.Repayments, asOf, terms)
		if err != nil {
			return PoolSnapshot{}, err
		}
		snap.TotalInterestEarned = snap.TotalInterestEarned.Add(st.InterestAmount)
		if !rec.Loan.Status.Outstanding() {
			continue
		}
		snap.OutstandingBalance = snap.OutstandingBalance.Add(st.Balance)
		switch rec.Loan.Status {
		case StatusDefaulted:
			snap.TotalDefaulted = snap.TotalDefaulted.Add(st.Balance)
		case StatusOngoing, StatusPending:
			snap.ActiveLoans++
		}
	}
	snap.AvailableCash = snap.PoolTotal.Sub(snap.OutstandingBalance)
	return snap, nil
}
