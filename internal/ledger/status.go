package ledger

import "fmt"

type LoanStatus string

const (
	StatusPending   LoanStatus = "Pending"
	StatusOngoing   LoanStatus = "Ongoing"
	StatusCompleted LoanStatus = "Completed"
	StatusDefaulted LoanStatus = "Defaulted"
)

func (s LoanStatus) Valid() bool {
	switch s {
	case StatusPending, StatusOngoing, StatusCompleted, StatusDefaulted:
		return true
	}
	return false
}

// Outstanding reports whether a loan in this status still holds pool money.
func (s LoanStatus) Outstanding() bool {
	return s == StatusOngoing || s == StatusPending || s == StatusDefaulted
}

// Strategy selects how interest is computed for a loan. It is fixed at
// creation; the two strategies are never mixed on one loan.
type Strategy string

const (
	StrategyContinuous Strategy = "continuous"
	StrategyFixedTerm  Strategy = "fixed_term"
)

func (s Strategy) Valid() bool { return s == StrategyContinuous || s == StrategyFixedTerm }

// manual lists the admin-driven edges. Ongoing -> Completed is derived by
// Reconcile and only accepted manually when the balance is already zero.
var manual = map[LoanStatus][]LoanStatus{
	StatusPending:   {StatusOngoing},
	StatusOngoing:   {StatusDefaulted},
	StatusDefaulted: {StatusOngoing},
}

// Transition validates an admin status change. settled is the loan's live
// IsFullySettled value.
func Transition(from, to LoanStatus, settled bool) error {
	if !to.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, to)
	}
	if from == to {
		return nil
	}
	if to == StatusCompleted {
		if from == StatusOngoing && settled {
			return nil
		}
		return fmt.Errorf("%w: %s -> %s requires a zero balance", ErrInvalidTransition, from, to)
	}
	if from == StatusCompleted && to == StatusOngoing && !settled {
		return nil
	}
	for _, s := range manual[from] {
		if s == to {
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}

// Reconcile derives the status after a repayment or edit. Only Ongoing and
// Completed move automatically; Pending and Defaulted wait for an admin.
func Reconcile(current LoanStatus, settled bool) LoanStatus {
	switch {
	case current == StatusOngoing && settled:
		return StatusCompleted
	case current == StatusCompleted && !settled:
		return StatusOngoing
	}
	return current
}
