package loan

import "context"

type Filter struct {
	MemberID string
	Status   string
}

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	Save(ctx context.Context, l *Loan) error
	Delete(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	// GetByLoanIDForUpdate locks the row for the rest of the transaction.
	GetByLoanIDForUpdate(ctx context.Context, loanID string) (*Loan, error)
	List(ctx context.Context, f Filter) ([]Loan, error)
}

type RepaymentRepository interface {
	Create(ctx context.Context, r *Repayment) error
	// ListByLoan returns rows ordered by payment date then insertion.
	ListByLoan(ctx context.Context, loanNumericID uint64) ([]Repayment, error)
	// ListByLoans groups repayments of many loans, same ordering per loan.
	ListByLoans(ctx context.Context, loanNumericIDs []uint64) (map[uint64][]Repayment, error)
}
