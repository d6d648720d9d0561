package uow

import (
	"context"

	"tablebanking/internal/domain/loan"
	"tablebanking/internal/domain/member"
	"tablebanking/internal/domain/pool"
	"tablebanking/internal/domain/settings"
)

type Repos struct {
	Loans      loan.Repository
	Repayments loan.RepaymentRepository
	Members    member.Repository
	Pool       pool.Repository
	Settings   settings.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock loan first, then pass it in
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
}

// Locker serialises critical sections that span more than one row, such as
// "read pool state, approve, insert" for a new loan.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}
