package loanmock

import (
	"context"

	domain "tablebanking/internal/domain/loan"
)

var (
	_ domain.Repository          = (*Repo)(nil)
	_ domain.RepaymentRepository = (*RepaymentRepo)(nil)
)

// Repo is a function-backed mock that satisfies domain.Repository.
// Unset lookups report domain.ErrNotFound; unset writes succeed.
type Repo struct {
	CreateFn               func(ctx context.Context, l *domain.Loan) error
	SaveFn                 func(ctx context.Context, l *domain.Loan) error
	DeleteFn               func(ctx context.Context, l *domain.Loan) error
	GetByLoanIDFn          func(ctx context.Context, loanID string) (*domain.Loan, error)
	GetByLoanIDForUpdateFn func(ctx context.Context, loanID string) (*domain.Loan, error)
	ListFn                 func(ctx context.Context, f domain.Filter) ([]domain.Loan, error)
}

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, l *domain.Loan) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}

func (m *Repo) Delete(ctx context.Context, l *domain.Loan) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByLoanID(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDFn != nil {
		return m.GetByLoanIDFn(ctx, loanID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDForUpdateFn != nil {
		return m.GetByLoanIDForUpdateFn(ctx, loanID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) List(ctx context.Context, f domain.Filter) ([]domain.Loan, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, nil
}

// RepaymentRepo is a function-backed mock for domain.RepaymentRepository.
type RepaymentRepo struct {
	CreateFn      func(ctx context.Context, r *domain.Repayment) error
	ListByLoanFn  func(ctx context.Context, loanNumericID uint64) ([]domain.Repayment, error)
	ListByLoansFn func(ctx context.Context, loanNumericIDs []uint64) (map[uint64][]domain.Repayment, error)
}

func (m *RepaymentRepo) Create(ctx context.Context, r *domain.Repayment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return nil
}

func (m *RepaymentRepo) ListByLoan(ctx context.Context, loanNumericID uint64) ([]domain.Repayment, error) {
	if m.ListByLoanFn != nil {
		return m.ListByLoanFn(ctx, loanNumericID)
	}
	return nil, nil
}

func (m *RepaymentRepo) ListByLoans(ctx context.Context, loanNumericIDs []uint64) (map[uint64][]domain.Repayment, error) {
	if m.ListByLoansFn != nil {
		return m.ListByLoansFn(ctx, loanNumericIDs)
	}
	return map[uint64][]domain.Repayment{}, nil
}
