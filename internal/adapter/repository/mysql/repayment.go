package mysql

import (
	"context"

	loanDomain "tablebanking/internal/domain/loan"

	"gorm.io/gorm"
)

type RepaymentRepository struct{ db *gorm.DB }

func NewRepaymentRepository(db *gorm.DB) *RepaymentRepository { return &RepaymentRepository{db: db} }

func (r *RepaymentRepository) Create(ctx context.Context, rp *loanDomain.Repayment) error {
	return r.db.WithContext(ctx).Create(rp).Error
}

func (r *RepaymentRepository) ListByLoan(ctx context.Context, loanNumericID uint64) ([]loanDomain.Repayment, error) {
	var out []loanDomain.Repayment
	err := r.db.WithContext(ctx).
		Where("loan_id = ?", loanNumericID).
		Order("payment_date ASC, id ASC").
		Find(&out).Error
	return out, err
}

func (r *RepaymentRepository) ListByLoans(ctx context.Context, loanNumericIDs []uint64) (map[uint64][]loanDomain.Repayment, error) {
	out := make(map[uint64][]loanDomain.Repayment, len(loanNumericIDs))
	if len(loanNumericIDs) == 0 {
		return out, nil
	}
	var rows []loanDomain.Repayment
	err := r.db.WithContext(ctx).
		Where("loan_id IN ?", loanNumericIDs).
		Order("loan_id ASC, payment_date ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, rp := range rows {
		out[rp.LoanID] = append(out[rp.LoanID], rp)
	}
	return out, nil
}
