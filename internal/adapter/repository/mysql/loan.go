package mysql

import (
	"context"
	"errors"

	loanDomain "tablebanking/internal/domain/loan"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LoanRepository) Save(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Save(l).Error
}

// Delete removes the loan and its repayments.
func (r *LoanRepository) Delete(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("loan_id = ?", l.ID).Delete(&loanDomain.Repayment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&loanDomain.Loan{}, l.ID).Error
	})
}

func (r *LoanRepository) GetByLoanID(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	return r.first(r.db.WithContext(ctx), loanID)
}

func (r *LoanRepository) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	q := r.db.WithContext(ctx)
	// sqlite has no row locks; its writes are serialised anyway
	if q.Dialector.Name() == "mysql" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return r.first(q, loanID)
}

func (r *LoanRepository) first(q *gorm.DB, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := q.Where("loan_id = ?", loanID).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, loanDomain.ErrNotFound
	}
	if res.Error != nil {
		return nil, res.Error
	}
	return &out, nil
}

func (r *LoanRepository) List(ctx context.Context, f loanDomain.Filter) ([]loanDomain.Loan, error) {
	q := r.db.WithContext(ctx).Model(&loanDomain.Loan{})
	if f.MemberID != "" {
		q = q.Where("member_id = ?", f.MemberID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	var out []loanDomain.Loan
	err := q.Order("issue_date DESC, id DESC").Find(&out).Error
	return out, err
}
