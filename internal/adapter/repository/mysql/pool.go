package mysql

import (
	"context"
	"fmt"

	poolDomain "tablebanking/internal/domain/pool"
	"tablebanking/internal/ledger"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PoolRepository struct{ db *gorm.DB }

func NewPoolRepository(db *gorm.DB) *PoolRepository { return &PoolRepository{db: db} }

func (r *PoolRepository) sum(ctx context.Context, table, column string, where string, args ...any) (decimal.Decimal, error) {
	var total decimal.Decimal
	q := r.db.WithContext(ctx).Table(table).Select(fmt.Sprintf("COALESCE(SUM(%s), 0)", column))
	if where != "" {
		q = q.Where(where, args...)
	}
	if err := q.Row().Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum %s.%s: %w", table, column, err)
	}
	return total, nil
}

func (r *PoolRepository) Totals(ctx context.Context) (ledger.PoolTotals, error) {
	var (
		t   ledger.PoolTotals
		err error
	)
	if t.Contributions, err = r.sum(ctx, "contributions", "amount", ""); err != nil {
		return t, err
	}
	if t.Repaid, err = r.sum(ctx, "repayments", "amount_paid", ""); err != nil {
		return t, err
	}
	if t.ExternalFunds, err = r.sum(ctx, "external_funds", "amount", ""); err != nil {
		return t, err
	}
	if t.RegistrationFees, err = r.sum(ctx, "registration_fees", "amount", ""); err != nil {
		return t, err
	}
	if t.FinesPaid, err = r.sum(ctx, "fines", "amount", "status = ?", poolDomain.FinePaid); err != nil {
		return t, err
	}
	if t.PrincipalLent, err = r.sum(ctx, "loans", "principal", ""); err != nil {
		return t, err
	}
	if t.Expenses, err = r.sum(ctx, "expenses", "amount", ""); err != nil {
		return t, err
	}
	return t, nil
}

func (r *PoolRepository) MemberContributions(ctx context.Context, memberID string) (decimal.Decimal, error) {
	return r.sum(ctx, "contributions", "amount", "member_id = ?", memberID)
}

func (r *PoolRepository) HasRegistrationFee(ctx context.Context, memberID string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&poolDomain.RegistrationFee{}).Where("member_id = ?", memberID).Count(&n).Error
	return n > 0, err
}
