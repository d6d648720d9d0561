package poolmock

import (
	"context"

	"github.com/shopspring/decimal"

	domain "tablebanking/internal/domain/pool"
	"tablebanking/internal/ledger"
)

var _ domain.Repository = (*Repo)(nil)

type Repo struct {
	TotalsFn              func(ctx context.Context) (ledger.PoolTotals, error)
	MemberContributionsFn func(ctx context.Context, memberID string) (decimal.Decimal, error)
	HasRegistrationFeeFn  func(ctx context.Context, memberID string) (bool, error)
}

func (m *Repo) Totals(ctx context.Context) (ledger.PoolTotals, error) {
	if m.TotalsFn != nil {
		return m.TotalsFn(ctx)
	}
	return ledger.PoolTotals{}, nil
}

func (m *Repo) MemberContributions(ctx context.Context, memberID string) (decimal.Decimal, error) {
	if m.MemberContributionsFn != nil {
		return m.MemberContributionsFn(ctx, memberID)
	}
	return decimal.Zero, nil
}

func (m *Repo) HasRegistrationFee(ctx context.Context, memberID string) (bool, error) {
	if m.HasRegistrationFeeFn != nil {
		return m.HasRegistrationFeeFn(ctx, memberID)
	}
	return false, nil
}
