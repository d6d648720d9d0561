package pool

import (
	"context"

	"github.com/shopspring/decimal"

	"tablebanking/internal/ledger"
)

// Repository runs the aggregate queries behind a liquidity check.
type Repository interface {
	Totals(ctx context.Context) (ledger.PoolTotals, error)
	MemberContributions(ctx context.Context, memberID string) (decimal.Decimal, error)
	HasRegistrationFee(ctx context.Context, memberID string) (bool, error)
}
