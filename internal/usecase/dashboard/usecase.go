package dashboard

import (
	"context"
	"fmt"
	"time"

	domainLoan "tablebanking/internal/domain/loan"
	"tablebanking/internal/domain/settings"
	"tablebanking/internal/domain/uow"
	"tablebanking/internal/ledger"
	"tablebanking/pkg/money"
)

type SettingsResolver interface {
	ResolveWith(ctx context.Context, repo settings.Repository) (ledger.Settings, error)
}

type Usecase struct {
	repos    uow.Repos
	settings SettingsResolver
	clock    money.Clock
}

func NewUsecase(repos uow.Repos, s SettingsResolver, clock money.Clock) *Usecase {
	return &Usecase{repos: repos, settings: s, clock: clock}
}

// Summary is the group's liquidity as of today.
func (u *Usecase) Summary(ctx context.Context) (*SummaryDTO, error) {
	s, err := u.settings.ResolveWith(ctx, u.repos.Settings)
	if err != nil {
		return nil, err
	}
	today := u.clock.Today()
	snap, err := Snapshot(ctx, u.repos, today, s.FixedTerm)
	if err != nil {
		return nil, err
	}
	return &SummaryDTO{AsOf: money.FormatDate(today), PoolSnapshot: snap}, nil
}

// Snapshot aggregates the pool through r, which may be bound to a
// transaction so the figures are consistent with a following insert.
func Snapshot(ctx context.Context, r uow.Repos, asOf time.Time, terms ledger.FixedTermTerms) (ledger.PoolSnapshot, error) {
	totals, err := r.Pool.Totals(ctx)
	if err != nil {
		return ledger.PoolSnapshot{}, fmt.Errorf("pool totals: %w", err)
	}
	loans, err := r.Loans.List(ctx, domainLoan.Filter{})
	if err != nil {
		return ledger.PoolSnapshot{}, fmt.Errorf("list loans: %w", err)
	}
	records, err := Records(ctx, r.Repayments, loans)
	if err != nil {
		return ledger.PoolSnapshot{}, err
	}
	return ledger.ComputeAvailableCash(totals, records, asOf, terms)
}

// Records pairs loans with their repayment histories in one query.
func Records(ctx context.Context, reps domainLoan.RepaymentRepository, loans []domainLoan.Loan) ([]ledger.LoanRecord, error) {
	ids := make([]uint64, 0, len(loans))
	for _, l := range loans {
		ids = append(ids, l.ID)
	}
	byLoan, err := reps.ListByLoans(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list repayments: %w", err)
	}
	out := make([]ledger.LoanRecord, 0, len(loans))
	for i := range loans {
		out = append(out, ledger.LoanRecord{
			Loan:       loans[i].Ledger(),
			Repayments: domainLoan.LedgerRepayments(byLoan[loans[i].ID]),
		})
	}
	return out, nil
}
