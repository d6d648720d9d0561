package settings

import (
	"context"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	domain "tablebanking/internal/domain/settings"
	"tablebanking/internal/ledger"
)

// Usecase resolves ledger settings: built-in defaults, then environment
// overrides, then rows of the settings table.
type Usecase struct {
	repo     domain.Repository
	defaults map[string]string
}

func NewUsecase(repo domain.Repository, envOverrides map[string]string) *Usecase {
	return &Usecase{repo: repo, defaults: envOverrides}
}

// Resolve builds the settings value passed into one ledger operation.
func (u *Usecase) Resolve(ctx context.Context) (ledger.Settings, error) {
	return u.ResolveWith(ctx, u.repo)
}

// ResolveWith reads the table through repo, which may be bound to a
// transaction.
func (u *Usecase) ResolveWith(ctx context.Context, repo domain.Repository) (ledger.Settings, error) {
	stored, err := repo.All(ctx)
	if err != nil {
		return ledger.Settings{}, fmt.Errorf("load settings: %w", err)
	}
	s, err := Apply(ledger.DefaultSettings(), u.defaults)
	if err != nil {
		return ledger.Settings{}, fmt.Errorf("env settings: %w", err)
	}
	return Apply(s, stored)
}

// Get returns the effective settings keyed like the settings table.
func (u *Usecase) Get(ctx context.Context) (map[string]string, error) {
	s, err := u.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	return Encode(s), nil
}

// Update validates the changed keys against the current settings and stores
// them. Unknown keys are a validation error.
func (u *Usecase) Update(ctx context.Context, values map[string]string) (map[string]string, error) {
	current, err := u.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	next, err := Apply(current, values)
	if err != nil {
		return nil, err
	}
	if err := u.repo.Upsert(ctx, values); err != nil {
		return nil, err
	}
	return Encode(next), nil
}

// Apply overlays key/value pairs onto base and validates the result.
func Apply(base ledger.Settings, values map[string]string) (ledger.Settings, error) {
	s := base
	for k, v := range values {
		var err error
		switch k {
		case domain.KeyMaxLoanMultiplier:
			s.MaxLoanMultiplier, err = decimal.NewFromString(v)
		case domain.KeyDefaultInterestRate:
			s.DefaultInterestRate, err = decimal.NewFromString(v)
		case domain.KeyRegistrationFeeAmount:
			s.RegistrationFeeAmount, err = decimal.NewFromString(v)
		case domain.KeyDefaultFineAmount:
			s.DefaultFineAmount, err = decimal.NewFromString(v)
		case domain.KeyLoanStrategy:
			s.DefaultStrategy = ledger.Strategy(v)
		case domain.KeyFixedTermMonths:
			s.FixedTerm.Months, err = strconv.Atoi(v)
		case domain.KeyFixedTermMonthlyRate:
			s.FixedTerm.MonthlyRatePercent, err = decimal.NewFromString(v)
		case domain.KeyOverpaymentPolicy:
			s.Overpayment = ledger.OverpaymentPolicy(v)
		default:
			return base, fmt.Errorf("%w: unknown setting %q", ledger.ErrValidation, k)
		}
		if err != nil {
			return base, fmt.Errorf("%w: setting %s=%q: %v", ledger.ErrValidation, k, v, err)
		}
	}
	if err := s.Validate(); err != nil {
		return base, err
	}
	return s, nil
}

func Encode(s ledger.Settings) map[string]string {
	return map[string]string{
		domain.KeyMaxLoanMultiplier:     s.MaxLoanMultiplier.String(),
		domain.KeyDefaultInterestRate:   s.DefaultInterestRate.String(),
		domain.KeyRegistrationFeeAmount: s.RegistrationFeeAmount.StringFixed(2),
		domain.KeyDefaultFineAmount:     s.DefaultFineAmount.StringFixed(2),
		domain.KeyLoanStrategy:          string(s.DefaultStrategy),
		domain.KeyFixedTermMonths:       strconv.Itoa(s.FixedTerm.Months),
		domain.KeyFixedTermMonthlyRate:  s.FixedTerm.MonthlyRatePercent.String(),
		domain.KeyOverpaymentPolicy:     string(s.Overpayment),
	}
}
