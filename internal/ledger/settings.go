package ledger

import (
	"github.com/shopspring/decimal"

	"tablebanking/pkg/money"
)

type OverpaymentPolicy string

const (
	// OverpaymentAbsorb clamps the balance at zero and drops the excess.
	OverpaymentAbsorb OverpaymentPolicy = "absorb"
	// OverpaymentReject refuses a repayment larger than the balance due.
	OverpaymentReject OverpaymentPolicy = "reject"
)

// FixedTermTerms parameterises the flat-principal schedule.
type FixedTermTerms struct {
	Months             int
	MonthlyRatePercent decimal.Decimal
}

// Settings is resolved once per request and passed explicitly.
type Settings struct {
	MaxLoanMultiplier     decimal.Decimal
	DefaultInterestRate   decimal.Decimal
	RegistrationFeeAmount money.Money
	DefaultFineAmount     money.Money
	DefaultStrategy       Strategy
	FixedTerm             FixedTermTerms
	Overpayment           OverpaymentPolicy
}

func DefaultSettings() Settings {
	return Settings{
		MaxLoanMultiplier:     decimal.NewFromInt(3),
		DefaultInterestRate:   decimal.NewFromInt(10),
		RegistrationFeeAmount: decimal.NewFromInt(500),
		DefaultFineAmount:     decimal.NewFromInt(100),
		DefaultStrategy:       StrategyContinuous,
		FixedTerm:             FixedTermTerms{Months: 3, MonthlyRatePercent: decimal.NewFromInt(10)},
		Overpayment:           OverpaymentAbsorb,
	}
}

func (s Settings) Validate() error {
	if s.MaxLoanMultiplier.IsNegative() {
		return validationf("max loan multiplier must be >= 0")
	}
	if s.DefaultInterestRate.IsNegative() {
		return validationf("default interest rate must be >= 0")
	}
	if !s.DefaultStrategy.Valid() {
		return validationf("unknown strategy %q", s.DefaultStrategy)
	}
	if s.FixedTerm.Months <= 0 {
		return validationf("fixed term months must be > 0, got %d", s.FixedTerm.Months)
	}
	if s.FixedTerm.MonthlyRatePercent.IsNegative() {
		return validationf("fixed term monthly rate must be >= 0")
	}
	switch s.Overpayment {
	case OverpaymentAbsorb, OverpaymentReject:
	default:
		return validationf("unknown overpayment policy %q", s.Overpayment)
	}
	return nil
}
