package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"tablebanking/pkg/money"
)

const MemberActive = "Active"

// LoanRequest is what an admin submits to open a loan.
type LoanRequest struct {
	MemberID          string
	Amount            money.Money
	AnnualRatePercent *decimal.Decimal // nil uses Settings.DefaultInterestRate
	IssueDate         time.Time
	DueDate           time.Time
	Strategy          Strategy // empty uses Settings.DefaultStrategy
}

// MemberContext is what the guard needs to know about the borrower.
type MemberContext struct {
	Status             string
	HasRegistrationFee bool
	TotalContributions money.Money
}

// Approval is an accepted request: the loan to insert and its initial state.
type Approval struct {
	Loan  Loan
	State LoanState
}

// EvaluateLoanRequest applies the approval rules in order: member active,
// registration fee paid, contribution multiple, pool liquidity. The first
// failing rule returns a *Rejection.
func EvaluateLoanRequest(req LoanRequest, member MemberContext, pool PoolSnapshot, settings Settings, asOf time.Time) (*Approval, error) {
	loan, err := requestedLoan(req, settings)
	if err != nil {
		return nil, err
	}

	if member.Status != MemberActive {
		return nil, &Rejection{
			Reason:    ReasonMemberInactive,
			Message:   "member must be Active to apply for a loan",
			Requested: req.Amount,
		}
	}
	if !member.HasRegistrationFee {
		return nil, &Rejection{
			Reason:    ReasonNoRegistrationFee,
			Message:   "member must pay the registration fee before applying for a loan",
			Requested: req.Amount,
		}
	}
	limit := money.Round(member.TotalContributions.Mul(settings.MaxLoanMultiplier))
	if req.Amount.GreaterThan(limit) {
		return nil, &Rejection{
			Reason:    ReasonExceedsContributionMultiple,
			Message:   fmt.Sprintf("loan cannot exceed %sx member contributions (max: %s)", settings.MaxLoanMultiplier.String(), limit.StringFixed(2)),
			Requested: req.Amount,
			Limit:     limit,
		}
	}
	if req.Amount.GreaterThan(pool.AvailableCash) {
		return nil, &Rejection{
			Reason:    ReasonInsufficientPoolFunds,
			Message:   fmt.Sprintf("insufficient group funds, available cash: %s", pool.AvailableCash.StringFixed(2)),
			Requested: req.Amount,
			Available: pool.AvailableCash,
		}
	}

	st, err := ComputeLoanState(loan, nil, asOf, settings.FixedTerm)
	if err != nil {
		return nil, err
	}
	return &Approval{Loan: loan, State: st}, nil
}

func requestedLoan(req LoanRequest, settings Settings) (Loan, error) {
	if strings.TrimSpace(req.MemberID) == "" {
		return Loan{}, validationf("member id is required")
	}
	if req.DueDate.IsZero() {
		return Loan{}, validationf("due date is required")
	}
	rate := settings.DefaultInterestRate
	if req.AnnualRatePercent != nil {
		rate = *req.AnnualRatePercent
	}
	strategy := req.Strategy
	if strategy == "" {
		strategy = settings.DefaultStrategy
	}
	if !strategy.Valid() {
		return Loan{}, validationf("unknown strategy %q", strategy)
	}
	loan := Loan{
		Principal:         money.Round(req.Amount),
		AnnualRatePercent: rate,
		IssueDate:         money.DateOf(req.IssueDate),
		DueDate:           money.DateOf(req.DueDate),
		Status:            StatusOngoing,
		Strategy:          strategy,
	}
	if err := loan.Validate(); err != nil {
		return Loan{}, err
	}
	return loan, nil
}
