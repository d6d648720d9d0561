package loan

import (
	"time"

	"github.com/shopspring/decimal"

	domain "tablebanking/internal/domain/loan"
	"tablebanking/internal/ledger"
	"tablebanking/pkg/money"
)

type CreateLoanInput struct {
	MemberID     string
	Amount       decimal.Decimal
	InterestRate *decimal.Decimal // nil uses the configured default
	IssueDate    time.Time        // zero means today
	DueDate      time.Time
	Strategy     ledger.Strategy // empty uses the configured default
	ApprovedBy   string
}

// UpdateLoanInput carries the editable terms; nil fields stay unchanged.
type UpdateLoanInput struct {
	Principal    *decimal.Decimal
	InterestRate *decimal.Decimal
	IssueDate    *time.Time
	DueDate      *time.Time
}

type LoanDTO struct {
	LoanID       string            `json:"loan_id"`
	MemberID     string            `json:"member_id"`
	Principal    decimal.Decimal   `json:"principal"`
	InterestRate decimal.Decimal   `json:"interest_rate"`
	Strategy     ledger.Strategy   `json:"strategy"`
	IssueDate    string            `json:"issue_date"`
	DueDate      string            `json:"due_date"`
	Status       ledger.LoanStatus `json:"status"`
	ApprovedBy   string            `json:"approved_by,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	State        ledger.LoanState  `json:"state"`
}

func toDTO(l *domain.Loan, st ledger.LoanState) *LoanDTO {
	return &LoanDTO{
		LoanID:       l.LoanID,
		MemberID:     l.MemberID,
		Principal:    l.Principal,
		InterestRate: l.AnnualRatePercent,
		Strategy:     l.Strategy,
		IssueDate:    money.FormatDate(l.IssueDate),
		DueDate:      money.FormatDate(l.DueDate),
		Status:       st.Status,
		ApprovedBy:   l.ApprovedBy,
		CreatedAt:    l.CreatedAt,
		State:        st,
	}
}
