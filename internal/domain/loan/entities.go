package loan

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"tablebanking/internal/ledger"
)

var (
	ErrNotFound = errors.New("loan not found")
)

type Loan struct {
	ID                uint64            `gorm:"primaryKey;column:id" json:"-"`
	LoanID            string            `gorm:"size:32;uniqueIndex:ux_loans_loan_id" json:"loan_id"`
	MemberID          string            `gorm:"size:32;index:idx_loans_member" json:"member_id"`
	Principal         decimal.Decimal   `gorm:"type:decimal(15,2)" json:"principal"`
	AnnualRatePercent decimal.Decimal   `gorm:"column:interest_rate;type:decimal(7,4)" json:"interest_rate"`
	Strategy          ledger.Strategy   `gorm:"type:enum('continuous','fixed_term');default:'continuous'" json:"strategy"`
	IssueDate         time.Time         `gorm:"type:date" json:"issue_date"`
	DueDate           time.Time         `gorm:"type:date" json:"due_date"`
	Status            ledger.LoanStatus `gorm:"type:enum('Pending','Ongoing','Completed','Defaulted');default:'Pending';index" json:"status"`
	ApprovedBy        string            `gorm:"size:32" json:"approved_by,omitempty"`
	StatusUpdatedAt   time.Time         `gorm:"autoCreateTime" json:"status_updated_at"`
	CreatedAt         time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Loan) TableName() string { return "loans" }

// Ledger projects the record onto the pure ledger model.
func (l *Loan) Ledger() ledger.Loan {
	return ledger.Loan{
		Principal:         l.Principal,
		AnnualRatePercent: l.AnnualRatePercent,
		IssueDate:         l.IssueDate,
		DueDate:           l.DueDate,
		Status:            l.Status,
		Strategy:          l.Strategy,
	}
}

// Repayment rows are insert-only.
type Repayment struct {
	ID          uint64          `gorm:"primaryKey;column:id" json:"-"`
	RepaymentID string          `gorm:"size:32;uniqueIndex:ux_repayments_repayment_id" json:"repayment_id"`
	LoanID      uint64          `gorm:"column:loan_id;not null;index" json:"-"`
	AmountPaid  decimal.Decimal `gorm:"type:decimal(15,2)" json:"amount_paid"`
	PaymentDate time.Time       `gorm:"type:date;index" json:"payment_date"`
	RecordedBy  string          `gorm:"size:32" json:"recorded_by,omitempty"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (Repayment) TableName() string { return "repayments" }

// LedgerRepayments keeps the stored order, which the ledger uses to break
// payment-date ties.
func LedgerRepayments(rs []Repayment) []ledger.Repayment {
	out := make([]ledger.Repayment, len(rs))
	for i, r := range rs {
		out[i] = ledger.Repayment{Amount: r.AmountPaid, PaymentDate: r.PaymentDate}
	}
	return out
}
