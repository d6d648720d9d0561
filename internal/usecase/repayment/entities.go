package repayment

import (
	"time"

	"github.com/shopspring/decimal"

	"tablebanking/internal/ledger"
)

type RecordInput struct {
	LoanID      string
	Amount      decimal.Decimal
	PaymentDate time.Time // zero means today
	RecordedBy  string
}

type RepaymentDTO struct {
	RepaymentID string          `json:"repayment_id"`
	LoanID      string          `json:"loan_id"`
	AmountPaid  decimal.Decimal `json:"amount_paid"`
	PaymentDate string          `json:"payment_date"`
	RecordedBy  string          `json:"recorded_by,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// RecordedDTO is a stored repayment plus the loan state it produced.
type RecordedDTO struct {
	Repayment RepaymentDTO     `json:"repayment"`
	LoanState ledger.LoanState `json:"loan_state"`
}

type HistoryDTO struct {
	LoanID     string           `json:"loan_id"`
	Repayments []RepaymentDTO   `json:"repayments"`
	LoanState  ledger.LoanState `json:"loan_state"`
}
