package pool

import (
	"time"

	"github.com/shopspring/decimal"
)

// Flat ledger rows. The core only ever reads their sums.

type Contribution struct {
	ID               uint64          `gorm:"primaryKey;column:id"`
	MemberID         string          `gorm:"size:32;index"`
	Amount           decimal.Decimal `gorm:"type:decimal(15,2)"`
	ContributionDate time.Time       `gorm:"type:date"`
	CreatedAt        time.Time       `gorm:"autoCreateTime"`
}

func (Contribution) TableName() string { return "contributions" }

type ExternalFund struct {
	ID           uint64          `gorm:"primaryKey;column:id"`
	Source       string          `gorm:"size:32"`
	Amount       decimal.Decimal `gorm:"type:decimal(15,2)"`
	ReceivedDate time.Time       `gorm:"type:date"`
	CreatedAt    time.Time       `gorm:"autoCreateTime"`
}

func (ExternalFund) TableName() string { return "external_funds" }

type RegistrationFee struct {
	ID          uint64          `gorm:"primaryKey;column:id"`
	MemberID    string          `gorm:"size:32;index"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2)"`
	PaymentDate time.Time       `gorm:"type:date"`
	CreatedAt   time.Time       `gorm:"autoCreateTime"`
}

func (RegistrationFee) TableName() string { return "registration_fees" }

const (
	FineUnpaid = "Unpaid"
	FinePaid   = "Paid"
)

type Fine struct {
	ID         uint64          `gorm:"primaryKey;column:id"`
	MemberID   string          `gorm:"size:32;index"`
	Amount     decimal.Decimal `gorm:"type:decimal(15,2)"`
	Reason     string          `gorm:"size:255"`
	IssuedDate time.Time       `gorm:"type:date"`
	Status     string          `gorm:"size:16;default:'Unpaid'"`
	CreatedAt  time.Time       `gorm:"autoCreateTime"`
}

func (Fine) TableName() string { return "fines" }

type Expense struct {
	ID          uint64          `gorm:"primaryKey;column:id"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2)"`
	ExpenseDate time.Time       `gorm:"type:date"`
	Category    string          `gorm:"size:100"`
	CreatedAt   time.Time       `gorm:"autoCreateTime"`
}

func (Expense) TableName() string { return "expenses" }
