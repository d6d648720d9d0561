package mysql

import (
	"testing"
	"time"

	loanDomain "tablebanking/internal/domain/loan"
	memberDomain "tablebanking/internal/domain/member"
	poolDomain "tablebanking/internal/domain/pool"
	settingsDomain "tablebanking/internal/domain/settings"
	"tablebanking/internal/ledger"
	"tablebanking/pkg/money"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// --- SQLite-friendly schema only for tests (no ENUM) ---

type loanSQLite struct {
	ID                uint64          `gorm:"primaryKey;column:id"`
	LoanID            string          `gorm:"size:32;column:loan_id"`
	MemberID          string          `gorm:"size:32;column:member_id"`
	Principal         decimal.Decimal `gorm:"type:decimal(15,2);column:principal"`
	AnnualRatePercent decimal.Decimal `gorm:"type:decimal(7,4);column:interest_rate"`
	Strategy          string          `gorm:"type:text;column:strategy"` // ← no enum
	IssueDate         time.Time       `gorm:"type:date;column:issue_date"`
	DueDate           time.Time       `gorm:"type:date;column:due_date"`
	Status            string          `gorm:"type:text;column:status"` // ← no enum
	ApprovedBy        string          `gorm:"column:approved_by"`
	StatusUpdatedAt   time.Time       `gorm:"column:status_updated_at"`
	CreatedAt         time.Time       `gorm:"column:created_at"`
	UpdatedAt         time.Time       `gorm:"column:updated_at"`
}

func (loanSQLite) TableName() string { return "loans" }

// openTestDB creates an in-memory sqlite DB and migrates ONLY the sqlite-safe schema.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// every pooled connection would get its own empty :memory: database
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	// IMPORTANT: migrate the sqlite-safe loan model, NOT the domain model.
	if err := db.AutoMigrate(
		&loanSQLite{},
		&loanDomain.Repayment{},
		&memberDomain.Member{},
		&poolDomain.Contribution{},
		&poolDomain.ExternalFund{},
		&poolDomain.RegistrationFee{},
		&poolDomain.Fine{},
		&poolDomain.Expense{},
		&settingsDomain.Setting{},
	); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func makeLoan(loanID, memberID string, status ledger.LoanStatus) *loanDomain.Loan {
	return &loanDomain.Loan{
		LoanID:            loanID,
		MemberID:          memberID,
		Principal:         money.MustParse("10000"),
		AnnualRatePercent: money.MustParse("10"),
		Strategy:          ledger.StrategyContinuous,
		IssueDate:         money.MustDate("2024-01-01"),
		DueDate:           money.MustDate("2024-12-31"),
		Status:            status,
		StatusUpdatedAt:   time.Now().UTC(),
	}
}

func makeRepayment(repaymentID string, loanNumericID uint64, amount, date string) *loanDomain.Repayment {
	return &loanDomain.Repayment{
		RepaymentID: repaymentID,
		LoanID:      loanNumericID,
		AmountPaid:  money.MustParse(amount),
		PaymentDate: money.MustDate(date),
	}
}
