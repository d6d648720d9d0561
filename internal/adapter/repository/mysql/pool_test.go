package mysql

import (
	"context"
	"errors"
	"testing"

	memberDomain "tablebanking/internal/domain/member"
	poolDomain "tablebanking/internal/domain/pool"
	"tablebanking/internal/ledger"
	"tablebanking/pkg/money"
)

func TestPoolTotals_Empty(t *testing.T) {
	db := openTestDB(t)
	got, err := NewPoolRepository(db).Totals(context.Background())
	if err != nil {
		t.Fatalf("Totals: %v", err)
	}
	if !got.Pool().IsZero() {
		t.Fatalf("empty pool = %s", got.Pool())
	}
}

func TestPoolTotals_SumsEveryLedgerTable(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	seed := []any{
		&poolDomain.Contribution{MemberID: "m1", Amount: money.MustParse("20000"), ContributionDate: money.MustDate("2024-01-01")},
		&poolDomain.Contribution{MemberID: "m2", Amount: money.MustParse("20000"), ContributionDate: money.MustDate("2024-01-02")},
		&poolDomain.ExternalFund{Source: "grant", Amount: money.MustParse("10000"), ReceivedDate: money.MustDate("2024-01-03")},
		&poolDomain.RegistrationFee{MemberID: "m1", Amount: money.MustParse("500"), PaymentDate: money.MustDate("2024-01-01")},
		&poolDomain.Fine{MemberID: "m1", Amount: money.MustParse("500"), Status: poolDomain.FinePaid, IssuedDate: money.MustDate("2024-01-04")},
		&poolDomain.Fine{MemberID: "m2", Amount: money.MustParse("900"), Status: poolDomain.FineUnpaid, IssuedDate: money.MustDate("2024-01-04")},
		&poolDomain.Expense{Category: "stationery", Amount: money.MustParse("3000"), ExpenseDate: money.MustDate("2024-01-05")},
	}
	for _, row := range seed {
		if err := db.Create(row).Error; err != nil {
			t.Fatalf("seed %T: %v", row, err)
		}
	}
	l := makeLoan("LN-POOL", "m1", ledger.StatusOngoing)
	if err := NewLoanRepository(db).Create(ctx, l); err != nil {
		t.Fatal(err)
	}
	if err := NewRepaymentRepository(db).Create(ctx, makeRepayment("RP-POOL", l.ID, "5000", "2024-02-01")); err != nil {
		t.Fatal(err)
	}

	got, err := NewPoolRepository(db).Totals(ctx)
	if err != nil {
		t.Fatalf("Totals: %v", err)
	}
	checks := map[string]struct{ got, want string }{
		"contributions": {got.Contributions.String(), "40000"},
		"repaid":        {got.Repaid.String(), "5000"},
		"external":      {got.ExternalFunds.String(), "10000"},
		"registration":  {got.RegistrationFees.String(), "500"},
		"fines paid":    {got.FinesPaid.String(), "500"},
		"lent":          {got.PrincipalLent.String(), "10000"},
		"expenses":      {got.Expenses.String(), "3000"},
	}
	for name, c := range checks {
		if !money.MustParse(c.got).Equal(money.MustParse(c.want)) {
			t.Errorf("%s = %s, want %s", name, c.got, c.want)
		}
	}
	// 40000 + 5000 + 10000 + 500 + 500 - 10000 - 3000
	if !got.Pool().Equal(money.MustParse("43000")) {
		t.Fatalf("pool = %s, want 43000", got.Pool())
	}
}

func TestPoolMemberContext(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewPoolRepository(db)

	if err := db.Create(&poolDomain.Contribution{MemberID: "m1", Amount: money.MustParse("600"), ContributionDate: money.MustDate("2024-01-01")}).Error; err != nil {
		t.Fatal(err)
	}
	if err := db.Create(&poolDomain.Contribution{MemberID: "m1", Amount: money.MustParse("400"), ContributionDate: money.MustDate("2024-02-01")}).Error; err != nil {
		t.Fatal(err)
	}
	if err := db.Create(&poolDomain.RegistrationFee{MemberID: "m1", Amount: money.MustParse("500"), PaymentDate: money.MustDate("2024-01-01")}).Error; err != nil {
		t.Fatal(err)
	}

	sum, err := repo.MemberContributions(ctx, "m1")
	if err != nil || !sum.Equal(money.MustParse("1000")) {
		t.Fatalf("MemberContributions = %s err=%v", sum, err)
	}
	none, err := repo.MemberContributions(ctx, "m2")
	if err != nil || !none.IsZero() {
		t.Fatalf("MemberContributions(m2) = %s err=%v", none, err)
	}
	if ok, err := repo.HasRegistrationFee(ctx, "m1"); err != nil || !ok {
		t.Fatalf("HasRegistrationFee(m1) = %v err=%v", ok, err)
	}
	if ok, err := repo.HasRegistrationFee(ctx, "m2"); err != nil || ok {
		t.Fatalf("HasRegistrationFee(m2) = %v err=%v", ok, err)
	}
}

func TestMemberRepository(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewMemberRepository(db)

	if err := db.Create(&memberDomain.Member{MemberID: "m1", FullName: "Wanjiru", DateJoined: money.MustDate("2023-06-01"), Status: "Active"}).Error; err != nil {
		t.Fatal(err)
	}
	got, err := repo.GetByMemberID(ctx, "m1")
	if err != nil {
		t.Fatalf("GetByMemberID: %v", err)
	}
	if got.Status != "Active" || got.FullName != "Wanjiru" {
		t.Fatalf("unexpected member %+v", got)
	}
	if _, err := repo.GetByMemberID(ctx, "missing"); !errors.Is(err, memberDomain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
