package mysql

import (
	"context"
	"testing"

	settingsDomain "tablebanking/internal/domain/settings"
)

func TestSettingsUpsert(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewSettingsRepository(db)

	if err := repo.Upsert(ctx, map[string]string{
		settingsDomain.KeyMaxLoanMultiplier:   "3",
		settingsDomain.KeyDefaultInterestRate: "10",
	}); err != nil {
		t.Fatalf("Upsert insert: %v", err)
	}
	// second write updates in place
	if err := repo.Upsert(ctx, map[string]string{settingsDomain.KeyMaxLoanMultiplier: "4"}); err != nil {
		t.Fatalf("Upsert update: %v", err)
	}

	got, err := repo.All(ctx)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2 keys, got %v", got)
	}
	if got[settingsDomain.KeyMaxLoanMultiplier] != "4" {
		t.Fatalf("multiplier = %q", got[settingsDomain.KeyMaxLoanMultiplier])
	}
	if got[settingsDomain.KeyDefaultInterestRate] != "10" {
		t.Fatalf("rate = %q", got[settingsDomain.KeyDefaultInterestRate])
	}

	if err := repo.Upsert(ctx, nil); err != nil {
		t.Fatalf("empty upsert: %v", err)
	}
}
