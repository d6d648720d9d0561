package settings

import (
	"context"
	"errors"
	"testing"

	domain "tablebanking/internal/domain/settings"
	"tablebanking/internal/ledger"
	"tablebanking/internal/testutil/settingsmock"
)

func TestResolve_Layering(t *testing.T) {
	repo := &settingsmock.Repo{
		AllFn: func(ctx context.Context) (map[string]string, error) {
			return map[string]string{domain.KeyMaxLoanMultiplier: "5"}, nil
		},
	}
	uc := NewUsecase(repo, map[string]string{
		domain.KeyMaxLoanMultiplier: "4",
		domain.KeyOverpaymentPolicy: "reject",
	})

	s, err := uc.Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if s.MaxLoanMultiplier.String() != "5" {
		t.Fatalf("table should win over env, got %s", s.MaxLoanMultiplier)
	}
	if s.Overpayment != ledger.OverpaymentReject {
		t.Fatalf("env override lost, got %s", s.Overpayment)
	}
	if s.DefaultInterestRate.String() != "10" || s.FixedTerm.Months != 3 {
		t.Fatalf("defaults lost: %+v", s)
	}
}

func TestResolve_RepoError(t *testing.T) {
	boom := errors.New("db down")
	uc := NewUsecase(&settingsmock.Repo{
		AllFn: func(ctx context.Context) (map[string]string, error) { return nil, boom },
	}, nil)
	if _, err := uc.Resolve(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped repo error, got %v", err)
	}
}

func TestUpdate(t *testing.T) {
	var stored map[string]string
	uc := NewUsecase(&settingsmock.Repo{
		UpsertFn: func(ctx context.Context, values map[string]string) error {
			stored = values
			return nil
		},
	}, nil)

	out, err := uc.Update(context.Background(), map[string]string{
		domain.KeyLoanStrategy:    "fixed_term",
		domain.KeyFixedTermMonths: "6",
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if stored[domain.KeyFixedTermMonths] != "6" {
		t.Fatalf("upsert not called with values: %v", stored)
	}
	if out[domain.KeyLoanStrategy] != "fixed_term" || out[domain.KeyMaxLoanMultiplier] != "3" {
		t.Fatalf("unexpected effective settings: %v", out)
	}
}

func TestUpdate_Invalid(t *testing.T) {
	called := false
	uc := NewUsecase(&settingsmock.Repo{
		UpsertFn: func(ctx context.Context, values map[string]string) error {
			called = true
			return nil
		},
	}, nil)

	cases := []map[string]string{
		{"no_such_key": "1"},
		{domain.KeyMaxLoanMultiplier: "three"},
		{domain.KeyMaxLoanMultiplier: "-1"},
		{domain.KeyLoanStrategy: "balloon"},
		{domain.KeyFixedTermMonths: "0"},
		{domain.KeyOverpaymentPolicy: "refund"},
	}
	for _, in := range cases {
		if _, err := uc.Update(context.Background(), in); !errors.Is(err, ledger.ErrValidation) {
			t.Fatalf("%v: expected ErrValidation, got %v", in, err)
		}
	}
	if called {
		t.Fatalf("invalid settings must not be stored")
	}
}

func TestGet_EncodesEveryKey(t *testing.T) {
	uc := NewUsecase(&settingsmock.Repo{}, nil)
	out, err := uc.Get(context.Background())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	for _, k := range domain.Keys {
		if _, ok := out[k]; !ok {
			t.Fatalf("missing key %s in %v", k, out)
		}
	}
	if out[domain.KeyRegistrationFeeAmount] != "500.00" {
		t.Fatalf("registration fee = %q", out[domain.KeyRegistrationFeeAmount])
	}
}
