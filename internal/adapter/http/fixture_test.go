package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	domain "tablebanking/internal/domain/loan"
	"tablebanking/internal/domain/member"
	"tablebanking/internal/domain/uow"
	"tablebanking/internal/ledger"
	"tablebanking/internal/testutil/lockmock"
	"tablebanking/internal/testutil/loanmock"
	"tablebanking/internal/testutil/membermock"
	"tablebanking/internal/testutil/poolmock"
	"tablebanking/internal/testutil/settingsmock"
	"tablebanking/internal/testutil/uowmock"
	"tablebanking/internal/usecase/dashboard"
	loanuc "tablebanking/internal/usecase/loan"
	"tablebanking/internal/usecase/repayment"
	settingsuc "tablebanking/internal/usecase/settings"
	"tablebanking/pkg/money"
)

var (
	memberID = strings.Repeat("b", 32)
	loanID   = strings.Repeat("c", 32)
)

// -------- helpers --------

type deps struct {
	loans    *loanmock.Repo
	reps     *loanmock.RepaymentRepo
	members  *membermock.Repo
	pool     *poolmock.Repo
	settings *settingsmock.Repo
	lock     *lockmock.Locker
	stored   *domain.Loan
}

func newDeps() *deps {
	d := &deps{
		reps: &loanmock.RepaymentRepo{},
		members: &membermock.Repo{
			GetByMemberIDFn: func(ctx context.Context, id string) (*member.Member, error) {
				if id != memberID {
					return nil, member.ErrNotFound
				}
				return &member.Member{MemberID: id, Status: "Active"}, nil
			},
		},
		pool: &poolmock.Repo{
			TotalsFn: func(ctx context.Context) (ledger.PoolTotals, error) {
				return ledger.PoolTotals{Contributions: money.MustParse("43000")}, nil
			},
			MemberContributionsFn: func(ctx context.Context, id string) (decimal.Decimal, error) {
				return money.MustParse("20000"), nil
			},
			HasRegistrationFeeFn: func(ctx context.Context, id string) (bool, error) { return true, nil },
		},
		settings: &settingsmock.Repo{},
		lock:     &lockmock.Locker{},
		stored: &domain.Loan{
			ID:                7,
			LoanID:            loanID,
			MemberID:          memberID,
			Principal:         money.MustParse("10000"),
			AnnualRatePercent: money.MustParse("10"),
			Strategy:          ledger.StrategyContinuous,
			IssueDate:         money.MustDate("2024-01-01"),
			DueDate:           money.MustDate("2025-01-01"),
			Status:            ledger.StatusOngoing,
		},
	}
	lookup := func(ctx context.Context, id string) (*domain.Loan, error) {
		if d.stored == nil || id != d.stored.LoanID {
			return nil, domain.ErrNotFound
		}
		return d.stored, nil
	}
	d.loans = &loanmock.Repo{GetByLoanIDFn: lookup, GetByLoanIDForUpdateFn: lookup}
	return d
}

func (d *deps) echo() *echo.Echo {
	r := uow.Repos{Loans: d.loans, Repayments: d.reps, Members: d.members, Pool: d.pool, Settings: d.settings}
	tx := uowmock.Passthrough(r)
	clock := money.FixedClock(money.MustDate("2024-07-01"))
	settings := settingsuc.NewUsecase(d.settings, nil)

	e := echo.New()
	e.Validator = NewValidator()
	noIdem := func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	Register(e, Handlers{
		Health:     NewHandler(),
		Loans:      NewLoanHandler(loanuc.NewUsecase(r, tx, d.lock, settings, clock)),
		Repayments: NewRepaymentHandler(repayment.NewUsecase(r, tx, settings, clock)),
		Dashboard:  NewDashboardHandler(dashboard.NewUsecase(r, settings, clock), settings),
	}, noIdem)
	return e
}

func mustJSON(v any) *bytes.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func serve(t *testing.T, e *echo.Echo, method, path string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	req.Header.Set(HeaderActorID, strings.Repeat("a", 32))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("bad json: %v; raw=%s", err, rec.Body.String())
	}
	return out
}

func wantStatus(t *testing.T, rec *httptest.ResponseRecorder, code int) {
	t.Helper()
	if rec.Code != code {
		t.Fatalf("status = %d, want %d; body=%s", rec.Code, code, rec.Body.String())
	}
}


func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
