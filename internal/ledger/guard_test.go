package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func guardRequest(amount string) LoanRequest {
	return LoanRequest{
		MemberID:  "m1",
		Amount:    d(amount),
		IssueDate: date("2024-06-01"),
		DueDate:   date("2024-09-01"),
	}
}

func richPool() PoolSnapshot {
	return PoolSnapshot{AvailableCash: d("1000000")}
}

func activeMember(contrib string) MemberContext {
	return MemberContext{Status: "Active", HasRegistrationFee: true, TotalContributions: d(contrib)}
}

func TestEvaluateLoanRequest_InsufficientPoolFunds(t *testing.T) {
	snap, err := ComputeAvailableCash(poolTotals(), []LoanRecord{flatLoan("15000", StatusOngoing)}, date("2024-06-01"), DefaultSettings().FixedTerm)
	require.NoError(t, err)

	_, err = EvaluateLoanRequest(guardRequest("30000"), activeMember("20000"), snap, DefaultSettings(), date("2024-06-01"))
	rej, ok := AsRejection(err)
	require.True(t, ok, "want rejection, got %v", err)
	assert.Equal(t, ReasonInsufficientPoolFunds, rej.Reason)
	assert.Equal(t, "28000.00", rej.Available.StringFixed(2))
	assert.Equal(t, "30000.00", rej.Requested.StringFixed(2))
}

func TestEvaluateLoanRequest_ExceedsContributionMultiple(t *testing.T) {
	_, err := EvaluateLoanRequest(guardRequest("3500"), activeMember("1000"), richPool(), DefaultSettings(), date("2024-06-01"))
	rej, ok := AsRejection(err)
	require.True(t, ok)
	assert.Equal(t, ReasonExceedsContributionMultiple, rej.Reason)
	assert.Equal(t, "3000.00", rej.Limit.StringFixed(2))
}

func TestEvaluateLoanRequest_RuleOrder(t *testing.T) {
	inactive := MemberContext{Status: "Inactive", HasRegistrationFee: false, TotalContributions: d("0")}
	_, err := EvaluateLoanRequest(guardRequest("100"), inactive, PoolSnapshot{}, DefaultSettings(), date("2024-06-01"))
	rej, ok := AsRejection(err)
	require.True(t, ok)
	assert.Equal(t, ReasonMemberInactive, rej.Reason)

	noFee := activeMember("0")
	noFee.HasRegistrationFee = false
	_, err = EvaluateLoanRequest(guardRequest("100"), noFee, PoolSnapshot{}, DefaultSettings(), date("2024-06-01"))
	rej, ok = AsRejection(err)
	require.True(t, ok)
	assert.Equal(t, ReasonNoRegistrationFee, rej.Reason)
}

func TestEvaluateLoanRequest_StatusIsCaseSensitive(t *testing.T) {
	for _, status := range []string{"active", "ACTIVE", " Active"} {
		m := activeMember("1000")
		m.Status = status
		_, err := EvaluateLoanRequest(guardRequest("100"), m, richPool(), DefaultSettings(), date("2024-06-01"))
		rej, ok := AsRejection(err)
		require.True(t, ok, "status %q: want rejection, got %v", status, err)
		assert.Equal(t, ReasonMemberInactive, rej.Reason, "status %q", status)
	}
}

func TestEvaluateLoanRequest_Accept(t *testing.T) {
	s := DefaultSettings()
	got, err := EvaluateLoanRequest(guardRequest("3000"), activeMember("1000"), richPool(), s, date("2024-06-01"))
	require.NoError(t, err)
	assert.Equal(t, StatusOngoing, got.Loan.Status)
	assert.Equal(t, StrategyContinuous, got.Loan.Strategy)
	assert.True(t, got.Loan.AnnualRatePercent.Equal(s.DefaultInterestRate))
	assert.Equal(t, "3000.00", got.State.TotalAmount.StringFixed(2))
	assert.Equal(t, "3000.00", got.State.Balance.StringFixed(2))
}

func TestEvaluateLoanRequest_AcceptFixedTerm(t *testing.T) {
	req := guardRequest("3000")
	req.Strategy = StrategyFixedTerm
	rate := d("12")
	req.AnnualRatePercent = &rate
	got, err := EvaluateLoanRequest(req, activeMember("1000"), richPool(), DefaultSettings(), date("2024-06-01"))
	require.NoError(t, err)
	assert.Equal(t, StrategyFixedTerm, got.State.Strategy)
	assert.Equal(t, "600.00", got.State.InterestAmount.StringFixed(2))
	assert.True(t, got.Loan.AnnualRatePercent.Equal(rate))
}

func TestEvaluateLoanRequest_Validation(t *testing.T) {
	req := guardRequest("0")
	_, err := EvaluateLoanRequest(req, activeMember("1000"), richPool(), DefaultSettings(), date("2024-06-01"))
	assert.ErrorIs(t, err, ErrValidation)

	req = guardRequest("100")
	req.DueDate = date("2024-01-01")
	_, err = EvaluateLoanRequest(req, activeMember("1000"), richPool(), DefaultSettings(), date("2024-06-01"))
	assert.ErrorIs(t, err, ErrValidation)

	req = guardRequest("100")
	req.MemberID = " "
	_, err = EvaluateLoanRequest(req, activeMember("1000"), richPool(), DefaultSettings(), date("2024-06-01"))
	assert.ErrorIs(t, err, ErrValidation)

	req = guardRequest("100")
	req.Strategy = "balloon"
	_, err = EvaluateLoanRequest(req, activeMember("1000"), richPool(), DefaultSettings(), date("2024-06-01"))
	assert.ErrorIs(t, err, ErrValidation)
}
