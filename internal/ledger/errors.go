package ledger

import (
	"errors"
	"fmt"

	"tablebanking/pkg/money"
)

var (
	// ErrValidation marks malformed or missing input. Callers must not retry.
	ErrValidation = errors.New("validation error")
	// ErrInvariantViolation marks a caller or programming error, such as a
	// repayment dated before its loan was issued.
	ErrInvariantViolation = errors.New("invariant violation")
	// ErrInvalidTransition is returned for status changes the state machine
	// does not allow.
	ErrInvalidTransition = errors.New("invalid loan status transition")
)

func validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func invariantf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvariantViolation, fmt.Sprintf(format, args...))
}

// Reason is the machine-readable code of a business rejection.
type Reason string

const (
	ReasonMemberInactive              Reason = "MemberInactive"
	ReasonNoRegistrationFee           Reason = "NoRegistrationFee"
	ReasonExceedsContributionMultiple Reason = "ExceedsContributionMultiple"
	ReasonInsufficientPoolFunds       Reason = "InsufficientPoolFunds"
	ReasonBalanceWouldGoNegative      Reason = "BalanceWouldGoNegative"
	ReasonPaymentExceedsBalance       Reason = "PaymentExceedsBalance"
)

// Rejection is an expected business outcome, not a fault. Amount fields are
// filled only where the reason has them.
type Rejection struct {
	Reason    Reason
	Message   string
	Requested money.Money
	Available money.Money // InsufficientPoolFunds, PaymentExceedsBalance
	Limit     money.Money // ExceedsContributionMultiple
	Excess    money.Money // BalanceWouldGoNegative
}

func (r *Rejection) Error() string { return string(r.Reason) + ": " + r.Message }

// AsRejection unwraps err to a *Rejection.
func AsRejection(err error) (*Rejection, bool) {
	var rej *Rejection
	if errors.As(err, &rej) {
		return rej, true
	}
	return nil, false
}
