package http

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"tablebanking/internal/ledger"
	loanuc "tablebanking/internal/usecase/loan"
	"tablebanking/pkg/money"
)

// RejectionResponse is the body of a 409 business rejection.
type RejectionResponse struct {
	Error   string           `json:"error"`
	Reason  string           `json:"reason"`
	Details RejectionDetails `json:"details"`
}

type RejectionDetails struct {
	Requested *money.Money `json:"requested,omitempty"`
	Available *money.Money `json:"available,omitempty"`
	Limit     *money.Money `json:"limit,omitempty"`
	Excess    *money.Money `json:"excess,omitempty"`
}

func nonZero(m money.Money) *money.Money {
	if m.IsZero() {
		return nil
	}
	return &m
}

// Map domain errors → HTTP codes
func writeError(c echo.Context, err error) error {
	if rej, ok := ledger.AsRejection(err); ok {
		return c.JSON(http.StatusConflict, RejectionResponse{
			Error:  rej.Message,
			Reason: string(rej.Reason),
			Details: RejectionDetails{
				Requested: nonZero(rej.Requested),
				Available: availableOf(rej),
				Limit:     nonZero(rej.Limit),
				Excess:    nonZero(rej.Excess),
			},
		})
	}
	switch {
	case errors.Is(err, ledger.ErrValidation):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	case loanuc.IsNotFound(err):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, ledger.ErrInvalidTransition):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, loanuc.ErrBusy):
		return c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: loanuc.ErrBusy.Error()})
	}
	log.Printf("%s %s: %v", c.Request().Method, c.Path(), err)
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// availableOf keeps a zero available amount, which is meaningful for the
// liquidity and balance rejections.
func availableOf(rej *ledger.Rejection) *money.Money {
	switch rej.Reason {
	case ledger.ReasonInsufficientPoolFunds, ledger.ReasonPaymentExceedsBalance:
		a := rej.Available
		return &a
	}
	return nonZero(rej.Available)
}

func bindAndValidate(c echo.Context, req any) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(req); err != nil {
		return false, c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	return true, nil
}

// optionalDate parses YYYY-MM-DD; empty yields the zero time.
func optionalDate(field, raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := money.ParseDate(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be YYYY-MM-DD", ledger.ErrValidation, field)
	}
	return t, nil
}
