package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"tablebanking/internal/usecase/repayment"
)

type RepaymentHandler struct{ uc *repayment.Usecase }

func NewRepaymentHandler(uc *repayment.Usecase) *RepaymentHandler {
	return &RepaymentHandler{uc: uc}
}

type recordRepaymentReq struct {
	LoanID      string          `json:"loan_id"      validate:"required,hex32"`
	AmountPaid  decimal.Decimal `json:"amount_paid"  validate:"gt=0,dec2"`
	PaymentDate string          `json:"payment_date" validate:"omitempty,datetime=2006-01-02"`
}

func (h *RepaymentHandler) RecordRepayment(c echo.Context) error {
	var req recordRepaymentReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	paidOn, err := optionalDate("payment_date", req.PaymentDate)
	if err != nil {
		return writeError(c, err)
	}
	dto, err := h.uc.Record(c.Request().Context(), repayment.RecordInput{
		LoanID:      req.LoanID,
		Amount:      req.AmountPaid,
		PaymentDate: paidOn,
		RecordedBy:  c.Request().Header.Get(HeaderActorID),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

// ListRepayments serves GET /repayments?loan_id=.
func (h *RepaymentHandler) ListRepayments(c echo.Context) error {
	loanID := c.QueryParam("loan_id")
	if loanID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing loan_id query param"})
	}
	dto, err := h.uc.History(c.Request().Context(), loanID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
