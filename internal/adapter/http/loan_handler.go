package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	domain "tablebanking/internal/domain/loan"
	"tablebanking/internal/ledger"
	"tablebanking/internal/usecase/loan"
)

// HeaderActorID names the admin performing a write.
const HeaderActorID = "X-Actor-Id"

type LoanHandler struct{ uc *loan.Usecase }

func NewLoanHandler(uc *loan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type createLoanReq struct {
	MemberID     string           `json:"member_id"     validate:"required,hex32"`
	Amount       decimal.Decimal  `json:"amount"        validate:"gt=0,dec2"`
	InterestRate *decimal.Decimal `json:"interest_rate" validate:"omitempty,gte=0,lte=100"`
	// Accept canonical date `YYYY-MM-DD` (aligns with schema DATE)
	IssueDate string `json:"issue_date" validate:"omitempty,datetime=2006-01-02"`
	DueDate   string `json:"due_date"   validate:"required,datetime=2006-01-02"`
	Strategy  string `json:"strategy"   validate:"omitempty,oneof=continuous fixed_term"`
}

func (h *LoanHandler) CreateLoan(c echo.Context) error {
	var req createLoanReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	issue, err := optionalDate("issue_date", req.IssueDate)
	if err != nil {
		return writeError(c, err)
	}
	due, err := optionalDate("due_date", req.DueDate)
	if err != nil {
		return writeError(c, err)
	}
	dto, err := h.uc.Create(c.Request().Context(), loan.CreateLoanInput{
		MemberID:     req.MemberID,
		Amount:       req.Amount,
		InterestRate: req.InterestRate,
		IssueDate:    issue,
		DueDate:      due,
		Strategy:     ledger.Strategy(req.Strategy),
		ApprovedBy:   c.Request().Header.Get(HeaderActorID),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

// GetLoan accepts ?as_of=YYYY-MM-DD for a historical view.
func (h *LoanHandler) GetLoan(c echo.Context) error {
	asOf, err := optionalDate("as_of", c.QueryParam("as_of"))
	if err != nil {
		return writeError(c, err)
	}
	dto, err := h.uc.Get(c.Request().Context(), c.Param("loan_id"), asOf)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) ListLoans(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context(), domain.Filter{
		MemberID: c.QueryParam("member_id"),
		Status:   c.QueryParam("status"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

type updateLoanReq struct {
	Principal    *decimal.Decimal `json:"principal"     validate:"omitempty,gt=0,dec2"`
	InterestRate *decimal.Decimal `json:"interest_rate" validate:"omitempty,gte=0,lte=100"`
	IssueDate    string           `json:"issue_date"    validate:"omitempty,datetime=2006-01-02"`
	DueDate      string           `json:"due_date"      validate:"omitempty,datetime=2006-01-02"`
}

func (h *LoanHandler) UpdateLoan(c echo.Context) error {
	var req updateLoanReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	in := loan.UpdateLoanInput{Principal: req.Principal, InterestRate: req.InterestRate}
	if req.IssueDate != "" {
		t, err := optionalDate("issue_date", req.IssueDate)
		if err != nil {
			return writeError(c, err)
		}
		in.IssueDate = &t
	}
	if req.DueDate != "" {
		t, err := optionalDate("due_date", req.DueDate)
		if err != nil {
			return writeError(c, err)
		}
		in.DueDate = &t
	}
	dto, err := h.uc.Update(c.Request().Context(), c.Param("loan_id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type updateStatusReq struct {
	Status string `json:"status" validate:"required,oneof=Pending Ongoing Completed Defaulted"`
}

func (h *LoanHandler) UpdateLoanStatus(c echo.Context) error {
	var req updateStatusReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.UpdateStatus(c.Request().Context(), c.Param("loan_id"), ledger.LoanStatus(req.Status))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) DeleteLoan(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), c.Param("loan_id")); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *LoanHandler) LoanSchedule(c echo.Context) error {
	rows, err := h.uc.Schedule(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

// PreviewSchedule serves GET /schedule/preview?principal=&issue_date=.
func (h *LoanHandler) PreviewSchedule(c echo.Context) error {
	principal, err := decimal.NewFromString(c.QueryParam("principal"))
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: []FieldError{{Field: "principal", Message: "must be a number"}},
		})
	}
	issue, err := optionalDate("issue_date", c.QueryParam("issue_date"))
	if err != nil {
		return writeError(c, err)
	}
	rows, err := h.uc.Preview(c.Request().Context(), principal, issue)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}
