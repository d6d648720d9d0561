package http

import "github.com/labstack/echo/v4"

type Handlers struct {
	Health     *Handler
	Loans      *LoanHandler
	Repayments *RepaymentHandler
	Dashboard  *DashboardHandler
}

// Register mounts every route; idem wraps the mutating ones.
func Register(e *echo.Echo, h Handlers, idem echo.MiddlewareFunc) {
	e.GET("/health", h.Health.Health)

	loans := e.Group("/loans")
	loans.GET("", h.Loans.ListLoans)
	loans.POST("", h.Loans.CreateLoan, idem)
	loans.GET("/:loan_id", h.Loans.GetLoan)
	loans.PUT("/:loan_id", h.Loans.UpdateLoan, idem)
	loans.DELETE("/:loan_id", h.Loans.DeleteLoan, idem)
	loans.PUT("/:loan_id/status", h.Loans.UpdateLoanStatus, idem)
	loans.GET("/:loan_id/schedule", h.Loans.LoanSchedule)
	e.GET("/schedule/preview", h.Loans.PreviewSchedule)

	e.GET("/repayments", h.Repayments.ListRepayments)
	e.POST("/repayments", h.Repayments.RecordRepayment, idem)

	e.GET("/dashboard", h.Dashboard.Dashboard)
	e.GET("/settings", h.Dashboard.GetSettings)
	e.PUT("/settings", h.Dashboard.UpdateSettings, idem)
}
