package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"tablebanking/internal/usecase/dashboard"
	"tablebanking/internal/usecase/settings"
)

type DashboardHandler struct {
	dashboard *dashboard.Usecase
	settings  *settings.Usecase
}

func NewDashboardHandler(d *dashboard.Usecase, s *settings.Usecase) *DashboardHandler {
	return &DashboardHandler{dashboard: d, settings: s}
}

func (h *DashboardHandler) Dashboard(c echo.Context) error {
	dto, err := h.dashboard.Summary(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *DashboardHandler) GetSettings(c echo.Context) error {
	out, err := h.settings.Get(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// UpdateSettings takes a flat {"key_name": "value"} object.
func (h *DashboardHandler) UpdateSettings(c echo.Context) error {
	var req map[string]string
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if len(req) == 0 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "no settings given"})
	}
	out, err := h.settings.Update(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
