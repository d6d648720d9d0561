package http

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Check is one backing store the service cannot work without.
type Check struct {
	Name string
	Ping func(ctx context.Context) error
}

type Handler struct{ checks []Check }

func NewHandler(checks ...Check) *Handler { return &Handler{checks: checks} }

// Health reports 200 when every store answers, 503 otherwise.
func (h *Handler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	code, status := http.StatusOK, "ok"
	deps := make(map[string]string, len(h.checks))
	for _, chk := range h.checks {
		if err := chk.Ping(ctx); err != nil {
			deps[chk.Name] = err.Error()
			code, status = http.StatusServiceUnavailable, "degraded"
			continue
		}
		deps[chk.Name] = "ok"
	}
	return c.JSON(code, map[string]any{
		"status":       status,
		"dependencies": deps,
		"time":         time.Now().UTC().Format(time.RFC3339Nano),
	})
}
