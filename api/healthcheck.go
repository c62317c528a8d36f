package api

import (
	"github.com/labstack/echo/v4"
	"net/http"
)

// HealthCheck reports whether the service is able to score records.
// Readiness flips once the classifier is loaded and stays on for the
// lifetime of the process.
type HealthCheck struct {
	ready bool
}

func NewHealthCheck() *HealthCheck {
	return &HealthCheck{}
}

func (h *HealthCheck) SetReady(ready bool) {
	h.ready = ready
}

// Readiness probe
func (h *HealthCheck) Ready(c echo.Context) error {
	if !h.ready {
		return c.NoContent(http.StatusBadRequest)
	}

	return c.NoContent(http.StatusOK)
}
