package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// GetDashboard returns the overview figures and inactivity alerts
func (h *Handler) GetDashboard(c echo.Context) error {
	overview, err := h.Dashboard.Overview(c.Request().Context(), h.today())
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(http.StatusOK, overview)
}

// GetAlerts runs the inactivity scan for today
func (h *Handler) GetAlerts(c echo.Context) error {
	alerts, err := h.Monitor.Scan(c.Request().Context(), h.today())
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(http.StatusOK, data(alerts))
}
