package handlers

import (
	"net/http"
	"strings"
	"time"

	"juris_control_go/services"

	"github.com/labstack/echo/v4"
)

// GetCaseHistory lists the history entries of a case
func (h *Handler) GetCaseHistory(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	if _, err := h.Cases.Get(ctx, id); err != nil {
		return apiError(c, err)
	}
	entries, err := h.Cases.History(ctx, id)
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(http.StatusOK, data(entries))
}

// CreateCaseHistory records a history entry. date defaults to today.
func (h *Handler) CreateCaseHistory(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	entryDate := h.today()
	if raw := strings.TrimSpace(c.FormValue("date")); raw != "" {
		var parsed time.Time
		if parsed, err = services.ParseFormDate(raw); err != nil {
			return apiError(c, err)
		}
		entryDate = parsed
	}

	entry, err := h.Cases.RegisterHistory(c.Request().Context(), id, entryDate, c.FormValue("description"))
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(http.StatusCreated, entry)
}
