package handlers

import (
	"net/http"

	"juris_control_go/models"
	"juris_control_go/services"

	"github.com/labstack/echo/v4"
)

// GetEvents lists schedule events, or only those linked to ?case_id=
func (h *Handler) GetEvents(c echo.Context) error {
	ctx := c.Request().Context()

	if raw := c.QueryParam("case_id"); raw != "" {
		caseID, ok := models.ParseID(raw)
		if !ok {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid case_id")
		}
		events, err := h.Cases.Events(ctx, caseID)
		if err != nil {
			return apiError(c, err)
		}
		return c.JSON(http.StatusOK, data(events))
	}

	events, err := h.Schedule.List(ctx)
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(http.StatusOK, data(events))
}

// CreateEvent schedules an event. The case link may be sent as case_id or
// as a selector label in case_label; "None selected" leaves it unlinked.
func (h *Handler) CreateEvent(c echo.Context) error {
	event, err := h.Schedule.Create(c.Request().Context(), services.EventInput{
		Title: c.FormValue("title"),
		Case:  selection(c, "case_id", "case_label"),
		Date:  c.FormValue("date"),
		Time:  c.FormValue("time"),
		Type:  c.FormValue("type"),
		Notes: c.FormValue("notes"),
	})
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(http.StatusCreated, event)
}
