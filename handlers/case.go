package handlers

import (
	"net/http"

	"juris_control_go/models"
	"juris_control_go/services"

	"github.com/labstack/echo/v4"
)

// caseListItem is a case with its selector label.
type caseListItem struct {
	models.Case
	Label         string `json:"label"`
	StatusDisplay string `json:"status_display"`
}

// GetCases lists every case, optionally filtered by ?status=
func (h *Handler) GetCases(c echo.Context) error {
	cases, err := h.Cases.List(c.Request().Context())
	if err != nil {
		return apiError(c, err)
	}

	status := c.QueryParam("status")
	if status != "" && !models.IsValidCaseStatus(status) {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid status filter")
	}

	items := make([]caseListItem, 0, len(cases))
	for _, cs := range cases {
		if status != "" && cs.Status != status {
			continue
		}
		items = append(items, caseListItem{
			Case:          cs,
			Label:         services.CaseLabel(cs),
			StatusDisplay: models.GetCaseStatusDisplayName(cs.Status),
		})
	}
	return c.JSON(http.StatusOK, data(items))
}

// CreateCase registers a case. The client may be sent as client_id or as a
// client selector label / name in client.
func (h *Handler) CreateCase(c echo.Context) error {
	created, err := h.Cases.Register(c.Request().Context(), services.RegisterCaseInput{
		Number:      c.FormValue("number"),
		Client:      selection(c, "client_id", "client"),
		Subject:     c.FormValue("subject"),
		Court:       c.FormValue("court"),
		Role:        c.FormValue("role"),
		HearingMode: c.FormValue("hearing_mode"),
	})
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

// GetCaseOptions returns the case selector labels, NoneSelected first
func (h *Handler) GetCaseOptions(c echo.Context) error {
	refs, err := h.Cases.Options(c.Request().Context())
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"data":    refs,
		"choices": services.CaseChoices(refs),
	})
}

// GetCaseDetail returns a case with its history and linked events
func (h *Handler) GetCaseDetail(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	detail, err := h.Cases.Detail(c.Request().Context(), id)
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(http.StatusOK, detail)
}

// ArchiveCase moves a case to Archived
func (h *Handler) ArchiveCase(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	updated, err := h.Cases.Archive(c.Request().Context(), id)
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

// ReactivateCase moves a case back to Active
func (h *Handler) ReactivateCase(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	updated, err := h.Cases.Reactivate(c.Request().Context(), id)
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

// ConfirmCaseReviewed resets the inactivity clock of a case to today
func (h *Handler) ConfirmCaseReviewed(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	updated, err := h.Cases.ConfirmReviewed(c.Request().Context(), id, h.today())
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

// UpdateCaseStatus sets the status chosen by hand
func (h *Handler) UpdateCaseStatus(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	updated, err := h.Cases.SetStatus(c.Request().Context(), id, c.FormValue("status"))
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}
