package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"juris_control_go/models"
	"juris_control_go/services"

	"github.com/labstack/echo/v4"
)

// GetInstallments lists installments; ?open=true keeps only unpaid ones
func (h *Handler) GetInstallments(c echo.Context) error {
	ctx := c.Request().Context()

	var (
		installments []models.Installment
		err          error
	)
	if open, _ := strconv.ParseBool(c.QueryParam("open")); open {
		installments, err = h.Finance.Open(ctx)
	} else {
		installments, err = h.Finance.List(ctx)
	}
	if err != nil {
		return apiError(c, err)
	}

	var receivable float64
	for _, inst := range installments {
		if !inst.Paid {
			receivable += inst.Amount
		}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"data":       installments,
		"receivable": receivable,
	})
}

// LaunchCharge splits a charge into installments
func (h *Handler) LaunchCharge(c echo.Context) error {
	total, err := strconv.ParseFloat(strings.TrimSpace(c.FormValue("total")), 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid total")
	}

	count := 1
	if raw := strings.TrimSpace(c.FormValue("count")); raw != "" {
		if count, err = strconv.Atoi(raw); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid installment count")
		}
	}

	firstDue := h.today()
	if raw := strings.TrimSpace(c.FormValue("first_due")); raw != "" {
		if firstDue, err = services.ParseFormDate(raw); err != nil {
			return apiError(c, err)
		}
	}

	installments, err := h.Finance.Launch(c.Request().Context(), services.Charge{
		Description: c.FormValue("description"),
		Total:       total,
		Count:       count,
		FirstDue:    firstDue,
	})
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(http.StatusCreated, data(installments))
}

// SettleInstallment marks an open installment as paid
func (h *Handler) SettleInstallment(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	settled, err := h.Finance.Settle(c.Request().Context(), id)
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(http.StatusOK, settled)
}

// CancelInstallment removes an unpaid installment
func (h *Handler) CancelInstallment(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	cancelled, err := h.Finance.Cancel(c.Request().Context(), id)
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(http.StatusOK, cancelled)
}
