package handlers

import (
	"net/http"

	"juris_control_go/services"

	"github.com/labstack/echo/v4"
)

// GetClients lists every client
func (h *Handler) GetClients(c echo.Context) error {
	clients, err := h.Clients.List(c.Request().Context())
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(http.StatusOK, data(clients))
}

// CreateClient registers a client from the intake form
func (h *Handler) CreateClient(c echo.Context) error {
	client, err := h.Clients.Create(c.Request().Context(), services.ClientInput{
		Name:    c.FormValue("name"),
		TaxID:   c.FormValue("tax_id"),
		Email:   c.FormValue("email"),
		Phone:   c.FormValue("phone"),
		Address: c.FormValue("address"),
	})
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(http.StatusCreated, client)
}

// GetClientOptions returns the client selector labels
func (h *Handler) GetClientOptions(c echo.Context) error {
	refs, err := h.Clients.Options(c.Request().Context())
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(http.StatusOK, data(refs))
}
