package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"juris_control_go/middleware"
	"juris_control_go/services"
	"juris_control_go/services/tablestore"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Handler serves the JSON API. Services are built once and shared by every
// request.
type Handler struct {
	Clients   *services.ClientService
	Cases     *services.CaseService
	Schedule  *services.ScheduleService
	Finance   *services.FinanceService
	Monitor   *services.InactivityMonitor
	Dashboard *services.DashboardService

	loc *time.Location
	now func() time.Time
}

// New wires every service on top of store. "Today" is taken in loc.
func New(store tablestore.Store, logger *zap.Logger, loc *time.Location) *Handler {
	clients := services.NewClientService(store, logger)
	cases := services.NewCaseService(store, clients, logger)
	finance := services.NewFinanceService(store, logger)
	monitor := services.NewInactivityMonitor(store, logger)

	h := &Handler{
		Clients:   clients,
		Cases:     cases,
		Schedule:  services.NewScheduleService(store, logger),
		Finance:   finance,
		Monitor:   monitor,
		Dashboard: services.NewDashboardService(clients, cases, finance, monitor, logger),
		loc:       loc,
	}
	return h.WithClock(time.Now)
}

// WithClock replaces the clock used for "today" and for new cases.
func (h *Handler) WithClock(now func() time.Time) *Handler {
	h.now = now
	h.Cases.WithClock(h.today)
	return h
}

// Register mounts the API routes on g. writeLimit, when set, guards the
// mutating routes.
func (h *Handler) Register(g *echo.Group, writeLimit echo.MiddlewareFunc) {
	if writeLimit != nil {
		g.Use(writeLimit)
	}

	g.GET("/dashboard", h.GetDashboard)
	g.GET("/alerts", h.GetAlerts)

	g.GET("/clients", h.GetClients)
	g.POST("/clients", h.CreateClient)
	g.GET("/clients/options", h.GetClientOptions)

	g.GET("/cases", h.GetCases)
	g.POST("/cases", h.CreateCase)
	g.GET("/cases/options", h.GetCaseOptions)
	g.GET("/cases/:id", h.GetCaseDetail)
	g.POST("/cases/:id/archive", h.ArchiveCase)
	g.POST("/cases/:id/reactivate", h.ReactivateCase)
	g.POST("/cases/:id/review", h.ConfirmCaseReviewed)
	g.PUT("/cases/:id/status", h.UpdateCaseStatus)
	g.GET("/cases/:id/history", h.GetCaseHistory)
	g.POST("/cases/:id/history", h.CreateCaseHistory)

	g.GET("/events", h.GetEvents)
	g.POST("/events", h.CreateEvent)

	g.GET("/finance/installments", h.GetInstallments)
	g.POST("/finance/installments", h.LaunchCharge)
	g.POST("/finance/installments/:id/settle", h.SettleInstallment)
	g.DELETE("/finance/installments/:id", h.CancelInstallment)
}

func (h *Handler) today() time.Time {
	return h.now().In(h.loc)
}

// apiError maps service errors to HTTP errors.
func apiError(c echo.Context, err error) error {
	switch {
	case services.IsNotFound(err):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrInvalidInput), errors.Is(err, services.ErrParseFailure):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrStoreUnavailable):
		middleware.GetLogger(c).Error("table store unavailable", zap.Error(err))
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Record store is unavailable, please try again")
	default:
		middleware.GetLogger(c).Error("request failed", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal error")
	}
}

func idParam(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+name)
	}
	return id, nil
}

// selection reads a linked-record field that may come as a typed id
// (idField) or as a selector label (labelField). The id wins when both are
// sent.
func selection(c echo.Context, idField, labelField string) string {
	if id := c.FormValue(idField); id != "" {
		return id
	}
	return c.FormValue(labelField)
}

func data(v interface{}) map[string]interface{} {
	return map[string]interface{}{"data": v}
}
