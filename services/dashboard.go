package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// Overview is the dashboard summary.
type Overview struct {
	Clients     int               `json:"clients"`
	ActiveCases int               `json:"active_cases"`
	Receivable  float64           `json:"receivable"`
	Alerts      []InactivityAlert `json:"alerts"`
	// Degraded is set when some table could not be read and its figure is
	// reported as empty.
	Degraded bool `json:"degraded"`
}

type DashboardService struct {
	clients *ClientService
	cases   *CaseService
	finance *FinanceService
	monitor *InactivityMonitor
	logger  *zap.Logger
}

func NewDashboardService(clients *ClientService, cases *CaseService, finance *FinanceService, monitor *InactivityMonitor, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		clients: clients,
		cases:   cases,
		finance: finance,
		monitor: monitor,
		logger:  logger,
	}
}

// Overview gathers the dashboard figures. A table that is unavailable
// contributes an empty figure and a warning instead of failing the page;
// any other error is returned.
func (s *DashboardService) Overview(ctx context.Context, today time.Time) (*Overview, error) {
	ov := &Overview{Alerts: []InactivityAlert{}}

	count, err := s.clients.Count(ctx)
	if err := s.degrade(ov, "clients", err); err != nil {
		return nil, err
	}
	ov.Clients = count

	cases, err := s.cases.List(ctx)
	if err := s.degrade(ov, "cases", err); err != nil {
		return nil, err
	}
	for i := range cases {
		if cases[i].IsActive() {
			ov.ActiveCases++
		}
	}

	receivable, err := s.finance.Receivable(ctx)
	if err := s.degrade(ov, "installments", err); err != nil {
		return nil, err
	}
	ov.Receivable = receivable

	alerts, err := s.monitor.Scan(ctx, today)
	if err := s.degrade(ov, "alerts", err); err != nil {
		return nil, err
	}
	if alerts != nil {
		ov.Alerts = alerts
	}

	return ov, nil
}

func (s *DashboardService) degrade(ov *Overview, section string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrStoreUnavailable) {
		ov.Degraded = true
		s.logger.Warn("dashboard section unavailable", zap.String("section", section), zap.Error(err))
		return nil
	}
	return err
}
