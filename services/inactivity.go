package services

import (
	"context"
	"time"

	"juris_control_go/models"
	"juris_control_go/services/tablestore"

	"go.uber.org/zap"
)

// InactivityThresholdDays is how long an active case may go without an
// update before it is flagged.
const InactivityThresholdDays = 10

// InactivityAlert flags an active case that has not been updated recently.
type InactivityAlert struct {
	CaseID    int64  `json:"case_id"`
	Reference string `json:"reference"`
	DaysIdle  int    `json:"days_idle"`
}

// DetectInactiveCases returns an alert for every Active case whose last
// update is more than InactivityThresholdDays before today, in table order.
// Cases with a blank or unparsable last-update date are skipped.
func DetectInactiveCases(cases []models.Case, today time.Time) []InactivityAlert {
	alerts := []InactivityAlert{}
	for i := range cases {
		c := &cases[i]
		if !c.IsActive() {
			continue
		}
		last, ok := c.LastUpdated()
		if !ok {
			continue
		}
		idle := DaysBetween(last, today)
		if idle > InactivityThresholdDays {
			alerts = append(alerts, InactivityAlert{
				CaseID:    c.ID,
				Reference: c.Number,
				DaysIdle:  idle,
			})
		}
	}
	return alerts
}

// InactivityMonitor scans the cases table for stale active cases.
type InactivityMonitor struct {
	cases  *TableRepository
	logger *zap.Logger
}

func NewInactivityMonitor(store tablestore.Store, logger *zap.Logger) *InactivityMonitor {
	return &InactivityMonitor{
		cases:  NewTableRepository(store, tablestore.TableCases, models.CaseColumns, models.CaseColID),
		logger: logger,
	}
}

// Scan reads the cases table and returns the alerts for today.
func (m *InactivityMonitor) Scan(ctx context.Context, today time.Time) ([]InactivityAlert, error) {
	rows, err := m.cases.Rows(ctx)
	if err != nil {
		return nil, err
	}

	cases := make([]models.Case, 0, len(rows))
	for _, r := range rows {
		cases = append(cases, models.CaseFromRow(r))
	}

	alerts := DetectInactiveCases(cases, today)
	m.logger.Debug("inactivity scan",
		zap.Int("cases", len(cases)),
		zap.Int("alerts", len(alerts)),
	)
	return alerts, nil
}
