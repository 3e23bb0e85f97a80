package jobs

import (
	"context"
	"fmt"
	"time"

	"juris_control_go/services"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// scanTimeout bounds one scheduled inactivity scan.
const scanTimeout = 2 * time.Minute

// Scanner is the part of the inactivity monitor the job needs.
type Scanner interface {
	Scan(ctx context.Context, today time.Time) ([]services.InactivityAlert, error)
}

// StartScheduler schedules the inactivity scan on spec (standard five-field
// cron) in loc and starts the cron runner. Stop the returned runner on
// shutdown.
func StartScheduler(spec string, loc *time.Location, scanner Scanner, logger *zap.Logger) (*cron.Cron, error) {
	c := cron.New(cron.WithLocation(loc))

	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), scanTimeout)
		defer cancel()

		logger.Info("[CRON] running inactivity scan")
		if _, err := RunInactivityScan(ctx, scanner, time.Now().In(loc), logger); err != nil {
			logger.Error("[CRON] inactivity scan failed", zap.Error(err))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to schedule inactivity scan %q: %w", spec, err)
	}

	c.Start()
	logger.Info("[CRON] scheduler started", zap.String("schedule", spec), zap.String("timezone", loc.String()))
	return c, nil
}

// RunInactivityScan runs one scan and logs every alert.
func RunInactivityScan(ctx context.Context, scanner Scanner, today time.Time, logger *zap.Logger) ([]services.InactivityAlert, error) {
	alerts, err := scanner.Scan(ctx, today)
	if err != nil {
		return nil, err
	}

	for _, a := range alerts {
		logger.Warn("case inactive",
			zap.Int64("case_id", a.CaseID),
			zap.String("reference", a.Reference),
			zap.Int("days_idle", a.DaysIdle),
		)
	}
	logger.Info("[JOB] inactivity scan finished", zap.Int("alerts", len(alerts)))
	return alerts, nil
}
