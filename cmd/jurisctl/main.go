// Command jurisctl runs record-keeping chores against the configured table
// store from a terminal or a cron job.
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"juris_control_go/config"
	"juris_control_go/logging"
	"juris_control_go/services"
	"juris_control_go/services/tablestore"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// cli holds what every subcommand needs. Tests fill store and logger before
// executing so nothing is opened from the environment.
type cli struct {
	cfg    *config.Config
	logger *zap.Logger
	store  tablestore.Store
	blobs  services.StorageProvider
	close  func() error
	out    io.Writer
	now    func() time.Time
}

func main() {
	app := &cli{out: os.Stdout, now: time.Now}
	if err := newRootCmd(app).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(app *cli) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "jurisctl",
		Short:         "Case records maintenance",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.open(verbose)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.close != nil {
				if err := app.close(); err != nil {
					app.logger.Warn("closing store", zap.Error(err))
				}
			}
			if app.logger != nil {
				_ = app.logger.Sync()
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	root.SetOut(app.out)

	root.AddCommand(
		newAlertsCmd(app),
		newCasesCmd(app),
		newFinanceCmd(app),
		newExportCmd(app),
	)
	return root
}

func (app *cli) open(verbose bool) error {
	if app.cfg == nil {
		app.cfg = config.Load()
		if err := app.cfg.Validate(); err != nil {
			return err
		}
	}

	if app.logger == nil {
		level := app.cfg.LogLevel
		if verbose {
			level = "debug"
		}
		logger, err := logging.New(level, app.cfg.Environment)
		if err != nil {
			return err
		}
		app.logger = logger
	}

	if app.store == nil {
		opened, err := services.OpenStore(app.cfg, app.logger)
		if err != nil {
			return fmt.Errorf("open table store: %w", err)
		}
		app.store = opened
		app.blobs = opened.Blobs
		app.close = opened.Close
	}
	return nil
}

func (app *cli) today() time.Time {
	loc := time.UTC
	if app.cfg != nil {
		loc = app.cfg.Location()
	}
	return app.now().In(loc)
}

func (app *cli) caseService() *services.CaseService {
	return services.NewCaseService(app.store, services.NewClientService(app.store, app.logger), app.logger).
		WithClock(app.today)
}
