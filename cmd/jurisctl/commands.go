package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"juris_control_go/models"
	"juris_control_go/services"
	"juris_control_go/services/jobs"
	"juris_control_go/services/tablestore"

	"github.com/spf13/cobra"
)

func newAlertsCmd(app *cli) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "List active cases without updates for more than 10 days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			today := app.today()
			if date != "" {
				parsed, err := services.ParseFormDate(date)
				if err != nil {
					return err
				}
				today = parsed
			}

			monitor := services.NewInactivityMonitor(app.store, app.logger)
			alerts, err := jobs.RunInactivityScan(cmd.Context(), monitor, today, app.logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(alerts) == 0 {
				fmt.Fprintln(out, "No inactive cases.")
				return nil
			}
			for _, a := range alerts {
				fmt.Fprintf(out, "%d\t%s\t%d days\n", a.CaseID, a.Reference, a.DaysIdle)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "scan as of this date (YYYY-MM-DD or DD/MM/YYYY)")
	return cmd
}

func newCasesCmd(app *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cases",
		Short: "Case lifecycle actions",
	}

	action := func(use, short string, run func(svc *services.CaseService, cmd *cobra.Command, id int64) (*models.Case, error)) *cobra.Command {
		return &cobra.Command{
			Use:   use + " <case-id>",
			Short: short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseIDArg(args[0])
				if err != nil {
					return err
				}
				c, err := run(app.caseService(), cmd, id)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "case %d: %s (last update %s)\n", c.ID, c.Status, c.LastUpdate)
				return nil
			},
		}
	}

	cmd.AddCommand(
		action("archive", "Archive a case", func(svc *services.CaseService, cmd *cobra.Command, id int64) (*models.Case, error) {
			return svc.Archive(cmd.Context(), id)
		}),
		action("reactivate", "Reactivate an archived case", func(svc *services.CaseService, cmd *cobra.Command, id int64) (*models.Case, error) {
			return svc.Reactivate(cmd.Context(), id)
		}),
		action("review", "Confirm a case was reviewed today", func(svc *services.CaseService, cmd *cobra.Command, id int64) (*models.Case, error) {
			return svc.ConfirmReviewed(cmd.Context(), id, app.today())
		}),
	)
	return cmd
}

func newFinanceCmd(app *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "finance",
		Short: "Installment ledger actions",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "settle <installment-id>",
		Short: "Mark an open installment as paid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}
			inst, err := services.NewFinanceService(app.store, app.logger).Settle(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "installment %d settled: %s %s\n", inst.ID, inst.Description, models.FormatAmount(inst.Amount))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "cancel <installment-id>",
		Short: "Remove an unpaid installment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}
			inst, err := services.NewFinanceService(app.store, app.logger).Cancel(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "installment %d cancelled: %s\n", inst.ID, inst.Description)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "open",
		Short: "List open installments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			open, err := services.NewFinanceService(app.store, app.logger).Open(cmd.Context())
			if err != nil {
				return err
			}
			var total float64
			for _, inst := range open {
				total += inst.Amount
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%s\n", inst.ID, inst.DueDate, models.FormatAmount(inst.Amount), inst.Description)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "receivable\t%.2f\n", total)
			return nil
		},
	})
	return cmd
}

func newExportCmd(app *cli) *cobra.Command {
	var (
		upload   bool
		linkTTL  time.Duration
		replaces string
	)

	cmd := &cobra.Command{
		Use:   "export <file.xlsx>",
		Short: "Write every table to a standalone workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			path := args[0]
			out := cmd.OutOrStdout()

			if upload && (app.blobs == nil || !app.blobs.IsConfigured()) {
				return fmt.Errorf("no blob storage configured for upload")
			}

			dir, name := filepath.Split(path)
			if dir == "" {
				dir = "."
			}
			target := tablestore.NewWorkbookStore(
				services.NewWorkbookBlob(services.NewLocalStorage(dir)),
				name,
				models.Schemas(),
			)

			for _, table := range tablestore.AllTables {
				rows, err := app.store.ReadAll(ctx, table)
				if err != nil {
					return fmt.Errorf("read %s: %w", table, err)
				}
				if err := target.ReplaceAll(ctx, table, rows); err != nil {
					return fmt.Errorf("write %s: %w", table, err)
				}
			}
			fmt.Fprintf(out, "exported %d tables to %s\n", len(tablestore.AllTables), path)

			if !upload {
				return nil
			}
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()
			info, err := f.Stat()
			if err != nil {
				return err
			}

			key := services.GenerateExportKey("exports/" + app.today().Format("2006-01"))
			res, err := app.blobs.UploadReader(ctx, f, key, services.XLSXContentType, info.Size())
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "uploaded %s\n", res.Key)

			link := res.URL
			if linkTTL > 0 {
				if link, err = app.blobs.GetSignedURL(ctx, res.Key, linkTTL); err != nil {
					return err
				}
			}
			if link != "" {
				fmt.Fprintf(out, "link %s\n", link)
			}

			// the previous snapshot goes only after the new one is stored
			if replaces != "" && replaces != res.Key {
				if err := app.blobs.Delete(ctx, replaces); err != nil {
					return fmt.Errorf("remove previous snapshot: %w", err)
				}
				fmt.Fprintf(out, "removed %s\n", replaces)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&upload, "upload", false, "also upload the snapshot to the configured storage")
	cmd.Flags().DurationVar(&linkTTL, "link-ttl", 24*time.Hour, "lifetime of the signed download link; 0 prints the public URL")
	cmd.Flags().StringVar(&replaces, "replaces", "", "storage key of a previous snapshot to remove after uploading")
	return cmd
}

func parseIDArg(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%w: invalid id %q", services.ErrInvalidInput, raw)
	}
	return id, nil
}
