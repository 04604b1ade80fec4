package cmd

import (
	"context"
	"encoding/json"
	"time"

	"github.com/bnema/secreport-cli/internal/adapters/render/view"
	"github.com/bnema/secreport-cli/internal/application"
	"github.com/bnema/secreport-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newSummaryCmd(app *app) *cobra.Command {
	var (
		wait   bool
		opts   application.WaitOptions
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Fetch the summary for the active report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var summary domain.Summary
			label := "Fetching summary..."
			if wait {
				label = "Waiting for summary..."
			}

			err := withSpinner(cmd.Context(), cmd.ErrOrStderr(), label, func(ctx context.Context) error {
				var err error
				if wait {
					summary, err = app.summary.Wait(ctx, opts)
				} else {
					summary, err = app.summary.Fetch(ctx)
				}
				return err
			})
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(summary)
			}

			return printPage(cmd, app, view.SummaryPage{Summary: summary})
		},
	}

	cmd.Flags().BoolVar(&wait, "wait", false, "Poll until the summary is ready")
	cmd.Flags().DurationVar(&opts.Interval, "interval", 5*time.Second, "Polling interval with --wait")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 10*time.Minute, "Give up after this long with --wait")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")

	return cmd
}

func newStatusCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the processing status of the active report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := app.auth.Session(cmd.Context())
			if err != nil {
				return err
			}

			var status domain.ProcessStatus
			err = withSpinner(cmd.Context(), cmd.ErrOrStderr(), "Checking status...", func(ctx context.Context) error {
				var err error
				status, err = app.summary.Status(ctx)
				return err
			})
			if err != nil {
				return err
			}

			return printPage(cmd, app, view.StatusPage{ProcessID: session.ProcessID, Status: status})
		},
	}
}
