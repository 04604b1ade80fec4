package cmd

import (
	"context"
	"fmt"

	"github.com/bnema/secreport-cli/internal/adapters/render/view"
	"github.com/bnema/secreport-cli/internal/application"
	"github.com/spf13/cobra"
)

func newSubmitCmd(app *app) *cobra.Command {
	var (
		req    application.SubmitRequest
		format string
	)

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a website or repository for a security report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch format {
			case "text", "json", "yaml":
			default:
				return fmt.Errorf("unknown --format %q: want text, json or yaml", format)
			}

			var result application.SubmitResult
			err := withSpinner(cmd.Context(), cmd.ErrOrStderr(), "Submitting project...", func(ctx context.Context) error {
				var err error
				result, err = app.submission.Submit(ctx, req)
				return err
			})
			if err != nil {
				return err
			}

			if format == "text" {
				return printPage(cmd, app, view.SubmissionPage{ProcessID: result.ProcessID, Next: result.Next})
			}

			out, err := view.FormatRaw(result.Raw, format)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().StringVar(&req.WebsiteURL, "website", "", "Website URL to scan")
	cmd.Flags().StringVar(&req.GithubURL, "github", "", "GitHub repository URL to scan")
	cmd.Flags().StringVar(&req.Details, "details", "", "What the report should focus on")
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text, json or yaml")

	return cmd
}
