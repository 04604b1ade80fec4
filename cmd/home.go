package cmd

import (
	"fmt"

	"github.com/bnema/secreport-cli/internal/adapters/render/view"
	"github.com/spf13/cobra"
)

func newHomeCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "home",
		Short: "Show who is signed in and what to do next",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHome(cmd, app)
		},
	}
}

func runHome(cmd *cobra.Command, app *app) error {
	session, err := app.auth.Session(cmd.Context())
	if err != nil {
		return err
	}

	return printPage(cmd, app, view.HomePage{Session: session, Now: app.now()})
}

func printPage(cmd *cobra.Command, app *app, page view.Page) error {
	rendered, err := app.render(page)
	if err != nil {
		return fmt.Errorf("render view: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}
