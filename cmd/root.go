package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	app := &app{}
	var verbose bool

	rootCmd := &cobra.Command{
		Use:           "sr",
		Short:         "Security report client (sr): submit projects, read summaries, hear explanations",
		Long:          "sr signs you in to the security-report backend, submits a website or repository for scanning, fetches the generated summary and explains findings in simple Urdu with audio.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return app.wire(cmd.ErrOrStderr(), verbose)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHome(cmd, app)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")

	rootCmd.AddCommand(
		newVersionCmd(),
		newHomeCmd(app),
		newLoginCmd(app),
		newSignupCmd(app),
		newLogoutCmd(app),
		newSubmitCmd(app),
		newSummaryCmd(app),
		newStatusCmd(app),
		newExplainCmd(app),
		newChatCmd(app),
		newSettingsCmd(app),
	)

	return rootCmd
}
