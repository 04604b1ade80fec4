package cmd

import (
	"fmt"

	"github.com/bnema/secreport-cli/internal/adapters/render/view"
	"github.com/bnema/secreport-cli/internal/application"
	"github.com/spf13/cobra"
)

func newSettingsCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "View and change local preferences",
	}

	cmd.AddCommand(newSettingsShowCmd(app), newSettingsSetCmd(app), newSettingsDeleteAccountCmd(app))

	return cmd
}

func newSettingsShowCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := app.settings.Get(cmd.Context())
			if err != nil {
				return err
			}
			return printPage(cmd, app, view.SettingsPage{Settings: settings})
		},
	}
}

func newSettingsSetCmd(app *app) *cobra.Command {
	var (
		name, email                           string
		notifications, emailUpdates, twoFactor bool
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var update application.SettingsUpdate
			flags := cmd.Flags()
			if flags.Changed("name") {
				update.Name = &name
			}
			if flags.Changed("email") {
				update.Email = &email
			}
			if flags.Changed("notifications") {
				update.Notifications = &notifications
			}
			if flags.Changed("email-updates") {
				update.EmailUpdates = &emailUpdates
			}
			if flags.Changed("two-factor") {
				update.TwoFactor = &twoFactor
			}

			_, message, err := app.settings.Update(cmd.Context(), update)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), message)
			return err
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&email, "email", "", "Contact email")
	cmd.Flags().BoolVar(&notifications, "notifications", true, "Enable notifications")
	cmd.Flags().BoolVar(&emailUpdates, "email-updates", false, "Receive email updates")
	cmd.Flags().BoolVar(&twoFactor, "two-factor", false, "Enable two-factor authentication")

	return cmd
}

func newSettingsDeleteAccountCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-account",
		Short: "Request account deletion",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			message, err := app.settings.RequestDeletion(cmd.Context())
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), message)
			return err
		},
	}
}
