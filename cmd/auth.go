package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/secreport-cli/internal/application"
	"github.com/bnema/secreport-cli/internal/domain"
	"github.com/spf13/cobra"
)

type credentialFlags struct {
	email           string
	password        string
	confirmPassword string
	passwordStdin   bool
}

func newLoginCmd(app *app) *cobra.Command {
	var flags credentialFlags

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the report backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAuthenticate(cmd, app, domain.AuthModeLogin, flags)
		},
	}

	bindCredentialFlags(cmd, &flags, false)

	return cmd
}

func newSignupCmd(app *app) *cobra.Command {
	var flags credentialFlags

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account on the report backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAuthenticate(cmd, app, domain.AuthModeSignup, flags)
		},
	}

	bindCredentialFlags(cmd, &flags, true)

	return cmd
}

func newLogoutCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			next, err := app.auth.Logout(cmd.Context())
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Signed out. Run %s to sign in again.\n", next.Command())
			return err
		},
	}
}

func bindCredentialFlags(cmd *cobra.Command, flags *credentialFlags, signup bool) {
	cmd.Flags().StringVar(&flags.email, "email", "", "Account email")
	cmd.Flags().StringVar(&flags.password, "password", "", "Account password")
	cmd.Flags().BoolVar(&flags.passwordStdin, "password-stdin", false, "Read the password from stdin")
	if signup {
		cmd.Flags().StringVar(&flags.confirmPassword, "confirm-password", "", "Repeat the password")
	}
	_ = cmd.MarkFlagRequired("email")
	cmd.MarkFlagsMutuallyExclusive("password", "password-stdin")
}

func runAuthenticate(cmd *cobra.Command, app *app, mode domain.AuthMode, flags credentialFlags) error {
	password := flags.password
	confirm := flags.confirmPassword
	if flags.passwordStdin {
		lines, err := readLines(cmd, 2)
		if err != nil {
			return err
		}
		password = lines[0]
		if mode == domain.AuthModeSignup && confirm == "" {
			confirm = password
			if len(lines) > 1 {
				confirm = lines[1]
			}
		}
	}

	var result application.AuthResult
	err := withSpinner(cmd.Context(), cmd.ErrOrStderr(), mode.Label()+"...", func(ctx context.Context) error {
		var err error
		result, err = app.auth.Authenticate(ctx, application.AuthRequest{
			Mode:            mode,
			Email:           flags.email,
			Password:        password,
			ConfirmPassword: confirm,
		})
		return err
	})
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s.\n", result.Session.UserEmail); err != nil {
		return err
	}

	return runHome(cmd, app)
}

// readLines reads up to max non-empty lines from stdin.
func readLines(cmd *cobra.Command, max int) ([]string, error) {
	scanner := bufio.NewScanner(cmd.InOrStdin())
	lines := make([]string, 0, max)
	for len(lines) < max && scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	if len(lines) == 0 {
		return nil, errors.New("no password on stdin")
	}

	return lines, nil
}
