package cmd

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/bnema/secreport-cli/internal/adapters/render/view"
	"github.com/bnema/secreport-cli/internal/application"
	"github.com/spf13/cobra"
)

func newExplainCmd(app *app) *cobra.Command {
	var (
		play     bool
		savePath string
	)

	cmd := &cobra.Command{
		Use:   "explain [text...]",
		Short: "Explain a finding in simple Urdu with audio",
		Long:  "explain translates the given text, or stdin when no text is given, into simple Urdu and synthesizes speech for it.",
		RunE: func(cmd *cobra.Command, args []string) error {
			selected := strings.Join(args, " ")
			if len(args) == 0 {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return err
				}
				selected = strings.TrimSpace(string(data))
			}

			pipeline, err := app.newExplain(cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			explainErr := runExplain(cmd, app, pipeline, selected, play, savePath)
			return errors.Join(explainErr, pipeline.Close())
		},
	}

	cmd.Flags().BoolVar(&play, "play", false, "Play the audio with the configured player")
	cmd.Flags().StringVar(&savePath, "save", "", "Copy the audio clip to this path")

	return cmd
}

func runExplain(cmd *cobra.Command, app *app, pipeline *application.ExplainPipeline, selected string, play bool, savePath string) error {
	var result application.Explanation
	err := withSpinner(cmd.Context(), cmd.ErrOrStderr(), "Explaining...", func(ctx context.Context) error {
		var err error
		result, err = pipeline.Explain(ctx, selected)
		return err
	})
	if err != nil {
		return err
	}

	if savePath != "" {
		if err := pipeline.Save(savePath); err != nil {
			return err
		}
	}

	if err := printPage(cmd, app, view.ExplanationPage{
		DisplayText: result.DisplayText,
		Duration:    result.Audio.Duration(),
		AudioPath:   savePath,
	}); err != nil {
		return err
	}

	if play {
		return pipeline.Play(cmd.Context())
	}

	return nil
}
