package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/secreport-cli/internal/adapters/render/view"
	"github.com/bnema/secreport-cli/internal/application"
	"github.com/bnema/secreport-cli/internal/domain"
	"github.com/spf13/cobra"
)

const chatHelp = "commands: /summary, /explain <text>, /play, /quit"

func newChatCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Open the report chat: read the summary, ask questions, explain findings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runChat(cmd, app)
		},
	}
}

type chatSession struct {
	cmd      *cobra.Command
	app      *app
	chat     *application.ChatService
	pipeline *application.ExplainPipeline
}

func runChat(cmd *cobra.Command, app *app) error {
	s := &chatSession{cmd: cmd, app: app, chat: app.newChat()}
	defer func() {
		if s.pipeline != nil {
			_ = s.pipeline.Close()
		}
	}()

	if err := printPage(cmd, app, view.TranscriptPage{Messages: s.chat.Transcript()}); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), chatHelp); err != nil {
		return err
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		if _, err := fmt.Fprint(cmd.OutOrStdout(), "> "); err != nil {
			return err
		}
		if !scanner.Scan() {
			break
		}
		if err := cmd.Context().Err(); err != nil {
			return err
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		quit, err := s.handle(line)
		if quit {
			return nil
		}
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return err
			}
			if _, werr := fmt.Fprintln(cmd.ErrOrStderr(), "error:", err); werr != nil {
				return werr
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read chat input: %w", err)
	}

	return nil
}

func (s *chatSession) handle(line string) (bool, error) {
	ctx := s.cmd.Context()

	switch {
	case line == "/quit" || line == "/exit":
		return true, nil
	case line == "/help":
		_, err := fmt.Fprintln(s.cmd.OutOrStdout(), chatHelp)
		return false, err
	case line == "/summary":
		summary, err := s.app.summary.Fetch(ctx)
		if err != nil {
			return false, err
		}
		return false, s.printMessage(s.chat.Note(summary.Content))
	case line == "/play":
		if s.pipeline == nil {
			return false, domain.ErrNoAudio
		}
		return false, s.pipeline.Play(ctx)
	case strings.HasPrefix(line, "/explain"):
		return false, s.explain(strings.TrimSpace(strings.TrimPrefix(line, "/explain")))
	case strings.HasPrefix(line, "/"):
		return false, fmt.Errorf("unknown command %q (%s)", line, chatHelp)
	}

	reply, err := s.chat.Send(ctx, line)
	if err != nil {
		return false, err
	}

	return false, s.printMessage(reply)
}

func (s *chatSession) explain(selected string) error {
	if s.pipeline == nil {
		pipeline, err := s.app.newExplain(s.cmd.OutOrStdout(), s.cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		s.pipeline = pipeline
	}

	var result application.Explanation
	err := withSpinner(s.cmd.Context(), s.cmd.ErrOrStderr(), "Explaining...", func(ctx context.Context) error {
		var err error
		result, err = s.pipeline.Explain(ctx, selected)
		return err
	})
	if err != nil {
		return err
	}

	return printPage(s.cmd, s.app, view.ExplanationPage{DisplayText: result.DisplayText, Duration: result.Audio.Duration()})
}

func (s *chatSession) printMessage(message domain.ChatMessage) error {
	return printPage(s.cmd, s.app, view.MessagePage{Message: message})
}
