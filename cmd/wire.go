package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	audiofile "github.com/bnema/secreport-cli/internal/adapters/audio/file"
	"github.com/bnema/secreport-cli/internal/adapters/backend"
	"github.com/bnema/secreport-cli/internal/adapters/render/view"
	tomlrepo "github.com/bnema/secreport-cli/internal/adapters/repo/toml"
	chainstore "github.com/bnema/secreport-cli/internal/adapters/secrets/chain"
	"github.com/bnema/secreport-cli/internal/adapters/speech/uplift"
	openaitranslate "github.com/bnema/secreport-cli/internal/adapters/translate/openai"
	"github.com/bnema/secreport-cli/internal/application"
	"github.com/bnema/secreport-cli/internal/config"
	"github.com/bnema/secreport-cli/internal/logging"
	"github.com/bnema/secreport-cli/internal/ports"
	"github.com/bnema/secreport-cli/internal/version"
)

type app struct {
	cfg        config.Config
	logger     *slog.Logger
	sessions   ports.SessionStore
	auth       *application.AuthService
	submission *application.SubmissionService
	summary    *application.SummaryService
	settings   *application.SettingsService
	newChat    func() *application.ChatService
	newExplain func(stdout, stderr io.Writer) (*application.ExplainPipeline, error)
	render     func(view.Page) (string, error)
	now        func() time.Time
}

func (a *app) wire(stderr io.Writer, verbose bool) error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("resolve home directory: %w", err)
	}

	v := config.New(homeDir)
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	logger, err := logging.New(stderr, level, cfg.Log.Format)
	if err != nil {
		return err
	}

	repo, err := tomlrepo.NewRepository(v)
	if err != nil {
		return fmt.Errorf("wire state repository: %w", err)
	}

	secrets, err := chainstore.NewPassFirstWithFileFallback(cfg.Secrets.PassPrefix, cfg.Secrets.Dir)
	if err != nil {
		return fmt.Errorf("wire secret store chain: %w", err)
	}

	httpClient := &http.Client{}
	client := backend.Client{
		BaseURL:        cfg.Backend.BaseURL,
		HTTPClient:     httpClient,
		RequestTimeout: cfg.HTTP.Timeout,
		UserAgent:      "sr/" + version.Version,
	}
	clock := ports.SystemClock{}

	a.cfg = cfg
	a.logger = logger
	a.sessions = repo
	a.auth = application.NewAuthService(client, repo, secrets, clock, logger)
	a.submission = application.NewSubmissionService(client, repo, secrets, clock, logger)
	a.summary = application.NewSummaryService(client, repo, secrets, logger)
	a.settings = application.NewSettingsService(repo, repo, clock, logger)
	a.newChat = func() *application.ChatService {
		return application.NewChatService(client, repo, secrets, clock, logger)
	}
	a.newExplain = func(stdout, stderr io.Writer) (*application.ExplainPipeline, error) {
		translator, err := openaitranslate.NewTranslator(openaitranslate.Config{
			APIKey:         cfg.Translate.APIKey,
			BaseURL:        cfg.Translate.BaseURL,
			Model:          cfg.Translate.Model,
			HTTPClient:     httpClient,
			RequestTimeout: cfg.HTTP.Timeout,
		})
		if err != nil {
			return nil, fmt.Errorf("wire translator: %w", err)
		}

		synth := uplift.Synthesizer{
			BaseURL:        cfg.Speech.BaseURL,
			APIKey:         cfg.Speech.APIKey,
			HTTPClient:     httpClient,
			RequestTimeout: cfg.HTTP.Timeout,
		}
		player := &audiofile.Player{Command: cfg.Audio.Player, Stdout: stdout, Stderr: stderr}

		return application.NewExplainPipeline(translator, synth, audiofile.NewStore(cfg.Audio.Dir), player, application.ExplainConfig{
			VoiceID:      cfg.Speech.VoiceID,
			OutputFormat: cfg.Speech.OutputFormat,
		}, logger), nil
	}
	a.render = view.Render
	a.now = time.Now

	logger.Debug("wired", "backend", cfg.Backend.BaseURL, "state", repo.Path())

	return nil
}
