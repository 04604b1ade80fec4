package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bnema/secreport-cli/internal/domain"
	"github.com/bnema/secreport-cli/internal/logging"
	"github.com/bnema/secreport-cli/internal/ports"
)

const (
	SettingsSavedMessage     = "Settings saved successfully!"
	DeletionRequestedMessage = "Account deletion requested."
)

// SettingsService keeps preferences locally; nothing is sent to the backend.
type SettingsService struct {
	store    ports.SettingsStore
	sessions ports.SessionStore
	clock    ports.Clock
	logger   *slog.Logger
}

func NewSettingsService(store ports.SettingsStore, sessions ports.SessionStore, clock ports.Clock, logger *slog.Logger) *SettingsService {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = logging.Discard()
	}

	return &SettingsService{store: store, sessions: sessions, clock: clock, logger: logger}
}

// Get returns stored settings, seeding the email from the session when unset.
func (s *SettingsService) Get(ctx context.Context) (domain.Settings, error) {
	settings, err := s.store.LoadSettings(ctx)
	if err != nil {
		return domain.Settings{}, fmt.Errorf("load settings: %w", err)
	}

	if settings.Email == "" && s.sessions != nil {
		session, err := s.sessions.Load(ctx)
		if err != nil {
			return domain.Settings{}, fmt.Errorf("load session: %w", err)
		}
		settings.Email = session.UserEmail
	}

	return settings, nil
}

func (s *SettingsService) Update(ctx context.Context, update SettingsUpdate) (domain.Settings, string, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return domain.Settings{}, "", err
	}

	if update.Name != nil {
		settings.Name = strings.TrimSpace(*update.Name)
	}
	if update.Email != nil {
		settings.Email = strings.TrimSpace(*update.Email)
	}
	if update.Notifications != nil {
		settings.Notifications = *update.Notifications
	}
	if update.EmailUpdates != nil {
		settings.EmailUpdates = *update.EmailUpdates
	}
	if update.TwoFactor != nil {
		settings.TwoFactor = *update.TwoFactor
	}
	settings.UpdatedAt = s.clock.Now()

	if err := s.store.SaveSettings(ctx, settings); err != nil {
		return domain.Settings{}, "", fmt.Errorf("save settings: %w", err)
	}

	return settings, SettingsSavedMessage, nil
}

// RequestDeletion only acknowledges; no backend endpoint exists for it.
func (s *SettingsService) RequestDeletion(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.logger.Info("account deletion requested")

	return DeletionRequestedMessage, nil
}
