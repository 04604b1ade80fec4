package ports

import (
	"context"

	"github.com/bnema/secreport-cli/internal/domain"
)

// SessionStore is the typed accessor for the client-held session.
// Load returns a zero Session when nothing is stored.
type SessionStore interface {
	Load(ctx context.Context) (domain.Session, error)
	Save(ctx context.Context, session domain.Session) error
	Clear(ctx context.Context) error
}

type SettingsStore interface {
	LoadSettings(ctx context.Context) (domain.Settings, error)
	SaveSettings(ctx context.Context, settings domain.Settings) error
}
