package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version  int             `toml:"version"`
	Session  *sessionSchema  `toml:"session,omitempty"`
	Settings *settingsSchema `toml:"settings,omitempty"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported state schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type sessionSchema struct {
	UserEmail string `toml:"user_email"`
	ProcessID string `toml:"process_id,omitempty"`
	TokenRef  string `toml:"token_ref,omitempty"`
	ExpiresAt string `toml:"expires_at,omitempty"`
	UpdatedAt string `toml:"updated_at,omitempty"`
}

type settingsSchema struct {
	Name          string `toml:"name"`
	Email         string `toml:"email"`
	Notifications bool   `toml:"notifications"`
	EmailUpdates  bool   `toml:"email_updates"`
	TwoFactor     bool   `toml:"two_factor"`
	UpdatedAt     string `toml:"updated_at,omitempty"`
}
