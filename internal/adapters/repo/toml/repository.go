package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bnema/secreport-cli/internal/domain"
	"github.com/bnema/secreport-cli/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	statePathKey    = "state.path"
	stateFileMode   = 0o600
	stateDirMode    = 0o700
	stateConfigDir  = ".secreport"
	stateConfigFile = "state.toml"
	tempFilePattern = ".state-*.toml.tmp"
)

// Repository persists the session and local settings in one TOML file.
type Repository struct {
	statePath string
	mu        *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var (
	_ ports.SessionStore  = (*Repository)(nil)
	_ ports.SettingsStore = (*Repository)(nil)
)

func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	statePath := cfg.GetString(statePathKey)
	if statePath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		statePath = filepath.Join(homeDir, stateConfigDir, stateConfigFile)
	}

	statePath, err := normalizeStatePath(statePath)
	if err != nil {
		return nil, err
	}

	return &Repository{statePath: statePath, mu: lockForPath(statePath)}, nil
}

func (r *Repository) Path() string {
	return r.statePath
}

func (r *Repository) Load(ctx context.Context) (domain.Session, error) {
	if err := ctx.Err(); err != nil {
		return domain.Session{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return domain.Session{}, err
	}
	if file.Session == nil {
		return domain.Session{}, nil
	}

	return sessionFromSchema(*file.Session), nil
}

func (r *Repository) Save(ctx context.Context, session domain.Session) error {
	return r.update(ctx, func(file *fileSchema) {
		encoded := sessionToSchema(session)
		file.Session = &encoded
	})
}

func (r *Repository) Clear(ctx context.Context) error {
	return r.update(ctx, func(file *fileSchema) {
		file.Session = nil
	})
}

func (r *Repository) LoadSettings(ctx context.Context) (domain.Settings, error) {
	if err := ctx.Err(); err != nil {
		return domain.Settings{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return domain.Settings{}, err
	}
	if file.Settings == nil {
		return domain.DefaultSettings(), nil
	}

	return settingsFromSchema(*file.Settings), nil
}

func (r *Repository) SaveSettings(ctx context.Context, settings domain.Settings) error {
	return r.update(ctx, func(file *fileSchema) {
		encoded := settingsToSchema(settings)
		file.Settings = &encoded
	})
}

func (r *Repository) update(ctx context.Context, mutate func(file *fileSchema)) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	mutate(&file)

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeSchema(file)
}

func (r *Repository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.statePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{Version: currentSchemaVersion}, nil
		}
		return fileSchema{}, fmt.Errorf("read state file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode state file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func (r *Repository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	dir := filepath.Dir(r.statePath)
	if err := os.MkdirAll(dir, stateDirMode); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode state file: %w", err)
	}

	tempFile, err := os.CreateTemp(dir, tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp state file: %w", err)
	}
	if err := tempFile.Chmod(stateFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp state file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp state file: %w", err)
	}
	if err := os.Rename(tempName, r.statePath); err != nil {
		return fmt.Errorf("replace state file: %w", err)
	}
	cleanup = false

	return nil
}

func normalizeStatePath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve state path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func sessionToSchema(session domain.Session) sessionSchema {
	return sessionSchema{
		UserEmail: session.UserEmail,
		ProcessID: session.ProcessID,
		TokenRef:  session.TokenRef,
		ExpiresAt: formatTime(session.ExpiresAt),
		UpdatedAt: formatTime(session.UpdatedAt),
	}
}

func sessionFromSchema(entry sessionSchema) domain.Session {
	return domain.Session{
		UserEmail: entry.UserEmail,
		ProcessID: entry.ProcessID,
		TokenRef:  entry.TokenRef,
		ExpiresAt: parseTime(entry.ExpiresAt),
		UpdatedAt: parseTime(entry.UpdatedAt),
	}
}

func settingsToSchema(settings domain.Settings) settingsSchema {
	return settingsSchema{
		Name:          settings.Name,
		Email:         settings.Email,
		Notifications: settings.Notifications,
		EmailUpdates:  settings.EmailUpdates,
		TwoFactor:     settings.TwoFactor,
		UpdatedAt:     formatTime(settings.UpdatedAt),
	}
}

func settingsFromSchema(entry settingsSchema) domain.Settings {
	return domain.Settings{
		Name:          entry.Name,
		Email:         entry.Email,
		Notifications: entry.Notifications,
		EmailUpdates:  entry.EmailUpdates,
		TwoFactor:     entry.TwoFactor,
		UpdatedAt:     parseTime(entry.UpdatedAt),
	}
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.UTC().Format(time.RFC3339)
}
