package toml

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bnema/secreport-cli/internal/domain"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T, statePath string) *Repository {
	t.Helper()

	config := viper.New()
	config.Set("state.path", statePath)

	repo, err := NewRepository(config)
	require.NoError(t, err)
	return repo
}

func TestRepositorySessionRoundTrip(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "state.toml"))
	now := time.Date(2026, 2, 14, 11, 0, 0, 0, time.UTC)

	session := domain.Session{
		UserEmail: "a@b.com",
		ProcessID: "p-42",
		TokenRef:  "secreport/a@b.com/access_token",
		ExpiresAt: now.Add(time.Hour),
		UpdatedAt: now,
	}
	require.NoError(t, repo.Save(context.Background(), session))

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, session, got)
}

func TestRepositoryLoadMissingFileReturnsZeroSession(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "missing", "state.toml"))

	session, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, session.Authenticated())

	settings, err := repo.LoadSettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), settings)
}

func TestRepositoryClearKeepsSettings(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "state.toml"))
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, domain.Session{UserEmail: "a@b.com", ProcessID: "p-1"}))
	require.NoError(t, repo.SaveSettings(ctx, domain.Settings{Name: "Ayesha", Email: "a@b.com", TwoFactor: true}))
	require.NoError(t, repo.Clear(ctx))

	session, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.Session{}, session)

	settings, err := repo.LoadSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ayesha", settings.Name)
	assert.True(t, settings.TwoFactor)
	assert.False(t, settings.Notifications)
}

func TestRepositorySaveCreatesDefaultPathAndEnforcesPermissions(t *testing.T) {
	homeDir := t.TempDir()
	t.Setenv("HOME", homeDir)

	repo, err := NewRepository(viper.New())
	require.NoError(t, err)

	require.NoError(t, repo.Save(context.Background(), domain.Session{UserEmail: "a@b.com"}))

	statePath := filepath.Join(homeDir, ".secreport", "state.toml")
	assert.Equal(t, statePath, repo.Path())

	info, err := os.Stat(statePath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestRepositoryMalformedTOMLReturnsError(t *testing.T) {
	t.Parallel()

	statePath := filepath.Join(t.TempDir(), "state.toml")
	require.NoError(t, os.WriteFile(statePath, []byte("session = ["), 0o600))

	repo := newTestRepository(t, statePath)

	_, err := repo.Load(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "decode state file")
}

func TestRepositoryFutureSchemaVersionReturnsError(t *testing.T) {
	t.Parallel()

	statePath := filepath.Join(t.TempDir(), "state.toml")
	require.NoError(t, os.WriteFile(statePath, []byte(strings.Join([]string{
		"version = 999",
		"",
	}, "\n")), 0o600))

	repo := newTestRepository(t, statePath)

	_, err := repo.Load(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "unsupported state schema version")
}

func TestRepositorySaveCanceledContextReturnsContextError(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "state.toml"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := repo.Save(ctx, domain.Session{UserEmail: "a@b.com"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRepositorySerializedTOMLIncludesVersionAndSession(t *testing.T) {
	t.Parallel()

	statePath := filepath.Join(t.TempDir(), "state.toml")
	repo := newTestRepository(t, statePath)

	require.NoError(t, repo.Save(context.Background(), domain.Session{UserEmail: "a@b.com", ProcessID: "p-1"}))

	data, err := os.ReadFile(statePath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "version = 1")
	assert.Contains(t, string(data), "[session]")
	assert.Contains(t, string(data), "user_email = 'a@b.com'")
}

func TestRepositoryConcurrentWritersAcrossInstancesKeepFileValid(t *testing.T) {
	t.Parallel()

	statePath := filepath.Join(t.TempDir(), "state.toml")
	repoA := newTestRepository(t, statePath)
	repoB := newTestRepository(t, statePath)

	const perRepoWrites = 50
	start := make(chan struct{})
	errCh := make(chan error, perRepoWrites*2)
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		<-start
		for i := 0; i < perRepoWrites; i++ {
			errCh <- repoA.Save(context.Background(), domain.Session{UserEmail: "a@b.com", ProcessID: "p-" + strconv.Itoa(i)})
		}
	}()

	go func() {
		defer wg.Done()
		<-start
		for i := 0; i < perRepoWrites; i++ {
			errCh <- repoB.SaveSettings(context.Background(), domain.Settings{Name: "n-" + strconv.Itoa(i)})
		}
	}()

	close(start)
	wg.Wait()
	close(errCh)

	for err := range errCh {
		require.NoError(t, err)
	}

	session, err := repoA.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "p-"+strconv.Itoa(perRepoWrites-1), session.ProcessID)

	settings, err := repoB.LoadSettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "n-"+strconv.Itoa(perRepoWrites-1), settings.Name)
}
