package application

import (
	"path/filepath"
	"testing"
	"time"

	tomlrepo "github.com/bnema/secreport-cli/internal/adapters/repo/toml"
	"github.com/bnema/secreport-cli/internal/ports/mocks"
	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

func fixedClock() mocks.FixedClock {
	return mocks.FixedClock{At: testNow}
}

func newStateRepo(t *testing.T) *tomlrepo.Repository {
	t.Helper()

	config := viper.New()
	config.Set("state.path", filepath.Join(t.TempDir(), "state.toml"))

	repo, err := tomlrepo.NewRepository(config)
	require.NoError(t, err)
	return repo
}

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend-secret"))
	require.NoError(t, err)
	return token
}

func mockAnyContext() interface{} {
	return mock.Anything
}
