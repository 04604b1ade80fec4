package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bnema/secreport-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tokenKey = "accounts/a@b.com/access_token"

func TestStoreRejectsInvalidKeys(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	testCases := []struct {
		name    string
		key     string
		wantErr string
	}{
		{name: "empty", key: "", wantErr: "secret key is empty"},
		{name: "whitespace", key: "   ", wantErr: "secret key is empty"},
		{name: "absolute", key: "/absolute/path", wantErr: "invalid secret key"},
		{name: "traversal", key: "../escape", wantErr: "invalid secret key"},
		{name: "parent", key: "..", wantErr: "invalid secret key"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := store.Put(context.Background(), tc.key, "value")
			require.Error(t, err)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestStorePutGetRoundTripAndPermissions(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store := NewStore(root)

	require.NoError(t, store.Put(context.Background(), tokenKey, "eyJhbGciOi"))
	require.NoError(t, store.Put(context.Background(), tokenKey, "rotated"))

	got, err := store.Get(context.Background(), tokenKey)
	require.NoError(t, err)
	assert.Equal(t, "rotated", got)

	info, err := os.Stat(filepath.Join(root, tokenKey))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(secretFileMode), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Join(root, "accounts", "a@b.com"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestStoreGetMissingReturnsSecretNotFound(t *testing.T) {
	t.Parallel()

	_, err := NewStore(t.TempDir()).Get(context.Background(), tokenKey)
	require.ErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestStoreDeleteIsIdempotentWhenSecretMissing(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())

	require.NoError(t, store.Delete(context.Background(), tokenKey))
	require.NoError(t, store.Delete(context.Background(), tokenKey))
}
