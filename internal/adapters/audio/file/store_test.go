package file

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreCreateWritesAudioFile(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	resource, err := store.Create(context.Background(), []byte("mp3-bytes"), "audio/mpeg", 2*time.Second)
	require.NoError(t, err)

	assert.Equal(t, ".mp3", filepath.Ext(resource.Location()))
	assert.Equal(t, "audio/mpeg", resource.MIMEType())
	assert.Equal(t, 2*time.Second, resource.Duration())

	data, err := os.ReadFile(resource.Location())
	require.NoError(t, err)
	assert.Equal(t, []byte("mp3-bytes"), data)
}

func TestResourceReleaseIsIdempotent(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	resource, err := store.Create(context.Background(), []byte("mp3-bytes"), "audio/mpeg", 0)
	require.NoError(t, err)

	require.NoError(t, resource.Release())
	require.NoError(t, resource.Release())

	_, err = os.Stat(resource.Location())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestStoreCreateRejectsEmptyAudio(t *testing.T) {
	t.Parallel()

	_, err := NewStore(t.TempDir()).Create(context.Background(), nil, "audio/mpeg", 0)
	require.Error(t, err)
}

func TestStoreCreateHonoursCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dir := t.TempDir()
	_, err := NewStore(dir).Create(ctx, []byte("x"), "audio/mpeg", 0)
	require.ErrorIs(t, err, context.Canceled)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestPlayerRunsConfiguredCommand(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX echo")
	}
	t.Parallel()

	store := NewStore(t.TempDir())
	resource, err := store.Create(context.Background(), []byte("mp3"), "audio/mpeg", 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resource.Release() })

	var out bytes.Buffer
	player := &Player{Command: "echo playing", Stdout: &out}
	require.NoError(t, player.Play(context.Background(), resource))
	assert.Equal(t, "playing "+resource.Location()+"\n", out.String())
}

func TestPlayerRequiresCommand(t *testing.T) {
	t.Parallel()

	err := (&Player{}).Play(context.Background(), &Resource{path: "clip.mp3"})
	assert.ErrorContains(t, err, "no player command configured")
}
