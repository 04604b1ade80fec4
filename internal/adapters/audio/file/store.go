package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/bnema/secreport-cli/internal/ports"
)

// Store materializes synthesized audio as temporary files under Dir.
type Store struct {
	Dir string
}

var _ ports.AudioStore = (*Store)(nil)

func NewStore(dir string) *Store {
	return &Store{Dir: dir}
}

func (s *Store) Create(ctx context.Context, audio []byte, mimeType string, duration time.Duration) (ports.AudioResource, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(audio) == 0 {
		return nil, errors.New("create audio resource: no audio bytes")
	}

	dir := s.Dir
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create audio dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "explain-*"+extensionFor(mimeType))
	if err != nil {
		return nil, fmt.Errorf("create audio file: %w", err)
	}
	path := tmp.Name()

	if _, err := tmp.Write(audio); err != nil {
		_ = tmp.Close()
		_ = os.Remove(path)
		return nil, fmt.Errorf("write audio file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("close audio file: %w", err)
	}

	return &Resource{path: path, mimeType: mimeType, duration: duration}, nil
}

// Resource is a temp-file backed audio clip.
type Resource struct {
	path     string
	mimeType string
	duration time.Duration

	once       sync.Once
	releaseErr error
}

var _ ports.AudioResource = (*Resource)(nil)

func (r *Resource) Location() string        { return r.path }
func (r *Resource) MIMEType() string        { return r.mimeType }
func (r *Resource) Duration() time.Duration { return r.duration }

func (r *Resource) Release() error {
	r.once.Do(func() {
		if err := os.Remove(r.path); err != nil && !errors.Is(err, os.ErrNotExist) {
			r.releaseErr = fmt.Errorf("remove audio file: %w", err)
		}
	})

	return r.releaseErr
}

func extensionFor(mimeType string) string {
	switch strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0])) {
	case "audio/mpeg", "audio/mp3":
		return ".mp3"
	case "audio/wav", "audio/x-wav":
		return ".wav"
	case "audio/ogg":
		return ".ogg"
	default:
		return ".bin"
	}
}
