package ports

import (
	"context"
	"time"
)

// AudioResource is a playable clip owned by whoever created it. Release frees
// the underlying storage and must be safe to call more than once.
type AudioResource interface {
	Location() string
	MIMEType() string
	Duration() time.Duration
	Release() error
}

type AudioStore interface {
	Create(ctx context.Context, audio []byte, mimeType string, duration time.Duration) (AudioResource, error)
}

type AudioPlayer interface {
	Play(ctx context.Context, resource AudioResource) error
}
