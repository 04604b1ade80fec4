package ports

import (
	"context"

	"github.com/bnema/secreport-cli/internal/domain"
)

type Translator interface {
	Translate(ctx context.Context, req domain.TranslationRequest) (string, error)
}

type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, req domain.SpeechRequest) (domain.Speech, error)
}
