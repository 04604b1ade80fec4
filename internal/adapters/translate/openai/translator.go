package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bnema/secreport-cli/internal/domain"
	"github.com/bnema/secreport-cli/internal/ports"
	goopenai "github.com/sashabaranov/go-openai"
)

const (
	providerName          = "translation"
	defaultModel          = "gemini-2.0-flash"
	defaultRequestTimeout = 30 * time.Second
)

// Config targets any OpenAI-compatible chat completions endpoint. The default
// deployment points BaseURL at Gemini's OpenAI compatibility layer.
type Config struct {
	APIKey         string
	BaseURL        string
	Model          string
	HTTPClient     *http.Client
	RequestTimeout time.Duration
}

type Translator struct {
	client  *goopenai.Client
	model   string
	timeout time.Duration
}

var _ ports.Translator = (*Translator)(nil)

func NewTranslator(cfg Config) (*Translator, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("translation api key is empty")
	}

	clientConfig := goopenai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	if cfg.HTTPClient != nil {
		clientConfig.HTTPClient = cfg.HTTPClient
	}

	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	return &Translator{
		client:  goopenai.NewClientWithConfig(clientConfig),
		model:   model,
		timeout: timeout,
	}, nil
}

func (t *Translator) Translate(ctx context.Context, req domain.TranslationRequest) (string, error) {
	if strings.TrimSpace(req.Text) == "" {
		return "", &domain.ProviderError{Provider: providerName, Err: errors.New("text is empty")}
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	resp, err := t.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model: t.model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleSystem, Content: req.Instruction},
			{Role: goopenai.ChatMessageRoleUser, Content: "Text to translate:\n" + req.Text},
		},
	})
	if err != nil {
		return "", &domain.ProviderError{Provider: providerName, Err: describeError(err)}
	}
	if len(resp.Choices) == 0 {
		return "", &domain.ProviderError{Provider: providerName, Err: errors.New("no completion choices returned")}
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func describeError(err error) error {
	var apiErr *goopenai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("status %d: %s: %w", apiErr.HTTPStatusCode, apiErr.Message, err)
	}

	return err
}
