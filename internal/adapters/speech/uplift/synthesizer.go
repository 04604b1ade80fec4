package uplift

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bnema/secreport-cli/internal/domain"
	"github.com/bnema/secreport-cli/internal/ports"
)

const (
	providerName          = "speech"
	synthesisPath         = "/v1/synthesis/text-to-speech"
	durationHeader        = "x-uplift-ai-audio-duration"
	maxAudioBytes         = 32 << 20
	maxErrorBytes         = 64 << 10
	defaultRequestTimeout = 30 * time.Second
	defaultMIMEType       = "audio/mpeg"
)

type Synthesizer struct {
	BaseURL        string
	APIKey         string
	HTTPClient     *http.Client
	RequestTimeout time.Duration
}

var _ ports.SpeechSynthesizer = Synthesizer{}

type synthesisBody struct {
	VoiceID      string `json:"voiceId"`
	Text         string `json:"text"`
	OutputFormat string `json:"outputFormat"`
}

func (s Synthesizer) Synthesize(ctx context.Context, req domain.SpeechRequest) (domain.Speech, error) {
	if strings.TrimSpace(req.Text) == "" {
		return domain.Speech{}, providerErr(errors.New("text is empty"))
	}
	if strings.TrimSpace(s.APIKey) == "" {
		return domain.Speech{}, providerErr(errors.New("api key is empty"))
	}

	endpoint, err := s.endpoint()
	if err != nil {
		return domain.Speech{}, providerErr(err)
	}

	payload, err := json.Marshal(synthesisBody{VoiceID: req.VoiceID, Text: req.Text, OutputFormat: req.OutputFormat})
	if err != nil {
		return domain.Speech{}, fmt.Errorf("encode synthesis request: %w", err)
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		timeout := s.RequestTimeout
		if timeout <= 0 {
			timeout = defaultRequestTimeout
		}
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return domain.Speech{}, fmt.Errorf("create synthesis request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+s.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient().Do(httpReq)
	if err != nil {
		return domain.Speech{}, providerErr(fmt.Errorf("request synthesis: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBytes))
		return domain.Speech{}, providerErr(fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}

	audio, err := io.ReadAll(io.LimitReader(resp.Body, maxAudioBytes))
	if err != nil {
		return domain.Speech{}, providerErr(fmt.Errorf("read audio: %w", err))
	}
	if len(audio) == 0 {
		return domain.Speech{}, providerErr(errors.New("empty audio response"))
	}

	mimeType := resp.Header.Get("Content-Type")
	if mimeType == "" || strings.HasPrefix(mimeType, "application/octet-stream") {
		mimeType = defaultMIMEType
	}

	return domain.Speech{
		Audio:    audio,
		MIMEType: mimeType,
		Duration: parseDuration(resp.Header.Get(durationHeader)),
	}, nil
}

func (s Synthesizer) endpoint() (string, error) {
	if s.BaseURL == "" {
		return "", errors.New("speech base url is required")
	}

	parsed, err := url.Parse(s.BaseURL)
	if err != nil {
		return "", fmt.Errorf("parse speech base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.New("speech base url must use http or https")
	}

	return strings.TrimRight(parsed.String(), "/") + synthesisPath, nil
}

func (s Synthesizer) httpClient() *http.Client {
	if s.HTTPClient != nil {
		return s.HTTPClient
	}
	return http.DefaultClient
}

// parseDuration reads the provider's duration header, expressed in milliseconds.
func parseDuration(raw string) time.Duration {
	ms, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || ms <= 0 {
		return 0
	}

	return time.Duration(ms * float64(time.Millisecond))
}

func providerErr(err error) error {
	return &domain.ProviderError{Provider: providerName, Err: err}
}
