package application

import (
	"encoding/json"

	"github.com/bnema/secreport-cli/internal/domain"
	"github.com/bnema/secreport-cli/internal/ports"
)

type AuthResult struct {
	Session domain.Session
	Next    domain.Route
}

type SubmitResult struct {
	ProcessID string
	// Raw is the backend response body, kept only for display.
	Raw  json.RawMessage
	Next domain.Route
}

// Explanation is a Ready pipeline result. Audio stays owned by the pipeline.
type Explanation struct {
	Selected    string
	Translated  string
	DisplayText string
	Audio       ports.AudioResource
}
