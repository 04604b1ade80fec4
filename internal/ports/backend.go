package ports

import (
	"context"
	"encoding/json"

	"github.com/bnema/secreport-cli/internal/domain"
)

type AuthResponse struct {
	Email       string
	AccessToken string
	TokenType   string
}

type AuthGateway interface {
	Authenticate(ctx context.Context, mode domain.AuthMode, creds domain.Credentials) (AuthResponse, error)
	Logout(ctx context.Context, accessToken string) error
}

type SubmissionResponse struct {
	ID  string
	Raw json.RawMessage
}

type SummaryQuery struct {
	UserID    string
	Filename  string
	ProcessID string
}

type ReportGateway interface {
	SubmitForm(ctx context.Context, accessToken string, payload domain.SubmissionPayload) (SubmissionResponse, error)
	// GetFile returns the "content" field, and false when the field is absent.
	GetFile(ctx context.Context, accessToken string, query SummaryQuery) (string, bool, error)
	ProcessStatus(ctx context.Context, processID string) (domain.ProcessStatus, error)
}

type ChatGateway interface {
	SendMessage(ctx context.Context, accessToken string, message string) (string, error)
}
