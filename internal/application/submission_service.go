package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bnema/secreport-cli/internal/domain"
	"github.com/bnema/secreport-cli/internal/logging"
	"github.com/bnema/secreport-cli/internal/ports"
)

const submissionFailedMessage = "Submission failed"

type SubmissionService struct {
	gateway  ports.ReportGateway
	sessions ports.SessionStore
	secrets  ports.SecretStore
	clock    ports.Clock
	logger   *slog.Logger
}

func NewSubmissionService(gateway ports.ReportGateway, sessions ports.SessionStore, secrets ports.SecretStore, clock ports.Clock, logger *slog.Logger) *SubmissionService {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = logging.Discard()
	}

	return &SubmissionService{gateway: gateway, sessions: sessions, secrets: secrets, clock: clock, logger: logger}
}

func (s *SubmissionService) Submit(ctx context.Context, req SubmitRequest) (SubmitResult, error) {
	session, err := s.sessions.Load(ctx)
	if err != nil {
		return SubmitResult{}, fmt.Errorf("load session: %w", err)
	}

	payload := domain.NewSubmissionPayload(req.WebsiteURL, req.GithubURL, session.UserEmail, req.Details)
	if err := payload.Validate(); err != nil {
		return SubmitResult{}, err
	}

	token, err := accessToken(ctx, s.secrets, session)
	if err != nil {
		return SubmitResult{}, err
	}

	resp, err := s.gateway.SubmitForm(ctx, token, payload)
	if err != nil {
		s.logger.Debug("submission request failed", logging.Err(err))
		return SubmitResult{}, domain.NewOperationError(domain.ErrSubmissionFailed, submissionFailedMessage, err)
	}
	if resp.ID == "" {
		return SubmitResult{}, domain.NewOperationError(domain.ErrSubmissionFailed, domain.ErrMissingProcessID.Error(), domain.ErrMissingProcessID)
	}

	session.ProcessID = resp.ID
	session.UpdatedAt = s.clock.Now()
	if err := s.sessions.Save(ctx, session); err != nil {
		return SubmitResult{}, fmt.Errorf("save session: %w", err)
	}

	s.logger.Info("project submitted", "process_id", resp.ID)

	return SubmitResult{ProcessID: resp.ID, Raw: resp.Raw, Next: domain.RouteChat}, nil
}
