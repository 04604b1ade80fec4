package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bnema/secreport-cli/internal/domain"
	"github.com/bnema/secreport-cli/internal/logging"
	"github.com/bnema/secreport-cli/internal/ports"
)

const (
	summaryFailedMessage = "Failed to get summary"
	defaultWaitInterval  = 5 * time.Second
	defaultWaitTimeout   = 10 * time.Minute
)

type SummaryService struct {
	gateway  ports.ReportGateway
	sessions ports.SessionStore
	secrets  ports.SecretStore
	logger   *slog.Logger
	// after is swapped in tests to avoid real sleeps.
	after func(time.Duration) <-chan time.Time
}

func NewSummaryService(gateway ports.ReportGateway, sessions ports.SessionStore, secrets ports.SecretStore, logger *slog.Logger) *SummaryService {
	if logger == nil {
		logger = logging.Discard()
	}

	return &SummaryService{gateway: gateway, sessions: sessions, secrets: secrets, logger: logger, after: time.After}
}

// Fetch reads the summary for the session's active process. It never
// mutates the session.
func (s *SummaryService) Fetch(ctx context.Context) (domain.Summary, error) {
	session, err := s.sessions.Load(ctx)
	if err != nil {
		return domain.Summary{}, fmt.Errorf("load session: %w", err)
	}
	if !session.CanFetchSummary() {
		return domain.Summary{}, &domain.ValidationError{Field: "process_id", Err: domain.ErrMissingCredentials}
	}

	token, err := accessToken(ctx, s.secrets, session)
	if err != nil {
		return domain.Summary{}, err
	}

	content, found, err := s.gateway.GetFile(ctx, token, ports.SummaryQuery{
		UserID:    session.UserEmail,
		Filename:  domain.SummaryFilename,
		ProcessID: session.ProcessID,
	})
	if err != nil {
		s.logger.Error("summary fetch failed", "process_id", session.ProcessID, logging.Err(err))
		return domain.Summary{}, domain.NewOperationError(domain.ErrSummaryFetchFailed, summaryFailedMessage, err)
	}
	if !found {
		content = domain.SummaryPlaceholder
	}

	return domain.Summary{UserEmail: session.UserEmail, ProcessID: session.ProcessID, Content: content}, nil
}

// Wait polls Fetch until a real summary arrives, ctx ends or opts.Timeout elapses.
func (s *SummaryService) Wait(ctx context.Context, opts WaitOptions) (domain.Summary, error) {
	interval := opts.Interval
	if interval <= 0 {
		interval = defaultWaitInterval
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultWaitTimeout
	}

	deadline := s.after(timeout)
	for {
		summary, err := s.Fetch(ctx)
		if err != nil {
			return domain.Summary{}, err
		}
		if summary.Available() {
			return summary, nil
		}

		s.logger.Debug("summary not ready", "process_id", summary.ProcessID, "retry_in", interval)

		select {
		case <-ctx.Done():
			return domain.Summary{}, ctx.Err()
		case <-deadline:
			return summary, domain.ErrSummaryWaitTimeout
		case <-s.after(interval):
		}
	}
}

func (s *SummaryService) Status(ctx context.Context) (domain.ProcessStatus, error) {
	session, err := s.sessions.Load(ctx)
	if err != nil {
		return domain.ProcessStatus{}, fmt.Errorf("load session: %w", err)
	}
	if session.ProcessID == "" {
		return domain.ProcessStatus{}, &domain.ValidationError{Field: "process_id", Err: domain.ErrMissingCredentials}
	}

	status, err := s.gateway.ProcessStatus(ctx, session.ProcessID)
	if err != nil {
		return domain.ProcessStatus{}, domain.NewOperationError(domain.ErrSummaryFetchFailed, "Failed to get process status", err)
	}

	return status, nil
}
