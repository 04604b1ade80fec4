package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bnema/secreport-cli/internal/domain"
	"github.com/bnema/secreport-cli/internal/logging"
	"github.com/bnema/secreport-cli/internal/ports"
	"github.com/google/uuid"
)

const chatFailedMessage = "Sorry, I could not reach the assistant."

// ChatService owns one in-memory transcript for the lifetime of a chat view.
type ChatService struct {
	gateway  ports.ChatGateway
	sessions ports.SessionStore
	secrets  ports.SecretStore
	clock    ports.Clock
	logger   *slog.Logger
	newID    func() string

	transcript domain.Transcript
}

func NewChatService(gateway ports.ChatGateway, sessions ports.SessionStore, secrets ports.SecretStore, clock ports.Clock, logger *slog.Logger) *ChatService {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = logging.Discard()
	}

	s := &ChatService{
		gateway:  gateway,
		sessions: sessions,
		secrets:  secrets,
		clock:    clock,
		logger:   logger,
		newID:    uuid.NewString,
	}
	s.appendMessage(domain.ChatGreeting, false)

	return s
}

func (s *ChatService) Transcript() []domain.ChatMessage {
	return s.transcript.Messages()
}

// Note appends an assistant-side line, e.g. a fetched summary.
func (s *ChatService) Note(content string) domain.ChatMessage {
	return s.appendMessage(content, false)
}

// Send appends the user's message, forwards it to the backend and appends the
// reply. A failed request still leaves the user's message in the transcript.
func (s *ChatService) Send(ctx context.Context, content string) (domain.ChatMessage, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return domain.ChatMessage{}, &domain.ValidationError{Field: "message", Err: fmt.Errorf("message is empty")}
	}

	s.appendMessage(content, true)

	session, err := s.sessions.Load(ctx)
	if err != nil {
		return domain.ChatMessage{}, fmt.Errorf("load session: %w", err)
	}
	token, err := accessToken(ctx, s.secrets, session)
	if err != nil {
		return domain.ChatMessage{}, err
	}

	reply, err := s.gateway.SendMessage(ctx, token, content)
	if err != nil {
		s.logger.Warn("chat request failed", logging.Err(err))
		return domain.ChatMessage{}, domain.NewOperationError(domain.ErrChatFailed, chatFailedMessage, err)
	}

	return s.appendMessage(reply, false), nil
}

func (s *ChatService) appendMessage(content string, isUser bool) domain.ChatMessage {
	message := domain.ChatMessage{
		ID:        s.newID(),
		Content:   content,
		IsUser:    isUser,
		Timestamp: s.clock.Now(),
	}
	s.transcript.Append(message)

	return message
}
