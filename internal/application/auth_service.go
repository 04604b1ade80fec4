package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bnema/secreport-cli/internal/domain"
	"github.com/bnema/secreport-cli/internal/logging"
	"github.com/bnema/secreport-cli/internal/ports"
	"github.com/golang-jwt/jwt/v5"
)

const authFailedMessage = "Authentication failed"

type AuthService struct {
	gateway  ports.AuthGateway
	sessions ports.SessionStore
	secrets  ports.SecretStore
	clock    ports.Clock
	logger   *slog.Logger
}

func NewAuthService(gateway ports.AuthGateway, sessions ports.SessionStore, secrets ports.SecretStore, clock ports.Clock, logger *slog.Logger) *AuthService {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = logging.Discard()
	}

	return &AuthService{gateway: gateway, sessions: sessions, secrets: secrets, clock: clock, logger: logger}
}

// TokenKey is the secret-store key holding the access token for email.
func TokenKey(email string) string {
	return "accounts/" + strings.ToLower(strings.TrimSpace(email)) + "/access_token"
}

func (s *AuthService) Authenticate(ctx context.Context, req AuthRequest) (AuthResult, error) {
	if !req.Mode.Valid() {
		return AuthResult{}, fmt.Errorf("unknown auth mode %q", req.Mode)
	}

	email := strings.TrimSpace(req.Email)
	if email == "" {
		return AuthResult{}, &domain.ValidationError{Field: "email", Err: errors.New("email is required")}
	}
	if req.Password == "" {
		return AuthResult{}, &domain.ValidationError{Field: "password", Err: errors.New("password is required")}
	}
	if req.Mode == domain.AuthModeSignup && req.Password != req.ConfirmPassword {
		return AuthResult{}, &domain.ValidationError{Field: "confirm_password", Err: domain.ErrPasswordMismatch}
	}

	resp, err := s.gateway.Authenticate(ctx, req.Mode, domain.Credentials{Email: email, Password: req.Password})
	if err != nil {
		s.logger.Debug("authentication request failed", "mode", string(req.Mode), logging.Err(err))
		return AuthResult{}, domain.NewOperationError(domain.ErrAuthFailed, authFailedMessage, err)
	}

	claims := tokenClaims(resp.AccessToken)
	userEmail := firstNonEmpty(resp.Email, claims.subject, email)

	previous, err := s.sessions.Load(ctx)
	if err != nil {
		return AuthResult{}, fmt.Errorf("load session: %w", err)
	}

	now := s.clock.Now()
	session := domain.Session{
		UserEmail: userEmail,
		ExpiresAt: claims.expiresAt,
		UpdatedAt: now,
	}
	if previous.UserEmail == userEmail {
		session.ProcessID = previous.ProcessID
	}

	if resp.AccessToken != "" {
		key := TokenKey(userEmail)
		if err := s.secrets.Put(ctx, key, resp.AccessToken); err != nil {
			return AuthResult{}, fmt.Errorf("store access token: %w", err)
		}
		session.TokenRef = key
	}
	if previous.TokenRef != "" && previous.TokenRef != session.TokenRef {
		if err := s.secrets.Delete(ctx, previous.TokenRef); err != nil {
			s.logger.Warn("delete previous access token", "ref", previous.TokenRef, logging.Err(err))
		}
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		return AuthResult{}, fmt.Errorf("save session: %w", err)
	}

	s.logger.Info("signed in", "mode", string(req.Mode), "email", userEmail)

	return AuthResult{Session: session, Next: domain.RouteHome}, nil
}

// Logout revokes the token server-side when possible and always clears local state.
func (s *AuthService) Logout(ctx context.Context) (domain.Route, error) {
	session, err := s.sessions.Load(ctx)
	if err != nil {
		return "", fmt.Errorf("load session: %w", err)
	}

	if session.TokenRef != "" {
		token, err := s.secrets.Get(ctx, session.TokenRef)
		switch {
		case err == nil && token != "":
			if err := s.gateway.Logout(ctx, token); err != nil {
				s.logger.Warn("backend logout failed", logging.Err(err))
			}
		case err != nil && !errors.Is(err, domain.ErrSecretNotFound):
			s.logger.Warn("read access token", logging.Err(err))
		}

		if err := s.secrets.Delete(ctx, session.TokenRef); err != nil {
			return "", fmt.Errorf("delete access token: %w", err)
		}
	}

	if err := s.sessions.Clear(ctx); err != nil {
		return "", fmt.Errorf("clear session: %w", err)
	}

	return domain.RouteLogin, nil
}

func (s *AuthService) Session(ctx context.Context) (domain.Session, error) {
	session, err := s.sessions.Load(ctx)
	if err != nil {
		return domain.Session{}, fmt.Errorf("load session: %w", err)
	}

	return session, nil
}

type accessClaims struct {
	subject   string
	expiresAt time.Time
}

// tokenClaims reads sub and exp without verifying the signature.
func tokenClaims(raw string) accessClaims {
	if raw == "" {
		return accessClaims{}
	}

	token, _, err := jwt.NewParser().ParseUnverified(raw, jwt.MapClaims{})
	if err != nil {
		return accessClaims{}
	}

	var claims accessClaims
	if sub, err := token.Claims.GetSubject(); err == nil {
		claims.subject = sub
	}
	if exp, err := token.Claims.GetExpirationTime(); err == nil && exp != nil {
		claims.expiresAt = exp.Time
	}

	return claims
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
	}

	return ""
}

// accessToken returns the stored bearer token for session, or "" when none is held.
func accessToken(ctx context.Context, secrets ports.SecretStore, session domain.Session) (string, error) {
	if session.TokenRef == "" || secrets == nil {
		return "", nil
	}

	token, err := secrets.Get(ctx, session.TokenRef)
	if err != nil {
		if errors.Is(err, domain.ErrSecretNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("read access token: %w", err)
	}

	return token, nil
}
