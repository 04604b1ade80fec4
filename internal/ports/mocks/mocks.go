// Package mocks holds testify mocks for the ports interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/bnema/secreport-cli/internal/domain"
	"github.com/bnema/secreport-cli/internal/ports"
	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

func register(t testingT, m *mock.Mock) {
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
}

type SecretStore struct{ mock.Mock }

var _ ports.SecretStore = (*SecretStore)(nil)

func NewSecretStore(t testingT) *SecretStore {
	m := &SecretStore{}
	register(t, &m.Mock)
	return m
}

func (m *SecretStore) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *SecretStore) Put(ctx context.Context, key string, value string) error {
	return m.Called(ctx, key, value).Error(0)
}

func (m *SecretStore) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

type SessionStore struct{ mock.Mock }

var _ ports.SessionStore = (*SessionStore)(nil)

func NewSessionStore(t testingT) *SessionStore {
	m := &SessionStore{}
	register(t, &m.Mock)
	return m
}

func (m *SessionStore) Load(ctx context.Context) (domain.Session, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.Session), args.Error(1)
}

func (m *SessionStore) Save(ctx context.Context, session domain.Session) error {
	return m.Called(ctx, session).Error(0)
}

func (m *SessionStore) Clear(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type AuthGateway struct{ mock.Mock }

var _ ports.AuthGateway = (*AuthGateway)(nil)

func NewAuthGateway(t testingT) *AuthGateway {
	m := &AuthGateway{}
	register(t, &m.Mock)
	return m
}

func (m *AuthGateway) Authenticate(ctx context.Context, mode domain.AuthMode, creds domain.Credentials) (ports.AuthResponse, error) {
	args := m.Called(ctx, mode, creds)
	return args.Get(0).(ports.AuthResponse), args.Error(1)
}

func (m *AuthGateway) Logout(ctx context.Context, accessToken string) error {
	return m.Called(ctx, accessToken).Error(0)
}

type ReportGateway struct{ mock.Mock }

var _ ports.ReportGateway = (*ReportGateway)(nil)

func NewReportGateway(t testingT) *ReportGateway {
	m := &ReportGateway{}
	register(t, &m.Mock)
	return m
}

func (m *ReportGateway) SubmitForm(ctx context.Context, accessToken string, payload domain.SubmissionPayload) (ports.SubmissionResponse, error) {
	args := m.Called(ctx, accessToken, payload)
	return args.Get(0).(ports.SubmissionResponse), args.Error(1)
}

func (m *ReportGateway) GetFile(ctx context.Context, accessToken string, query ports.SummaryQuery) (string, bool, error) {
	args := m.Called(ctx, accessToken, query)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *ReportGateway) ProcessStatus(ctx context.Context, processID string) (domain.ProcessStatus, error) {
	args := m.Called(ctx, processID)
	return args.Get(0).(domain.ProcessStatus), args.Error(1)
}

type ChatGateway struct{ mock.Mock }

var _ ports.ChatGateway = (*ChatGateway)(nil)

func NewChatGateway(t testingT) *ChatGateway {
	m := &ChatGateway{}
	register(t, &m.Mock)
	return m
}

func (m *ChatGateway) SendMessage(ctx context.Context, accessToken string, message string) (string, error) {
	args := m.Called(ctx, accessToken, message)
	return args.String(0), args.Error(1)
}

type Translator struct{ mock.Mock }

var _ ports.Translator = (*Translator)(nil)

func NewTranslator(t testingT) *Translator {
	m := &Translator{}
	register(t, &m.Mock)
	return m
}

func (m *Translator) Translate(ctx context.Context, req domain.TranslationRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

type SpeechSynthesizer struct{ mock.Mock }

var _ ports.SpeechSynthesizer = (*SpeechSynthesizer)(nil)

func NewSpeechSynthesizer(t testingT) *SpeechSynthesizer {
	m := &SpeechSynthesizer{}
	register(t, &m.Mock)
	return m
}

func (m *SpeechSynthesizer) Synthesize(ctx context.Context, req domain.SpeechRequest) (domain.Speech, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.Speech), args.Error(1)
}

type AudioPlayer struct{ mock.Mock }

var _ ports.AudioPlayer = (*AudioPlayer)(nil)

func NewAudioPlayer(t testingT) *AudioPlayer {
	m := &AudioPlayer{}
	register(t, &m.Mock)
	return m
}

func (m *AudioPlayer) Play(ctx context.Context, resource ports.AudioResource) error {
	return m.Called(ctx, resource).Error(0)
}

// FixedClock is a ports.Clock that always returns At.
type FixedClock struct {
	At time.Time
}

func (c FixedClock) Now() time.Time {
	return c.At
}
