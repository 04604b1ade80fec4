package application

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/bnema/secreport-cli/internal/domain"
	"github.com/bnema/secreport-cli/internal/ports"
	"github.com/bnema/secreport-cli/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestSubmissionServiceRequiresSourceBeforeNetwork(t *testing.T) {
	gateway := mocks.NewReportGateway(t)
	sessions := newStateRepo(t)
	require.NoError(t, sessions.Save(context.Background(), domain.Session{UserEmail: "a@b.com"}))
	service := NewSubmissionService(gateway, sessions, mocks.NewSecretStore(t), fixedClock(), nil)

	_, err := service.Submit(context.Background(), SubmitRequest{WebsiteURL: " ", GithubURL: "", Details: "scan it"})
	require.ErrorIs(t, err, domain.ErrMissingSource)
	gateway.AssertNotCalled(t, "SubmitForm", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmissionServiceRequiresSignedInUser(t *testing.T) {
	gateway := mocks.NewReportGateway(t)
	service := NewSubmissionService(gateway, newStateRepo(t), mocks.NewSecretStore(t), fixedClock(), nil)

	_, err := service.Submit(context.Background(), SubmitRequest{GithubURL: "https://github.com/acme/app"})
	require.ErrorIs(t, err, domain.ErrNotAuthenticated)
	gateway.AssertNotCalled(t, "SubmitForm", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmissionServicePersistsProcessID(t *testing.T) {
	gateway := mocks.NewReportGateway(t)
	secrets := mocks.NewSecretStore(t)
	sessions := newStateRepo(t)
	ref := TokenKey("a@b.com")
	require.NoError(t, sessions.Save(context.Background(), domain.Session{UserEmail: "a@b.com", TokenRef: ref}))
	service := NewSubmissionService(gateway, sessions, secrets, fixedClock(), nil)

	raw := json.RawMessage(`{"status":"success","data":{"token":"tok-9"}}`)
	secrets.On("Get", mockAnyContext(), ref).Return("bearer-tok", nil).Once()
	gateway.On("SubmitForm", mockAnyContext(), "bearer-tok", domain.SubmissionPayload{
		WebsiteURL: strPtr("https://acme.example"),
		Email:      "a@b.com",
		Prompt:     "check auth flows",
	}).Return(ports.SubmissionResponse{ID: "tok-9", Raw: raw}, nil).Once()

	result, err := service.Submit(context.Background(), SubmitRequest{WebsiteURL: "https://acme.example", Details: " check auth flows "})
	require.NoError(t, err)
	assert.Equal(t, "tok-9", result.ProcessID)
	assert.Equal(t, domain.RouteChat, result.Next)
	assert.JSONEq(t, string(raw), string(result.Raw))

	session, err := sessions.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-9", session.ProcessID)
	assert.Equal(t, testNow, session.UpdatedAt)
}

func TestSubmissionServiceMissingIDFails(t *testing.T) {
	gateway := mocks.NewReportGateway(t)
	sessions := newStateRepo(t)
	require.NoError(t, sessions.Save(context.Background(), domain.Session{UserEmail: "a@b.com", ProcessID: "old"}))
	service := NewSubmissionService(gateway, sessions, mocks.NewSecretStore(t), fixedClock(), nil)

	gateway.On("SubmitForm", mockAnyContext(), "", mock.Anything).Return(ports.SubmissionResponse{Raw: json.RawMessage(`{}`)}, nil).Once()

	_, err := service.Submit(context.Background(), SubmitRequest{GithubURL: "https://github.com/acme/app"})
	require.ErrorIs(t, err, domain.ErrMissingProcessID)
	require.ErrorIs(t, err, domain.ErrSubmissionFailed)

	session, err := sessions.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "old", session.ProcessID)
}

func TestSubmissionServiceFailureUsesServerDetail(t *testing.T) {
	gateway := mocks.NewReportGateway(t)
	sessions := newStateRepo(t)
	require.NoError(t, sessions.Save(context.Background(), domain.Session{UserEmail: "a@b.com"}))
	service := NewSubmissionService(gateway, sessions, mocks.NewSecretStore(t), fixedClock(), nil)

	gateway.On("SubmitForm", mockAnyContext(), "", mock.Anything).
		Return(ports.SubmissionResponse{}, &domain.RequestError{Op: "submit form", StatusCode: 422, Detail: "field required"}).Once()

	_, err := service.Submit(context.Background(), SubmitRequest{GithubURL: "https://github.com/acme/app"})
	require.ErrorIs(t, err, domain.ErrSubmissionFailed)
	assert.EqualError(t, err, "field required")
}
