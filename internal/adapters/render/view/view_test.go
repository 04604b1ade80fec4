package view

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/bnema/secreport-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderHomeSignedOut(t *testing.T) {
	output, err := Render(HomePage{})
	require.NoError(t, err)
	assert.Contains(t, output, "Security Report")
	assert.Contains(t, output, "Not signed in.")
	assert.Contains(t, output, "sr login")
	assert.NotContains(t, output, "sr submit")
}

func TestRenderHomeSignedIn(t *testing.T) {
	now := time.Date(2026, 2, 14, 11, 0, 0, 0, time.UTC)

	output, err := Render(HomePage{
		Session: domain.Session{UserEmail: "a@b.com", ProcessID: "p-7", ExpiresAt: now.Add(-time.Minute)},
		Now:     now,
	})
	require.NoError(t, err)
	assert.Contains(t, output, "signed in as: a@b.com")
	assert.Contains(t, output, "active report: p-7")
	assert.Contains(t, output, "session expired")
	assert.Contains(t, output, "sr submit")
	assert.Contains(t, output, "sr chat")
	assert.Contains(t, output, "sr settings show")
}

func TestRenderSummaryPlaceholder(t *testing.T) {
	output, err := Render(SummaryPage{Summary: domain.Summary{ProcessID: "p-1", Content: domain.SummaryPlaceholder}})
	require.NoError(t, err)
	assert.Contains(t, output, "process: p-1")
	assert.Contains(t, output, "No summary available.")
}

func TestRenderSummaryContent(t *testing.T) {
	output, err := Render(SummaryPage{Summary: domain.Summary{ProcessID: "p-1", Content: "1. SQL injection in /login"}})
	require.NoError(t, err)
	assert.Contains(t, output, "1. SQL injection in /login")
}

func TestRenderTranscript(t *testing.T) {
	at := time.Date(2026, 2, 14, 9, 5, 0, 0, time.UTC)

	output, err := Render(TranscriptPage{Messages: []domain.ChatMessage{
		{ID: "1", Content: domain.ChatGreeting, Timestamp: at},
		{ID: "2", Content: "what is CSRF?", IsUser: true, Timestamp: at},
	}})
	require.NoError(t, err)
	assert.Contains(t, output, "assistant 09:05")
	assert.Contains(t, output, "Hello! How can I help you today?")
	assert.Contains(t, output, "you 09:05")
	assert.Contains(t, output, "what is CSRF?")
}

func TestRenderExplanation(t *testing.T) {
	output, err := Render(ExplanationPage{
		DisplayText: "XSS\n\nUrdu Translation:\nیہ ایک خامی ہے",
		Duration:    1530 * time.Millisecond,
		AudioPath:   "/tmp/explain.mp3",
	})
	require.NoError(t, err)
	assert.Contains(t, output, "Urdu Translation:")
	assert.Contains(t, output, "audio ready (1.5s)")
	assert.Contains(t, output, "saved to: /tmp/explain.mp3")
}

func TestRenderSettings(t *testing.T) {
	output, err := Render(SettingsPage{Settings: domain.Settings{Name: "Ayesha", Notifications: true}})
	require.NoError(t, err)
	assert.Contains(t, output, "name: Ayesha")
	assert.Contains(t, output, "email: -")
	assert.Contains(t, output, "notifications: on")
	assert.Contains(t, output, "two-factor: off")
}

func TestRenderStatusAndSubmission(t *testing.T) {
	output, err := Render(StatusPage{ProcessID: "p-1", Status: domain.ProcessStatus{Status: "running"}})
	require.NoError(t, err)
	assert.Contains(t, output, "status: running")

	output, err = Render(SubmissionPage{ProcessID: "p-1", Next: domain.RouteChat})
	require.NoError(t, err)
	assert.Contains(t, output, "process id: p-1")
	assert.Contains(t, output, "next: sr chat")
}

func TestRenderNilPage(t *testing.T) {
	_, err := Render(nil)
	require.Error(t, err)
}

func TestFormatRaw(t *testing.T) {
	raw := json.RawMessage(`{"status":"success","data":{"token":"p-1"}}`)

	out, err := FormatRaw(raw, "json")
	require.NoError(t, err)
	assert.Contains(t, out, "\"token\": \"p-1\"")

	out, err = FormatRaw(raw, "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "status: success")
	assert.Contains(t, out, "token: p-1")

	_, err = FormatRaw(raw, "xml")
	require.Error(t, err)

	out, err = FormatRaw(nil, "json")
	require.NoError(t, err)
	assert.Empty(t, out)
}
