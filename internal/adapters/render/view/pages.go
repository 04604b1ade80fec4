package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/bnema/secreport-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

type HomePage struct {
	Session domain.Session
	Now     time.Time
}

func (p HomePage) render(s styles) string {
	lines := []string{s.title.Render("Security Report")}

	if !p.Session.Authenticated() {
		lines = append(lines,
			s.empty.Render("Not signed in."),
			s.section.Render(commandList(s, domain.RouteLogin)),
		)
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	lines = append(lines, field(s, "signed in as", p.Session.UserEmail))
	if p.Session.ProcessID != "" {
		lines = append(lines, field(s, "active report", p.Session.ProcessID))
	} else {
		lines = append(lines, field(s, "active report", "none"))
	}
	if !p.Now.IsZero() && p.Session.Expired(p.Now) {
		lines = append(lines, s.warning.Render("session expired, sign in again"))
	}

	lines = append(lines, s.section.Render(commandList(s, domain.RouteSubmit, domain.RouteChat, domain.RouteSettings)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

type SubmissionPage struct {
	ProcessID string
	Next      domain.Route
}

func (p SubmissionPage) render(s styles) string {
	lines := []string{
		s.success.Render("Project submitted."),
		field(s, "process id", p.ProcessID),
	}
	if cmd := p.Next.Command(); cmd != "" {
		lines = append(lines, s.section.Render(s.header.Render("next:")+" "+s.command.Render(cmd)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

type SummaryPage struct {
	Summary domain.Summary
}

func (p SummaryPage) render(s styles) string {
	lines := []string{
		s.title.Render("Summary"),
		s.header.Render(fmt.Sprintf("process: %s", p.Summary.ProcessID)),
	}

	if !p.Summary.Available() {
		lines = append(lines, s.section.Render(s.empty.Render(domain.SummaryPlaceholder)))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	lines = append(lines, s.section.Render(p.Summary.Content))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

type StatusPage struct {
	ProcessID string
	Status    domain.ProcessStatus
}

func (p StatusPage) render(s styles) string {
	state := p.Status.Status
	if state == "" {
		state = "unknown"
	}

	lines := []string{
		field(s, "process", p.ProcessID),
		field(s, "status", state),
	}
	if p.Status.Message != "" {
		lines = append(lines, field(s, "message", p.Status.Message))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

type TranscriptPage struct {
	Messages []domain.ChatMessage
}

func (p TranscriptPage) render(s styles) string {
	if len(p.Messages) == 0 {
		return s.empty.Render("No messages yet.")
	}

	blocks := make([]string, 0, len(p.Messages))
	for _, message := range p.Messages {
		blocks = append(blocks, renderMessage(s, message))
	}

	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

// MessagePage renders a single transcript entry, used while a chat is live.
type MessagePage struct {
	Message domain.ChatMessage
}

func (p MessagePage) render(s styles) string {
	return renderMessage(s, p.Message)
}

func renderMessage(s styles, message domain.ChatMessage) string {
	who := s.assistant.Render("assistant")
	if message.IsUser {
		who = s.user.Render("you")
	}

	head := who
	if !message.Timestamp.IsZero() {
		head += " " + s.stamp.Render(message.Timestamp.Format("15:04"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, head, s.body.Render(message.Content))
}

type ExplanationPage struct {
	DisplayText string
	Duration    time.Duration
	AudioPath   string
}

func (p ExplanationPage) render(s styles) string {
	lines := []string{s.title.Render("Explanation"), s.section.Render(p.DisplayText)}

	audio := "audio ready"
	if p.Duration > 0 {
		audio = fmt.Sprintf("audio ready (%s)", p.Duration.Round(100*time.Millisecond))
	}
	lines = append(lines, s.section.Render(s.success.Render(audio)))
	if p.AudioPath != "" {
		lines = append(lines, field(s, "saved to", p.AudioPath))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

type SettingsPage struct {
	Settings domain.Settings
}

func (p SettingsPage) render(s styles) string {
	name := p.Settings.Name
	if name == "" {
		name = "-"
	}
	email := p.Settings.Email
	if email == "" {
		email = "-"
	}

	lines := []string{
		s.title.Render("Settings"),
		s.section.Render(s.header.Render("Profile")),
		field(s, "name", name),
		field(s, "email", email),
		s.section.Render(s.header.Render("Preferences")),
		field(s, "notifications", onOff(p.Settings.Notifications)),
		field(s, "email updates", onOff(p.Settings.EmailUpdates)),
		s.section.Render(s.header.Render("Security")),
		field(s, "two-factor", onOff(p.Settings.TwoFactor)),
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func field(s styles, label, value string) string {
	return s.label.Render(label+":") + " " + s.value.Render(value)
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func commandList(s styles, routes ...domain.Route) string {
	lines := make([]string, 0, len(routes))
	for _, route := range routes {
		lines = append(lines, "  "+s.command.Render(route.Command()))
	}

	return strings.Join(lines, "\n")
}
