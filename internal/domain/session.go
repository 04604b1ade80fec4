package domain

import (
	"strings"
	"time"
)

type Session struct {
	UserEmail string
	ProcessID string
	// TokenRef points to a secret-store entry holding the bearer access token.
	TokenRef  string
	ExpiresAt time.Time
	UpdatedAt time.Time
}

func (s Session) Authenticated() bool {
	return strings.TrimSpace(s.UserEmail) != ""
}

// CanFetchSummary reports whether both identifiers a summary lookup needs are present.
func (s Session) CanFetchSummary() bool {
	return s.Authenticated() && strings.TrimSpace(s.ProcessID) != ""
}

func (s Session) Expired(now time.Time) bool {
	if s.ExpiresAt.IsZero() {
		return false
	}

	return !s.ExpiresAt.After(now)
}

type Route string

const (
	RouteHome     Route = "home"
	RouteLogin    Route = "login"
	RouteSubmit   Route = "submit"
	RouteChat     Route = "chat"
	RouteSettings Route = "settings"
)

func (r Route) Command() string {
	switch r {
	case RouteHome:
		return "sr home"
	case RouteLogin:
		return "sr login"
	case RouteSubmit:
		return "sr submit"
	case RouteChat:
		return "sr chat"
	case RouteSettings:
		return "sr settings show"
	default:
		return ""
	}
}
