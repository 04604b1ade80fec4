package application

import (
	"time"

	"github.com/bnema/secreport-cli/internal/domain"
)

type AuthRequest struct {
	Mode            domain.AuthMode
	Email           string
	Password        string
	ConfirmPassword string
}

type SubmitRequest struct {
	WebsiteURL string
	GithubURL  string
	Details    string
}

type WaitOptions struct {
	Interval time.Duration
	Timeout  time.Duration
}

type SettingsUpdate struct {
	Name          *string
	Email         *string
	Notifications *bool
	EmailUpdates  *bool
	TwoFactor     *bool
}
