package domain

import "time"

type Settings struct {
	Name          string
	Email         string
	Notifications bool
	EmailUpdates  bool
	TwoFactor     bool
	UpdatedAt     time.Time
}

func DefaultSettings() Settings {
	return Settings{Notifications: true}
}
