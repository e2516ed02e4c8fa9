package domain

import "time"

// SettingsCredential is the single password record gating access to the
// webhook configuration surface.
type SettingsCredential struct {
	PasswordHash string
	UpdatedAt    time.Time
}
