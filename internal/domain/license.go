package domain

import "time"

// LicenseStatus enumerates the lifecycle states of a license.
type LicenseStatus string

const (
	LicenseActive   LicenseStatus = "active"
	LicenseExpired  LicenseStatus = "expired"
	LicenseRevoked  LicenseStatus = "revoked"
	LicenseInactive LicenseStatus = "inactive"
)

// License is the credential record a client presents to use the API.
// TokensUsed counts lifetime token consumption; TokenLimit of 0 means
// unlimited.
type License struct {
	ID         int64
	Key        string
	Status     LicenseStatus
	TokenLimit int64
	TokensUsed int64
	ExpiresAt  *time.Time
	CreatedAt  time.Time
}

// IsActive reports whether the license may be used right now.
func (l License) IsActive(now time.Time) bool {
	if l.Status != LicenseActive {
		return false
	}
	if l.ExpiresAt != nil && !now.Before(*l.ExpiresAt) {
		return false
	}
	return true
}

// OverBudget reports whether the configured token limit is exhausted.
func (l License) OverBudget() bool {
	return l.TokenLimit > 0 && l.TokensUsed >= l.TokenLimit
}
