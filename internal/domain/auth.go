package domain

import "time"

// Identity describes the authenticated caller as asserted by the bearer token.
type Identity struct {
	SubjectID string
	Username  string
	AccountID string
	Roles     []string
	ExpiresAt time.Time
}
