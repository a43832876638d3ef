package domain

import "time"

// Affiliation links an account to a business it manages.
type Affiliation struct {
	ID                 string
	AccountID          string
	BusinessIdentifier string
	Nickname           string
	CreatedBy          string
	CreatedAt          time.Time
}

// AccountAuthorization holds extra role tags granted to an account.
type AccountAuthorization struct {
	AccountID string
	Roles     []string
	UpdatedAt time.Time
}
