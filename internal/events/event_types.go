package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAffiliationAdded        EventType = "affiliation_added"
	EventAffiliationRemoved      EventType = "affiliation_removed"
	EventAuthorizationsChanged   EventType = "authorizations_changed"
	EventRestorationDraftCreated EventType = "restoration_draft_created"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	SubjectID string `json:"subject_id"`
	Username  string `json:"username,omitempty"`
	Category  string `json:"category,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	AccountID string      `json:"account_id,omitempty"`
	Business  string      `json:"business_identifier,omitempty"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// NewEvent stamps an event with a fresh id and the current time.
func NewEvent(eventType EventType, actor Actor, accountID, business string, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		AccountID: accountID,
		Business:  business,
		Actor:     actor,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// AffiliationPayload payload.
type AffiliationPayload struct {
	AffiliationID string `json:"affiliation_id"`
	Nickname      string `json:"nickname,omitempty"`
	WithoutAuth   bool   `json:"without_auth"`
}

// AuthorizationsChangedPayload payload.
type AuthorizationsChangedPayload struct {
	Roles []string `json:"roles"`
}

// RestorationDraftPayload payload.
type RestorationDraftPayload struct {
	FilingID        int64  `json:"filing_id"`
	RestorationType string `json:"restoration_type"`
}
