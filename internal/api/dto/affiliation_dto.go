package dto

import (
	"time"

	"github.com/spec-kit/registry-dashboard/internal/domain"
)

// CreateAffiliationRequest payload.
type CreateAffiliationRequest struct {
	BusinessIdentifier string `json:"businessIdentifier" validate:"required,alphanum,min=2,max=15"`
	Nickname           string `json:"nickname" validate:"max=150"`
}

// AffiliationResponse is the API view of an affiliation.
type AffiliationResponse struct {
	ID                 string    `json:"id"`
	AccountID          string    `json:"accountId"`
	BusinessIdentifier string    `json:"businessIdentifier"`
	Nickname           string    `json:"nickname,omitempty"`
	CreatedBy          string    `json:"createdBy,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
}

// NewAffiliationResponse maps a domain affiliation.
func NewAffiliationResponse(a domain.Affiliation) AffiliationResponse {
	return AffiliationResponse{
		ID:                 a.ID,
		AccountID:          a.AccountID,
		BusinessIdentifier: a.BusinessIdentifier,
		Nickname:           a.Nickname,
		CreatedBy:          a.CreatedBy,
		CreatedAt:          a.CreatedAt,
	}
}

// NewAffiliationList maps a slice of affiliations.
func NewAffiliationList(items []domain.Affiliation) []AffiliationResponse {
	out := make([]AffiliationResponse, 0, len(items))
	for _, item := range items {
		out = append(out, NewAffiliationResponse(item))
	}
	return out
}
