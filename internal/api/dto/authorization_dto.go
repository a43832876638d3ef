package dto

import "github.com/spec-kit/registry-dashboard/internal/authz"

// AuthorizationsResponse describes what the caller may do.
type AuthorizationsResponse struct {
	Category authz.StaffCategory `json:"category"`
	Actions  []authz.Action      `json:"actions"`
	Roles    []string            `json:"roles"`
}

// ActionDecisionResponse answers a single authorization question.
type ActionDecisionResponse struct {
	Action     authz.Action `json:"action"`
	Authorized bool         `json:"authorized"`
}
