package dto

import "github.com/spec-kit/registry-dashboard/internal/domain"

// BusinessResponse is a business record with its alert tags.
type BusinessResponse struct {
	Business *domain.Business         `json:"business"`
	Alerts   []domain.EntityAlertType `json:"alerts"`
}

// RestorationRequest payload.
type RestorationRequest struct {
	Type domain.RestorationType `json:"type" validate:"required,oneof=fullRestoration limitedRestoration limitedRestorationExtension limitedRestorationToFull"`
}

// RestorationResponse returns the draft filing id.
type RestorationResponse struct {
	FilingID int64 `json:"filingId"`
}
