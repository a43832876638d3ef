package alerts

import (
	"time"

	"github.com/spec-kit/registry-dashboard/internal/domain"
)

const (
	stateLiquidation = "LIQUIDATION"
	stateDissolution = "DISSOLUTION"
)

// For derives the alert tags shown next to a business. The result follows
// domain.EntityAlertTypes order and never repeats a tag.
func For(b *domain.Business, now time.Time) []domain.EntityAlertType {
	if b == nil {
		return []domain.EntityAlertType{}
	}

	found := make(map[domain.EntityAlertType]bool, len(domain.EntityAlertTypes))
	if b.AdminFreeze {
		found[domain.AlertFrozen] = true
	}
	if b.GoodStanding != nil && !*b.GoodStanding {
		found[domain.AlertBadStanding] = true
	}
	if b.InLiquidation || b.State == stateLiquidation {
		found[domain.AlertLiquidation] = true
	}
	if b.InDissolution || b.State == stateDissolution {
		found[domain.AlertDissolution] = true
	}
	if b.ExpiryDate != nil && b.ExpiryDate.Before(now) {
		found[domain.AlertExpired] = true
	}
	for _, f := range b.PendingFilings {
		switch f.Status {
		case domain.FilingStatusChangeRequested:
			found[domain.AlertChangeRequested] = true
		case domain.FilingStatusPending, domain.FilingStatusPaid, domain.FilingStatusApproved:
			if isFutureEffective(f, now) {
				found[domain.AlertFutureEffective] = true
			} else {
				found[domain.AlertProcessing] = true
			}
		}
	}

	out := make([]domain.EntityAlertType, 0, len(found))
	for _, t := range domain.EntityAlertTypes {
		if found[t] {
			out = append(out, t)
		}
	}
	return out
}

func isFutureEffective(f domain.Filing, now time.Time) bool {
	if f.IsFutureEffective {
		return true
	}
	return f.EffectiveDate != nil && f.EffectiveDate.After(now)
}
