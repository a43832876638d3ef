package domain

// EntityAlertType tags a business with a status shown on the dashboard.
type EntityAlertType string

const (
	AlertFrozen          EntityAlertType = "FROZEN"
	AlertBadStanding     EntityAlertType = "BAD_STANDING"
	AlertLiquidation     EntityAlertType = "LIQUIDATION"
	AlertDissolution     EntityAlertType = "DISSOLUTION"
	AlertProcessing      EntityAlertType = "PROCESSING"
	AlertExpired         EntityAlertType = "EXPIRED"
	AlertFutureEffective EntityAlertType = "FUTURE_EFFECTIVE"
	AlertChangeRequested EntityAlertType = "CHANGE_REQUESTED"
)

// EntityAlertTypes lists every alert type in display order.
var EntityAlertTypes = []EntityAlertType{
	AlertFrozen,
	AlertBadStanding,
	AlertLiquidation,
	AlertDissolution,
	AlertProcessing,
	AlertExpired,
	AlertFutureEffective,
	AlertChangeRequested,
}

// Valid reports whether t is a known alert type.
func (t EntityAlertType) Valid() bool {
	for _, known := range EntityAlertTypes {
		if t == known {
			return true
		}
	}
	return false
}
