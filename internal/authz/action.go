package authz

// Action names an operation whose permission is checked. The string values are
// stable identifiers shared with the dashboard UI.
type Action string

const (
	ActionAddEntityNoAuthentication Action = "ADD_ENTITY_NO_AUTHENTICATION"
	ActionStaffDashboard            Action = "STAFF_DASHBOARD"
	ActionManageOtherOrganization   Action = "MANAGE_OTHER_ORGANIZATION"
	ActionRestoreOrReinstate        Action = "RESTORE_OR_REINSTATE"
)

var allActions = []Action{
	ActionAddEntityNoAuthentication,
	ActionStaffDashboard,
	ActionManageOtherOrganization,
	ActionRestoreOrReinstate,
}

// AllActions returns every known action in declaration order.
func AllActions() []Action {
	return append([]Action(nil), allActions...)
}

// ParseAction maps an identifier to a known action.
func ParseAction(s string) (Action, bool) {
	for _, a := range allActions {
		if string(a) == s {
			return a, true
		}
	}
	return "", false
}
