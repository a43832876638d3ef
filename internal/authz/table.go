package authz

// Table maps each staff category to the actions it may perform.
// A Table is never mutated after construction.
type Table struct {
	actions map[StaffCategory][]Action
}

// NewTable copies the given mapping into an immutable table. Categories missing
// from the mapping get an empty action set.
func NewTable(m map[StaffCategory][]Action) *Table {
	actions := map[StaffCategory][]Action{
		CategoryBusinessRegistryStaff: {},
		CategoryMaximusStaff:          {},
		CategoryContactCentreStaff:    {},
		CategorySbcFieldOfficeStaff:   {},
		CategoryDefault:               {},
	}
	for category, list := range m {
		actions[category] = append([]Action(nil), list...)
	}
	return &Table{actions: actions}
}

// DefaultTable holds the current business rules.
func DefaultTable() *Table {
	staffActions := []Action{
		ActionAddEntityNoAuthentication,
		ActionStaffDashboard,
		ActionManageOtherOrganization,
		ActionRestoreOrReinstate,
	}
	return NewTable(map[StaffCategory][]Action{
		CategoryBusinessRegistryStaff: staffActions,
		CategorySbcFieldOfficeStaff:   staffActions,
		CategoryMaximusStaff:          {},
		CategoryContactCentreStaff:    {},
		CategoryDefault:               {},
	})
}

// IsPermitted reports whether the category may perform the action. Unknown
// categories and actions are denied.
func (t *Table) IsPermitted(category StaffCategory, action Action) bool {
	if t == nil {
		return false
	}
	for _, a := range t.actions[category] {
		if a == action {
			return true
		}
	}
	return false
}

// Permitted returns a copy of the category's actions in table order.
func (t *Table) Permitted(category StaffCategory) []Action {
	if t == nil {
		return []Action{}
	}
	return append([]Action{}, t.actions[category]...)
}
