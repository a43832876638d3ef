package authz

// RoleSource is a read-only accessor for the role set of the current session.
type RoleSource interface {
	RoleSet() RoleSet
}

// RoleSourceFunc adapts a function to RoleSource.
type RoleSourceFunc func() RoleSet

// RoleSet implements RoleSource.
func (f RoleSourceFunc) RoleSet() RoleSet {
	if f == nil {
		return RoleSet{}
	}
	return f()
}

// StaticRoles is a RoleSource over a fixed set of tags.
type StaticRoles RoleSet

// RoleSet implements RoleSource.
func (s StaticRoles) RoleSet() RoleSet {
	return RoleSet(s)
}

// Decision is the outcome of a single authorization check.
type Decision struct {
	Action   Action
	Category StaffCategory
	Allowed  bool
}

// Authorizer combines category resolution with table lookup. It holds no
// per-call state and is safe for concurrent use.
type Authorizer struct {
	table *Table
}

// NewAuthorizer builds an authorizer over table, or DefaultTable when nil.
func NewAuthorizer(table *Table) *Authorizer {
	if table == nil {
		table = DefaultTable()
	}
	return &Authorizer{table: table}
}

// IsAuthorized reports whether the session behind src may perform action.
// A nil source is treated as an empty role set.
func (a *Authorizer) IsAuthorized(src RoleSource, action Action) bool {
	return a.Decide(src, action).Allowed
}

// Decide evaluates action for src and reports the resolved category.
func (a *Authorizer) Decide(src RoleSource, action Action) Decision {
	category := a.Category(src)
	return Decision{
		Action:   action,
		Category: category,
		Allowed:  a.table.IsPermitted(category, action),
	}
}

// Category resolves the staff category of src.
func (a *Authorizer) Category(src RoleSource) StaffCategory {
	var roles RoleSet
	if src != nil {
		roles = src.RoleSet()
	}
	return ResolveCategory(roles)
}

// Permitted lists the actions available to src.
func (a *Authorizer) Permitted(src RoleSource) []Action {
	return a.table.Permitted(a.Category(src))
}
