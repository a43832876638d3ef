package authz

// StaffCategory is the mutually exclusive privilege tier of a caller.
type StaffCategory string

const (
	CategoryBusinessRegistryStaff StaffCategory = "BUSINESS_REGISTRY_STAFF"
	CategoryMaximusStaff          StaffCategory = "MAXIMUS_STAFF"
	CategoryContactCentreStaff    StaffCategory = "CONTACT_CENTRE_STAFF"
	CategorySbcFieldOfficeStaff   StaffCategory = "SBC_FIELD_OFFICE_STAFF"
	CategoryDefault               StaffCategory = "DEFAULT"
)

// Role is an opaque tag granted to a session by the identity provider.
type Role string

const (
	RoleStaff              Role = "staff"
	RoleMaximusStaff       Role = "maximus_staff"
	RoleContactCentreStaff Role = "contact_centre_staff"
	RoleSbcStaff           Role = "sbc_staff"
)

type precedenceRule struct {
	role     Role
	category StaffCategory
}

// precedence is evaluated top to bottom; the first role present wins.
var precedence = []precedenceRule{
	{role: RoleStaff, category: CategoryBusinessRegistryStaff},
	{role: RoleMaximusStaff, category: CategoryMaximusStaff},
	{role: RoleContactCentreStaff, category: CategoryContactCentreStaff},
	{role: RoleSbcStaff, category: CategorySbcFieldOfficeStaff},
}

// ResolveCategory classifies a role set into exactly one staff category.
// Empty or unrecognised role sets resolve to CategoryDefault.
func ResolveCategory(roles RoleSet) StaffCategory {
	for _, rule := range precedence {
		if roles.Has(rule.role) {
			return rule.category
		}
	}
	return CategoryDefault
}
