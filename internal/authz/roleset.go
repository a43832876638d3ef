package authz

import "sort"

// RoleSet is an immutable set of role tags. The zero value is empty.
type RoleSet struct {
	roles map[Role]struct{}
}

// NewRoleSet builds a set from raw tags. Blank tags are ignored.
func NewRoleSet(tags ...string) RoleSet {
	if len(tags) == 0 {
		return RoleSet{}
	}
	roles := make(map[Role]struct{}, len(tags))
	for _, tag := range tags {
		if tag == "" {
			continue
		}
		roles[Role(tag)] = struct{}{}
	}
	return RoleSet{roles: roles}
}

// Has reports membership.
func (s RoleSet) Has(role Role) bool {
	_, ok := s.roles[role]
	return ok
}

// Len returns the number of distinct tags.
func (s RoleSet) Len() int {
	return len(s.roles)
}

// Union returns a new set holding the tags of both sets.
func (s RoleSet) Union(other RoleSet) RoleSet {
	if other.Len() == 0 {
		return s
	}
	if s.Len() == 0 {
		return other
	}
	roles := make(map[Role]struct{}, len(s.roles)+len(other.roles))
	for r := range s.roles {
		roles[r] = struct{}{}
	}
	for r := range other.roles {
		roles[r] = struct{}{}
	}
	return RoleSet{roles: roles}
}

// Strings returns the tags sorted, for logging and serialization.
func (s RoleSet) Strings() []string {
	out := make([]string, 0, len(s.roles))
	for r := range s.roles {
		out = append(out, string(r))
	}
	sort.Strings(out)
	return out
}
