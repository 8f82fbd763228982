package rbac

import "strings"

// Permission represents an atomic capability.
type Permission struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// PermissionSet is the normalized set of permissions granted to a user.
type PermissionSet map[string]struct{}

// NewPermissionSet normalizes names into a set.
func NewPermissionSet(names ...string) PermissionSet {
	set := make(PermissionSet, len(names))
	for _, n := range normalizePermissions(names) {
		set[n] = struct{}{}
	}
	return set
}

// Has reports whether perm is granted.
func (s PermissionSet) Has(perm string) bool {
	_, ok := s[strings.ToLower(strings.TrimSpace(perm))]
	return ok
}

// HasAny reports whether at least one of perms is granted.
func (s PermissionSet) HasAny(perms ...string) bool {
	for _, p := range perms {
		if s.Has(p) {
			return true
		}
	}
	return false
}

// HasAll reports whether every one of perms is granted.
func (s PermissionSet) HasAll(perms ...string) bool {
	for _, p := range perms {
		if !s.Has(p) {
			return false
		}
	}
	return true
}

// Names returns the granted permissions.
func (s PermissionSet) Names() []string {
	out := make([]string, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	return out
}
