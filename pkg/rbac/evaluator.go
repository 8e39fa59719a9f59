package rbac

// HasPermission reports whether the resolved role grants the permission
// identified by a "resource:action" key.
//
// The check fails closed: a nil role, an empty permission list or an unknown
// key all yield false. Only entries with a true pre-resolved flag grant
// access.
func HasPermission(role *ResolvedRole, permission string) bool {
	if role == nil || len(role.Permissions) == 0 {
		return false
	}
	for _, p := range role.Permissions {
		if p.Allowed && p.Key() == permission {
			return true
		}
	}
	return false
}

// HasAnyPermission reports whether the role grants at least one of the
// given permissions. Short-circuits on the first match. An empty list
// yields false.
func HasAnyPermission(role *ResolvedRole, permissions ...string) bool {
	for _, perm := range permissions {
		if HasPermission(role, perm) {
			return true
		}
	}
	return false
}

// HasAllPermissions reports whether the role grants every one of the given
// permissions. Short-circuits on the first miss. An empty list yields true.
func HasAllPermissions(role *ResolvedRole, permissions ...string) bool {
	for _, perm := range permissions {
		if !HasPermission(role, perm) {
			return false
		}
	}
	return true
}

// HasRole reports whether the role slug matches. The resolved role's slug
// takes precedence; the user record's embedded role field is the fallback,
// supporting legacy flat role assignment when no role document is
// resolvable.
func HasRole(role *ResolvedRole, userRole, slug string) bool {
	if role != nil && role.Slug != "" {
		return role.Slug == slug
	}
	return userRole != "" && userRole == slug
}
