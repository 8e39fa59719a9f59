package rbac

// PermissionSeparator joins resource and action into a permission key (e.g., "billing:view").
const PermissionSeparator = ":"

// AccessType represents the configured strength of a permission grant.
// It exists only in the configuration/editor domain; runtime checks consume
// the pre-resolved boolean form (see Permission.Allowed).
type AccessType string

const (
	// AccessAllow grants the permission.
	AccessAllow AccessType = "ALLOW"
	// AccessDeny revokes the permission. DENY is an absolute override:
	// it wins over any other grant for the same permission key.
	AccessDeny AccessType = "DENY"
	// AccessReadOnly grants the permission with a read-only UI hint.
	// The evaluator does not distinguish it from FULL; callers needing
	// read/write separation must check the action themselves.
	AccessReadOnly AccessType = "READ_ONLY"
	// AccessFull grants the permission without restriction.
	AccessFull AccessType = "FULL"
)

// Valid reports whether the access type is one of the known values.
func (t AccessType) Valid() bool {
	switch t {
	case AccessAllow, AccessDeny, AccessReadOnly, AccessFull:
		return true
	}
	return false
}

// Grants reports whether the access type resolves to an allowed permission.
func (t AccessType) Grants() bool {
	switch t {
	case AccessAllow, AccessReadOnly, AccessFull:
		return true
	}
	return false
}

// Permission is the wire-form permission served to clients: the AccessType
// taxonomy collapsed into a single pre-resolved flag.
type Permission struct {
	Resource string `json:"resource"`
	Action   string `json:"action"`
	Allowed  bool   `json:"allowed"`
}

// Key returns the "resource:action" identifier for the permission.
func (p Permission) Key() string {
	return p.Resource + PermissionSeparator + p.Action
}

// GroupPermission is the editor-form permission as configured inside an
// access group, carrying the full AccessType instead of a boolean.
type GroupPermission struct {
	PermissionID string     `json:"permission_id"`
	Resource     string     `json:"resource"`
	Action       string     `json:"action"`
	AccessType   AccessType `json:"access_type"`
}

// Key returns the "resource:action" identifier for the permission.
func (p GroupPermission) Key() string {
	return p.Resource + PermissionSeparator + p.Action
}

// AccessGroup is a named bundle of permissions scoped to a feature module.
// Groups form a library of available permissions, independent of any role.
type AccessGroup struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Permissions []GroupPermission `json:"permissions"`
}

// GroupAssociation attaches an access group to a role. A disabled
// association denies every permission under the group regardless of the
// individual access types.
type GroupAssociation struct {
	Group   AccessGroup `json:"group"`
	Enabled bool        `json:"enabled"`
}

// Role is the editor-form role definition: a slug, a display name and a set
// of access group associations.
type Role struct {
	Slug   string             `json:"slug"`
	Name   string             `json:"name"`
	Groups []GroupAssociation `json:"groups"`
}

// ResolvedRole is what the identity service serves to clients: the role with
// its access groups flattened into wire-form permissions.
type ResolvedRole struct {
	Slug        string       `json:"slug"`
	Name        string       `json:"name"`
	Permissions []Permission `json:"permissions"`
	SuperAdmin  bool         `json:"super_admin,omitempty"`
}
