package authsession

import (
	"github.com/google/uuid"

	"github.com/exyconn/authkit/pkg/identity"
	"github.com/exyconn/authkit/pkg/rbac"
)

// Session is the in-memory authenticated-state record owned by the Store.
// Snapshots handed to subscribers and callers are value copies; mutating
// them has no effect on the store.
//
// Invariants upheld by the Store for every published snapshot:
//   - IsAuthenticated is never true while User is nil.
//   - IsLoading is false once every in-flight fetch has settled, whether it
//     succeeded or failed.
type Session struct {
	// ID correlates log lines and snapshots of one store instance. It has
	// no meaning to the identity service.
	ID uuid.UUID `json:"id"`

	User         *identity.User         `json:"user,omitempty"`
	Organization *identity.Organization `json:"organization,omitempty"`
	Role         *rbac.ResolvedRole     `json:"role,omitempty"`

	// IsAuthenticated is true iff a token is present and the last identity
	// fetch (or the hydrated cache) yielded a user.
	IsAuthenticated bool `json:"is_authenticated"`

	// IsLoading is true while a user or role fetch is in flight.
	IsLoading bool `json:"is_loading"`

	// Error holds the last refreshUser failure message, or empty.
	Error string `json:"error,omitempty"`
}

// clone returns a value copy with the pointer fields duplicated, so a
// snapshot cannot observe later store mutations.
func (s Session) clone() Session {
	out := s
	if s.User != nil {
		user := *s.User
		out.User = &user
	}
	if s.Organization != nil {
		org := *s.Organization
		out.Organization = &org
	}
	if s.Role != nil {
		role := *s.Role
		role.Permissions = append([]rbac.Permission(nil), s.Role.Permissions...)
		out.Role = &role
	}
	return out
}
