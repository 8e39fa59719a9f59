package identity

import (
	"time"

	"github.com/exyconn/authkit/pkg/rbac"
)

// User is the identity record served by the auth platform.
type User struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	FirstName     string    `json:"first_name,omitempty"`
	LastName      string    `json:"last_name,omitempty"`
	Role          string    `json:"role,omitempty"`
	EmailVerified bool      `json:"email_verified"`
	Provider      string    `json:"provider,omitempty"`
	CreatedAt     time.Time `json:"created_at,omitzero"`
	UpdatedAt     time.Time `json:"updated_at,omitzero"`
}

// Organization is the tenant record the user belongs to.
type Organization struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	ContactEmail string    `json:"contact_email,omitempty"`
	LogoURL      string    `json:"logo_url,omitempty"`
	CreatedAt    time.Time `json:"created_at,omitzero"`
}

// CurrentUser is the response of the current-user endpoint.
type CurrentUser struct {
	User         User          `json:"user"`
	Organization *Organization `json:"organization,omitempty"`
}

// CurrentRole is the response of the current-role endpoint: the role slug
// plus the resolved role document with its flattened wire-form permissions.
type CurrentRole struct {
	Role        string             `json:"role"`
	RoleDetails *rbac.ResolvedRole `json:"role_details,omitempty"`
}

// Validation is the response of the token-validation endpoint. The same
// shape is shared with server-side request-authenticating middleware.
type Validation struct {
	Valid bool   `json:"valid"`
	User  *User  `json:"user,omitempty"`
	Error string `json:"error,omitempty"`
}
