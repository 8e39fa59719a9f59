package guard

import (
	"net/http"

	"github.com/exyconn/authkit/pkg/authsession"
	"github.com/exyconn/authkit/pkg/rbac"
)

// SessionSource supplies the session snapshot guards gate on.
// *authsession.Store satisfies it.
type SessionSource interface {
	Snapshot() authsession.Session
}

// Predicate decides whether a session passes a guard. Predicates must be
// pure: guards branch on the snapshot and never mutate state, so stacking
// them is order-independent.
type Predicate func(s authsession.Session) bool

// Guard wraps a handler with a gating predicate: the loading handler runs
// while the session is loading, the denied handler when the predicate
// fails, the wrapped handler otherwise.
func Guard(src SessionSource, allow Predicate, opts ...Option) func(next http.Handler) http.Handler {
	cfg := defaultOptions()
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := src.Snapshot()
			switch {
			case session.IsLoading:
				cfg.loading.ServeHTTP(w, r)
			case !allow(session):
				cfg.denied.ServeHTTP(w, r)
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}

// RequireAuth passes authenticated sessions only.
func RequireAuth(src SessionSource, opts ...Option) func(next http.Handler) http.Handler {
	return Guard(src, func(s authsession.Session) bool {
		return s.IsAuthenticated
	}, opts...)
}

// RequireRole passes sessions whose role slug matches, with the user
// record's embedded role as fallback.
func RequireRole(src SessionSource, slug string, opts ...Option) func(next http.Handler) http.Handler {
	return Guard(src, func(s authsession.Session) bool {
		var userRole string
		if s.User != nil {
			userRole = s.User.Role
		}
		return rbac.HasRole(s.Role, userRole, slug)
	}, opts...)
}

// RequirePermission passes sessions whose role grants the
// "resource:action" permission.
func RequirePermission(src SessionSource, permission string, opts ...Option) func(next http.Handler) http.Handler {
	return Guard(src, func(s authsession.Session) bool {
		return rbac.HasPermission(s.Role, permission)
	}, opts...)
}

// RequireAnyPermission passes sessions granting at least one of the
// permissions.
func RequireAnyPermission(src SessionSource, permissions []string, opts ...Option) func(next http.Handler) http.Handler {
	return Guard(src, func(s authsession.Session) bool {
		return rbac.HasAnyPermission(s.Role, permissions...)
	}, opts...)
}

// RequireAllPermissions passes sessions granting every one of the
// permissions.
func RequireAllPermissions(src SessionSource, permissions []string, opts ...Option) func(next http.Handler) http.Handler {
	return Guard(src, func(s authsession.Session) bool {
		return rbac.HasAllPermissions(s.Role, permissions...)
	}, opts...)
}
