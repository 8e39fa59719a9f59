// Package rbac models the Exyconn role/permission hierarchy and provides
// pure, stateless permission evaluation.
//
// The platform configures permissions in two representations of the same
// concept:
//
//   - Editor form: roles reference AccessGroups, each association carrying
//     its own permission list with a full AccessType (ALLOW, DENY,
//     READ_ONLY, FULL) and an enabled flag. This is what the admin UI edits.
//   - Wire form: a flat list of {resource, action, allowed} records, the
//     AccessType taxonomy pre-resolved into a single boolean. This is what
//     the identity service serves to clients and what runtime checks
//     consume.
//
// Resolve converts editor form to wire form with explicit precedence:
// disabled group associations deny everything under them, and DENY wins
// over any other grant for the same permission key. READ_ONLY and FULL
// both resolve to allowed=true; the distinction is a UI hint only.
//
// The evaluator functions fail closed and operate on "resource:action"
// permission keys:
//
//	resolved := rbac.Resolve(role)
//	if rbac.HasPermission(&resolved, "billing:view") {
//	    // render billing section
//	}
//
//	// Any-of / all-of helpers short-circuit:
//	rbac.HasAnyPermission(&resolved, "billing:view", "billing:edit")
//	rbac.HasAllPermissions(&resolved, "users:list", "users:edit")
package rbac
