// Package guard provides declarative HTTP middleware gating handlers on
// the authenticated session: authentication, role match and permission
// checks, each with configurable loading and denied placeholders.
//
// Guards are pure render-time branching over an immutable session
// snapshot - they never mutate state, so composition is order-independent:
//
//	protected := guard.RequireAuth(store,
//	    guard.WithDeniedHandler(guard.RedirectToLogin("https://id.example.com/login")),
//	)(guard.RequirePermission(store, "billing:view")(billingHandler))
//
// While the store is still resolving the session, guards serve the loading
// handler (503 with Retry-After by default) instead of deciding on
// incomplete state.
package guard
