// Package authsession owns the authenticated-session lifecycle for
// applications built on the Exyconn auth platform.
//
// A Store is the single source of truth for the current user, tenant and
// role. On construction it hydrates synchronously from a durable key-value
// Storage (so cached credentials render optimistically before any network
// call), then reconciles against the remote identity service when
// AutoFetch is enabled. Every state transition publishes an immutable
// Session snapshot to subscribers.
//
//	store, err := authsession.New(authsession.Config{
//	    APIAuthBaseURL:   "https://auth.example.com",
//	    UIAuthURL:        "https://id.example.com",
//	    APIKey:           apiKey,
//	    AutoFetch:        true,
//	    StorageKeyPrefix: "exyconn_",
//	})
//
//	unsubscribe := store.Subscribe(func(s authsession.Session) {
//	    // re-render on every transition
//	})
//	defer unsubscribe()
//
//	if store.HasPermission("billing:view") { ... }
//
// # Lifecycle
//
// SetAuthToken persists a token and triggers the user and role fetches
// concurrently; an empty token is a full logout. Logout clears local state
// and durable storage synchronously, then notifies the service
// best-effort - local state never stays authenticated pending a network
// round trip. A generation counter guards refreshes against interleaved
// logouts: a refresh that resolves after the session it started under was
// closed drops its result instead of resurrecting the session.
//
// Role-fetch failures are isolated: the role is cleared and a warning
// logged, but the session stays authenticated. User-fetch failures are
// terminal for the session and surface through Session.Error and the
// OnAuthError callback.
//
// # Storage
//
// Storage is a plain string key-value interface that never errors;
// MemoryStorage is the default, NoopStorage keeps the store inert in
// non-interactive contexts, and RedisStorage persists server-side. The
// tenant api key lives in storage too but survives logout: its absence is
// a configuration error, not a runtime state.
package authsession
