// Package identity is the HTTP client for the Exyconn identity service and
// the server-side middleware sharing its token-validation contract.
//
// Every request carries the tenant API key (X-Api-Key); user-scoped
// operations additionally carry the user's bearer token. Failures are
// mapped onto a small taxonomy: ErrAuthentication for invalid or expired
// tokens, ErrAuthorization for invalid tenant keys, and plain APIError
// values carrying the response-provided message otherwise. Transport
// failures collapse into the same message surface; retry policy belongs to
// the injected http.Client.
//
//	client, err := identity.New("https://auth.example.com", apiKey,
//	    identity.WithHeader("X-App-Version", "1.4.2"),
//	)
//
//	current, err := client.FetchCurrentUser(ctx, token)
//	role, err := client.FetchCurrentRole(ctx, token)
//
// Server-side, Middleware authenticates incoming requests either remotely
// (ValidateToken, with a short-lived cache) or locally when the HS256
// signing secret is shared:
//
//	r.Use(identity.Middleware(client, identity.MiddlewareConfig{
//	    CacheTTL: time.Minute,
//	}))
package identity
