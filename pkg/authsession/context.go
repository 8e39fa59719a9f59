package authsession

import "context"

// contextKey is a private type for context keys to avoid collisions.
type contextKey struct{ name string }

func (c contextKey) String() string { return c.name }

var storeContextKey = &contextKey{name: "authsession_store"}

// WithContext attaches the store to the context, the provider boundary the
// rest of the application consumes it through.
func WithContext(ctx context.Context, store *Store) context.Context {
	return context.WithValue(ctx, storeContextKey, store)
}

// FromContext returns the store attached to the context.
func FromContext(ctx context.Context) (*Store, bool) {
	store, ok := ctx.Value(storeContextKey).(*Store)
	return store, ok && store != nil
}

// MustFromContext returns the store or panics. Accessing the store outside
// a context it was attached to is a programmer error, so it fails fast and
// loud rather than degrading at runtime.
func MustFromContext(ctx context.Context) *Store {
	store, ok := FromContext(ctx)
	if !ok {
		panic("authsession: store must be used within a context created by WithContext")
	}
	return store
}
