package authsession

import (
	"context"
	"log/slog"

	"github.com/exyconn/authkit/pkg/identity"
)

// Transport is the slice of the identity service the store depends on.
// *identity.Client satisfies it; tests substitute a mock.
type Transport interface {
	FetchCurrentUser(ctx context.Context, token string) (*identity.CurrentUser, error)
	FetchCurrentRole(ctx context.Context, token string) (*identity.CurrentRole, error)
	NotifyLogout(ctx context.Context, token string) error
}

// Option is a functional option for configuring the Store.
type Option func(*Store)

// WithStorage sets the durable storage backend. Defaults to MemoryStorage;
// use NoopStorage for non-interactive contexts and RedisStorage for
// server-side persistence.
func WithStorage(storage Storage) Option {
	return func(s *Store) {
		if storage != nil {
			s.storage = storage
		}
	}
}

// WithTransport sets the identity service transport, replacing the default
// identity.Client built from the config.
func WithTransport(transport Transport) Option {
	return func(s *Store) {
		if transport != nil {
			s.transport = transport
		}
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithInitialURL hands the store the current navigable URL on construction.
// A magic-link token found in its query string is persisted and the URL
// with the token stripped is reported via CleanedURL.
func WithInitialURL(rawURL string) Option {
	return func(s *Store) {
		s.initialURL = rawURL
	}
}

// WithOnAuthSuccess registers a callback invoked after every successful
// user refresh, with a snapshot of the session.
func WithOnAuthSuccess(fn func(Session)) Option {
	return func(s *Store) {
		s.onAuthSuccess = fn
	}
}

// WithOnAuthError registers a callback invoked when a user refresh fails.
func WithOnAuthError(fn func(error)) Option {
	return func(s *Store) {
		s.onAuthError = fn
	}
}

// WithOnLogoutNotify registers an observer for the best-effort logout
// notification result. Logout itself always succeeds locally; this hook
// only makes the ignored network outcome visible.
func WithOnLogoutNotify(fn func(error)) Option {
	return func(s *Store) {
		s.onLogoutNotify = fn
	}
}
