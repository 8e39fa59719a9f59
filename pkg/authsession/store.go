package authsession

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/exyconn/authkit/pkg/identity"
	"github.com/exyconn/authkit/pkg/rbac"
)

// Store is the single source of truth for the authenticated session. It
// mediates between durable credential storage and the remote identity
// service, and publishes a snapshot to subscribers on every transition.
//
// All exported operations are safe for concurrent use. The store is
// single-writer by design; cross-process consistency of the durable
// storage is not guaranteed.
type Store struct {
	cfg       Config
	storage   Storage
	transport Transport
	logger    *slog.Logger

	onAuthSuccess  func(Session)
	onAuthError    func(error)
	onLogoutNotify func(error)

	initialURL string
	cleanedURL string

	mu      sync.Mutex
	session Session
	// generation invalidates in-flight refreshes: Logout and SetAuthToken
	// bump it, and a refresh that started under an older generation drops
	// its result instead of resurrecting a closed session.
	generation uint64
	// loading counts in-flight fetches; IsLoading mirrors loading > 0.
	loading     int
	subscribers map[uint64]func(Session)
	nextSubID   uint64
}

// New creates a Store, hydrates it synchronously from durable storage and,
// when AutoFetch is enabled and a token is present, starts the identity and
// role fetches in the background.
//
// Missing required config is a configuration error and fails construction.
func New(cfg Config, opts ...Option) (*Store, error) {
	if cfg.StorageKeyPrefix == "" {
		cfg.StorageKeyPrefix = DefaultConfig().StorageKeyPrefix
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Store{
		cfg:         cfg,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		session:     Session{ID: uuid.New()},
		subscribers: make(map[uint64]func(Session)),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.storage == nil {
		s.storage = NewMemoryStorage()
	}
	if s.transport == nil {
		client, err := identity.New(cfg.APIAuthBaseURL, cfg.APIKey, identity.WithHeaders(cfg.Headers))
		if err != nil {
			return nil, err
		}
		s.transport = client
	}

	s.logger = s.logger.With("session_id", s.session.ID)
	s.storage.Set(s.key(keyAPIKey), cfg.APIKey)

	// Magic-link handoff: pull a token out of the initial URL once, persist
	// it and remember the stripped URL for the host to restore.
	s.cleanedURL = s.initialURL
	if s.initialURL != "" {
		if token, cleaned := ExtractTokenFromURL(s.initialURL); token != "" {
			s.storage.Set(s.key(keyToken), token)
			s.cleanedURL = cleaned
		}
	}

	s.hydrate()

	token, _ := s.storage.Get(s.key(keyToken))
	if cfg.AutoFetch && token != "" {
		// Mark both fetches in flight before returning so the very first
		// snapshot already reports loading.
		s.loading = 2
		s.session.IsLoading = true
		go func() { _ = s.refreshUser(context.Background(), true) }()
		go func() { _ = s.refreshRole(context.Background(), true) }()
	}

	return s, nil
}

// hydrate restores the cached identity snapshot from durable storage so the
// UI can render optimistically before any network call resolves.
func (s *Store) hydrate() {
	token, _ := s.storage.Get(s.key(keyToken))

	if user := loadJSON[identity.User](s.storage, s.key(keyUser)); user != nil {
		s.session.User = user
	}
	if org := loadJSON[identity.Organization](s.storage, s.key(keyOrganization)); org != nil {
		s.session.Organization = org
	}
	if role := loadJSON[rbac.ResolvedRole](s.storage, s.key(keyRole)); role != nil {
		s.session.Role = role
	}

	s.session.IsAuthenticated = token != "" && s.session.User != nil
}

// RefreshUser fetches the current user and tenant from the identity service
// and reconciles the session against the result.
//
// On success the user and organization are populated, the error cleared and
// the snapshots cached to durable storage. On failure (application-level or
// transport, no distinction beyond the message) the user and organization
// are cleared in memory and in storage, IsAuthenticated drops to false and
// Session.Error carries the message.
//
// Without a token the session settles in the unauthenticated terminal state
// and no fetch is attempted.
func (s *Store) RefreshUser(ctx context.Context) error {
	return s.refreshUser(ctx, false)
}

func (s *Store) refreshUser(ctx context.Context, preloaded bool) error {
	s.mu.Lock()
	token, _ := s.storage.Get(s.key(keyToken))
	if token == "" {
		if preloaded {
			s.loading--
		}
		s.session.User = nil
		s.session.Organization = nil
		s.session.IsAuthenticated = false
		s.session.IsLoading = s.loading > 0
		snap, subs := s.publishLocked()
		s.mu.Unlock()
		s.notify(snap, subs)
		return nil
	}

	gen := s.generation
	if !preloaded {
		s.loading++
	}
	s.session.IsLoading = true
	snap, subs := s.publishLocked()
	s.mu.Unlock()
	s.notify(snap, subs)

	current, err := s.transport.FetchCurrentUser(ctx, token)

	s.mu.Lock()
	s.loading--
	s.session.IsLoading = s.loading > 0

	if s.generation != gen {
		// The session was logged out or re-keyed while this call was in
		// flight; the result must not resurrect it.
		snap, subs := s.publishLocked()
		s.mu.Unlock()
		s.notify(snap, subs)
		return nil
	}

	if err != nil {
		s.session.User = nil
		s.session.Organization = nil
		s.session.IsAuthenticated = false
		s.session.Error = err.Error()
		s.storage.Remove(s.key(keyUser))
		s.storage.Remove(s.key(keyOrganization))
		snap, subs := s.publishLocked()
		s.mu.Unlock()
		s.notify(snap, subs)
		if s.onAuthError != nil {
			s.onAuthError(err)
		}
		return err
	}

	user := current.User
	s.session.User = &user
	s.session.Organization = current.Organization
	s.session.IsAuthenticated = true
	s.session.Error = ""
	storeJSON(s.storage, s.key(keyUser), user)
	if current.Organization != nil {
		storeJSON(s.storage, s.key(keyOrganization), *current.Organization)
	} else {
		s.storage.Remove(s.key(keyOrganization))
	}
	snap, subs = s.publishLocked()
	s.mu.Unlock()
	s.notify(snap, subs)
	if s.onAuthSuccess != nil {
		s.onAuthSuccess(snap)
	}
	return nil
}

// RefreshRole fetches the current role document and replaces Session.Role
// wholesale. Its failure is deliberately isolated: the role is cleared and
// a warning logged, but IsAuthenticated, User and Session.Error stay
// untouched so a secondary fetch can never lock a user out of an otherwise
// valid session.
func (s *Store) RefreshRole(ctx context.Context) error {
	return s.refreshRole(ctx, false)
}

func (s *Store) refreshRole(ctx context.Context, preloaded bool) error {
	s.mu.Lock()
	token, _ := s.storage.Get(s.key(keyToken))
	if token == "" {
		if preloaded {
			s.loading--
		}
		s.session.Role = nil
		s.session.IsLoading = s.loading > 0
		snap, subs := s.publishLocked()
		s.mu.Unlock()
		s.notify(snap, subs)
		return nil
	}

	gen := s.generation
	if !preloaded {
		s.loading++
	}
	s.session.IsLoading = true
	snap, subs := s.publishLocked()
	s.mu.Unlock()
	s.notify(snap, subs)

	current, err := s.transport.FetchCurrentRole(ctx, token)

	s.mu.Lock()
	s.loading--
	s.session.IsLoading = s.loading > 0

	if s.generation != gen {
		snap, subs := s.publishLocked()
		s.mu.Unlock()
		s.notify(snap, subs)
		return nil
	}

	if err != nil {
		s.session.Role = nil
		s.storage.Remove(s.key(keyRole))
		snap, subs := s.publishLocked()
		s.mu.Unlock()
		s.logger.Warn("role refresh failed", "error", err)
		s.notify(snap, subs)
		return err
	}

	role := current.RoleDetails
	if role == nil {
		role = &rbac.ResolvedRole{Slug: current.Role}
	}
	s.session.Role = role
	storeJSON(s.storage, s.key(keyRole), *role)
	snap, subs = s.publishLocked()
	s.mu.Unlock()
	s.notify(snap, subs)
	return nil
}

// SetAuthToken persists the token and triggers RefreshUser and RefreshRole
// as independent concurrent operations; they write disjoint session fields
// and no completion order is guaranteed. RefreshUser's failure path is
// propagated; the role fetch resolves on its own.
//
// An empty token is a full logout.
func (s *Store) SetAuthToken(ctx context.Context, token string) error {
	if token == "" {
		s.Logout(ctx)
		return nil
	}

	s.mu.Lock()
	s.generation++
	s.storage.Set(s.key(keyToken), token)
	s.mu.Unlock()

	go func() { _ = s.refreshRole(ctx, false) }()
	return s.refreshUser(ctx, false)
}

// Logout clears durable storage and resets the session synchronously, then
// notifies the identity service best-effort in the background. Local state
// never remains authenticated pending a network round trip, and the
// notification's failure is swallowed (observable via WithOnLogoutNotify).
// Logout always succeeds locally and is idempotent.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	token, _ := s.storage.Get(s.key(keyToken))
	s.generation++
	s.storage.Remove(s.key(keyToken))
	s.storage.Remove(s.key(keyUser))
	s.storage.Remove(s.key(keyOrganization))
	s.storage.Remove(s.key(keyRole))
	s.session.User = nil
	s.session.Organization = nil
	s.session.Role = nil
	s.session.IsAuthenticated = false
	s.session.Error = ""
	s.session.IsLoading = s.loading > 0
	snap, subs := s.publishLocked()
	s.mu.Unlock()
	s.notify(snap, subs)

	if token == "" {
		return
	}
	go func() {
		err := s.transport.NotifyLogout(context.WithoutCancel(ctx), token)
		if err != nil {
			s.logger.Debug("logout notification failed", "error", err)
		}
		if s.onLogoutNotify != nil {
			s.onLogoutNotify(err)
		}
	}()
}

// HasPermission reports whether the current role grants the
// "resource:action" permission. Fails closed without a role.
func (s *Store) HasPermission(permission string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return rbac.HasPermission(s.session.Role, permission)
}

// HasAnyPermission reports whether the current role grants at least one of
// the permissions.
func (s *Store) HasAnyPermission(permissions ...string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return rbac.HasAnyPermission(s.session.Role, permissions...)
}

// HasAllPermissions reports whether the current role grants every one of
// the permissions.
func (s *Store) HasAllPermissions(permissions ...string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return rbac.HasAllPermissions(s.session.Role, permissions...)
}

// HasRole reports whether the resolved role slug matches, falling back to
// the user record's embedded role field.
func (s *Store) HasRole(slug string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	var userRole string
	if s.session.User != nil {
		userRole = s.session.User.Role
	}
	return rbac.HasRole(s.session.Role, userRole, slug)
}

// Snapshot returns a copy of the current session.
func (s *Store) Snapshot() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.clone()
}

// Subscribe registers a listener invoked with a snapshot after every state
// transition. The returned function unsubscribes it.
func (s *Store) Subscribe(fn func(Session)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

// Token returns the persisted auth token, if any.
func (s *Store) Token() string {
	token, _ := s.storage.Get(s.key(keyToken))
	return token
}

// APIKey returns the persisted tenant api key.
func (s *Store) APIKey() string {
	key, _ := s.storage.Get(s.key(keyAPIKey))
	return key
}

// SetAPIKey replaces the persisted tenant api key. The key scopes every
// remote call and is normally configured once per application instance.
func (s *Store) SetAPIKey(key string) {
	s.storage.Set(s.key(keyAPIKey), key)
}

// LogoutURL returns the hosted logout page URL.
func (s *Store) LogoutURL() string {
	return strings.TrimSuffix(s.cfg.UIAuthURL, "/") + "/logout"
}

// ProfileURL returns the hosted profile page URL.
func (s *Store) ProfileURL() string {
	return strings.TrimSuffix(s.cfg.UIAuthURL, "/") + "/profile"
}

// CleanedURL returns the initial URL with any magic-link token stripped,
// for the host application to restore as the visible address. Empty when
// no initial URL was supplied.
func (s *Store) CleanedURL() string {
	return s.cleanedURL
}

// key joins the configured prefix with a storage key name.
func (s *Store) key(name string) string {
	return s.cfg.StorageKeyPrefix + name
}

// publishLocked snapshots the session and subscriber list. Callers hold the
// mutex and invoke notify after releasing it, so subscribers can call back
// into the store.
func (s *Store) publishLocked() (Session, []func(Session)) {
	snap := s.session.clone()
	subs := make([]func(Session), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	return snap, subs
}

func (s *Store) notify(snap Session, subs []func(Session)) {
	for _, fn := range subs {
		fn(snap)
	}
}

// loadJSON reads and unmarshals a cached JSON value, returning nil when the
// key is absent or the payload is stale garbage.
func loadJSON[T any](storage Storage, key string) *T {
	raw, ok := storage.Get(key)
	if !ok || raw == "" {
		return nil
	}
	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		storage.Remove(key)
		return nil
	}
	return &v
}

// storeJSON marshals and caches a value. Marshal failures are impossible
// for the plain structs cached here and are ignored.
func storeJSON[T any](storage Storage, key string, v T) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	storage.Set(key, string(raw))
}
