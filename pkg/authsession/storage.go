package authsession

import "sync"

// Storage key names, joined with the configured prefix. The token and the
// cached identity snapshots are cleared on logout; the api key is
// per-application configuration and survives it.
const (
	keyToken        = "token"
	keyAPIKey       = "api_key"
	keyUser         = "user"
	keyOrganization = "organization"
	keyRole         = "role"
)

// Storage is the durable key-value store backing the session: the token,
// the tenant api key and cached identity snapshots live here so a fresh
// store can hydrate optimistically before any network call.
//
// Implementations never return errors. When the underlying medium is
// unavailable the methods must degrade to no-ops rather than fail, so the
// store stays inert in non-interactive contexts.
type Storage interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (string, bool)

	// Set stores the value under key, replacing any previous value.
	Set(key, value string)

	// Remove deletes the key. Removing an absent key is a no-op.
	Remove(key string)
}

// MemoryStorage is a mutex-guarded in-memory Storage. It is the default
// backend and the natural choice for tests and single-process tools.
type MemoryStorage struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStorage creates an empty in-memory storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string]string)}
}

func (s *MemoryStorage) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	return value, ok
}

func (s *MemoryStorage) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

func (s *MemoryStorage) Remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
}

// NoopStorage is an inert Storage for environments without a durable
// medium. Reads report absence, writes are dropped.
type NoopStorage struct{}

// NewNoopStorage creates an inert storage.
func NewNoopStorage() NoopStorage { return NoopStorage{} }

func (NoopStorage) Get(string) (string, bool) { return "", false }
func (NoopStorage) Set(string, string)        {}
func (NoopStorage) Remove(string)             {}
