package session

import (
	"sync"

	"github.com/lysandre995/gathorapp/core"
)

// Viewer is the read-only surface of the session state. Feature services and
// the route guard depend on this interface; only the auth flow holds the
// writable *Store.
type Viewer interface {
	IsAuthenticated() bool
	CurrentUser() *core.User
}

// Snapshot is a point-in-time view of the session state.
type Snapshot struct {
	Authenticated bool
	User          *core.User
}

// Store holds the process-wide session state. Invariant: authenticated is
// true exactly when an access token is held, and a non-nil user implies
// authenticated (a token may exist before the profile is hydrated).
type Store struct {
	mu    sync.RWMutex
	token string
	user  *core.User
	epoch uint64
}

// Ensure Store satisfies the read-only surface
var _ Viewer = (*Store)(nil)

// New creates an empty, unauthenticated store.
func New() *Store {
	return &Store{}
}

// Hydrate initializes the store from previously persisted state. Called once
// at startup with the token store's Load result; a nil pair leaves the store
// unauthenticated regardless of profile.
func Hydrate(tokens *core.TokenPair, user *core.User) *Store {
	s := New()
	if tokens != nil && tokens.AccessToken != "" {
		s.SetAuthenticated(*tokens, user)
	}
	return s
}

// SetAuthenticated transitions the store to the authenticated state.
func (s *Store) SetAuthenticated(tokens core.TokenPair, user *core.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = tokens.AccessToken
	s.user = user
	s.epoch++
}

// SetUnauthenticated clears the session. Safe to call repeatedly.
func (s *Store) SetUnauthenticated() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = nil
	s.epoch++
}

// IsAuthenticated reports whether an access token is currently held.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

// CurrentUser returns the cached profile, or nil when anonymous or when the
// profile has not been hydrated yet.
func (s *Store) CurrentUser() *core.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Snapshot returns a consistent view of both values.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{Authenticated: s.token != "", User: s.user}
}

// Epoch returns the transition counter. The auth flow records it before
// issuing a network call and applies the response only if it is unchanged,
// so a response that arrives after a logout cannot resurrect the session.
func (s *Store) Epoch() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.epoch
}

// CompareAndSetAuthenticated applies the transition only when the epoch still
// matches expected. Returns false when the state moved in the meantime.
func (s *Store) CompareAndSetAuthenticated(expected uint64, tokens core.TokenPair, user *core.User) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch != expected {
		return false
	}
	s.token = tokens.AccessToken
	s.user = user
	s.epoch++
	return true
}
