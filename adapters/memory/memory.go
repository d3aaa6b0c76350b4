// Package memory provides a volatile core.TokenStorage for tests and
// short-lived embeddings.
package memory

import (
	"sync"

	"github.com/lysandre995/gathorapp/core"
)

// Store keeps the session state in process memory. It exposes error
// injection fields so tests can exercise storage-failure paths.
type Store struct {
	mu     sync.RWMutex
	tokens *core.TokenPair
	user   *core.User

	SaveErr  error
	LoadErr  error
	ClearErr error

	saves  int
	clears int
}

// Ensure Store implements the storage port
var _ core.TokenStorage = (*Store)(nil)

func New() *Store {
	return &Store{}
}

func (s *Store) Save(tokens core.TokenPair, user *core.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveErr != nil {
		return s.SaveErr
	}
	pair := tokens
	s.tokens = &pair
	s.user = user
	s.saves++
	return nil
}

func (s *Store) Load() (*core.TokenPair, *core.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.LoadErr != nil {
		return nil, nil, s.LoadErr
	}
	return s.tokens, s.user, nil
}

func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ClearErr != nil {
		return s.ClearErr
	}
	s.tokens = nil
	s.user = nil
	s.clears++
	return nil
}

func (s *Store) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.tokens == nil {
		return ""
	}
	return s.tokens.AccessToken
}

// Saves reports how many successful Save calls happened. Test helper.
func (s *Store) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}

// Clears reports how many successful Clear calls happened. Test helper.
func (s *Store) Clears() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clears
}
