// Package file persists the session token pair and cached profile as a
// single JSON envelope on the local filesystem.
//
// Earlier releases stored three independent slots (access_token,
// refresh_token, current_user), which could be observed half-written. Load
// still understands that layout as a migration shim; Save always writes the
// envelope and retires the legacy slots.
package file

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/lysandre995/gathorapp/core"
	"github.com/lysandre995/gathorapp/pkg/crypto"
)

const (
	envelopeFile = "session.json"

	// legacy per-slot layout
	legacyAccessFile  = "access_token"
	legacyRefreshFile = "refresh_token"
	legacyUserFile    = "current_user"
)

// envelope is the on-disk document. The profile is kept as a raw message so
// a corrupt cached profile degrades to nil instead of poisoning the tokens.
type envelope struct {
	AccessToken  string          `json:"accessToken"`
	RefreshToken string          `json:"refreshToken"`
	User         json.RawMessage `json:"user,omitempty"`
}

// Store is a durable core.TokenStorage rooted at a directory.
//
// The access token is cached in memory after the first read so the fast path
// never pays the disk read or the KDF of a sealed envelope per request. The
// store is the only in-process writer of its directory, so Save and Clear
// keep the cache exact; out-of-band edits to the directory are not observed
// until the next process start.
type Store struct {
	dir    string
	sealer crypto.Sealer // nil means plaintext envelope
	mu     sync.Mutex

	cachedToken string
	cacheValid  bool
}

// Ensure Store implements the storage port
var _ core.TokenStorage = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithSealer encrypts the envelope at rest. Plaintext and legacy state is
// still readable, so enabling sealing on an existing directory migrates on
// the next Save.
func WithSealer(s crypto.Sealer) Option {
	return func(st *Store) { st.sealer = s }
}

// New creates a store rooted at dir, creating the directory if needed.
func New(dir string, opts ...Option) (*Store, error) {
	if dir == "" {
		return nil, errors.New("storage directory is required")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	st := &Store{dir: dir}
	for _, opt := range opts {
		opt(st)
	}
	return st, nil
}

// Save writes tokens and profile as one atomic envelope, then retires any
// legacy slots so later loads cannot observe mixed generations.
func (s *Store) Save(tokens core.TokenPair, user *core.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	env := envelope{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}
	if user != nil {
		raw, err := json.Marshal(user)
		if err != nil {
			return fmt.Errorf("failed to encode profile: %w", err)
		}
		env.User = raw
	}

	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("failed to encode envelope: %w", err)
	}

	if s.sealer != nil {
		sealed, err := s.sealer.Seal(data)
		if err != nil {
			return fmt.Errorf("failed to seal envelope: %w", err)
		}
		data = []byte(sealed)
	}

	if err := s.writeAtomic(envelopeFile, data); err != nil {
		return err
	}

	s.cachedToken = tokens.AccessToken
	s.cacheValid = true
	s.removeLegacy()
	return nil
}

// Load returns the persisted state, best-effort. A corrupt or unreadable
// profile yields a nil user; a missing envelope falls back to the legacy
// per-slot layout.
func (s *Store) Load() (*core.TokenPair, *core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *Store) loadLocked() (*core.TokenPair, *core.User, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, envelopeFile))

	var tokens *core.TokenPair
	var user *core.User
	switch {
	case err == nil:
		tokens, user = decodeEnvelope(data, s.sealer)
	case errors.Is(err, fs.ErrNotExist):
		tokens, user = s.loadLegacy()
	default:
		return nil, nil, fmt.Errorf("failed to read session envelope: %w", err)
	}

	s.cachedToken = ""
	if tokens != nil {
		s.cachedToken = tokens.AccessToken
	}
	s.cacheValid = true
	return tokens, user, nil
}

// Clear removes the envelope and any legacy slots. Missing files are fine.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(filepath.Join(s.dir, envelopeFile))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove session envelope: %w", err)
	}
	s.cachedToken = ""
	s.cacheValid = true
	s.removeLegacy()
	return nil
}

// AccessToken is the fast-path read used on every outbound request. It is
// served from the in-memory cache after the first read; any failure yields
// "" rather than an error.
func (s *Store) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cacheValid {
		return s.cachedToken
	}
	tokens, _, err := s.loadLocked()
	if err != nil || tokens == nil {
		return ""
	}
	return tokens.AccessToken
}

func (s *Store) writeAtomic(name string, data []byte) error {
	path := filepath.Join(s.dir, name)
	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}
	return nil
}

func (s *Store) removeLegacy() {
	for _, name := range []string{legacyAccessFile, legacyRefreshFile, legacyUserFile} {
		os.Remove(filepath.Join(s.dir, name))
	}
}

// loadLegacy resolves the pre-envelope layout: three independent files, each
// read best-effort. No token means no pair, whatever the other slots hold.
func (s *Store) loadLegacy() (*core.TokenPair, *core.User) {
	access := s.readLegacySlot(legacyAccessFile)
	if access == "" {
		return nil, nil
	}

	tokens := &core.TokenPair{
		AccessToken:  access,
		RefreshToken: s.readLegacySlot(legacyRefreshFile),
	}

	var user *core.User
	if raw := s.readLegacySlot(legacyUserFile); raw != "" {
		var u core.User
		if err := json.Unmarshal([]byte(raw), &u); err == nil {
			user = &u
		}
	}
	return tokens, user
}

func (s *Store) readLegacySlot(name string) string {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func decodeEnvelope(data []byte, sealer crypto.Sealer) (*core.TokenPair, *core.User) {
	if crypto.IsSealed(data) {
		if sealer == nil {
			return nil, nil
		}
		opened, err := sealer.Open(string(data))
		if err != nil {
			return nil, nil
		}
		data = opened
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, nil
	}
	if env.AccessToken == "" {
		return nil, nil
	}

	tokens := &core.TokenPair{
		AccessToken:  env.AccessToken,
		RefreshToken: env.RefreshToken,
	}

	var user *core.User
	if len(env.User) > 0 {
		var u core.User
		if err := json.Unmarshal(env.User, &u); err == nil {
			user = &u
		}
	}
	return tokens, user
}
