package memory

import (
	"errors"
	"testing"

	"github.com/lysandre995/gathorapp/core"
)

// Requirement: the volatile store honors the same contract as the durable
// one: pair-at-once writes, best-effort reads, idempotent clear.
func TestStore_Contract(t *testing.T) {
	store := New()

	if got := store.AccessToken(); got != "" {
		t.Errorf("AccessToken() on empty store = %q, want empty", got)
	}

	tokens := core.TokenPair{AccessToken: "T1", RefreshToken: "R1"}
	user := &core.User{ID: "u1", Role: core.RolePremium}
	if err := store.Save(tokens, user); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	gotTokens, gotUser, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if gotTokens == nil || *gotTokens != tokens {
		t.Errorf("Load() tokens = %+v, want %+v", gotTokens, tokens)
	}
	if gotUser != user {
		t.Errorf("Load() user = %+v, want %+v", gotUser, user)
	}
	if got := store.AccessToken(); got != "T1" {
		t.Errorf("AccessToken() = %q, want %q", got, "T1")
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("second Clear() error = %v", err)
	}
	if got := store.AccessToken(); got != "" {
		t.Errorf("AccessToken() after Clear = %q, want empty", got)
	}
}

// Requirement: injected errors surface to the caller without mutating state.
func TestStore_ErrorInjection(t *testing.T) {
	store := New()
	boom := errors.New("boom")

	store.SaveErr = boom
	if err := store.Save(core.TokenPair{AccessToken: "T1"}, nil); !errors.Is(err, boom) {
		t.Errorf("Save() error = %v, want %v", err, boom)
	}
	store.SaveErr = nil

	store.LoadErr = boom
	if _, _, err := store.Load(); !errors.Is(err, boom) {
		t.Errorf("Load() error = %v, want %v", err, boom)
	}
}
