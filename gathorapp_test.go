package gathorapp

import (
	"context"
	"errors"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"

	"github.com/lysandre995/gathorapp/adapters/memory"
	"github.com/lysandre995/gathorapp/core"
)

func TestNewShouldReturnErrBaseURLRequired(t *testing.T) {
	_, err := New(Config{StateDir: t.TempDir()})
	if !errors.Is(err, ErrBaseURLRequired) {
		t.Fatalf("expected ErrBaseURLRequired sentinel (errors.Is), got %v", err)
	}
}

func TestNewShouldReturnErrStorageRequired(t *testing.T) {
	_, err := New(Config{BaseURL: "http://localhost:8080"})
	if !errors.Is(err, ErrStorageRequired) {
		t.Fatalf("expected ErrStorageRequired sentinel (errors.Is), got %v", err)
	}
}

func TestNewShouldHydrateSessionFromStorage(t *testing.T) {
	storage := memory.New()
	if err := storage.Save(core.TokenPair{AccessToken: "T1", RefreshToken: "R1"}, &core.User{ID: "u1", Name: "Ada"}); err != nil {
		t.Fatalf("seed storage: %v", err)
	}

	client, err := New(Config{
		BaseURL: "http://localhost:8080",
		Storage: storage,
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if !client.Session.IsAuthenticated() {
		t.Fatal("expected a persisted token to restore the authenticated session")
	}
	if user := client.Session.CurrentUser(); user == nil || user.ID != "u1" {
		t.Fatalf("expected hydrated profile u1, got %+v", user)
	}
	if token := client.Auth.Token(); token != "T1" {
		t.Fatalf("expected Token() to read the stored access token, got %q", token)
	}
}

func TestNewShouldPreserveCallerHTTPClient(t *testing.T) {
	var gotCookie bool
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/session-cookie", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "sticky", Value: "1"})
		w.Write([]byte(`{}`))
	})
	mux.HandleFunc("GET /api/check", func(w http.ResponseWriter, r *http.Request) {
		_, err := r.Cookie("sticky")
		gotCookie = err == nil
		w.Write([]byte(`{}`))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatal(err)
	}

	client, err := New(Config{
		BaseURL:    server.URL,
		Storage:    memory.New(),
		HTTPClient: &http.Client{Jar: jar},
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	ctx := context.Background()
	if err := client.REST.Get(ctx, "/api/session-cookie", nil); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if err := client.REST.Get(ctx, "/api/check", nil); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !gotCookie {
		t.Error("cookie jar from the caller's http.Client was dropped by New")
	}
}

func TestNewShouldStartAnonymousWithEmptyStorage(t *testing.T) {
	client, err := New(Config{
		BaseURL:  "http://localhost:8080",
		StateDir: t.TempDir(),
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if client.Session.IsAuthenticated() {
		t.Fatal("expected an empty state dir to start anonymous")
	}
	if client.Events == nil || client.Chat == nil || client.Guard == nil {
		t.Fatal("expected all components to be assembled")
	}
}
