// Package auth orchestrates the anonymous/authenticated transitions. It is
// the single writer of both the token store and the session state; every
// other component only reads.
package auth

import (
	"context"
	"time"

	"github.com/lysandre995/gathorapp/core"
	"github.com/lysandre995/gathorapp/session"
	"github.com/lysandre995/gathorapp/transport"
)

const (
	loginPath    = "/api/auth/login"
	registerPath = "/api/auth/register"
	refreshPath  = "/api/auth/refresh"
	logoutPath   = "/api/auth/logout"

	// Bound on the best-effort revocation call so an unresponsive server
	// cannot stall a local logout.
	defaultRevokeTimeout = 5 * time.Second
)

// Flow drives login, registration, logout and token refresh against the
// platform's authentication API.
type Flow struct {
	rest    *transport.Client
	storage core.TokenStorage
	session *session.Store
	nav     core.Navigator

	homeRoute  string
	loginRoute string

	revokeTimeout time.Duration
}

// New builds the auth flow. homeRoute is where a successful login lands,
// loginRoute is where logout navigates.
func New(rest *transport.Client, storage core.TokenStorage, state *session.Store, nav core.Navigator, homeRoute, loginRoute string) *Flow {
	if nav == nil {
		nav = core.NopNavigator{}
	}
	return &Flow{
		rest:          rest,
		storage:       storage,
		session:       state,
		nav:           nav,
		homeRoute:     homeRoute,
		loginRoute:    loginRoute,
		revokeTimeout: defaultRevokeTimeout,
	}
}

// Login authenticates with email and password.
//
// On success the token pair and profile are persisted, the session flips to
// authenticated, and navigation moves to the home route, in that order. On
// failure the session is untouched and the server error is returned
// unchanged; authentication failures are never retried.
func (f *Flow) Login(ctx context.Context, credentials core.Credentials) (*core.AuthResponse, error) {
	if credentials.Email == "" {
		return nil, core.ErrEmailRequired
	}
	if credentials.Password == "" {
		return nil, core.ErrPasswordRequired
	}

	epoch := f.session.Epoch()

	var response core.AuthResponse
	if err := f.rest.Post(ctx, loginPath, credentials, &response); err != nil {
		return nil, err
	}
	if err := validateAuthResponse(&response); err != nil {
		return nil, err
	}

	f.applyAuth(epoch, &response, true)
	return &response, nil
}

// Register creates an account; the contract mirrors Login.
func (f *Flow) Register(ctx context.Context, input core.RegisterInput) (*core.AuthResponse, error) {
	if input.Name == "" {
		return nil, core.ErrNameRequired
	}
	if input.Email == "" {
		return nil, core.ErrEmailRequired
	}
	if input.Password == "" {
		return nil, core.ErrPasswordRequired
	}

	epoch := f.session.Epoch()

	var response core.AuthResponse
	if err := f.rest.Post(ctx, registerPath, input, &response); err != nil {
		return nil, err
	}
	if err := validateAuthResponse(&response); err != nil {
		return nil, err
	}

	f.applyAuth(epoch, &response, true)
	return &response, nil
}

// Refresh exchanges the stored refresh token for a new pair and re-persists
// it. Callers invoke this explicitly; nothing refreshes automatically.
func (f *Flow) Refresh(ctx context.Context) (*core.AuthResponse, error) {
	tokens, _, _ := f.storage.Load()
	if tokens == nil || tokens.RefreshToken == "" {
		return nil, core.ErrNoRefreshToken
	}

	epoch := f.session.Epoch()

	var response core.AuthResponse
	body := map[string]string{"refreshToken": tokens.RefreshToken}
	if err := f.rest.Post(ctx, refreshPath, body, &response); err != nil {
		return nil, err
	}
	if err := validateAuthResponse(&response); err != nil {
		return nil, err
	}

	// A refresh stays on the current page.
	f.applyAuth(epoch, &response, false)
	return &response, nil
}

// Logout clears the session and navigates to the login route. The backend
// revocation call is best-effort: a network failure never blocks the local
// logout. Safe to call when already signed out.
func (f *Flow) Logout(ctx context.Context) {
	if tokens, _, _ := f.storage.Load(); tokens != nil && tokens.RefreshToken != "" {
		revokeCtx, cancel := context.WithTimeout(ctx, f.revokeTimeout)
		body := map[string]string{"refreshToken": tokens.RefreshToken}
		_ = f.rest.Post(revokeCtx, logoutPath, body, nil)
		cancel()
	}

	// Storage failures are non-fatal: the in-memory session is cleared
	// regardless, and logout always wins over in-flight responses.
	_ = f.storage.Clear()
	f.session.SetUnauthenticated()
	f.nav.Navigate(f.loginRoute)
}

// Token returns the current access token, or "" when signed out. Convenience
// passthrough for callers that need the raw value rather than the reactive
// session state.
func (f *Flow) Token() string {
	return f.storage.AccessToken()
}

// validateAuthResponse rejects 2xx responses that carry no complete token
// pair. Applying one would leave a profile cached while the session reads
// unauthenticated, and the navigator would move without a sign-in.
func validateAuthResponse(response *core.AuthResponse) error {
	if response.AccessToken == "" || response.RefreshToken == "" {
		return core.ErrMalformedAuthResponse
	}
	return nil
}

// applyAuth persists and publishes a successful auth response: token store
// write first, then the session flip, then navigation, so anything consulted
// right after the flip already sees the persisted tokens. The epoch check
// drops responses that lost a race with a logout; their tokens are scrubbed
// from the store rather than left behind.
func (f *Flow) applyAuth(epoch uint64, response *core.AuthResponse, navigate bool) {
	// Persistence failures are non-fatal: the session still works for this
	// process lifetime and the next restart simply starts signed out.
	_ = f.storage.Save(response.Tokens(), response.User)

	if !f.session.CompareAndSetAuthenticated(epoch, response.Tokens(), response.User) {
		_ = f.storage.Clear()
		return
	}

	if navigate {
		f.nav.Navigate(f.homeRoute)
	}
}
