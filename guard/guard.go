// Package guard gates navigation into protected routes on session state.
package guard

import (
	"github.com/lysandre995/gathorapp/core"
	"github.com/lysandre995/gathorapp/session"
)

// Guard is a synchronous predicate consulted by the navigation layer before
// entering a protected route. Authentication is presence-based at this
// layer: an expired-but-present token passes and fails later at the API
// boundary.
type Guard struct {
	session    session.Viewer
	nav        core.Navigator
	loginRoute string
}

// New builds a guard that redirects denied navigations to loginRoute.
func New(viewer session.Viewer, nav core.Navigator, loginRoute string) *Guard {
	if nav == nil {
		nav = core.NopNavigator{}
	}
	return &Guard{session: viewer, nav: nav, loginRoute: loginRoute}
}

// Allow reports whether navigation to a protected route may proceed. When
// the session is anonymous it redirects to the login route and returns
// false; this is an expected path, not an error, so nothing is surfaced.
func (g *Guard) Allow(route string) bool {
	if g.session.IsAuthenticated() {
		return true
	}
	g.nav.Navigate(g.loginRoute)
	return false
}

// RequireRole allows navigation only for an authenticated user holding one
// of the given roles. Used by the admin and business surfaces.
func (g *Guard) RequireRole(route string, roles ...core.Role) bool {
	if !g.Allow(route) {
		return false
	}
	user := g.session.CurrentUser()
	if user == nil {
		g.nav.Navigate(g.loginRoute)
		return false
	}
	for _, role := range roles {
		if user.Role == role {
			return true
		}
	}
	return false
}
