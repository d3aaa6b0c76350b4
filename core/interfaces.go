package core

// Ports define interfaces for external dependencies

// ============================================
// TOKEN STORAGE PORT
// ============================================

// TokenReader is the fast-path read surface used on every outbound request.
// Implementations must never block on I/O beyond local storage and must
// return "" rather than an error when nothing is stored.
type TokenReader interface {
	AccessToken() string
}

// TokenStorage persists the session token pair and the cached profile as one
// unit. Load is best-effort: a corrupt cached profile yields a nil User, not
// an error, so a bad profile never blocks startup.
type TokenStorage interface {
	TokenReader

	Save(tokens TokenPair, user *User) error
	Load() (*TokenPair, *User, error)
	Clear() error
}

// ============================================
// NAVIGATION PORT
// ============================================

// Navigator abstracts "go to this route" for whatever presentation layer is
// embedding the client. This is the only UI-level dependency the core has.
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(path string)

func (f NavigatorFunc) Navigate(path string) { f(path) }

// NopNavigator discards navigation requests. Useful for headless embeddings.
type NopNavigator struct{}

func (NopNavigator) Navigate(string) {}
