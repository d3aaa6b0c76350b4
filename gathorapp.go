// Package gathorapp is the embeddable GathorApp client: authentication,
// session state, route guarding and the platform feature services behind a
// single constructor.
package gathorapp

import (
	"net/http"

	"github.com/lysandre995/gathorapp/adapters/file"
	"github.com/lysandre995/gathorapp/adapters/memory"
	"github.com/lysandre995/gathorapp/auth"
	"github.com/lysandre995/gathorapp/chat"
	"github.com/lysandre995/gathorapp/config"
	"github.com/lysandre995/gathorapp/core"
	"github.com/lysandre995/gathorapp/guard"
	"github.com/lysandre995/gathorapp/pkg/crypto"
	"github.com/lysandre995/gathorapp/services"
	"github.com/lysandre995/gathorapp/session"
	"github.com/lysandre995/gathorapp/transport"
)

// interfaces
type (
	TokenStorage = core.TokenStorage
	TokenReader  = core.TokenReader
	Navigator    = core.Navigator

	SessionViewer = session.Viewer

	Sealer = crypto.Sealer
)

// structs
type (
	User          = core.User
	Role          = core.Role
	TokenPair     = core.TokenPair
	Credentials   = core.Credentials
	RegisterInput = core.RegisterInput
	AuthResponse  = core.AuthResponse

	Event        = core.Event
	Outing       = core.Outing
	Voucher      = core.Voucher
	Reward       = core.Reward
	Notification = core.Notification
	Review       = core.Review
	Report       = core.Report
	ChatMessage  = core.ChatMessage
	TypingEvent  = core.TypingEvent

	APIError = core.APIError
	Settings = config.Config
)

const (
	defaultHomeRoute  = "/events"
	defaultLoginRoute = "/auth/login"
)

// Constructors & helpers (convenience re-exports)
var (
	NewFileStore    = file.New
	WithSealer      = file.WithSealer
	NewMemoryStore  = memory.New
	NewArgon2Sealer = crypto.NewArgon2Sealer
	LoadSettings    = config.Load

	IsUnauthorized = core.IsUnauthorized
)

type NavigatorFunc = core.NavigatorFunc

var (
	ErrNotAuthenticated      = core.ErrNotAuthenticated
	ErrNoRefreshToken        = core.ErrNoRefreshToken
	ErrMalformedAuthResponse = core.ErrMalformedAuthResponse
)

var (
	ErrEmailRequired    = core.ErrEmailRequired
	ErrPasswordRequired = core.ErrPasswordRequired
	ErrNameRequired     = core.ErrNameRequired
)

var (
	ErrBaseURLRequired = core.ErrBaseURLRequired
	ErrStorageRequired = core.ErrStorageRequired
)

// Config wires a Client. BaseURL is mandatory; everything else has a
// working default. Provide either Storage or StateDir.
type Config struct {
	// BaseURL is the root of the platform REST API.
	BaseURL string

	// Storage persists the token pair and cached profile across restarts.
	// When nil, a file store rooted at StateDir is created.
	Storage core.TokenStorage
	// StateDir backs the default file store. Ignored when Storage is set.
	StateDir string
	// SealSecret encrypts the default file store at rest. Empty disables
	// sealing. Ignored when Storage is set.
	SealSecret string

	// Navigator receives route changes from login, logout and the guard.
	// When nil, navigation is dropped.
	Navigator core.Navigator
	// HomeRoute is where a successful sign-in lands.
	HomeRoute string
	// LoginRoute is where guarded routes and logout redirect to.
	LoginRoute string

	// HTTPClient is the base client the bearer authorizer wraps. When nil,
	// a default client is used.
	HTTPClient *http.Client

	// RealtimeURL configures the chat bus connection, authenticated with
	// the session's current access token at dial time. RealtimeToken is a
	// static fallback credential; RealtimeDial overrides both when set.
	RealtimeURL   string
	RealtimeToken string
	RealtimeDial  chat.DialFunc
}

// Client is the assembled GathorApp client.
type Client struct {
	Auth    *auth.Flow
	Session session.Viewer
	Guard   *guard.Guard

	Events        *services.Events
	Outings       *services.Outings
	Vouchers      *services.Vouchers
	Rewards       *services.Rewards
	Notifications *services.Notifications
	Users         *services.Users
	Reviews       *services.Reviews
	Reports       *services.Reports
	Admin         *services.Admin
	Geo           *services.Geo

	Chat *chat.Service

	// REST is the authorized JSON client the services share, exposed for
	// endpoints not covered by a service.
	REST *transport.Client
}

func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, ErrBaseURLRequired
	}

	storage := cfg.Storage
	if storage == nil {
		if cfg.StateDir == "" {
			return nil, ErrStorageRequired
		}
		var opts []file.Option
		if cfg.SealSecret != "" {
			opts = append(opts, file.WithSealer(crypto.NewArgon2Sealer(cfg.SealSecret)))
		}
		fileStore, err := file.New(cfg.StateDir, opts...)
		if err != nil {
			return nil, err
		}
		storage = fileStore
	}

	// Set Defaults

	homeRoute := cfg.HomeRoute
	if homeRoute == "" {
		homeRoute = defaultHomeRoute
	}
	loginRoute := cfg.LoginRoute
	if loginRoute == "" {
		loginRoute = defaultLoginRoute
	}
	nav := cfg.Navigator
	if nav == nil {
		nav = core.NopNavigator{}
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	// Shallow-copy the caller's client so Jar, CheckRedirect and Timeout all
	// survive; only the transport is replaced with the authorizing one.
	authorized := *httpClient
	authorized.Transport = &transport.Authorizer{Base: httpClient.Transport, Tokens: storage}
	rest := transport.NewClient(cfg.BaseURL, &authorized)

	tokens, user, _ := storage.Load()
	state := session.Hydrate(tokens, user)

	dial := cfg.RealtimeDial
	if dial == nil {
		dial = chat.Dialer(cfg.RealtimeURL, cfg.RealtimeToken)
	}

	return &Client{
		Auth:    auth.New(rest, storage, state, nav, homeRoute, loginRoute),
		Session: state,
		Guard:   guard.New(state, nav, loginRoute),

		Events:        services.NewEvents(rest),
		Outings:       services.NewOutings(rest),
		Vouchers:      services.NewVouchers(rest),
		Rewards:       services.NewRewards(rest),
		Notifications: services.NewNotifications(rest),
		Users:         services.NewUsers(rest),
		Reviews:       services.NewReviews(rest),
		Reports:       services.NewReports(rest),
		Admin:         services.NewAdmin(rest),
		Geo:           services.NewGeo(rest),

		Chat: chat.New(rest, dial, state, storage),

		REST: rest,
	}, nil
}

// FromSettings builds a Client from loaded settings. nav may be nil.
func FromSettings(settings Settings, nav core.Navigator) (*Client, error) {
	return New(Config{
		BaseURL:       settings.APIBaseURL,
		StateDir:      settings.StateDir,
		SealSecret:    settings.SealSecret,
		Navigator:     nav,
		HomeRoute:     settings.HomeRoute,
		LoginRoute:    settings.LoginRoute,
		RealtimeURL:   settings.RealtimeURL,
		RealtimeToken: settings.RealtimeToken,
	})
}
