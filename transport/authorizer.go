package transport

import (
	"net/http"

	"github.com/lysandre995/gathorapp/core"
)

// Authorizer is the request-interception stage of the outbound HTTP
// pipeline. It stamps every request with the current access token read from
// the token store fast path; requests issued while signed out pass through
// untouched. It never blocks, retries, or performs I/O of its own.
//
// Feature services must not set Authorization themselves; the pipeline owns
// that header.
type Authorizer struct {
	// Base is the wrapped transport. Defaults to http.DefaultTransport.
	Base http.RoundTripper

	// Tokens is the fast-path token reader, deliberately not the session
	// state: the authorizer must stay a synchronous, stateless transform.
	Tokens core.TokenReader
}

// Ensure Authorizer is a drop-in transport
var _ http.RoundTripper = (*Authorizer)(nil)

// NewAuthorizer wraps base with bearer stamping.
func NewAuthorizer(base http.RoundTripper, tokens core.TokenReader) *Authorizer {
	return &Authorizer{Base: base, Tokens: tokens}
}

// RoundTrip implements http.RoundTripper. Per its contract the incoming
// request is never mutated; a clone carries the header.
func (a *Authorizer) RoundTrip(req *http.Request) (*http.Response, error) {
	if token := a.Tokens.AccessToken(); token != "" {
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return a.base().RoundTrip(req)
}

func (a *Authorizer) base() http.RoundTripper {
	if a.Base != nil {
		return a.Base
	}
	return http.DefaultTransport
}
