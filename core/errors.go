package core

import (
	"errors"
	"fmt"
)

// Session errors
var (
	ErrNotAuthenticated      = errors.New("not authenticated")
	ErrNoRefreshToken        = errors.New("no refresh token available")
	ErrMalformedAuthResponse = errors.New("auth response is missing a token pair")
)

// Validation errors (client input)
var (
	ErrEmailRequired    = errors.New("email is required")
	ErrPasswordRequired = errors.New("password is required")
	ErrNameRequired     = errors.New("name is required")
)

// Config errors
var (
	ErrBaseURLRequired = errors.New("API base URL is required")
	ErrStorageRequired = errors.New("token storage adapter is required")
)

// Realtime errors
var (
	ErrNotConnected     = errors.New("realtime connection is not open")
	ErrAlreadyConnected = errors.New("realtime connection is already open")
)

// APIError is a non-2xx response from the platform API, surfaced verbatim so
// callers can render the server-provided message.
type APIError struct {
	Status  int    `json:"-"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.Status)
	}
	return fmt.Sprintf("api error: status %d: %s", e.Status, e.Message)
}

// IsUnauthorized reports whether err is an APIError with status 401.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == 401
}
