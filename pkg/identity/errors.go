package identity

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrAuthentication indicates an invalid or expired bearer token.
	ErrAuthentication = errors.New("identity.authentication_failed")

	// ErrAuthorization indicates an invalid or revoked tenant API key.
	ErrAuthorization = errors.New("identity.authorization_failed")

	// ErrMissingBaseURL indicates the client was constructed without a base URL.
	ErrMissingBaseURL = errors.New("identity.missing_base_url")

	// ErrMissingAPIKey indicates the client was constructed without a tenant API key.
	ErrMissingAPIKey = errors.New("identity.missing_api_key")

	// ErrMissingToken indicates an operation requiring a bearer token was
	// called without one.
	ErrMissingToken = errors.New("identity.missing_token")
)

// APIError is a failure reported by the identity service. The message is the
// user-facing surface; the wrapped sentinel supports errors.Is checks.
type APIError struct {
	StatusCode int
	Message    string
	kind       error
}

// Error renders the user-facing message. Authentication and authorization
// failures carry a fixed prefix so callers can surface them verbatim.
func (e *APIError) Error() string {
	switch {
	case errors.Is(e.kind, ErrAuthentication):
		return "Authentication failed: " + e.Message
	case errors.Is(e.kind, ErrAuthorization):
		return "Authorization failed: " + e.Message
	}
	return e.Message
}

// Unwrap exposes the sentinel kind for errors.Is.
func (e *APIError) Unwrap() error { return e.kind }

// newAPIError maps an HTTP status and server-provided message to the error
// taxonomy. Empty messages fall back to a status-appropriate default.
func newAPIError(status int, message string) *APIError {
	e := &APIError{StatusCode: status, Message: message}
	switch status {
	case http.StatusUnauthorized:
		e.kind = ErrAuthentication
		if e.Message == "" {
			e.Message = "Invalid or expired token"
		}
	case http.StatusForbidden:
		e.kind = ErrAuthorization
		if e.Message == "" {
			e.Message = "Invalid API key"
		}
	default:
		if e.Message == "" {
			e.Message = fmt.Sprintf("Request failed with status %d", status)
		}
	}
	return e
}
