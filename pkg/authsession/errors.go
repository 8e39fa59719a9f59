package authsession

import "errors"

var (
	// ErrNotInContext indicates the store was accessed outside a context
	// it was attached to. This is a programmer error, not a runtime state.
	ErrNotInContext = errors.New("authsession.store_not_in_context")

	// ErrMissingAPIAuthBaseURL indicates the required identity service base
	// URL is not configured.
	ErrMissingAPIAuthBaseURL = errors.New("authsession.missing_api_auth_base_url")

	// ErrMissingUIAuthURL indicates the required hosted auth UI base URL is
	// not configured.
	ErrMissingUIAuthURL = errors.New("authsession.missing_ui_auth_url")

	// ErrMissingAPIKey indicates the required tenant api key is not
	// configured. Key absence is a configuration error, never a runtime
	// state transition.
	ErrMissingAPIKey = errors.New("authsession.missing_api_key")

	// ErrInvalidConfig wraps field-level validation failures.
	ErrInvalidConfig = errors.New("authsession.invalid_config")
)
