package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Default endpoint paths under the auth API base URL.
const (
	pathCurrentUser = "/api/v1/auth/me"
	pathCurrentRole = "/api/v1/auth/role"
	pathLogout      = "/api/v1/auth/logout"
	pathValidate    = "/api/v1/auth/validate"
)

// Client calls the remote identity service. Every request carries the tenant
// API key; operations on behalf of a user additionally carry their bearer
// token. The zero value is not usable; use New.
type Client struct {
	baseURL string
	apiKey  string
	headers map[string]string

	// client is reused across requests for connection pooling
	client *http.Client
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client. Nil clients are ignored.
// Timeout and retry policy belong to the transport, not to this package.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		if client != nil {
			c.client = client
		}
	}
}

// WithHeader adds a header to every request, e.g. an app version tag.
func WithHeader(name, value string) ClientOption {
	return func(c *Client) {
		c.headers[name] = value
	}
}

// WithHeaders merges the given headers into every request.
func WithHeaders(headers map[string]string) ClientOption {
	return func(c *Client) {
		for name, value := range headers {
			c.headers[name] = value
		}
	}
}

// New creates an identity service client for the given auth API base URL and
// tenant API key. Both are required; their absence is a configuration error.
func New(baseURL, apiKey string, opts ...ClientOption) (*Client, error) {
	if baseURL == "" {
		return nil, ErrMissingBaseURL
	}
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		headers: make(map[string]string),
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// FetchCurrentUser resolves the bearer token to the user and their tenant.
func (c *Client) FetchCurrentUser(ctx context.Context, token string) (*CurrentUser, error) {
	if token == "" {
		return nil, ErrMissingToken
	}

	var out CurrentUser
	if err := c.do(ctx, http.MethodGet, pathCurrentUser, token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FetchCurrentRole resolves the bearer token to the user's role document.
func (c *Client) FetchCurrentRole(ctx context.Context, token string) (*CurrentRole, error) {
	if token == "" {
		return nil, ErrMissingToken
	}

	var out CurrentRole
	if err := c.do(ctx, http.MethodGet, pathCurrentRole, token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// NotifyLogout tells the service the session ended. Best-effort: callers are
// permitted to ignore the returned error.
func (c *Client) NotifyLogout(ctx context.Context, token string) error {
	if token == "" {
		return ErrMissingToken
	}
	return c.do(ctx, http.MethodPost, pathLogout, token, nil, nil)
}

// ValidateToken checks a bearer token server-side. Unlike the fetch
// operations, an invalid token is not an error here: the service reports it
// through the Valid flag so middleware can share the response contract.
func (c *Client) ValidateToken(ctx context.Context, token string) (*Validation, error) {
	if token == "" {
		return nil, ErrMissingToken
	}

	body := map[string]string{"token": token}
	var out Validation
	if err := c.do(ctx, http.MethodPost, pathValidate, token, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// do executes a single request against the identity service and decodes the
// response. Non-2xx responses are mapped onto the package error taxonomy
// using the server-provided message when present.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-Api-Key", c.apiKey)
	for name, value := range c.headers {
		req.Header.Set(name, value)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("identity request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return newAPIError(resp.StatusCode, decodeErrorMessage(resp.Body))
	}

	if out == nil {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// decodeErrorMessage extracts the message from an error response body.
// Returns an empty string for bodies that are missing or not in the
// expected envelope; newAPIError substitutes a default.
func decodeErrorMessage(body io.Reader) string {
	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(body).Decode(&envelope); err != nil {
		return ""
	}
	if envelope.Message != "" {
		return envelope.Message
	}
	return envelope.Error
}
