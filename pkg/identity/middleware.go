package identity

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	gocache "github.com/patrickmn/go-cache"
)

// TokenExtractorFunc extracts a bearer token from an HTTP request.
type TokenExtractorFunc func(r *http.Request) (string, error)

// SkipFunc reports whether a request should bypass authentication.
type SkipFunc func(r *http.Request) bool

// Claims are the registered claims plus the identity fields the platform
// embeds in its tokens. Used only by the local validation path.
type Claims struct {
	Email          string `json:"email,omitempty"`
	Role           string `json:"role,omitempty"`
	OrganizationID string `json:"org_id,omitempty"`
	jwt.RegisteredClaims
}

// MiddlewareConfig configures the request-authenticating middleware.
type MiddlewareConfig struct {
	// CacheTTL bounds how long a positive validation result is reused
	// before the token is re-checked against the service.
	CacheTTL time.Duration `env:"EXYCONN_VALIDATION_CACHE_TTL" envDefault:"1m"`

	// LocalSecret enables local HS256 validation instead of the remote
	// validate call. Useful for services sharing the platform signing key.
	LocalSecret string `env:"EXYCONN_JWT_SECRET"`
}

// middleware holds resolved middleware state.
type middleware struct {
	client    *Client
	cfg       MiddlewareConfig
	extractor TokenExtractorFunc
	skip      SkipFunc
	cache     *gocache.Cache
}

// MiddlewareOption configures the middleware.
type MiddlewareOption func(*middleware)

// WithExtractor sets a custom token extraction strategy.
func WithExtractor(fn TokenExtractorFunc) MiddlewareOption {
	return func(m *middleware) {
		if fn != nil {
			m.extractor = fn
		}
	}
}

// WithSkip sets a request filter that bypasses authentication.
func WithSkip(fn SkipFunc) MiddlewareOption {
	return func(m *middleware) {
		m.skip = fn
	}
}

// Middleware authenticates incoming requests against the identity service.
// Valid tokens are cached for the configured TTL so hot paths avoid a
// network round trip per request. When LocalSecret is set, tokens are
// validated locally as HS256 JWTs and the service is never called.
//
// The authenticated user and token are injected into the request context
// via SetUser / SetToken.
func Middleware(client *Client, cfg MiddlewareConfig, opts ...MiddlewareOption) func(next http.Handler) http.Handler {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = time.Minute
	}

	m := &middleware{
		client:    client,
		cfg:       cfg,
		extractor: BearerTokenExtractor,
		cache:     gocache.New(cfg.CacheTTL, 2*cfg.CacheTTL),
	}
	for _, opt := range opts {
		opt(m)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if m.skip != nil && m.skip(r) {
				next.ServeHTTP(w, r)
				return
			}

			token, err := m.extractor(r)
			if err != nil || token == "" {
				http.Error(w, "Authentication failed: Missing bearer token", http.StatusUnauthorized)
				return
			}

			user, err := m.validate(r, token)
			if err != nil {
				http.Error(w, err.Error(), http.StatusUnauthorized)
				return
			}

			ctx := SetToken(r.Context(), token)
			ctx = SetUser(ctx, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// validate resolves a token to its user, consulting the cache first.
func (m *middleware) validate(r *http.Request, token string) (*User, error) {
	if cached, ok := m.cache.Get(token); ok {
		return cached.(*User), nil
	}

	var user *User
	if m.cfg.LocalSecret != "" {
		claims, err := m.validateLocal(token)
		if err != nil {
			return nil, newAPIError(http.StatusUnauthorized, "Invalid or expired token")
		}
		user = &User{
			ID:    claims.Subject,
			Email: claims.Email,
			Role:  claims.Role,
		}
	} else {
		validation, err := m.client.ValidateToken(r.Context(), token)
		if err != nil {
			return nil, err
		}
		if !validation.Valid {
			message := validation.Error
			if message == "" {
				message = "Invalid or expired token"
			}
			return nil, newAPIError(http.StatusUnauthorized, message)
		}
		user = validation.User
		if user == nil {
			user = &User{}
		}
	}

	m.cache.Set(token, user, gocache.DefaultExpiration)
	return user, nil
}

// validateLocal parses and verifies an HS256 token with the shared secret.
func (m *middleware) validateLocal(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(m.cfg.LocalSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return claims, nil
}

// BearerTokenExtractor extracts tokens from "Authorization: Bearer <token>"
// headers per RFC 6750.
func BearerTokenExtractor(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", ErrMissingToken
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", ErrMissingToken
	}
	return parts[1], nil
}
