package authsession

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/exyconn/authkit/pkg/config"
)

// Config holds the recognized provider options.
type Config struct {
	// APIAuthBaseURL is the identity service base URL. Required.
	APIAuthBaseURL string `env:"EXYCONN_API_AUTH_BASE_URL" validate:"required,url"`

	// UIAuthURL is the base URL of the hosted login/profile/logout pages. Required.
	UIAuthURL string `env:"EXYCONN_UI_AUTH_URL" validate:"required,url"`

	// APIKey is the tenant scoping key attached to every remote call. Required.
	APIKey string `env:"EXYCONN_API_KEY" validate:"required"`

	// AutoFetch performs the identity check on construction when a token is
	// present (default: true).
	AutoFetch bool `env:"EXYCONN_AUTO_FETCH" envDefault:"true"`

	// StorageKeyPrefix namespaces the durable storage keys.
	StorageKeyPrefix string `env:"EXYCONN_STORAGE_KEY_PREFIX" envDefault:"exyconn_"`

	// Headers are extra headers merged into every identity service call.
	Headers map[string]string `env:"EXYCONN_EXTRA_HEADERS" envSeparator:"," envKeyValSeparator:":"`
}

// DefaultConfig returns a config with defaults applied; the required fields
// remain for the caller to fill in.
func DefaultConfig() Config {
	return Config{
		AutoFetch:        true,
		StorageKeyPrefix: "exyconn_",
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the required provider options. Missing options are a
// configuration error and fail fast at construction.
func (c Config) Validate() error {
	switch {
	case c.APIAuthBaseURL == "":
		return ErrMissingAPIAuthBaseURL
	case c.UIAuthURL == "":
		return ErrMissingUIAuthURL
	case c.APIKey == "":
		return ErrMissingAPIKey
	}
	if err := validate.Struct(c); err != nil {
		return errors.Join(ErrInvalidConfig, err)
	}
	return nil
}

// NewFromEnv loads Config from the environment and constructs a Store.
func NewFromEnv(opts ...Option) (*Store, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}
	return New(cfg, opts...)
}
