package authsession_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/exyconn/authkit/pkg/authsession"
)

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, testConfig().Validate())
	})

	t.Run("missing fields", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig()
		cfg.APIAuthBaseURL = ""
		assert.ErrorIs(t, cfg.Validate(), authsession.ErrMissingAPIAuthBaseURL)

		cfg = testConfig()
		cfg.UIAuthURL = ""
		assert.ErrorIs(t, cfg.Validate(), authsession.ErrMissingUIAuthURL)

		cfg = testConfig()
		cfg.APIKey = ""
		assert.ErrorIs(t, cfg.Validate(), authsession.ErrMissingAPIKey)
	})

	t.Run("malformed urls", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig()
		cfg.APIAuthBaseURL = "not a url"
		assert.ErrorIs(t, cfg.Validate(), authsession.ErrInvalidConfig)
	})
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := authsession.DefaultConfig()
	assert.True(t, cfg.AutoFetch)
	assert.Equal(t, "exyconn_", cfg.StorageKeyPrefix)
}
