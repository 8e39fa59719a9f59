package authsession_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exyconn/authkit/pkg/authsession"
)

func TestContext(t *testing.T) {
	t.Parallel()

	store, err := authsession.New(testConfig(), authsession.WithTransport(&mockTransport{}))
	require.NoError(t, err)

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		ctx := authsession.WithContext(context.Background(), store)
		got, ok := authsession.FromContext(ctx)
		require.True(t, ok)
		assert.Same(t, store, got)
		assert.Same(t, store, authsession.MustFromContext(ctx))
	})

	t.Run("absent store", func(t *testing.T) {
		t.Parallel()

		_, ok := authsession.FromContext(context.Background())
		assert.False(t, ok)
	})

	t.Run("must panics outside provider context", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() {
			authsession.MustFromContext(context.Background())
		})
	})
}
