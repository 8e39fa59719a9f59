package identity_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exyconn/authkit/pkg/identity"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("requires base url", func(t *testing.T) {
		t.Parallel()
		_, err := identity.New("", "key")
		assert.ErrorIs(t, err, identity.ErrMissingBaseURL)
	})

	t.Run("requires api key", func(t *testing.T) {
		t.Parallel()
		_, err := identity.New("https://auth.example.com", "")
		assert.ErrorIs(t, err, identity.ErrMissingAPIKey)
	})
}

func TestClient_FetchCurrentUser(t *testing.T) {
	t.Parallel()

	t.Run("sends credentials and decodes response", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v1/auth/me", r.URL.Path)
			assert.Equal(t, "Bearer t1", r.Header.Get("Authorization"))
			assert.Equal(t, "tenant-key", r.Header.Get("X-Api-Key"))
			assert.Equal(t, "1.4.2", r.Header.Get("X-App-Version"))

			json.NewEncoder(w).Encode(identity.CurrentUser{
				User:         identity.User{ID: "u1", Email: "jo@example.com", Role: "admin"},
				Organization: &identity.Organization{ID: "o1", Name: "Acme"},
			})
		}))
		defer srv.Close()

		client, err := identity.New(srv.URL, "tenant-key",
			identity.WithHeader("X-App-Version", "1.4.2"),
		)
		require.NoError(t, err)

		current, err := client.FetchCurrentUser(context.Background(), "t1")
		require.NoError(t, err)
		assert.Equal(t, "u1", current.User.ID)
		assert.Equal(t, "admin", current.User.Role)
		require.NotNil(t, current.Organization)
		assert.Equal(t, "Acme", current.Organization.Name)
	})

	t.Run("401 maps to authentication error", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": "Invalid or expired token"})
		}))
		defer srv.Close()

		client, err := identity.New(srv.URL, "tenant-key")
		require.NoError(t, err)

		_, err = client.FetchCurrentUser(context.Background(), "expired")
		require.Error(t, err)
		assert.ErrorIs(t, err, identity.ErrAuthentication)
		assert.Equal(t, "Authentication failed: Invalid or expired token", err.Error())
	})

	t.Run("401 without body uses default message", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer srv.Close()

		client, err := identity.New(srv.URL, "tenant-key")
		require.NoError(t, err)

		_, err = client.FetchCurrentUser(context.Background(), "expired")
		require.Error(t, err)
		assert.Equal(t, "Authentication failed: Invalid or expired token", err.Error())
	})

	t.Run("403 maps to authorization error", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			json.NewEncoder(w).Encode(map[string]string{"message": "Invalid API key"})
		}))
		defer srv.Close()

		client, err := identity.New(srv.URL, "tenant-key")
		require.NoError(t, err)

		_, err = client.FetchCurrentUser(context.Background(), "t1")
		require.Error(t, err)
		assert.ErrorIs(t, err, identity.ErrAuthorization)
		assert.Equal(t, "Authorization failed: Invalid API key", err.Error())
	})

	t.Run("other statuses surface response message", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"message": "database unavailable"})
		}))
		defer srv.Close()

		client, err := identity.New(srv.URL, "tenant-key")
		require.NoError(t, err)

		_, err = client.FetchCurrentUser(context.Background(), "t1")
		require.Error(t, err)
		assert.Equal(t, "database unavailable", err.Error())

		var apiErr *identity.APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	})

	t.Run("transport failure is an error", func(t *testing.T) {
		t.Parallel()

		// Closed server to force a connection error.
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		client, err := identity.New(srv.URL, "tenant-key")
		require.NoError(t, err)

		_, err = client.FetchCurrentUser(context.Background(), "t1")
		assert.Error(t, err)
	})

	t.Run("missing token", func(t *testing.T) {
		t.Parallel()

		client, err := identity.New("https://auth.example.com", "tenant-key")
		require.NoError(t, err)

		_, err = client.FetchCurrentUser(context.Background(), "")
		assert.ErrorIs(t, err, identity.ErrMissingToken)
	})
}

func TestClient_FetchCurrentRole(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/auth/role", r.URL.Path)
		w.Write([]byte(`{
			"role": "admin",
			"role_details": {
				"slug": "admin",
				"name": "Administrator",
				"permissions": [
					{"resource": "users", "action": "list", "allowed": true},
					{"resource": "users", "action": "delete", "allowed": false}
				]
			}
		}`))
	}))
	defer srv.Close()

	client, err := identity.New(srv.URL, "tenant-key")
	require.NoError(t, err)

	current, err := client.FetchCurrentRole(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, "admin", current.Role)
	require.NotNil(t, current.RoleDetails)
	assert.Equal(t, "admin", current.RoleDetails.Slug)
	require.Len(t, current.RoleDetails.Permissions, 2)
	assert.True(t, current.RoleDetails.Permissions[0].Allowed)
	assert.False(t, current.RoleDetails.Permissions[1].Allowed)
}

func TestClient_NotifyLogout(t *testing.T) {
	t.Parallel()

	var called bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/auth/logout", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client, err := identity.New(srv.URL, "tenant-key")
	require.NoError(t, err)

	require.NoError(t, client.NotifyLogout(context.Background(), "t1"))
	assert.True(t, called)
}

func TestClient_ValidateToken(t *testing.T) {
	t.Parallel()

	t.Run("valid token", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v1/auth/validate", r.URL.Path)

			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "t1", body["token"])

			json.NewEncoder(w).Encode(identity.Validation{
				Valid: true,
				User:  &identity.User{ID: "u1"},
			})
		}))
		defer srv.Close()

		client, err := identity.New(srv.URL, "tenant-key")
		require.NoError(t, err)

		validation, err := client.ValidateToken(context.Background(), "t1")
		require.NoError(t, err)
		assert.True(t, validation.Valid)
		require.NotNil(t, validation.User)
		assert.Equal(t, "u1", validation.User.ID)
	})

	t.Run("invalid token is not a transport error", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(identity.Validation{Valid: false, Error: "token expired"})
		}))
		defer srv.Close()

		client, err := identity.New(srv.URL, "tenant-key")
		require.NoError(t, err)

		validation, err := client.ValidateToken(context.Background(), "t1")
		require.NoError(t, err)
		assert.False(t, validation.Valid)
		assert.Equal(t, "token expired", validation.Error)
	})
}
