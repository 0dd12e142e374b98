package dataapi_auth

import (
	"clinicroom-service/internal/pkg/constvars"
	"clinicroom-service/internal/pkg/exceptions"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *authProviderClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewAuthProviderClient(server.URL, "anon-key", time.Second, zap.NewNop()).(*authProviderClient)
}

func TestAuthProviderClient(t *testing.T) {
	ctx := context.Background()

	t.Run("Signup Bare User", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/signup", r.URL.Path)
			assert.Equal(t, "anon-key", r.Header.Get(constvars.HeaderDataAPIKey))
			w.Write([]byte(`{"id":"u1","email":"ana@example.com"}`))
		})

		user, err := client.Signup(ctx, "ana@example.com", "secret123", map[string]interface{}{"full_name": "Ana"})
		require.NoError(t, err)
		assert.Equal(t, "u1", user.ID)
	})

	t.Run("Signup Wrapped User", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"access_token":"t","user":{"id":"u2","email":"bia@example.com"}}`))
		})

		user, err := client.Signup(ctx, "bia@example.com", "secret123", nil)
		require.NoError(t, err)
		assert.Equal(t, "u2", user.ID)
		assert.Equal(t, "bia@example.com", user.Email)
	})

	t.Run("Login", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/token", r.URL.Path)
			assert.Equal(t, "password", r.URL.Query().Get("grant_type"))
			w.Write([]byte(`{"access_token":"at","token_type":"bearer","expires_in":3600,"refresh_token":"rt","user":{"id":"u1","email":"ana@example.com"}}`))
		})

		grant, err := client.Login(ctx, "ana@example.com", "secret123")
		require.NoError(t, err)
		assert.Equal(t, "at", grant.AccessToken)
		assert.Equal(t, 3600, grant.ExpiresIn)
	})

	t.Run("Login Rejected", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"invalid_grant","error_description":"Invalid login credentials"}`))
		})

		_, err := client.Login(ctx, "ana@example.com", "wrong")
		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, constvars.StatusUnauthorized, customErr.StatusCode)
		assert.Equal(t, constvars.ErrClientInvalidEmailOrPassword, customErr.ClientMessage)
	})

	t.Run("Logout Uses User Token", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer user-token", r.Header.Get(constvars.HeaderAuthorization))
			w.WriteHeader(http.StatusNoContent)
		})

		assert.NoError(t, client.Logout(ctx, "user-token"))
	})

	t.Run("Provider Outage", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		err := client.Recover(ctx, "ana@example.com")
		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, constvars.StatusBadGateway, customErr.StatusCode)
	})
}
