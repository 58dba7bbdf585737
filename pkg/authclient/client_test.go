package authclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/pkg/authclient"
	"github.com/dmitrymomot/authkit/pkg/session"
)

func newClient(t *testing.T, handler http.Handler, opts ...authclient.Option) *authclient.Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return authclient.New(authclient.Config{
		BaseURL: srv.URL,
		Timeout: 5 * time.Second,
	}, opts...)
}

func TestClient_Login(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("returns token", func(t *testing.T) {
		t.Parallel()

		client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "/login", r.URL.Path)

			var creds session.Credentials
			require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
			assert.Equal(t, "a@example.com", creds.Email)
			assert.Equal(t, "secret", creds.Password)

			_ = json.NewEncoder(w).Encode(map[string]string{"token": "t1"})
		}))

		token, err := client.Login(ctx, session.Credentials{Email: "a@example.com", Password: "secret"})
		require.NoError(t, err)
		assert.Equal(t, "t1", token)
	})

	t.Run("rejected credentials", func(t *testing.T) {
		t.Parallel()

		client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid email or password"})
		}))

		_, err := client.Login(ctx, session.Credentials{Email: "a@example.com", Password: "wrong"})
		require.Error(t, err)
		assert.True(t, authclient.IsCredentialRejected(err))
		assert.Contains(t, err.Error(), "invalid email or password")
	})

	t.Run("empty token is malformed", func(t *testing.T) {
		t.Parallel()

		client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]string{})
		}))

		_, err := client.Login(ctx, session.Credentials{})
		assert.ErrorIs(t, err, authclient.ErrMalformedResponse)
	})

	t.Run("unreachable server", func(t *testing.T) {
		t.Parallel()

		client := authclient.New(authclient.Config{
			BaseURL: "http://127.0.0.1:1",
			Timeout: time.Second,
		})

		_, err := client.Login(ctx, session.Credentials{})
		assert.ErrorIs(t, err, authclient.ErrRequestFailed)
	})
}

func TestClient_Register(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/register", r.URL.Path)
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "User registered successfully"})
		}))

		err := client.Register(ctx, session.Registration{Username: "alice", Email: "a@example.com", Password: "secret12"})
		assert.NoError(t, err)
	})

	t.Run("validation failure", func(t *testing.T) {
		t.Parallel()

		client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "email already registered"})
		}))

		err := client.Register(ctx, session.Registration{Email: "a@example.com"})
		require.Error(t, err)
		assert.True(t, authclient.IsValidation(err))
		assert.False(t, authclient.IsCredentialRejected(err))

		var apiErr *authclient.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
		assert.Equal(t, "email already registered", apiErr.Message)
	})
}

func TestClient_Profile(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("returns user and sends token", func(t *testing.T) {
		t.Parallel()

		var gotAuth string
		client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodGet, r.Method)
			require.Equal(t, "/api/profile", r.URL.Path)
			gotAuth = r.Header.Get("Authorization")

			_ = json.NewEncoder(w).Encode(map[string]any{
				"user": map[string]any{"id": 1, "username": "alice", "email": "a@example.com"},
			})
		}), authclient.WithTokenSource(&staticTokens{token: "t1"}))

		user, err := client.Profile(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Bearer t1", gotAuth)
		assert.Equal(t, 1, user.ID)
		assert.Equal(t, "alice", user.Username)
	})

	t.Run("expired token", func(t *testing.T) {
		t.Parallel()

		invalidator := &countingInvalidator{}
		client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "token expired"})
		}),
			authclient.WithTokenSource(&staticTokens{token: "stale"}),
			authclient.WithInvalidator(invalidator),
		)

		_, err := client.Profile(ctx)
		require.Error(t, err)
		assert.True(t, authclient.IsCredentialRejected(err))
		assert.Equal(t, int32(1), invalidator.calls.Load())
	})

	t.Run("missing user is malformed", func(t *testing.T) {
		t.Parallel()

		client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
		}))

		_, err := client.Profile(ctx)
		assert.ErrorIs(t, err, authclient.ErrMalformedResponse)
	})
}

func TestAPIError_Message(t *testing.T) {
	t.Parallel()

	err := &authclient.APIError{StatusCode: 500}
	assert.Equal(t, "authclient: remote returned 500", err.Error())

	err = &authclient.APIError{StatusCode: 400, Message: "bad input"}
	assert.Contains(t, err.Error(), "bad input")
}
