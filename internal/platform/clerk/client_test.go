package clerk

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/quickai/quickai-api/internal/config"
	"github.com/quickai/quickai-api/internal/domain"
	"github.com/quickai/quickai-api/internal/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-jwt-secret-thats-long-enough-32chars"

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(config.IdentityConfig{
		BaseURL:   srv.URL,
		SecretKey: "sk_test_secret",
		JWTSecret: testJWTSecret,
	}, nil)
	require.NoError(t, err)
	return client
}

func signToken(t *testing.T, subject string) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": subject,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return signed
}

func TestNewClientValidation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		cfg  config.IdentityConfig
	}{
		{"missing base URL", config.IdentityConfig{SecretKey: "sk", JWTSecret: testJWTSecret}},
		{"missing secret key", config.IdentityConfig{BaseURL: "https://api.example.com", JWTSecret: testJWTSecret}},
		{"missing JWT secret", config.IdentityConfig{BaseURL: "https://api.example.com", SecretKey: "sk"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewClient(tc.cfg, nil)
			assert.Error(t, err)
		})
	}
}

func TestCurrentUser(t *testing.T) {
	t.Run("returns snapshot for valid token", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/v1/users/user_123", r.URL.Path)
			assert.Equal(t, "Bearer sk_test_secret", r.Header.Get("Authorization"))

			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"id": "user_123",
				"private_metadata": map[string]interface{}{
					"plan":       "premium",
					"free_usage": 4,
				},
			})
		})

		user, err := client.CurrentUser(context.Background(), signToken(t, "user_123"))
		require.NoError(t, err)
		assert.Equal(t, "user_123", user.ID)
		assert.Equal(t, domain.PlanPremium, user.Plan)
		assert.Equal(t, 4, user.FreeUsage)
	})

	t.Run("defaults to free plan when metadata is absent", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"id": "user_456"})
		})

		user, err := client.CurrentUser(context.Background(), signToken(t, "user_456"))
		require.NoError(t, err)
		assert.Equal(t, domain.PlanFree, user.Plan)
		assert.Equal(t, 0, user.FreeUsage)
	})

	t.Run("rejects missing token", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("no API call expected for a missing token")
		})

		_, err := client.CurrentUser(context.Background(), "")
		assert.ErrorIs(t, err, identity.ErrUnauthenticated)
	})

	t.Run("rejects token signed with wrong key", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("no API call expected for an invalid token")
		})

		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": "user_123",
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		signed, err := token.SignedString([]byte("completely-different-secret-key-32chars"))
		require.NoError(t, err)

		_, err = client.CurrentUser(context.Background(), signed)
		assert.ErrorIs(t, err, identity.ErrUnauthenticated)
	})

	t.Run("rejects expired token", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("no API call expected for an expired token")
		})

		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": "user_123",
			"exp": time.Now().Add(-time.Hour).Unix(),
		})
		signed, err := token.SignedString([]byte(testJWTSecret))
		require.NoError(t, err)

		_, err = client.CurrentUser(context.Background(), signed)
		assert.ErrorIs(t, err, identity.ErrUnauthenticated)
	})

	t.Run("maps 404 to ErrUserNotFound", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})

		_, err := client.CurrentUser(context.Background(), signToken(t, "user_gone"))
		assert.ErrorIs(t, err, identity.ErrUserNotFound)
	})
}

func TestIncrementFreeUsage(t *testing.T) {
	t.Run("writes the successor of the observed count", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPatch, r.Method)
			assert.Equal(t, "/v1/users/user_123/metadata", r.URL.Path)

			var body struct {
				PrivateMetadata struct {
					FreeUsage int `json:"free_usage"`
				} `json:"private_metadata"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, 8, body.PrivateMetadata.FreeUsage)

			w.WriteHeader(http.StatusOK)
		})

		err := client.IncrementFreeUsage(context.Background(), "user_123", 7)
		assert.NoError(t, err)
	})

	t.Run("propagates upstream failures", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

		err := client.IncrementFreeUsage(context.Background(), "user_123", 0)
		assert.Error(t, err)
	})
}
