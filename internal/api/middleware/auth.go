package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/quickai/quickai-api/internal/api/shared"
	"github.com/quickai/quickai-api/internal/identity"
	"github.com/quickai/quickai-api/internal/platform/logger"
	"github.com/quickai/quickai-api/internal/redact"
)

// AuthMiddleware resolves bearer session tokens through the identity
// provider and places the resulting user snapshot in the request context.
type AuthMiddleware struct {
	provider identity.Provider
}

// NewAuthMiddleware creates a new AuthMiddleware with the given provider.
func NewAuthMiddleware(provider identity.Provider) *AuthMiddleware {
	return &AuthMiddleware{provider: provider}
}

// Authenticate validates the Authorization header, resolves the caller with
// the identity provider, and stores the snapshot for the handlers. The
// snapshot's usage count is not re-read later in the request.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			shared.RespondWithFailure(w, r, http.StatusUnauthorized, "Authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			shared.RespondWithFailure(w, r, http.StatusUnauthorized, "Invalid authorization format")
			return
		}

		user, err := m.provider.CurrentUser(r.Context(), parts[1])
		if err != nil {
			switch {
			case errors.Is(err, identity.ErrUnauthenticated), errors.Is(err, identity.ErrUserNotFound):
				shared.RespondWithFailure(w, r, http.StatusUnauthorized, "Invalid session")
			default:
				log := logger.FromContextOrDefault(r.Context(), slog.Default())
				log.Error("failed to resolve user", slog.String("error", redact.Error(err)))
				shared.RespondWithFailure(w, r, http.StatusInternalServerError, "Authentication error")
			}
			return
		}

		next.ServeHTTP(w, r.WithContext(shared.WithUser(r.Context(), user)))
	})
}
