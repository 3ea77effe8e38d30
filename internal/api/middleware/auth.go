package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Nivlac17/jwt-pizza-service/internal/api/shared"
	"github.com/Nivlac17/jwt-pizza-service/internal/platform/logger"
	"github.com/Nivlac17/jwt-pizza-service/internal/redact"
	"github.com/Nivlac17/jwt-pizza-service/internal/service"
	"github.com/Nivlac17/jwt-pizza-service/internal/service/auth"
)

// Authenticator resolves a bearer token to a principal. service.AuthService
// implements it.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*service.Principal, error)
}

// AuthMiddleware provides JWT authentication for routes.
type AuthMiddleware struct {
	authenticator Authenticator
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(authenticator Authenticator) *AuthMiddleware {
	return &AuthMiddleware{authenticator: authenticator}
}

// Authenticate validates the bearer token, loads the user with its roles and
// adds the principal to the request context. Requests without a valid, live
// token get 401.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContextOrDefault(r.Context(), slog.Default())

		token, ok := bearerToken(r)
		if !ok {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "unauthorized")
			return
		}

		principal, err := m.authenticator.Authenticate(r.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrInvalidToken),
				errors.Is(err, auth.ErrExpiredToken),
				errors.Is(err, auth.ErrTokenNotYetValid),
				errors.Is(err, auth.ErrSessionRevoked):
				shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, "unauthorized", err)
			default:
				log.Error("failed to authenticate request", "error", redact.Error(err))
				shared.RespondWithError(w, r, http.StatusInternalServerError, "Authentication error")
			}
			return
		}

		ctx := shared.WithPrincipal(r.Context(), principal)
		ctx = logger.WithLogger(ctx, log.With("user_id", principal.User.ID.String()))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" header.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
