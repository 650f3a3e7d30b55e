package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/footdata/worldcup-api/models"
	"github.com/footdata/worldcup-api/services"
)

type contextKey string

const userContextKey contextKey = "user"

type Authenticator struct {
	authService services.AuthService
}

func NewAuthenticator(authService services.AuthService) *Authenticator {
	return &Authenticator{authService: authService}
}

// Authenticate verifies the bearer token and injects the resolved identity
// into the request context. It runs strictly before any role check.
func (a *Authenticator) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		user, err := a.authService.VerifyToken(r.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrTokenExpired):
				writeError(w, http.StatusUnauthorized, "token has expired, please log in again")
			case errors.Is(err, services.ErrTokenInvalid):
				writeError(w, http.StatusUnauthorized, "invalid token")
			case errors.Is(err, services.ErrUserNotFound):
				writeError(w, http.StatusNotFound, "token subject no longer exists")
			default:
				writeError(w, http.StatusInternalServerError, "authentication failed")
			}
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole gates the request on the verified identity's role.
func RequireRole(required models.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			err := services.Authorize(CurrentUser(r.Context()), required)
			switch {
			case errors.Is(err, services.ErrAuthenticationRequired):
				writeError(w, http.StatusUnauthorized, err.Error())
			case errors.Is(err, services.ErrForbiddenOperation):
				writeError(w, http.StatusForbidden, "admin role required")
			case err != nil:
				writeError(w, http.StatusInternalServerError, "authorization failed")
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}

// CurrentUser returns the verified identity, or nil outside an authenticated
// request.
func CurrentUser(ctx context.Context) *models.User {
	user, _ := ctx.Value(userContextKey).(*models.User)
	return user
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
