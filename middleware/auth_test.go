package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/footdata/worldcup-api/models"
	"github.com/footdata/worldcup-api/services"
)

// stubAuthService resolves a fixed set of tokens to identities.
type stubAuthService struct {
	tokens map[string]*models.User
	err    error
}

func (s *stubAuthService) Register(context.Context, services.RegisterInput) (*models.User, string, error) {
	panic("not used")
}

func (s *stubAuthService) Login(context.Context, services.LoginInput) (*models.User, string, error) {
	panic("not used")
}

func (s *stubAuthService) VerifyToken(_ context.Context, token string) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	user, ok := s.tokens[token]
	if !ok {
		return nil, services.ErrTokenInvalid
	}
	return user, nil
}

func okHandler(captured **models.User) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if captured != nil {
			*captured = CurrentUser(r.Context())
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticateMissingToken(t *testing.T) {
	authn := NewAuthenticator(&stubAuthService{})
	handler := authn.Authenticate(okHandler(nil))

	for _, header := range []string{"", "Basic abc", "Bearer"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	}
}

func TestAuthenticateInvalidToken(t *testing.T) {
	authn := NewAuthenticator(&stubAuthService{tokens: map[string]*models.User{}})
	handler := authn.Authenticate(okHandler(nil))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid token")
}

func TestAuthenticateExpiredToken(t *testing.T) {
	authn := NewAuthenticator(&stubAuthService{err: services.ErrTokenExpired})
	handler := authn.Authenticate(okHandler(nil))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer stale")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "expired")
}

func TestAuthenticateDeletedSubject(t *testing.T) {
	authn := NewAuthenticator(&stubAuthService{err: services.ErrUserNotFound})
	handler := authn.Authenticate(okHandler(nil))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer orphaned")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAuthenticateInjectsIdentity(t *testing.T) {
	alice := &models.User{ID: 1, Username: "alice", Role: models.RoleUser}
	authn := NewAuthenticator(&stubAuthService{tokens: map[string]*models.User{"good": alice}})

	var captured *models.User
	handler := authn.Authenticate(okHandler(&captured))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, captured)
	assert.Equal(t, alice.ID, captured.ID)
}

func TestRequireRoleGates(t *testing.T) {
	alice := &models.User{ID: 1, Role: models.RoleUser}
	root := &models.User{ID: 2, Role: models.RoleAdmin}
	authn := NewAuthenticator(&stubAuthService{tokens: map[string]*models.User{
		"user-token":  alice,
		"admin-token": root,
	}})

	handler := authn.Authenticate(RequireRole(models.RoleAdmin)(okHandler(nil)))

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Authorization", "Bearer user-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Authorization", "Bearer admin-token")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRoleWithoutAuthenticate(t *testing.T) {
	handler := RequireRole(models.RoleUser)(okHandler(nil))

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
