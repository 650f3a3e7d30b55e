package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/footdata/worldcup-api/models"
)

const testJWTSecret = "test-secret-key-for-signing"

func newTestAuthService(userRepo *fakeUserRepo, ttl time.Duration) AuthService {
	return NewAuthService(userRepo, testJWTSecret, ttl)
}

func TestRegisterDefaultsToUserRole(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo(), time.Hour)

	user, token, err := svc.Register(context.Background(), RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	require.NotNil(t, user)

	assert.Equal(t, models.RoleUser, user.Role)
	assert.NotZero(t, user.ID)
	assert.NotEmpty(t, token)
	assert.Empty(t, user.PasswordHash, "hash must never leave the service")
}

func TestRegisterHonorsExplicitRole(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo(), time.Hour)

	admin := models.RoleAdmin
	user, _, err := svc.Register(context.Background(), RegisterInput{
		Username: "root",
		Email:    "root@example.com",
		Password: "super-secret",
		Role:     &admin,
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)
}

func TestRegisterCollectsAllFieldErrors(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo(), time.Hour)

	_, _, err := svc.Register(context.Background(), RegisterInput{
		Username: "",
		Email:    "not-an-email",
		Password: "short",
	})
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "username")
	assert.Contains(t, vErr.Fields, "email")
	assert.Contains(t, vErr.Fields, "password")
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo(), time.Hour)

	bogus := models.UserRole("superuser")
	_, _, err := svc.Register(context.Background(), RegisterInput{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "long-enough",
		Role:     &bogus,
	})

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "role")
}

func TestRegisterDuplicateCredentials(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo, time.Hour)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, RegisterInput{
		Username: "alice2",
		Email:    "alice@example.com",
		Password: "correct-horse",
	})
	assert.ErrorIs(t, err, ErrCredentialsTaken)

	_, _, err = svc.Register(ctx, RegisterInput{
		Username: "alice",
		Email:    "other@example.com",
		Password: "correct-horse",
	})
	assert.ErrorIs(t, err, ErrCredentialsTaken)
}

func TestLoginRoundTrip(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo, time.Hour)
	ctx := context.Background()

	registered, _, err := svc.Register(ctx, RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	user, token, err := svc.Login(ctx, LoginInput{
		Email:    "alice@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.NotEmpty(t, token)
	assert.Empty(t, user.PasswordHash)
}

func TestLoginUniformFailure(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo, time.Hour)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	// Unknown account and wrong password must be indistinguishable.
	_, _, unknownErr := svc.Login(ctx, LoginInput{
		Email:    "nobody@example.com",
		Password: "whatever-pass",
	})
	_, _, wrongErr := svc.Login(ctx, LoginInput{
		Email:    "alice@example.com",
		Password: "wrong-password",
	})

	assert.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	assert.ErrorIs(t, wrongErr, ErrInvalidCredentials)
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
}

func TestVerifyTokenRoundTrip(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo, time.Hour)
	ctx := context.Background()

	registered, token, err := svc.Register(ctx, RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	user, err := svc.VerifyToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.Equal(t, registered.Role, user.Role)
	assert.Empty(t, user.PasswordHash)
}

func TestVerifyTokenExpired(t *testing.T) {
	repo := newFakeUserRepo()
	// Negative TTL yields an already-expired token.
	svc := newTestAuthService(repo, -time.Minute)
	ctx := context.Background()

	_, token, err := svc.Register(ctx, RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	_, err = svc.VerifyToken(ctx, token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyTokenGarbage(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo(), time.Hour)

	_, err := svc.VerifyToken(context.Background(), "not.a.token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	repo := newFakeUserRepo()
	issuer := NewAuthService(repo, "issuer-secret", time.Hour)
	verifier := NewAuthService(repo, "other-secret", time.Hour)
	ctx := context.Background()

	_, token, err := issuer.Register(ctx, RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	_, err = verifier.VerifyToken(ctx, token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyTokenSubjectGone(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo, time.Hour)
	ctx := context.Background()

	registered, token, err := svc.Register(ctx, RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	delete(repo.users, registered.ID)

	_, err = svc.VerifyToken(ctx, token)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
