package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/footdata/worldcup-api/models"
)

func TestAuthorize(t *testing.T) {
	user := &models.User{ID: 1, Role: models.RoleUser}
	admin := &models.User{ID: 2, Role: models.RoleAdmin}

	assert.ErrorIs(t, Authorize(nil, models.RoleUser), ErrAuthenticationRequired)
	assert.ErrorIs(t, Authorize(nil, models.RoleAdmin), ErrAuthenticationRequired)

	assert.NoError(t, Authorize(user, models.RoleUser))
	assert.ErrorIs(t, Authorize(user, models.RoleAdmin), ErrForbiddenOperation)

	// Admin satisfies every requirement.
	assert.NoError(t, Authorize(admin, models.RoleUser))
	assert.NoError(t, Authorize(admin, models.RoleAdmin))
}
