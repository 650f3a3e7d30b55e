package services

import "github.com/footdata/worldcup-api/models"

// Authorize is the role gate every mutating operation passes through after
// token verification. It is pure: no store access, no side effects.
func Authorize(identity *models.User, required models.UserRole) error {
	if identity == nil {
		return ErrAuthenticationRequired
	}
	if required == models.RoleAdmin && identity.Role != models.RoleAdmin {
		return ErrForbiddenOperation
	}
	return nil
}
