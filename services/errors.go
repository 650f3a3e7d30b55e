package services

import (
	"errors"
	"sort"
	"strings"
)

// Closed error taxonomy for the service layer. Handlers map each sentinel to
// an HTTP status exactly once, in mapServiceErrorToHTTP.
var (
	// Authentication and authorization
	ErrInvalidCredentials     = errors.New("invalid email or password")
	ErrCredentialsTaken       = errors.New("email or username is already in use")
	ErrTokenInvalid           = errors.New("invalid authentication token")
	ErrTokenExpired           = errors.New("authentication token has expired")
	ErrAuthenticationRequired = errors.New("authentication required")
	ErrForbiddenOperation     = errors.New("operation not allowed for the current user")

	// Missing entities
	ErrUserNotFound   = errors.New("user not found")
	ErrTeamNotFound   = errors.New("team not found")
	ErrPlayerNotFound = errors.New("player not found")
	ErrMatchNotFound  = errors.New("match not found")

	// Conflicts
	ErrTeamNameConflict     = errors.New("team name is already in use")
	ErrPlayerNumberConflict = errors.New("jersey number is already taken in this team")
	ErrTeamHasDependents    = errors.New("team still has players or matches")

	// Infrastructure
	ErrFlagStorageUnavailable = errors.New("flag storage is not configured")
)

// ValidationError carries the offending fields and the reason each one was
// rejected. Field-shape failures are batched into a single instance.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func newValidationError(field, reason string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: reason}}
}
