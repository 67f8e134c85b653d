package auth

import "thriftsave/internal/pkg/apperr"

var (
	ErrInvalidCredentials = apperr.Validation("invalid email or password")
	ErrEmailAlreadyExists = apperr.Conflict("email already exists")
	ErrUserNotFound       = apperr.NotFound("user not found")
	ErrAlreadyOnboarded   = apperr.Conflict("onboarding already completed")
	ErrCannotImpersonate  = apperr.Forbidden("only admins can act as another user")
)
