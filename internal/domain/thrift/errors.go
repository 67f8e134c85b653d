package thrift

import "thriftsave/internal/pkg/apperr"

var (
	ErrPackageNotFound      = apperr.NotFound("package not found")
	ErrPackageInactive      = apperr.Validation("package is not open for subscription")
	ErrSubscriptionNotFound = apperr.NotFound("subscription not found")
	ErrAlreadySubscribed    = apperr.Conflict("already subscribed to this package")
	ErrNotCancellable       = apperr.Validation("only active subscriptions can be cancelled")
	ErrInvalidFrequency     = apperr.ValidationField("frequency", "frequency must be daily, weekly or monthly")
	ErrInvalidAmount        = apperr.ValidationField("contribution_amount", "contribution amount must be positive")
	ErrInvalidCycles        = apperr.ValidationField("cycles", "cycles must be at least 1")
	ErrNameRequired         = apperr.ValidationField("name", "name is required")
)
