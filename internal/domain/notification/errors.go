package notification

import "thriftsave/internal/pkg/apperr"

var (
	ErrNotificationNotFound = apperr.NotFound("notification not found")
	ErrPackageNotFound      = apperr.NotFound("package not found")
	ErrUnknownUsers         = apperr.NotFound("one or more users do not exist")
	ErrTitleRequired        = apperr.ValidationField("title", "title is required")
	ErrMessageRequired      = apperr.ValidationField("message", "message is required")
	ErrInvalidType          = apperr.ValidationField("type", "unknown notification type")
	ErrInvalidRecipientType = apperr.ValidationField("recipient_type", "unknown recipient type")
	ErrNoUsers              = apperr.ValidationField("user_ids", "at least one user is required")
	ErrInvalidUserID        = apperr.ValidationField("user_ids", "user ids must be positive")
	ErrPackageRequired      = apperr.ValidationField("package_id", "package is required for package subscribers")
	ErrRuleMismatch         = apperr.Validation("recipient fields do not match the recipient type")
)
