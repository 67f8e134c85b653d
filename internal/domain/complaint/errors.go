package complaint

import "thriftsave/internal/pkg/apperr"

var (
	ErrComplaintNotFound   = apperr.NotFound("complaint not found")
	ErrTicketConflict      = apperr.Conflict("ticket number already issued")
	ErrTitleRequired       = apperr.ValidationField("title", "title is required")
	ErrDescriptionRequired = apperr.ValidationField("description", "description is required")
	ErrInvalidCategory     = apperr.ValidationField("category", "unknown category")
	ErrInvalidPriority     = apperr.ValidationField("priority", "unknown priority")
	ErrInvalidStatus       = apperr.ValidationField("status", "unknown status")
	ErrMessageRequired     = apperr.ValidationField("message", "message is required")
	ErrInvalidReplyType    = apperr.ValidationField("type", "unknown reply type")
	ErrUnknownAuthor       = apperr.ValidationField("author_id", "author does not exist")
	ErrReplyTypeForbidden  = apperr.Forbidden("only staff can post notes or resolutions")
)
