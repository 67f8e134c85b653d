package admin

import "thriftsave/internal/pkg/apperr"

var ErrResourceNotFound = apperr.NotFound("resource not found")
