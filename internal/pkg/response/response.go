package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"thriftsave/internal/pkg/apperr"
)

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

// CustomError accepts either a message string, an error, or a details payload
// (e.g. validator field map).
func CustomError(c *gin.Context, statusCode int, code string, payload any) {
	switch v := payload.(type) {
	case string:
		Error(c, statusCode, code, v)
	case error:
		Error(c, statusCode, code, v.Error())
	default:
		ErrorWithDetails(c, statusCode, code, http.StatusText(statusCode), v)
	}
}

// FromError writes the envelope for a service error. Errors without a kind are
// logged on the gin context and hidden behind a generic 500.
func FromError(c *gin.Context, err error) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		_ = c.Error(err)
		Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
		return
	}

	status := http.StatusInternalServerError
	switch appErr.Kind {
	case apperr.KindValidation:
		status = http.StatusBadRequest
	case apperr.KindNotFound:
		status = http.StatusNotFound
	case apperr.KindConflict:
		status = http.StatusConflict
	case apperr.KindForbidden:
		status = http.StatusForbidden
	}

	if appErr.Field != "" {
		ErrorWithDetails(c, status, string(appErr.Kind), appErr.Message, gin.H{"field": appErr.Field})
		return
	}
	Error(c, status, string(appErr.Kind), appErr.Message)
}
