package middleware

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"

	"thriftsave/internal/domain/auth"
	"thriftsave/internal/pkg/response"
)

// RequireRole ensures that the authenticated user has one of the given roles
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.CustomError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Role not found in token")
			c.Abort()
			return
		}

		r, _ := role.(string)
		if !slices.Contains(roles, r) {
			response.CustomError(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}

// AdminOnly middleware requires admin role
func AdminOnly() gin.HandlerFunc {
	return RequireRole(string(auth.RoleAdmin))
}

// StaffOnly lets support staff and admins through.
func StaffOnly() gin.HandlerFunc {
	return RequireRole(string(auth.RoleStaff), string(auth.RoleAdmin))
}
