package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"thriftsave/internal/domain/auth"
	"thriftsave/internal/pkg/jwt"
	"thriftsave/internal/pkg/response"
)

// ActAsHeader lets an admin run a request as another user.
const ActAsHeader = "X-Act-As-User"

type actorResolver interface {
	ResolveActor(ctx context.Context, callerID int64, callerRole auth.UserRole, actAsID int64) (auth.Actor, error)
}

// JWTAuth validates the bearer token and stores user_id and role on the context.
func JWTAuth(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.CustomError(c, http.StatusUnauthorized, "AUTH_HEADER_MISSING", "Authorization header is required")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.CustomError(c, http.StatusUnauthorized, "INVALID_AUTH_FORMAT", "Authorization header must be 'Bearer <token>'")
			c.Abort()
			return
		}

		claims, err := jwtService.ValidateToken(parts[1])
		if err != nil || !auth.UserRole(claims.Role).Valid() {
			response.CustomError(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// ActingUser resolves the actor for the request. Without the X-Act-As-User
// header the actor is the caller. With it, an admin caller acts as the named
// user and user_id/role are rewritten so downstream handlers see that user.
// Must run after JWTAuth.
func ActingUser(resolver actorResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		callerID := c.GetInt64("user_id")
		if callerID == 0 {
			response.CustomError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			c.Abort()
			return
		}

		var actAs int64
		if raw := strings.TrimSpace(c.GetHeader(ActAsHeader)); raw != "" {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || id <= 0 {
				response.CustomError(c, http.StatusBadRequest, "INVALID_ACT_AS", ActAsHeader+" must be a positive user id")
				c.Abort()
				return
			}
			actAs = id
		}

		actor, err := resolver.ResolveActor(c.Request.Context(), callerID, auth.UserRole(c.GetString("role")), actAs)
		if err != nil {
			response.FromError(c, err)
			c.Abort()
			return
		}

		c.Set(auth.ActorKey, actor)
		c.Set("user_id", actor.UserID)
		c.Set("role", string(actor.Role))
		if actor.IsImpersonated() {
			c.Set("impersonator_id", actor.ImpersonatorID)
		}
		c.Next()
	}
}
