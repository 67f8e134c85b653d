package auth

import "github.com/gin-gonic/gin"

// ActorKey is the gin context key the acting-user middleware stores under.
const ActorKey = "actor"

// ActorFromContext returns the request's actor, falling back to the
// authenticated caller when no acting-user middleware ran.
func ActorFromContext(c *gin.Context) Actor {
	if v, ok := c.Get(ActorKey); ok {
		if a, ok := v.(Actor); ok {
			return a
		}
	}
	return Actor{
		UserID: c.GetInt64("user_id"),
		Role:   UserRole(c.GetString("role")),
	}
}
