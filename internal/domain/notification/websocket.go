package notification

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wb-go/wbf/zlog"

	"thriftsave/internal/pkg/jwt"
	"thriftsave/internal/pkg/response"
)

// WSHandler upgrades authenticated clients onto the notification Hub.
type WSHandler struct {
	hub        *Hub
	jwtService *jwt.Service
}

func NewWSHandler(hub *Hub, jwtService *jwt.Service) *WSHandler {
	return &WSHandler{hub: hub, jwtService: jwtService}
}

// HandleWebSocket
//
// Endpoint: GET /ws/notifications?token=JWT_TOKEN
//
// Browsers cannot set headers on a websocket handshake, so the token comes in
// the query string.
func (h *WSHandler) HandleWebSocket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Token is required. Use ?token=YOUR_JWT_TOKEN")
		return
	}

	claims, err := h.jwtService.ValidateToken(token)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or expired token")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		zlog.Logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	h.hub.ServeWS(conn, claims.UserID)
}
