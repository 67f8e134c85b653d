package admin

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterRoutes(admin *gin.RouterGroup) {
	admin.GET("/dashboard", h.GetDashboard)
	admin.GET("/resources", h.ListResources)
	admin.GET("/resources/:name", h.GetResource)
}
