package thrift

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	v1.GET("/packages", h.ListPackages)
	v1.GET("/packages/:id", h.GetPackage)
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.POST("/packages/:id/subscribe", h.Subscribe)
	protected.GET("/subscriptions/me", h.ListMySubscriptions)
	protected.POST("/subscriptions/:id/cancel", h.CancelSubscription)
}

func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	admin.POST("/packages", h.CreatePackage)
	admin.PUT("/packages/:id", h.UpdatePackage)
}
