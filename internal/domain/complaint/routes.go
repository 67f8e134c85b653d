package complaint

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterUserRoutes(protected *gin.RouterGroup) {
	complaints := protected.Group("/complaints")
	{
		complaints.POST("", h.Create)
		complaints.GET("", h.ListMine)
		complaints.GET("/:id", h.GetMine)
		complaints.GET("/:id/replies", h.ListMyReplies)
		complaints.POST("/:id/replies", h.ReplyAsOwner)
	}
}

func (h *Handler) RegisterStaffRoutes(staff *gin.RouterGroup) {
	complaints := staff.Group("/complaints")
	{
		complaints.GET("", h.StaffList)
		complaints.GET("/stats", h.StaffStats)
		complaints.GET("/:id", h.StaffGet)
		complaints.PATCH("/:id/status", h.UpdateStatus)
		complaints.PATCH("/:id/priority", h.UpdatePriority)
		complaints.GET("/:id/replies", h.StaffListReplies)
		complaints.POST("/:id/replies", h.StaffReply)
	}
}
