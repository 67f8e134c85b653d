package notification

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"thriftsave/internal/domain/auth"
	"thriftsave/internal/pkg/response"
	"thriftsave/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetNotifications возвращает входящие уведомления пользователя.
// @Summary		Inbox
// @Tags		Notifications
// @Security	BearerAuth
// @Param		unread	query	bool	false	"only unread"
// @Param		limit	query	int		false	"page size"
// @Router		/notifications [get]
func (h *Handler) GetNotifications(c *gin.Context) {
	actor := auth.ActorFromContext(c)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	unreadOnly := c.Query("unread") == "true"

	items, err := h.service.ListForUser(c.Request.Context(), actor.UserID, unreadOnly, limit)
	if err != nil {
		response.FromError(c, err)
		return
	}
	unread, err := h.service.UnreadCount(c.Request.Context(), actor.UserID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"notifications": items,
		"unread_count":  unread,
	})
}

func (h *Handler) GetUnreadCount(c *gin.Context) {
	actor := auth.ActorFromContext(c)
	unread, err := h.service.UnreadCount(c.Request.Context(), actor.UserID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"unread_count": unread})
}

// MarkAsRead
// @Summary		Mark notification read
// @Tags		Notifications
// @Security	BearerAuth
// @Param		id	path	int	true	"Notification ID"
// @Router		/notifications/{id}/read [patch]
func (h *Handler) MarkAsRead(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	actor := auth.ActorFromContext(c)

	if err := h.service.MarkAsRead(c.Request.Context(), actor.UserID, id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id, "is_read": true})
}

func (h *Handler) MarkAllAsRead(c *gin.Context) {
	actor := auth.ActorFromContext(c)
	n, err := h.service.MarkAllAsRead(c.Request.Context(), actor.UserID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"updated": n})
}

// Create составляет уведомление и фиксирует список получателей.
// @Summary		Create notification
// @Tags		Admin
// @Security	BearerAuth
// @Accept		json
// @Param		body	body	CreateNotificationRequest	true	"payload"
// @Success		201	{object}	map[string]interface{}
// @Router		/admin/notifications [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.CustomError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.CustomError(c, http.StatusBadRequest, "VALIDATION_ERROR", errs)
		return
	}

	actor := auth.ActorFromContext(c)
	createdBy := actor.UserID
	if actor.IsImpersonated() {
		createdBy = actor.ImpersonatorID
	}

	n, err := h.service.CreateAndDispatch(c.Request.Context(), CreateInput{
		Title:       req.Title,
		Message:     req.Message,
		Type:        req.Type,
		Rule:        req.Rule(),
		ScheduledAt: req.ScheduledAt,
		CreatedBy:   createdBy,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"notification": n})
}

func (h *Handler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	list, total, err := h.service.List(c.Request.Context(), limit, offset)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"notifications": list, "total": total})
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	n, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"notification": n})
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.CustomError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid notification ID")
		return 0, false
	}
	return id, true
}
