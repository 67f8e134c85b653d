package complaint

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

// Create регистрирует жалобу текущего пользователя.
// @Summary		Submit complaint
// @Tags		Complaints
// @Security	BearerAuth
// @Accept		json
// @Produce		json
// @Param		body	body	CreateComplaintRequest	true	"payload"
// @Success		201	{object}	map[string]interface{}
// @Router		/complaints [post]
func (h *Handler) Create(c *gin.Context) {
	actor := auth.ActorFromContext(c)

	var req CreateComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.CustomError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.CustomError(c, http.StatusBadRequest, "VALIDATION_ERROR", errs)
		return
	}

	complaint, err := h.service.Submit(c.Request.Context(), CreateComplaintInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Priority:    req.Priority,
		OwnerID:     actor.UserID,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"complaint": complaint})
}

// ListMine
// @Summary		List my complaints
// @Tags		Complaints
// @Security	BearerAuth
// @Router		/complaints [get]
func (h *Handler) ListMine(c *gin.Context) {
	actor := auth.ActorFromContext(c)
	list, err := h.service.ListForUser(c.Request.Context(), actor.UserID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"complaints": list})
}

// GetMine returns the complaint with its public thread.
// @Summary		Get my complaint
// @Tags		Complaints
// @Security	BearerAuth
// @Param		id	path	int	true	"Complaint ID"
// @Router		/complaints/{id} [get]
func (h *Handler) GetMine(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	actor := auth.ActorFromContext(c)

	complaint, err := h.service.GetForUser(c.Request.Context(), id, actor.UserID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	replies, err := h.service.ListPublicReplies(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, ComplaintDetail{Complaint: complaint, Replies: replies})
}

func (h *Handler) ListMyReplies(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	actor := auth.ActorFromContext(c)

	if _, err := h.service.GetForUser(c.Request.Context(), id, actor.UserID); err != nil {
		response.FromError(c, err)
		return
	}
	replies, err := h.service.ListPublicReplies(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"replies": replies})
}

// ReplyAsOwner
// @Summary		Reply to my complaint
// @Tags		Complaints
// @Security	BearerAuth
// @Param		id	path	int	true	"Complaint ID"
// @Param		body	body	AddReplyRequest	true	"payload"
// @Router		/complaints/{id}/replies [post]
func (h *Handler) ReplyAsOwner(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	actor := auth.ActorFromContext(c)

	req, ok := bindReply(c)
	if !ok {
		return
	}
	if _, err := h.service.GetForUser(c.Request.Context(), id, actor.UserID); err != nil {
		response.FromError(c, err)
		return
	}

	reply, err := h.service.AddReply(c.Request.Context(), id, actor.UserID, req.Message, ReplyTypeReply)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"reply": reply})
}

// StaffList
// @Summary		List complaints (staff)
// @Tags		Staff
// @Security	BearerAuth
// @Param		status		query	string	false	"open|in_progress|resolved|closed"
// @Param		priority	query	string	false	"low|normal|high|urgent"
// @Param		category	query	string	false	"account|transaction|service|other"
// @Param		limit		query	int		false	"page size"
// @Param		offset		query	int		false	"offset"
// @Router		/staff/complaints [get]
func (h *Handler) StaffList(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	userID, _ := strconv.ParseInt(c.Query("user_id"), 10, 64)

	list, total, err := h.service.List(c.Request.Context(), ComplaintFilter{
		Status:   Status(c.Query("status")),
		Priority: Priority(c.Query("priority")),
		Category: Category(c.Query("category")),
		UserID:   userID,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"complaints": list,
		"total":      total,
		"limit":      limit,
		"offset":     offset,
	})
}

func (h *Handler) StaffStats(c *gin.Context) {
	counts, err := h.service.Stats(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"by_status": counts, "total": counts.Total()})
}

// StaffGet returns the complaint with its full thread, notes included.
func (h *Handler) StaffGet(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	complaint, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	replies, err := h.service.ListReplies(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, ComplaintDetail{Complaint: complaint, Replies: replies})
}

// UpdateStatus
// @Summary		Change complaint status
// @Tags		Staff
// @Security	BearerAuth
// @Param		id		path	int	true	"Complaint ID"
// @Param		body	body	UpdateStatusRequest	true	"payload"
// @Router		/staff/complaints/{id}/status [patch]
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.CustomError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.CustomError(c, http.StatusBadRequest, "VALIDATION_ERROR", errs)
		return
	}

	complaint, err := h.service.UpdateStatus(c.Request.Context(), id, req.Status, req.Resolution, req.ResolvedAt)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"complaint": complaint})
}

func (h *Handler) UpdatePriority(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdatePriorityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.CustomError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.CustomError(c, http.StatusBadRequest, "VALIDATION_ERROR", errs)
		return
	}

	complaint, err := h.service.UpdatePriority(c.Request.Context(), id, req.Priority)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"complaint": complaint})
}

func (h *Handler) StaffListReplies(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	replies, err := h.service.ListReplies(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"replies": replies})
}

// StaffReply
// @Summary		Reply, note or resolution on a complaint
// @Tags		Staff
// @Security	BearerAuth
// @Param		id		path	int	true	"Complaint ID"
// @Param		body	body	AddReplyRequest	true	"payload"
// @Router		/staff/complaints/{id}/replies [post]
func (h *Handler) StaffReply(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	actor := auth.ActorFromContext(c)

	req, ok := bindReply(c)
	if !ok {
		return
	}
	typ := req.Type
	if typ == "" {
		typ = ReplyTypeReply
	}

	reply, err := h.service.AddReply(c.Request.Context(), id, actor.UserID, req.Message, typ)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"reply": reply})
}

func bindReply(c *gin.Context) (AddReplyRequest, bool) {
	var req AddReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.CustomError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return req, false
	}
	if errs := validator.Validate(&req); errs != nil {
		response.CustomError(c, http.StatusBadRequest, "VALIDATION_ERROR", errs)
		return req, false
	}
	return req, true
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.CustomError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid complaint ID")
		return 0, false
	}
	return id, true
}
