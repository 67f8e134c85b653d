package thrift

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"thriftsave/internal/pkg/response"
	"thriftsave/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ListPackages returns packages open for subscription.
// @Summary		List thrift packages
// @Tags		Packages
// @Produce		json
// @Router		/packages [get]
func (h *Handler) ListPackages(c *gin.Context) {
	pkgs, err := h.service.ListActive(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"packages": pkgs})
}

// GetPackage
// @Summary		Get thrift package
// @Tags		Packages
// @Param		id	path	int	true	"Package ID"
// @Router		/packages/{id} [get]
func (h *Handler) GetPackage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	p, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"package": p})
}

// Subscribe
// @Summary		Subscribe to a package
// @Tags		Packages
// @Security	BearerAuth
// @Param		id	path	int	true	"Package ID"
// @Router		/packages/{id}/subscribe [post]
func (h *Handler) Subscribe(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	sub, err := h.service.Subscribe(c.Request.Context(), c.GetInt64("user_id"), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"subscription": sub})
}

func (h *Handler) ListMySubscriptions(c *gin.Context) {
	subs, err := h.service.ListForUser(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"subscriptions": subs})
}

func (h *Handler) CancelSubscription(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	sub, err := h.service.Cancel(c.Request.Context(), c.GetInt64("user_id"), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"subscription": sub})
}

// CreatePackage
// @Summary		Create thrift package
// @Tags		Admin
// @Security	BearerAuth
// @Param		body	body	CreatePackageRequest	true	"payload"
// @Router		/admin/packages [post]
func (h *Handler) CreatePackage(c *gin.Context) {
	var req CreatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.CustomError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.CustomError(c, http.StatusBadRequest, "VALIDATION_ERROR", errs)
		return
	}

	p, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"package": p})
}

// UpdatePackage
// @Summary		Update thrift package
// @Tags		Admin
// @Security	BearerAuth
// @Param		id	path	int	true	"Package ID"
// @Router		/admin/packages/{id} [put]
func (h *Handler) UpdatePackage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req UpdatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.CustomError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	p, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"package": p})
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.CustomError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid ID")
		return 0, false
	}
	return id, true
}
