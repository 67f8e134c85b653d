package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"thriftsave/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetDashboard godoc
// @Summary		Admin dashboard
// @Description	Сводка по пользователям, жалобам, подпискам и рассылкам
// @Tags		Admin
// @Security	BearerAuth
// @Produce		json
// @Success		200	{object}	map[string]interface{}
// @Router		/admin/dashboard [get]
func (h *Handler) GetDashboard(c *gin.Context) {
	dashboard, err := h.service.Dashboard(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"dashboard": dashboard})
}

// ListResources
// @Summary		List back-office resources
// @Tags		Admin
// @Security	BearerAuth
// @Produce		json
// @Success		200	{object}	map[string]interface{}
// @Router		/admin/resources [get]
func (h *Handler) ListResources(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"resources": h.service.Resources()})
}

// GetResource
// @Summary		Resource table/form configuration
// @Tags		Admin
// @Security	BearerAuth
// @Produce		json
// @Param		name	path	string	true	"resource name"
// @Success		200	{object}	map[string]interface{}
// @Failure		404	{object}	map[string]interface{}
// @Router		/admin/resources/{name} [get]
func (h *Handler) GetResource(c *gin.Context) {
	cfg, err := h.service.Resource(c.Param("name"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"resource": cfg})
}
