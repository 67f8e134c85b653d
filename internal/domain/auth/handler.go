package auth

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"thriftsave/internal/pkg/response"
	"thriftsave/internal/pkg/validator"
)

// Handler manages HTTP interactions for registration, login and onboarding
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register создаёт нового пользователя.
// @Summary		Register
// @Tags		Auth
// @Accept		json
// @Produce		json
// @Param		body	body	RegisterRequest	true	"payload"
// @Success		201	{object}	map[string]interface{}
// @Router		/auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.CustomError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.CustomError(c, http.StatusBadRequest, "VALIDATION_ERROR", errs)
		return
	}

	u, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"user": u})
}

// Login выдаёт access токен.
// @Summary		Login
// @Tags		Auth
// @Accept		json
// @Produce		json
// @Param		body	body	LoginRequest	true	"payload"
// @Success		200	{object}	map[string]interface{}
// @Router		/auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.CustomError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.CustomError(c, http.StatusBadRequest, "VALIDATION_ERROR", errs)
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if err == ErrInvalidCredentials {
			response.CustomError(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", err)
			return
		}
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"user": result.User,
		"tokens": gin.H{
			"access_token": result.AccessToken,
		},
	})
}

// GetMe возвращает текущего пользователя.
// @Summary		Current user
// @Tags		Users
// @Security	BearerAuth
// @Produce		json
// @Router		/users/me [get]
func (h *Handler) GetMe(c *gin.Context) {
	u, err := h.service.Me(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": u})
}

// CompleteOnboarding помечает оплату онбординга подтверждённой.
// @Summary		Complete onboarding
// @Tags		Admin
// @Security	BearerAuth
// @Param		id	path	int	true	"User ID"
// @Router		/admin/users/{id}/onboarding/complete [post]
func (h *Handler) CompleteOnboarding(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.CustomError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid user ID")
		return
	}

	u, err := h.service.CompleteOnboarding(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": u})
}
