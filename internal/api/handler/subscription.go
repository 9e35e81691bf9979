package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/delishare/recipe_server/internal/api/middleware"
	"github.com/delishare/recipe_server/internal/model/dto"
	"github.com/delishare/recipe_server/internal/pkg/response"
	"github.com/delishare/recipe_server/internal/service"
)

type SubscriptionHandler struct {
	subscriptionService *service.SubscriptionService
}

func NewSubscriptionHandler(subscriptionService *service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionService: subscriptionService,
	}
}

// Plans 套餐列表
// GET /api/v1/subscription/plans
func (h *SubscriptionHandler) Plans(c *gin.Context) {
	plans, err := h.subscriptionService.ListPlans(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		response.ServerError(c, "")
		return
	}

	response.Success(c, plans)
}

// Subscribe 订阅套餐，只能为自己订阅
// POST /api/v1/subscription/subscribe
func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	if req.UserID != nil && *req.UserID != userID {
		response.PermissionError(c, "no puedes suscribir a otro usuario")
		return
	}

	resp, err := h.subscriptionService.Activate(c.Request.Context(), userID, req.Plan)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPlanNotFound), errors.Is(err, service.ErrUserNotFound):
			response.NotFoundError(c, err.Error())
		default:
			_ = c.Error(err)
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "suscripción activada", resp)
}

// Status 当前订阅状态
// GET /api/v1/subscription/status
func (h *SubscriptionHandler) Status(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	status, err := h.subscriptionService.Status(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFoundError(c, err.Error())
			return
		}
		_ = c.Error(err)
		response.ServerError(c, "")
		return
	}

	response.Success(c, status)
}
