package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/delishare/recipe_server/internal/api/middleware"
	"github.com/delishare/recipe_server/internal/pkg/response"
	"github.com/delishare/recipe_server/internal/service"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// GetProfile 获取当前用户信息
// GET /api/v1/user/profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	profile, err := h.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFoundError(c, err.Error())
			return
		}
		_ = c.Error(err)
		response.ServerError(c, "")
		return
	}

	response.Success(c, profile)
}

// Delete 注销当前账户
// DELETE /api/v1/user
func (h *UserHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	if err := h.userService.Deactivate(c.Request.Context(), userID); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFoundError(c, err.Error())
			return
		}
		_ = c.Error(err)
		response.ServerError(c, "")
		return
	}

	response.SuccessWithMessage(c, "cuenta eliminada", nil)
}
