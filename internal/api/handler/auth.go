package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/delishare/recipe_server/internal/model/dto"
	"github.com/delishare/recipe_server/internal/pkg/response"
	"github.com/delishare/recipe_server/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register 用户注册
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	resp, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailExists):
			response.ConflictError(c, err.Error())
		case errors.Is(err, service.ErrNameRequired),
			errors.Is(err, service.ErrInvalidEmail),
			errors.Is(err, service.ErrPasswordTooShort),
			errors.Is(err, service.ErrPasswordTooLong):
			response.ParamError(c, err.Error())
		default:
			_ = c.Error(err)
			response.ServerError(c, "")
		}
		return
	}

	response.Created(c, "usuario registrado", resp)
}

// Login 用户登录
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			response.AuthError(c, err.Error())
		case errors.Is(err, service.ErrLoginLocked):
			response.TooManyRequests(c, err.Error())
		default:
			_ = c.Error(err)
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "inicio de sesión exitoso", resp)
}

// PasswordPolicy 密码规则
// GET /api/v1/auth/password-policy
func (h *AuthHandler) PasswordPolicy(c *gin.Context) {
	response.Success(c, h.authService.PasswordPolicy())
}
