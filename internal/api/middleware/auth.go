package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/delishare/recipe_server/internal/pkg/jwt"
	"github.com/delishare/recipe_server/internal/pkg/response"
)

const (
	UserIDKey = "userID"
)

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if authHeader == "" || tokenString == authHeader || tokenString == "" {
		return "", false
	}
	return tokenString, true
}

// Auth JWT 认证中间件，token 只携带用户 ID，订阅状态由 handler 每次重新读取
func Auth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			response.AuthError(c, "se requiere autenticación")
			c.Abort()
			return
		}

		tokenString, ok := bearerToken(c)
		if !ok {
			response.AuthError(c, "formato de autenticación inválido")
			c.Abort()
			return
		}

		claims, err := jwt.ParseToken(tokenString, jwtSecret)
		if err != nil {
			if errors.Is(err, jwt.ErrExpiredToken) {
				response.AuthError(c, "la sesión ha expirado")
			} else {
				response.AuthError(c, "token inválido")
			}
			c.Abort()
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Next()
	}
}

// OptionalAuth 可选认证中间件（不强制要求登录）
func OptionalAuth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}

		claims, err := jwt.ParseToken(tokenString, jwtSecret)
		if err == nil {
			c.Set(UserIDKey, claims.UserID)
		}

		c.Next()
	}
}

// GetUserID 从上下文获取用户 ID
func GetUserID(c *gin.Context) (int64, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := userID.(int64)
	return id, ok
}
