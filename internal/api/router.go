package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/delishare/recipe_server/config"
	"github.com/delishare/recipe_server/internal/api/handler"
	"github.com/delishare/recipe_server/internal/api/middleware"
	"github.com/delishare/recipe_server/internal/pkg/metrics"
)

type Router struct {
	authHandler         *handler.AuthHandler
	userHandler         *handler.UserHandler
	subscriptionHandler *handler.SubscriptionHandler
	recipeHandler       *handler.RecipeHandler
	cfg                 *config.Config
	logger              *zap.Logger
}

func NewRouter(
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	subscriptionHandler *handler.SubscriptionHandler,
	recipeHandler *handler.RecipeHandler,
	cfg *config.Config,
	logger *zap.Logger,
) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Router{
		authHandler:         authHandler,
		userHandler:         userHandler,
		subscriptionHandler: subscriptionHandler,
		recipeHandler:       recipeHandler,
		cfg:                 cfg,
		logger:              logger,
	}
}

func (r *Router) Setup() *gin.Engine {
	if r.cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	handler.RegisterValidators()

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Logger(r.logger))
	engine.Use(metrics.Middleware())
	engine.Use(middleware.CORS(r.cfg.CORS))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/metrics", metrics.Handler())

	authRequired := middleware.Auth(r.cfg.JWT.Secret)
	authOptional := middleware.OptionalAuth(r.cfg.JWT.Secret)

	api := engine.Group("/api/v1")
	{
		// 公开接口 - 认证（按 IP 限流）
		auth := api.Group("/auth")
		auth.Use(middleware.RateLimit(middleware.NewIPRateLimiter(r.cfg.RateLimit)))
		{
			auth.POST("/register", r.authHandler.Register)
			auth.POST("/login", r.authHandler.Login)
			auth.GET("/password-policy", r.authHandler.PasswordPolicy)
		}

		// 用户
		user := api.Group("/user")
		user.Use(authRequired)
		{
			user.GET("/profile", r.userHandler.GetProfile)
			user.DELETE("", r.userHandler.Delete)
		}

		// 订阅
		subscription := api.Group("/subscription")
		{
			subscription.GET("/plans", r.subscriptionHandler.Plans)
			subscription.POST("/subscribe", authRequired, r.subscriptionHandler.Subscribe)
			subscription.GET("/status", authRequired, r.subscriptionHandler.Status)
		}

		// 菜谱（可选认证，登录后按订阅状态返回完整步骤）
		recipes := api.Group("/recipes")
		{
			recipes.GET("", authOptional, r.recipeHandler.List)
			recipes.GET("/:id", authOptional, r.recipeHandler.Get)
			recipes.POST("", authRequired, r.recipeHandler.Create)
		}

		api.GET("/categories", r.recipeHandler.Categories)
	}

	return engine
}
