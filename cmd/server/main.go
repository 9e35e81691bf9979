package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/delishare/recipe_server/config"
	"github.com/delishare/recipe_server/internal/api"
	"github.com/delishare/recipe_server/internal/api/handler"
	"github.com/delishare/recipe_server/internal/database"
	"github.com/delishare/recipe_server/internal/pkg/logger"
	"github.com/delishare/recipe_server/internal/repository"
	"github.com/delishare/recipe_server/internal/service"
)

func main() {
	// 加载配置
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zl.Sync() //nolint:errcheck

	// 初始化数据库
	db, err := database.Open(&cfg.Database)
	if err != nil {
		zl.Fatal("Failed to connect database", zap.Error(err))
	}
	zl.Info("Database connected", zap.String("driver", cfg.Database.Driver))

	// 初始化 Redis（登录失败计数）
	rdb, err := database.NewRedis(&cfg.Redis)
	if err != nil {
		zl.Fatal("Failed to connect redis", zap.Error(err))
	}
	defer rdb.Close()
	zl.Info("Redis connected")

	// 初始化 Repository
	userRepo := repository.NewUserRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	planRepo := repository.NewPlanRepository(db)

	// 初始化 Service
	guard := service.NewLoginGuard(rdb, cfg.Auth, zl)
	authService := service.NewAuthService(userRepo, guard, cfg, zl)
	userService := service.NewUserService(userRepo, guard, zl)
	subscriptionService := service.NewSubscriptionService(userRepo, planRepo, zl)
	recipeService := service.NewRecipeService(recipeRepo, categoryRepo, userRepo, zl)

	// 初始化 Router
	router := api.NewRouter(
		handler.NewAuthHandler(authService),
		handler.NewUserHandler(userService),
		handler.NewSubscriptionHandler(subscriptionService),
		handler.NewRecipeHandler(recipeService),
		cfg,
		zl,
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zl.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// 监听退出信号
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	zl.Info("Received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zl.Error("Server shutdown failed", zap.Error(err))
	}
	zl.Info("Server shutdown complete")
}
