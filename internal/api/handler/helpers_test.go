package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/delishare/recipe_server/config"
	"github.com/delishare/recipe_server/internal/api/middleware"
	"github.com/delishare/recipe_server/internal/pkg/jwt"
	"github.com/delishare/recipe_server/internal/repository"
	"github.com/delishare/recipe_server/internal/service"
	"github.com/delishare/recipe_server/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
	RegisterValidators()
}

const testSecret = "test-secret-key"

type testEnv struct {
	db     *gorm.DB
	mr     *miniredis.Miniredis
	router *gin.Engine
}

func setupEnv(t *testing.T) (*testEnv, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	rdb, mr, redisCleanup := testutil.SetupTestRedis(t)

	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:      testSecret,
			ExpireHours: 24,
		},
		Auth: config.AuthConfig{
			PasswordMinLength: 6,
			PasswordMaxLength: 72,
			MaxLoginAttempts:  3,
			LockoutSeconds:    60,
		},
	}

	userRepo := repository.NewUserRepository(db)
	guard := service.NewLoginGuard(rdb, cfg.Auth, nil)

	authHandler := NewAuthHandler(service.NewAuthService(userRepo, guard, cfg, nil))
	userHandler := NewUserHandler(service.NewUserService(userRepo, guard, nil))
	subscriptionHandler := NewSubscriptionHandler(service.NewSubscriptionService(userRepo, repository.NewPlanRepository(db), nil))
	recipeHandler := NewRecipeHandler(service.NewRecipeService(
		repository.NewRecipeRepository(db),
		repository.NewCategoryRepository(db),
		userRepo,
		nil,
	))

	auth := middleware.Auth(testSecret)
	optional := middleware.OptionalAuth(testSecret)

	router := gin.New()
	router.POST("/auth/register", authHandler.Register)
	router.POST("/auth/login", authHandler.Login)
	router.GET("/auth/password-policy", authHandler.PasswordPolicy)
	router.GET("/user/profile", auth, userHandler.GetProfile)
	router.DELETE("/user", auth, userHandler.Delete)
	router.GET("/subscription/plans", subscriptionHandler.Plans)
	router.POST("/subscription/subscribe", auth, subscriptionHandler.Subscribe)
	router.GET("/subscription/status", auth, subscriptionHandler.Status)
	router.GET("/recipes", optional, recipeHandler.List)
	router.GET("/recipes/:id", optional, recipeHandler.Get)
	router.POST("/recipes", auth, recipeHandler.Create)
	router.GET("/categories", recipeHandler.Categories)

	cleanup := func() {
		redisCleanup()
		testutil.CleanupTestDB(t, db)
	}

	return &testEnv{db: db, mr: mr, router: router}, cleanup
}

func tokenFor(t *testing.T, userID int64) string {
	t.Helper()
	token, _, err := jwt.NewToken(userID, testSecret, 24)
	require.NoError(t, err)
	return token
}

func performRequest(r http.Handler, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// parseResponse 解析响应，out 非 nil 时同时解析 data
func parseResponse(t *testing.T, w *httptest.ResponseRecorder, out interface{}) envelope {
	t.Helper()

	var resp envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	if out != nil {
		require.NoError(t, json.Unmarshal(resp.Data, out))
	}
	return resp
}
