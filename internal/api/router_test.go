package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/delishare/recipe_server/config"
	"github.com/delishare/recipe_server/internal/api/handler"
	"github.com/delishare/recipe_server/internal/api/middleware"
	"github.com/delishare/recipe_server/internal/model/dto"
	"github.com/delishare/recipe_server/internal/repository"
	"github.com/delishare/recipe_server/internal/service"
	"github.com/delishare/recipe_server/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupRouter(t *testing.T, rateLimit config.RateLimitConfig) (*gin.Engine, *gorm.DB, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	rdb, _, redisCleanup := testutil.SetupTestRedis(t)

	cfg := &config.Config{
		Server: config.ServerConfig{Mode: "debug"},
		JWT:    config.JWTConfig{Secret: "router-secret", ExpireHours: 24},
		CORS: config.CORSConfig{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "DELETE"},
		},
		Auth: config.AuthConfig{
			PasswordMinLength: 6,
			PasswordMaxLength: 72,
			MaxLoginAttempts:  5,
			LockoutSeconds:    900,
		},
		RateLimit: rateLimit,
	}

	userRepo := repository.NewUserRepository(db)
	guard := service.NewLoginGuard(rdb, cfg.Auth, nil)

	router := NewRouter(
		handler.NewAuthHandler(service.NewAuthService(userRepo, guard, cfg, nil)),
		handler.NewUserHandler(service.NewUserService(userRepo, guard, nil)),
		handler.NewSubscriptionHandler(service.NewSubscriptionService(userRepo, repository.NewPlanRepository(db), nil)),
		handler.NewRecipeHandler(service.NewRecipeService(
			repository.NewRecipeRepository(db),
			repository.NewCategoryRepository(db),
			userRepo,
			nil,
		)),
		cfg,
		nil,
	)

	cleanup := func() {
		redisCleanup()
		testutil.CleanupTestDB(t, db)
	}

	return router.Setup(), db, cleanup
}

var generousLimit = config.RateLimitConfig{RequestsPerSecond: 1000, Burst: 1000}

type envelope struct {
	Code int             `json:"code"`
	Data json.RawMessage `json:"data"`
}

func call(t *testing.T, engine http.Handler, method, path, token string, body, out interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	if out != nil {
		var env envelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		require.NoError(t, json.Unmarshal(env.Data, out))
	}
	return w
}

func TestRouter_SubscriptionUnlocksPremiumRecipe(t *testing.T) {
	engine, db, cleanup := setupRouter(t, generousLimit)
	defer cleanup()

	testutil.TestPlan(t, db, "mensual", 30, 4.99)
	category := testutil.TestCategory(t, db, "Postres")
	recipe := testutil.TestRecipe(t, db, category.ID, testutil.PremiumRecipe(), testutil.WithSteps(5))
	recipePath := fmt.Sprintf("/api/v1/recipes/%d", recipe.ID)

	var reg dto.RegisterResponse
	w := call(t, engine, "POST", "/api/v1/auth/register", "", dto.RegisterRequest{
		Name: "Ana", Email: "ana@x.com", Password: "secret1",
	}, &reg)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "free", reg.User.SubscriptionType)
	assert.False(t, reg.User.SubscriptionActive)

	var login dto.LoginResponse
	w = call(t, engine, "POST", "/api/v1/auth/login", "", dto.LoginRequest{
		Email: "ana@x.com", Password: "secret1",
	}, &login)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, login.Token)

	// 免费用户只能看到前两步
	var detail dto.RecipeDetail
	w = call(t, engine, "GET", recipePath, login.Token, nil, &detail)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, detail.Instructions, 2)
	assert.Equal(t, 3, detail.HiddenStepsCount)
	assert.True(t, detail.Locked)

	var sub dto.SubscribeResponse
	w = call(t, engine, "POST", "/api/v1/subscription/subscribe", login.Token, dto.SubscribeRequest{
		UserID: &reg.User.ID, Plan: "mensual",
	}, &sub)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, sub.SubscriptionActive)
	assert.Equal(t, "mensual", sub.Plan)

	// 同一个 token，无需重新登录即可看到全部步骤
	detail = dto.RecipeDetail{}
	w = call(t, engine, "GET", recipePath, login.Token, nil, &detail)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, detail.Instructions, 5)
	assert.Zero(t, detail.HiddenStepsCount)
	assert.False(t, detail.Locked)

	var profile dto.UserInfo
	w = call(t, engine, "GET", "/api/v1/user/profile", login.Token, nil, &profile)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, profile.SubscriptionActive)
	assert.Equal(t, sub.ExpiryDate, profile.SubscriptionExpiry)

	// 匿名访问仍然受限
	detail = dto.RecipeDetail{}
	call(t, engine, "GET", recipePath, "", nil, &detail)
	assert.Len(t, detail.Instructions, 2)
}

func TestRouter_AuthRequired(t *testing.T) {
	engine, _, cleanup := setupRouter(t, generousLimit)
	defer cleanup()

	routes := []struct {
		method string
		path   string
	}{
		{"GET", "/api/v1/user/profile"},
		{"DELETE", "/api/v1/user"},
		{"POST", "/api/v1/subscription/subscribe"},
		{"GET", "/api/v1/subscription/status"},
		{"POST", "/api/v1/recipes"},
	}

	for _, r := range routes {
		t.Run(r.method+" "+r.path, func(t *testing.T) {
			w := call(t, engine, r.method, r.path, "", nil, nil)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestRouter_PublicRoutes(t *testing.T) {
	engine, _, cleanup := setupRouter(t, generousLimit)
	defer cleanup()

	for _, path := range []string{
		"/health",
		"/api/v1/auth/password-policy",
		"/api/v1/subscription/plans",
		"/api/v1/recipes",
		"/api/v1/categories",
	} {
		w := call(t, engine, "GET", path, "", nil, nil)
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader), path)
	}
}

func TestRouter_Metrics(t *testing.T) {
	engine, _, cleanup := setupRouter(t, generousLimit)
	defer cleanup()

	call(t, engine, "GET", "/api/v1/categories", "", nil, nil)

	w := call(t, engine, "GET", "/metrics", "", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), `http_requests_total{code="200",method="GET",path="/api/v1/categories"}`))
}

func TestRouter_AuthRateLimit(t *testing.T) {
	engine, _, cleanup := setupRouter(t, config.RateLimitConfig{RequestsPerSecond: 0.001, Burst: 2})
	defer cleanup()

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := call(t, engine, "GET", "/api/v1/auth/password-policy", "", nil, nil)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// 限流只作用于 /auth
	w := call(t, engine, "GET", "/api/v1/categories", "", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
