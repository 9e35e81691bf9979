package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/delishare/recipe_server/internal/model/dto"
	"github.com/delishare/recipe_server/internal/testutil"
)

func TestUserHandler_GetProfile(t *testing.T) {
	env, cleanup := setupEnv(t)
	defer cleanup()

	user := testutil.TestUser(t, env.db, testutil.WithName("Ana"))

	w := performRequest(env.router, "GET", "/user/profile", nil, tokenFor(t, user.ID))
	assert.Equal(t, http.StatusOK, w.Code)

	var info dto.UserInfo
	parseResponse(t, w, &info)
	assert.Equal(t, "Ana", info.Name)
	assert.Equal(t, "free", info.SubscriptionType)
	assert.NotContains(t, w.Body.String(), user.PasswordHash)
}

func TestUserHandler_GetProfile_Unauthorized(t *testing.T) {
	env, cleanup := setupEnv(t)
	defer cleanup()

	w := performRequest(env.router, "GET", "/user/profile", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUserHandler_Delete(t *testing.T) {
	env, cleanup := setupEnv(t)
	defer cleanup()

	user := testutil.TestUser(t, env.db, testutil.WithEmail("ana@x.com"))
	token := tokenFor(t, user.ID)

	w := performRequest(env.router, "DELETE", "/user", nil, token)
	assert.Equal(t, http.StatusOK, w.Code)

	w = performRequest(env.router, "GET", "/user/profile", nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = performRequest(env.router, "POST", "/auth/login", dto.LoginRequest{Email: "ana@x.com", Password: testutil.DefaultPassword}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = performRequest(env.router, "DELETE", "/user", nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
