package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/delishare/recipe_server/internal/api/middleware"
	"github.com/delishare/recipe_server/internal/model/dto"
	"github.com/delishare/recipe_server/internal/pkg/response"
	"github.com/delishare/recipe_server/internal/service"
)

type RecipeHandler struct {
	recipeService *service.RecipeService
}

func NewRecipeHandler(recipeService *service.RecipeService) *RecipeHandler {
	return &RecipeHandler{
		recipeService: recipeService,
	}
}

// List 菜谱列表
// GET /api/v1/recipes?search=&page=&page_size=
func (h *RecipeHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	search := c.Query("search")

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	items, total, err := h.recipeService.List(c.Request.Context(), search, page, pageSize)
	if err != nil {
		_ = c.Error(err)
		response.ServerError(c, "")
		return
	}

	response.SuccessPage(c, total, page, pageSize, items)
}

// Get 菜谱详情，付费步骤按当前用户订阅状态裁剪
// GET /api/v1/recipes/:id
func (h *RecipeHandler) Get(c *gin.Context) {
	recipeID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || recipeID < 1 {
		response.ParamError(c, "ID de receta inválido")
		return
	}

	// 未登录时 viewerID 为 0
	viewerID, _ := middleware.GetUserID(c)

	detail, err := h.recipeService.Get(c.Request.Context(), recipeID, viewerID)
	if err != nil {
		if errors.Is(err, service.ErrRecipeNotFound) {
			response.NotFoundError(c, err.Error())
			return
		}
		_ = c.Error(err)
		response.ServerError(c, "")
		return
	}

	response.Success(c, detail)
}

// Create 创建菜谱
// POST /api/v1/recipes
func (h *RecipeHandler) Create(c *gin.Context) {
	var req dto.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	resp, err := h.recipeService.Create(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryNotFound),
			errors.Is(err, service.ErrInvalidDifficulty),
			errors.Is(err, service.ErrEmptyInstructions):
			response.ParamError(c, err.Error())
		default:
			_ = c.Error(err)
			response.ServerError(c, "")
		}
		return
	}

	response.Created(c, "receta creada", resp)
}

// Categories 分类列表
// GET /api/v1/categories
func (h *RecipeHandler) Categories(c *gin.Context) {
	items, err := h.recipeService.ListCategories(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		response.ServerError(c, "")
		return
	}

	response.Success(c, items)
}
