package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/delishare/recipe_server/internal/model"
	"github.com/delishare/recipe_server/internal/model/dto"
	"github.com/delishare/recipe_server/internal/repository"
)

var (
	ErrRecipeNotFound    = errors.New("receta no encontrada")
	ErrCategoryNotFound  = errors.New("la categoría no existe")
	ErrInvalidDifficulty = errors.New("dificultad inválida")
	ErrEmptyInstructions = errors.New("la receta debe tener al menos un paso")
)

const defaultAuthor = "Anónimo"

type RecipeService struct {
	recipeRepo   *repository.RecipeRepository
	categoryRepo *repository.CategoryRepository
	userRepo     *repository.UserRepository
	logger       *zap.Logger
	now          func() time.Time
}

func NewRecipeService(
	recipeRepo *repository.RecipeRepository,
	categoryRepo *repository.CategoryRepository,
	userRepo *repository.UserRepository,
	logger *zap.Logger,
) *RecipeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecipeService{
		recipeRepo:   recipeRepo,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
		logger:       logger,
		now:          time.Now,
	}
}

// List 菜谱列表（不含步骤）
func (s *RecipeService) List(ctx context.Context, search string, page, pageSize int) ([]*dto.RecipeItem, int64, error) {
	recipes, total, err := s.recipeRepo.List(ctx, search, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("list recipes: %w", err)
	}

	items := make([]*dto.RecipeItem, 0, len(recipes))
	for _, r := range recipes {
		items = append(items, buildRecipeItem(r))
	}
	return items, total, nil
}

// Get returns the recipe as seen by viewerID (0 for anonymous). Premium steps
// beyond FreeStepCount are withheld unless the viewer is entitled right now.
func (s *RecipeService) Get(ctx context.Context, id, viewerID int64) (*dto.RecipeDetail, error) {
	recipe, err := s.recipeRepo.GetActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, fmt.Errorf("get recipe: %w", err)
	}

	entitled := false
	if recipe.IsPremium && viewerID != 0 {
		entitled = s.viewerEntitled(ctx, viewerID)
	}

	steps := SplitSteps(recipe.Instructions)
	visible, hidden := RedactInstructions(steps, recipe.IsPremium, entitled)

	if err := s.recipeRepo.IncrementViewCount(ctx, recipe.ID); err != nil {
		s.logger.Warn("increment view count failed", zap.Int64("recipe_id", recipe.ID), zap.Error(err))
	} else {
		recipe.ViewCount++
	}

	return &dto.RecipeDetail{
		RecipeItem:       *buildRecipeItem(recipe),
		Ingredients:      recipe.Ingredients,
		Instructions:     visible,
		HiddenStepsCount: hidden,
		TotalSteps:       len(steps),
		Locked:           hidden > 0,
		ViewCount:        recipe.ViewCount,
	}, nil
}

// viewerEntitled 每次请求都从数据库读取用户重新判断，token 中不携带订阅状态
func (s *RecipeService) viewerEntitled(ctx context.Context, viewerID int64) bool {
	user, err := s.userRepo.GetByID(ctx, viewerID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("load viewer failed", zap.Int64("user_id", viewerID), zap.Error(err))
		}
		return false
	}
	if !user.Active {
		return false
	}
	return IsEntitled(user, s.now())
}

// Create 创建菜谱
func (s *RecipeService) Create(ctx context.Context, req *dto.CreateRecipeRequest) (*dto.CreateRecipeResponse, error) {
	difficulty := model.Difficulty(req.Difficulty)
	if difficulty == "" {
		difficulty = model.DifficultyEasy
	}
	if !difficulty.Valid() {
		return nil, ErrInvalidDifficulty
	}

	steps := SplitSteps(req.Instructions)
	if len(steps) == 0 {
		return nil, ErrEmptyInstructions
	}

	exists, err := s.categoryRepo.ExistsActive(ctx, req.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("check category: %w", err)
	}
	if !exists {
		return nil, ErrCategoryNotFound
	}

	author := strings.TrimSpace(req.Author)
	if author == "" {
		author = defaultAuthor
	}

	recipe := &model.Recipe{
		Title:           strings.TrimSpace(req.Title),
		Description:     req.Description,
		Ingredients:     req.Ingredients,
		Instructions:    strings.Join(steps, "\n"),
		PrepTimeMinutes: req.PrepTimeMinutes,
		Servings:        req.Servings,
		Difficulty:      difficulty,
		CategoryID:      req.CategoryID,
		ImageURL:        req.ImageURL,
		Author:          author,
		IsPremium:       req.IsPremium,
		Active:          true,
	}

	if err := s.recipeRepo.Create(ctx, recipe); err != nil {
		return nil, fmt.Errorf("create recipe: %w", err)
	}

	s.logger.Info("recipe created", zap.Int64("recipe_id", recipe.ID), zap.Bool("premium", recipe.IsPremium))

	return &dto.CreateRecipeResponse{ID: recipe.ID}, nil
}

// ListCategories 分类列表
func (s *RecipeService) ListCategories(ctx context.Context) ([]*dto.CategoryItem, error) {
	categories, err := s.categoryRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	items := make([]*dto.CategoryItem, 0, len(categories))
	for _, c := range categories {
		items = append(items, &dto.CategoryItem{
			ID:          c.ID,
			Name:        c.Name,
			Description: c.Description,
			Icon:        c.Icon,
		})
	}
	return items, nil
}

func buildRecipeItem(r *model.Recipe) *dto.RecipeItem {
	item := &dto.RecipeItem{
		ID:              r.ID,
		Title:           r.Title,
		Description:     r.Description,
		PrepTimeMinutes: r.PrepTimeMinutes,
		Servings:        r.Servings,
		Difficulty:      string(r.Difficulty),
		CategoryID:      r.CategoryID,
		ImageURL:        r.ImageURL,
		Author:          r.Author,
		IsPremium:       r.IsPremium,
		CreatedAt:       r.CreatedAt.UTC().Format(time.RFC3339),
	}
	if r.Category != nil {
		item.CategoryName = r.Category.Name
	}
	return item
}
