package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/delishare/recipe_server/internal/model"
)

type RecipeRepository struct {
	db *gorm.DB
}

func NewRecipeRepository(db *gorm.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

func (r *RecipeRepository) Create(ctx context.Context, recipe *model.Recipe) error {
	return r.db.WithContext(ctx).Create(recipe).Error
}

// GetActiveByID 获取上架菜谱（含分类）
func (r *RecipeRepository) GetActiveByID(ctx context.Context, id int64) (*model.Recipe, error) {
	var recipe model.Recipe
	err := r.db.WithContext(ctx).Preload("Category").
		Where("id = ? AND active = ?", id, true).
		First(&recipe).Error
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// List 获取上架菜谱列表，search 按标题或配料模糊匹配（不区分大小写）
func (r *RecipeRepository) List(ctx context.Context, search string, page, pageSize int) ([]*model.Recipe, int64, error) {
	var recipes []*model.Recipe
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Recipe{}).Where("active = ?", true)

	if search = strings.TrimSpace(search); search != "" {
		pattern := "%" + escapeLike(strings.ToLower(search)) + "%"
		query = query.Where("(LOWER(title) LIKE ? ESCAPE '!' OR LOWER(ingredients) LIKE ? ESCAPE '!')", pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Preload("Category").
		Order("created_at DESC").Order("id DESC").
		Offset(offset).Limit(pageSize).
		Find(&recipes).Error
	if err != nil {
		return nil, 0, err
	}

	return recipes, total, nil
}

func (r *RecipeRepository) IncrementViewCount(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&model.Recipe{}).Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

func escapeLike(s string) string {
	return strings.NewReplacer("!", "!!", "%", "!%", "_", "!_").Replace(s)
}
