package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/delishare/recipe_server/internal/model"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) ListActive(ctx context.Context) ([]*model.Category, error) {
	var categories []*model.Category
	err := r.db.WithContext(ctx).Where("active = ?", true).
		Order("sort_order ASC").Order("name ASC").
		Find(&categories).Error
	return categories, err
}

func (r *CategoryRepository) ExistsActive(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Category{}).
		Where("id = ? AND active = ?", id, true).Count(&count).Error
	return count > 0, err
}

// EnsureByName inserts category unless one with the same name exists.
func (r *CategoryRepository) EnsureByName(ctx context.Context, category *model.Category) (bool, error) {
	result := r.db.WithContext(ctx).Where("name = ?", category.Name).FirstOrCreate(category)
	return result.RowsAffected > 0, result.Error
}
