package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/delishare/recipe_server/internal/model"
)

type PlanRepository struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) *PlanRepository {
	return &PlanRepository{db: db}
}

// ListActive 按价格升序
func (r *PlanRepository) ListActive(ctx context.Context) ([]*model.SubscriptionPlan, error) {
	var plans []*model.SubscriptionPlan
	err := r.db.WithContext(ctx).Where("active = ?", true).
		Order("price ASC").
		Find(&plans).Error
	return plans, err
}

func (r *PlanRepository) GetActiveByName(ctx context.Context, name string) (*model.SubscriptionPlan, error) {
	var plan model.SubscriptionPlan
	err := r.db.WithContext(ctx).Where("name = ? AND active = ?", name, true).First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// EnsureByName inserts plan unless one with the same name exists.
func (r *PlanRepository) EnsureByName(ctx context.Context, plan *model.SubscriptionPlan) (bool, error) {
	result := r.db.WithContext(ctx).Where("name = ?", plan.Name).FirstOrCreate(plan)
	return result.RowsAffected > 0, result.Error
}
