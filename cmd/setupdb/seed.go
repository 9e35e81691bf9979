package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/delishare/recipe_server/config"
	"github.com/delishare/recipe_server/internal/database"
	"github.com/delishare/recipe_server/internal/model"
	"github.com/delishare/recipe_server/internal/repository"
)

// DefaultCategories 初始分类
var DefaultCategories = []model.Category{
	{Name: "Postres", Description: "Recetas dulces y postres.", SortOrder: 1},
	{Name: "Ensaladas", Description: "Ensaladas frescas y saludables.", SortOrder: 2},
	{Name: "Platos Fuertes", Description: "Platos principales para almuerzo o cena.", SortOrder: 3},
	{Name: "Sopas", Description: "Sopas y cremas calientes o frías.", SortOrder: 4},
	{Name: "Bebidas", Description: "Bebidas, batidos y cócteles.", SortOrder: 5},
}

type SeedReport struct {
	PlansInserted      []string
	PlansExisting      []string
	CategoriesInserted []string
	CategoriesExisting []string
}

var errRollback = errors.New("dry run rollback")

// Seed inserts the missing plans and categories. Existing rows are left
// untouched. With dryRun the work happens inside a rolled-back transaction.
func Seed(ctx context.Context, db *gorm.DB, plans []config.PlanConfig, categories []model.Category, dryRun bool) (*SeedReport, error) {
	report := &SeedReport{}

	// 未建表时 dry-run 只能假设全部需要插入
	if dryRun && !schemaReady(db) {
		for _, p := range plans {
			report.PlansInserted = append(report.PlansInserted, normalizePlanName(p.Name))
		}
		for _, c := range categories {
			report.CategoriesInserted = append(report.CategoriesInserted, c.Name)
		}
		return report, nil
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		planRepo := repository.NewPlanRepository(tx)
		categoryRepo := repository.NewCategoryRepository(tx)

		for _, p := range plans {
			if p.DurationDays < 1 {
				return fmt.Errorf("plan %q: duration_days must be positive", p.Name)
			}
			plan := &model.SubscriptionPlan{
				Name:         normalizePlanName(p.Name),
				Price:        p.Price,
				DurationDays: p.DurationDays,
				Description:  p.Description,
				Active:       true,
			}
			created, err := planRepo.EnsureByName(ctx, plan)
			if err != nil {
				return fmt.Errorf("seed plan %q: %w", plan.Name, err)
			}
			if created {
				report.PlansInserted = append(report.PlansInserted, plan.Name)
			} else {
				report.PlansExisting = append(report.PlansExisting, plan.Name)
			}
		}

		for _, c := range categories {
			category := c
			category.Active = true
			created, err := categoryRepo.EnsureByName(ctx, &category)
			if err != nil {
				return fmt.Errorf("seed category %q: %w", category.Name, err)
			}
			if created {
				report.CategoriesInserted = append(report.CategoriesInserted, category.Name)
			} else {
				report.CategoriesExisting = append(report.CategoriesExisting, category.Name)
			}
		}

		if dryRun {
			return errRollback
		}
		return nil
	})
	if err != nil && !errors.Is(err, errRollback) {
		return nil, err
	}

	return report, nil
}

func schemaReady(db *gorm.DB) bool {
	for _, m := range database.Models {
		if !db.Migrator().HasTable(m) {
			return false
		}
	}
	return true
}

// 套餐名与订阅请求中的 plan 一样按小写匹配
func normalizePlanName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
