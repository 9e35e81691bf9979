package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/delishare/recipe_server/internal/model"
	"github.com/delishare/recipe_server/internal/testutil"
)

func TestPlanRepository(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewPlanRepository(db)
	ctx := context.Background()

	testutil.TestPlan(t, db, "anual", 365, 49.99)
	testutil.TestPlan(t, db, "mensual", 30, 4.99)

	t.Run("list ordered by price", func(t *testing.T) {
		plans, err := repo.ListActive(ctx)
		require.NoError(t, err)
		require.Len(t, plans, 2)
		assert.Equal(t, "mensual", plans[0].Name)
		assert.Equal(t, "anual", plans[1].Name)
	})

	t.Run("get by name", func(t *testing.T) {
		plan, err := repo.GetActiveByName(ctx, "anual")
		require.NoError(t, err)
		assert.Equal(t, 365, plan.DurationDays)

		_, err = repo.GetActiveByName(ctx, "semanal")
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("ensure is idempotent", func(t *testing.T) {
		created, err := repo.EnsureByName(ctx, &model.SubscriptionPlan{Name: "mensual", Price: 9.99, DurationDays: 31, Active: true})
		require.NoError(t, err)
		assert.False(t, created)

		plan, err := repo.GetActiveByName(ctx, "mensual")
		require.NoError(t, err)
		assert.Equal(t, 30, plan.DurationDays)

		created, err = repo.EnsureByName(ctx, &model.SubscriptionPlan{Name: "semanal", Price: 1.99, DurationDays: 7, Active: true})
		require.NoError(t, err)
		assert.True(t, created)
	})
}

func TestCategoryRepository(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewCategoryRepository(db)
	ctx := context.Background()

	sopas := testutil.TestCategory(t, db, "Sopas")
	testutil.TestCategory(t, db, "Postres")
	hidden := testutil.TestCategory(t, db, "Oculta")
	require.NoError(t, db.Model(hidden).Update("active", false).Error)

	categories, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Postres", categories[0].Name)
	assert.Equal(t, "Sopas", categories[1].Name)

	exists, err := repo.ExistsActive(ctx, sopas.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsActive(ctx, hidden.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	created, err := repo.EnsureByName(ctx, &model.Category{Name: "Sopas"})
	require.NoError(t, err)
	assert.False(t, created)
}
