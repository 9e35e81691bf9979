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

func TestRecipeRepository_CreateAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewRecipeRepository(db)
	ctx := context.Background()
	category := testutil.TestCategory(t, db, "Postres")

	recipe := &model.Recipe{
		Title:        "Flan",
		Ingredients:  "leche\nhuevos\nazúcar",
		Instructions: "Batir\nHornear",
		Difficulty:   model.DifficultyMedium,
		CategoryID:   category.ID,
		Servings:     6,
		IsPremium:    true,
		Active:       true,
	}
	require.NoError(t, repo.Create(ctx, recipe))
	assert.NotZero(t, recipe.ID)

	found, err := repo.GetActiveByID(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, "Flan", found.Title)
	assert.True(t, found.IsPremium)
	assert.Equal(t, "Anónimo", found.Author)
	require.NotNil(t, found.Category)
	assert.Equal(t, "Postres", found.Category.Name)
}

func TestRecipeRepository_GetActiveByID_Inactive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewRecipeRepository(db)
	category := testutil.TestCategory(t, db, "Sopas")
	recipe := testutil.TestRecipe(t, db, category.ID, testutil.InactiveRecipe())

	_, err := repo.GetActiveByID(context.Background(), recipe.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRecipeRepository_List(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewRecipeRepository(db)
	ctx := context.Background()
	category := testutil.TestCategory(t, db, "Principales")

	testutil.TestRecipe(t, db, category.ID, testutil.WithTitle("Pollo al horno"))
	testutil.TestRecipe(t, db, category.ID, testutil.WithTitle("Ensalada"), testutil.WithIngredients("lechuga\npollo"))
	testutil.TestRecipe(t, db, category.ID, testutil.WithTitle("Tortilla"))
	testutil.TestRecipe(t, db, category.ID, testutil.WithTitle("Pollo oculto"), testutil.InactiveRecipe())

	t.Run("all active", func(t *testing.T) {
		recipes, total, err := repo.List(ctx, "", 1, 20)
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, recipes, 3)
	})

	t.Run("search title and ingredients case-insensitive", func(t *testing.T) {
		recipes, total, err := repo.List(ctx, "POLLO", 1, 20)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, recipes, 2)
	})

	t.Run("wildcards are literal", func(t *testing.T) {
		_, total, err := repo.List(ctx, "%", 1, 20)
		require.NoError(t, err)
		assert.Equal(t, int64(0), total)
	})

	t.Run("pagination", func(t *testing.T) {
		recipes, total, err := repo.List(ctx, "", 2, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, recipes, 1)
	})
}

func TestRecipeRepository_IncrementViewCount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewRecipeRepository(db)
	ctx := context.Background()
	category := testutil.TestCategory(t, db, "Postres")
	recipe := testutil.TestRecipe(t, db, category.ID)

	require.NoError(t, repo.IncrementViewCount(ctx, recipe.ID))
	require.NoError(t, repo.IncrementViewCount(ctx, recipe.ID))

	found, err := repo.GetActiveByID(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, found.ViewCount)
}
