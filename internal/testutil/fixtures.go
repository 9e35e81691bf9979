package testutil

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/delishare/recipe_server/internal/model"
	"github.com/delishare/recipe_server/internal/pkg/password"
)

// DefaultPassword is the plaintext behind fixtures created without WithPassword.
const DefaultPassword = "secret1"

// Date returns midnight UTC of the given day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

type userFixture struct {
	user     *model.User
	password string
	inactive bool
}

// TestUser 创建测试用户
func TestUser(t *testing.T, db *gorm.DB, opts ...func(*userFixture)) *model.User {
	t.Helper()

	f := &userFixture{
		user: &model.User{
			Name:             fmt.Sprintf("user_%d", time.Now().UnixNano()%100000),
			Email:            fmt.Sprintf("test_%d@example.com", time.Now().UnixNano()),
			SubscriptionType: model.SubscriptionFree,
			Active:           true,
		},
		password: DefaultPassword,
	}

	for _, opt := range opts {
		opt(f)
	}

	hash, err := password.HashWithCost(f.password, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash fixture password: %v", err)
	}
	f.user.PasswordHash = hash

	if err := db.Create(f.user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	// active 列有默认值 true，零值在 Create 时会被忽略
	if f.inactive {
		if err := db.Model(f.user).Update("active", false).Error; err != nil {
			t.Fatalf("Failed to deactivate test user: %v", err)
		}
		f.user.Active = false
	}

	return f.user
}

// WithName 设置用户名
func WithName(name string) func(*userFixture) {
	return func(f *userFixture) {
		f.user.Name = name
	}
}

// WithEmail 设置邮箱
func WithEmail(email string) func(*userFixture) {
	return func(f *userFixture) {
		f.user.Email = strings.ToLower(email)
	}
}

// WithPassword 设置明文密码
func WithPassword(plain string) func(*userFixture) {
	return func(f *userFixture) {
		f.password = plain
	}
}

// WithPremium 设置为付费用户；expiry 为 nil 表示永不过期
func WithPremium(start, expiry *time.Time) func(*userFixture) {
	return func(f *userFixture) {
		f.user.SubscriptionType = model.SubscriptionPremium
		f.user.SubscriptionStart = start
		f.user.SubscriptionExpiry = expiry
	}
}

// Inactive 创建后停用账户
func Inactive() func(*userFixture) {
	return func(f *userFixture) {
		f.inactive = true
	}
}

// TestCategory 创建测试分类
func TestCategory(t *testing.T, db *gorm.DB, name string) *model.Category {
	t.Helper()

	category := &model.Category{
		Name:   name,
		Active: true,
	}

	if err := db.Create(category).Error; err != nil {
		t.Fatalf("Failed to create test category: %v", err)
	}

	return category
}

// TestPlan 创建测试套餐
func TestPlan(t *testing.T, db *gorm.DB, name string, durationDays int, price float64) *model.SubscriptionPlan {
	t.Helper()

	plan := &model.SubscriptionPlan{
		Name:         name,
		Price:        price,
		DurationDays: durationDays,
		Active:       true,
	}

	if err := db.Create(plan).Error; err != nil {
		t.Fatalf("Failed to create test plan: %v", err)
	}

	return plan
}

// TestRecipe 创建测试菜谱
func TestRecipe(t *testing.T, db *gorm.DB, categoryID int64, opts ...func(*model.Recipe)) *model.Recipe {
	t.Helper()

	recipe := &model.Recipe{
		Title:           fmt.Sprintf("Recipe %d", time.Now().UnixNano()%10000),
		Ingredients:     "harina\nhuevos",
		Instructions:    "Mezclar\nHornear\nServir",
		PrepTimeMinutes: 30,
		Servings:        4,
		Difficulty:      model.DifficultyEasy,
		CategoryID:      categoryID,
		Author:          "Chef",
		Active:          true,
	}

	for _, opt := range opts {
		opt(recipe)
	}

	active := recipe.Active
	if err := db.Create(recipe).Error; err != nil {
		t.Fatalf("Failed to create test recipe: %v", err)
	}
	if !active {
		if err := db.Model(recipe).Update("active", false).Error; err != nil {
			t.Fatalf("Failed to deactivate test recipe: %v", err)
		}
		recipe.Active = false
	}

	return recipe
}

// WithTitle 设置标题
func WithTitle(title string) func(*model.Recipe) {
	return func(r *model.Recipe) {
		r.Title = title
	}
}

// WithSteps 设置步骤（每行一步）
func WithSteps(n int) func(*model.Recipe) {
	return func(r *model.Recipe) {
		steps := make([]string, n)
		for i := range steps {
			steps[i] = fmt.Sprintf("Paso %d", i+1)
		}
		r.Instructions = strings.Join(steps, "\n")
	}
}

// WithIngredients 设置配料
func WithIngredients(ingredients string) func(*model.Recipe) {
	return func(r *model.Recipe) {
		r.Ingredients = ingredients
	}
}

// PremiumRecipe 设置为付费菜谱
func PremiumRecipe() func(*model.Recipe) {
	return func(r *model.Recipe) {
		r.IsPremium = true
	}
}

// InactiveRecipe 设置为下架
func InactiveRecipe() func(*model.Recipe) {
	return func(r *model.Recipe) {
		r.Active = false
	}
}
