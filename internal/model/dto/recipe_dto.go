package dto

// CreateRecipeRequest 创建菜谱请求
type CreateRecipeRequest struct {
	Title           string `json:"title" binding:"required,max=255"`
	Description     string `json:"description"`
	Ingredients     string `json:"ingredients" binding:"required"`
	Instructions    string `json:"instructions" binding:"required"`
	PrepTimeMinutes int    `json:"prep_time_minutes" binding:"required,gt=0"`
	Servings        int    `json:"servings" binding:"required,gt=0,lte=20"`
	Difficulty      string `json:"difficulty" binding:"omitempty,difficulty"`
	CategoryID      int64  `json:"category_id" binding:"required,gt=0"`
	ImageURL        string `json:"image_url" binding:"omitempty,url,max=500"`
	Author          string `json:"author" binding:"max=100"`
	IsPremium       bool   `json:"is_premium"`
}

// CreateRecipeResponse 创建菜谱响应
type CreateRecipeResponse struct {
	ID int64 `json:"id"`
}

// RecipeItem 列表项，不包含步骤
type RecipeItem struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	PrepTimeMinutes int    `json:"prep_time_minutes"`
	Servings        int    `json:"servings"`
	Difficulty      string `json:"difficulty"`
	CategoryID      int64  `json:"category_id"`
	CategoryName    string `json:"category_name,omitempty"`
	ImageURL        string `json:"image_url"`
	Author          string `json:"author"`
	IsPremium       bool   `json:"is_premium"`
	CreatedAt       string `json:"created_at"`
}

// RecipeDetail 菜谱详情，Instructions 为当前访问者可见的步骤
type RecipeDetail struct {
	RecipeItem
	Ingredients      string   `json:"ingredients"`
	Instructions     []string `json:"instructions"`
	HiddenStepsCount int      `json:"hidden_steps_count"`
	TotalSteps       int      `json:"total_steps"`
	Locked           bool     `json:"locked"`
	ViewCount        int      `json:"view_count"`
}

// CategoryItem 分类
type CategoryItem struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}
