package dto

// SubscribeRequest 订阅请求
// UserID 可省略；若提供必须与 token 中的用户一致
type SubscribeRequest struct {
	UserID *int64 `json:"user_id,omitempty"`
	Plan   string `json:"plan" binding:"required"`
}

// SubscribeResponse 订阅响应
type SubscribeResponse struct {
	SubscriptionActive bool   `json:"subscription_active"`
	Plan               string `json:"plan"`
	ExpiryDate         string `json:"expiry_date"`
}

// SubscriptionStatus 订阅状态
type SubscriptionStatus struct {
	SubscriptionType   string `json:"subscription_type"`
	SubscriptionActive bool   `json:"subscription_active"`
	SubscriptionStart  string `json:"subscription_start,omitempty"`
	SubscriptionExpiry string `json:"subscription_expiry,omitempty"`
}

// PlanItem 套餐
type PlanItem struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	DurationDays int     `json:"duration_days"`
	Description  string  `json:"description"`
}
