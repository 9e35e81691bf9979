package dto

// RegisterRequest 注册请求
// 长度规则只在 service 层按 PasswordPolicy 校验，避免多处规则不一致
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,max=255"`
	Password string `json:"password" binding:"required"`
}

// RegisterResponse 注册响应
type RegisterResponse struct {
	User *UserInfo `json:"user"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt string    `json:"expires_at"`
	User      *UserInfo `json:"user"`
}

// PasswordPolicy 密码规则（供前端预校验）
type PasswordPolicy struct {
	MinLength int `json:"min_length"`
	MaxLength int `json:"max_length"`
}

// UserInfo 用户信息（返回给前端），不含密码哈希
type UserInfo struct {
	ID                 int64  `json:"id"`
	Name               string `json:"name"`
	Email              string `json:"email"`
	SubscriptionType   string `json:"subscription_type"`
	SubscriptionActive bool   `json:"subscription_active"`
	SubscriptionStart  string `json:"subscription_start,omitempty"`
	SubscriptionExpiry string `json:"subscription_expiry,omitempty"`
	CreatedAt          string `json:"created_at,omitempty"`
}
