package model

import (
	"time"
)

// SubscriptionType is the closed set of account tiers.
type SubscriptionType string

const (
	SubscriptionFree    SubscriptionType = "free"
	SubscriptionPremium SubscriptionType = "premium"
)

func (t SubscriptionType) Valid() bool {
	return t == SubscriptionFree || t == SubscriptionPremium
}

type User struct {
	ID                 int64            `gorm:"primaryKey" json:"id"`
	Name               string           `gorm:"size:100;not null" json:"name"`
	Email              string           `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash       string           `gorm:"size:255;not null" json:"-"`
	SubscriptionType   SubscriptionType `gorm:"size:20;default:free;not null" json:"subscription_type"`
	SubscriptionStart  *time.Time       `gorm:"type:date" json:"subscription_start,omitempty"`
	SubscriptionExpiry *time.Time       `gorm:"type:date" json:"subscription_expiry,omitempty"`
	Active             bool             `gorm:"default:true;not null" json:"active"`
	LastLoginAt        *time.Time       `json:"-"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
