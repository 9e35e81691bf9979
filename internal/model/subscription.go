package model

import (
	"time"
)

// SubscriptionPlan is a purchasable offering. The catalog is read-only for clients.
type SubscriptionPlan struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:100;uniqueIndex;not null" json:"name"` // mensual, anual
	Price        float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	DurationDays int       `gorm:"not null" json:"duration_days"`
	Description  string    `gorm:"size:500" json:"description"`
	Active       bool      `gorm:"default:true;not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

func (SubscriptionPlan) TableName() string {
	return "subscription_plans"
}
