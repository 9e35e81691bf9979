package model

import (
	"time"
)

type Category struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `gorm:"size:500" json:"description"`
	Icon        string    `gorm:"size:50;default:fas fa-utensils" json:"icon"`
	Active      bool      `gorm:"default:true" json:"-"`
	SortOrder   int       `gorm:"default:0" json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Category) TableName() string {
	return "categories"
}
