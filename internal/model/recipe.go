package model

import (
	"time"
)

// Difficulty is the closed set of recipe difficulty levels.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "fácil"
	DifficultyMedium Difficulty = "media"
	DifficultyHard   Difficulty = "difícil"
)

var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

func (d Difficulty) Valid() bool {
	for _, v := range Difficulties {
		if d == v {
			return true
		}
	}
	return false
}

type Recipe struct {
	ID              int64      `gorm:"primaryKey" json:"id"`
	Title           string     `gorm:"size:255;not null" json:"title"`
	Description     string     `gorm:"type:text" json:"description"`
	Ingredients     string     `gorm:"type:text;not null" json:"ingredients"`
	Instructions    string     `gorm:"type:text;not null" json:"-"` // 每行一个步骤
	PrepTimeMinutes int        `gorm:"default:0" json:"prep_time_minutes"`
	Servings        int        `gorm:"default:1" json:"servings"`
	Difficulty      Difficulty `gorm:"size:20;default:fácil" json:"difficulty"`
	CategoryID      int64      `gorm:"not null;index" json:"category_id"`
	Category        *Category  `gorm:"foreignKey:CategoryID" json:"-"`
	ImageURL        string     `gorm:"size:500" json:"image_url"`
	Author          string     `gorm:"size:100;default:Anónimo" json:"author"` // 作者名，非外键
	IsPremium       bool       `gorm:"default:false;index" json:"is_premium"`
	Active          bool       `gorm:"default:true;index" json:"-"`
	ViewCount       int        `gorm:"default:0" json:"view_count"`
	CreatedAt       time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (Recipe) TableName() string {
	return "recipes"
}
