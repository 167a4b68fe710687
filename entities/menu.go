package entities

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WeekMenu holds the dishes for one weekday of either even or odd weeks.
type WeekMenu struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Day       int        `gorm:"not null;uniqueIndex:idx_week_menu_day" json:"day"`
	EvenWeek  bool       `gorm:"not null;default:false;uniqueIndex:idx_week_menu_day" json:"even_week"`
	SoupID    *uuid.UUID `gorm:"type:uuid" json:"soup_id,omitempty"`
	MealID    *uuid.UUID `gorm:"type:uuid" json:"meal_id,omitempty"`
	DessertID *uuid.UUID `gorm:"type:uuid" json:"dessert_id,omitempty"`
}

func (w *WeekMenu) BeforeCreate(tx *gorm.DB) error {
	ensureID(&w.ID)
	return nil
}
