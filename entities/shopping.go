package entities

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ShoppingList struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	Title   string    `gorm:"size:155;not null" json:"title"`
	Note    string    `gorm:"type:text" json:"note"`
	Timestamp
}

func (s *ShoppingList) BeforeCreate(tx *gorm.DB) error {
	ensureID(&s.ID)
	return nil
}

type ShoppingListItem struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ShoppingListID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_shopping_item" json:"shopping_list_id"`
	IngredientID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_shopping_item" json:"ingredient_id"`
	Amount         *float64  `json:"amount,omitempty"`
	Unit           *int      `json:"unit,omitempty"`
	Note           string    `gorm:"size:255" json:"note"`
}

func (s *ShoppingListItem) BeforeCreate(tx *gorm.DB) error {
	ensureID(&s.ID)
	return nil
}
