package entities

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Photo struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID     uuid.UUID `gorm:"type:uuid;index;not null" json:"owner_id"`
	Title       string    `gorm:"size:64" json:"title"`
	Slug        string    `gorm:"size:64" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
	StorageKey  string    `gorm:"size:255;not null" json:"storage_key"`
	Width       int       `json:"width"`
	Height      int       `json:"height"`
	IsRedaction bool      `gorm:"default:false" json:"is_redaction"`
	Timestamp
}

func (p *Photo) BeforeCreate(tx *gorm.DB) error {
	ensureID(&p.ID)
	return nil
}

// RecipePhoto attaches a photo to a recipe at an order slot unique per recipe.
type RecipePhoto struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	RecipeID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_recipe_photo;uniqueIndex:idx_recipe_photo_order" json:"recipe_id"`
	PhotoID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_recipe_photo" json:"photo_id"`
	Order     int       `gorm:"column:sort_order;not null;uniqueIndex:idx_recipe_photo_order" json:"order"`
	IsVisible bool      `gorm:"default:true" json:"is_visible"`
	IsChecked bool      `gorm:"default:false" json:"is_checked"`
	Timestamp

	Photo *Photo `gorm:"foreignKey:PhotoID" json:"photo,omitempty"`
}

func (rp *RecipePhoto) BeforeCreate(tx *gorm.DB) error {
	ensureID(&rp.ID)
	return nil
}
