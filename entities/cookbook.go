package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CookBook is a user-owned list of recipes. At most one cookbook per owner
// carries IsDefault.
type CookBook struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_cookbook_default,where:is_default = true" json:"owner_id"`
	Title     string    `gorm:"size:128;not null" json:"title"`
	Slug      string    `gorm:"size:128;not null" json:"slug"`
	IsPublic  bool      `gorm:"default:true" json:"is_public"`
	IsDefault bool      `gorm:"default:false;uniqueIndex:idx_cookbook_default,where:is_default = true" json:"is_default"`
	Timestamp
}

func (cb *CookBook) BeforeCreate(tx *gorm.DB) error {
	ensureID(&cb.ID)
	return nil
}

type CookBookRecipe struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CookBookID uuid.UUID `gorm:"column:cookbook_id;type:uuid;not null;uniqueIndex:idx_cookbook_recipe" json:"cookbook_id"`
	RecipeID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cookbook_recipe" json:"recipe_id"`
	Note       string    `gorm:"size:255" json:"note"`
	Added      time.Time `gorm:"type:date;not null" json:"added"`
}

func (cbr *CookBookRecipe) BeforeCreate(tx *gorm.DB) error {
	ensureID(&cbr.ID)
	return nil
}
