package entities

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IngredientGroup is a catalog grouping (vegetables, dairy, ...), unrelated to
// the per-recipe IngredientInRecipeGroup sections.
type IngredientGroup struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name string    `gorm:"size:128;not null" json:"name"`
	Slug string    `gorm:"size:128;uniqueIndex;not null" json:"slug"`
}

func (g *IngredientGroup) BeforeCreate(tx *gorm.DB) error {
	ensureID(&g.ID)
	return nil
}

type Ingredient struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	GroupID     *uuid.UUID `gorm:"type:uuid;index" json:"group_id,omitempty"`
	Name        string     `gorm:"size:128;not null" json:"name"`
	Slug        string     `gorm:"size:64;uniqueIndex;not null" json:"slug"`
	Genitive    string     `gorm:"size:128" json:"genitive"`
	DefaultUnit *int       `json:"default_unit,omitempty"`
	NDBNo       *int       `gorm:"column:ndb_no" json:"ndb_no,omitempty"`
	IsApproved  bool       `gorm:"default:true;index" json:"is_approved"`
}

func (i *Ingredient) BeforeCreate(tx *gorm.DB) error {
	ensureID(&i.ID)
	return nil
}

type UnitConversion struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	FromUnit int       `gorm:"not null;uniqueIndex:idx_unit_conversion" json:"from_unit"`
	ToUnit   int       `gorm:"not null;uniqueIndex:idx_unit_conversion" json:"to_unit"`
	Ratio    float64   `gorm:"not null" json:"ratio"`
}

func (u *UnitConversion) BeforeCreate(tx *gorm.DB) error {
	ensureID(&u.ID)
	return nil
}
