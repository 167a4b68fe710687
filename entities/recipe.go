package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CookingType struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name        string    `gorm:"size:128;not null" json:"name"`
	Slug        string    `gorm:"size:64;uniqueIndex;not null" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
}

func (ct *CookingType) BeforeCreate(tx *gorm.DB) error {
	ensureID(&ct.ID)
	return nil
}

type Cuisine struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name        string    `gorm:"size:128;not null" json:"name"`
	Slug        string    `gorm:"size:64;uniqueIndex;not null" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
}

func (c *Cuisine) BeforeCreate(tx *gorm.DB) error {
	ensureID(&c.ID)
	return nil
}

type Recipe struct {
	ID              uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Title           string     `gorm:"size:128;not null" json:"title"`
	Slug            string     `gorm:"size:64;uniqueIndex;not null" json:"slug"`
	CategoryID      uuid.UUID  `gorm:"type:uuid;index;not null" json:"category_id"`
	Description     string     `gorm:"type:text" json:"description"`
	Preparation     string     `gorm:"type:text;not null" json:"preparation"`
	Hint            string     `gorm:"type:text" json:"hint"`
	CookingTypeID   *uuid.UUID `gorm:"type:uuid" json:"cooking_type_id,omitempty"`
	Servings        *int       `json:"servings,omitempty"`
	Price           int        `gorm:"default:3;index" json:"price"`
	Difficulty      int        `gorm:"default:3;index" json:"difficulty"`
	PreparationTime *int       `json:"preparation_time,omitempty"`
	CaloricValue    *int       `json:"caloric_value,omitempty"`
	OwnerID         uuid.UUID  `gorm:"type:uuid;index;not null" json:"owner_id"`
	IsApproved      bool       `gorm:"default:false;index" json:"is_approved"`
	IsPublic        bool       `gorm:"default:true" json:"is_public"`
	IsChecked       bool       `gorm:"default:false" json:"is_checked"`
	Timestamp

	Cuisines []Cuisine `gorm:"many2many:recipe_cuisines" json:"cuisines,omitempty"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	ensureID(&r.ID)
	return nil
}

// IngredientInRecipeGroup is a named section of one recipe's ingredient list.
type IngredientInRecipeGroup struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	RecipeID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_recipe_group_order" json:"recipe_id"`
	Title       string    `gorm:"size:128" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Order       int       `gorm:"column:sort_order;not null;uniqueIndex:idx_recipe_group_order" json:"order"`
}

func (g *IngredientInRecipeGroup) BeforeCreate(tx *gorm.DB) error {
	ensureID(&g.ID)
	return nil
}

type IngredientInRecipe struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	RecipeID     uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_recipe_ingredient_order" json:"recipe_id"`
	GroupID      *uuid.UUID `gorm:"type:uuid" json:"group_id,omitempty"`
	IngredientID uuid.UUID  `gorm:"type:uuid;not null;index" json:"ingredient_id"`
	Amount       *float64   `json:"amount,omitempty"`
	Unit         *int       `json:"unit,omitempty"`
	Order        int        `gorm:"column:sort_order;not null;uniqueIndex:idx_recipe_ingredient_order" json:"order"`
	Note         string     `gorm:"size:255" json:"note"`

	Ingredient *Ingredient `gorm:"foreignKey:IngredientID" json:"ingredient,omitempty"`
}

func (i *IngredientInRecipe) BeforeCreate(tx *gorm.DB) error {
	ensureID(&i.ID)
	return nil
}

type RecipeRecommendation struct {
	ID       uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	RecipeID uuid.UUID  `gorm:"type:uuid;not null;index" json:"recipe_id"`
	DayFrom  time.Time  `gorm:"type:date;not null;index" json:"day_from"`
	DayTo    *time.Time `gorm:"type:date" json:"day_to,omitempty"`

	Recipe *Recipe `gorm:"foreignKey:RecipeID" json:"recipe,omitempty"`
}

func (r *RecipeRecommendation) BeforeCreate(tx *gorm.DB) error {
	ensureID(&r.ID)
	return nil
}
