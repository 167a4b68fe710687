package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGetRecipes         = "success get recipes"
	MessageSuccessGetRecipeDetail    = "success get recipe detail"
	MessageSuccessSaveRecipe         = "recipe saved successfully"
	MessageSuccessAttachPhoto        = "photo attached successfully"
	MessageSuccessDetachPhoto        = "photo detached successfully"
	MessageSuccessAddIngredient      = "ingredient added successfully"
	MessageSuccessAddIngredientGroup = "ingredient group added successfully"
	MessageSuccessSaveRecommendation = "recommendation saved successfully"
	MessageSuccessGetRecommendations = "success get recommendations"
	MessageSuccessGetPhotos          = "success get recipe photos"
	MessageSuccessGetIngredients     = "success get recipe ingredients"

	MessageFailedGetRecipes         = "failed to get recipes"
	MessageFailedGetRecipeDetail    = "failed to get recipe detail"
	MessageFailedSaveRecipe         = "failed to save recipe"
	MessageFailedAttachPhoto        = "failed to attach photo"
	MessageFailedDetachPhoto        = "failed to detach photo"
	MessageFailedAddIngredient      = "failed to add ingredient"
	MessageFailedAddIngredientGroup = "failed to add ingredient group"
	MessageFailedSaveRecommendation = "failed to save recommendation"
	MessageFailedGetRecommendations = "failed to get recommendations"
	MessageFailedGetPhotos          = "failed to get recipe photos"
	MessageFailedGetIngredients     = "failed to get recipe ingredients"

	ErrRecipeNotFound     = errors.New("recipe not found")
	ErrPhotoNotFound      = errors.New("photo not found")
	ErrPhotoAttached      = errors.New("photo is already attached to this recipe")
	ErrInvalidPrice       = errors.New("unknown pricing tier")
	ErrInvalidDifficulty  = errors.New("unknown difficulty tier")
	ErrInvalidUnit        = errors.New("unknown unit")
	ErrGroupOfOtherRecipe = errors.New("ingredient group belongs to another recipe")
	ErrDuplicateOrder     = errors.New("order slot already taken")
	ErrInvalidDateRange   = errors.New("day_to must not precede day_from")
	ErrRecipeNotApproved  = errors.New("recommended recipe must be approved and public")
	ErrDuplicateSlug      = errors.New("slug is already used by another recipe")
	ErrIngredientNotFound = errors.New("ingredient not found")
	ErrUnknownOrdering    = errors.New("unknown ordering")
)

type (
	CreateRecipeRequest struct {
		Title           string   `json:"title" validate:"required,max=128"`
		Slug            string   `json:"slug" validate:"required,slug,max=64"`
		CategoryID      string   `json:"category_id" validate:"required,uuid"`
		Description     string   `json:"description"`
		Preparation     string   `json:"preparation" validate:"required"`
		Hint            string   `json:"hint"`
		Servings        *int     `json:"servings" validate:"omitempty,min=1"`
		Price           int      `json:"price" validate:"omitempty,min=1,max=5"`
		Difficulty      int      `json:"difficulty" validate:"omitempty,oneof=1 3 5"`
		PreparationTime *int     `json:"preparation_time" validate:"omitempty,min=0"`
		CaloricValue    *int     `json:"caloric_value" validate:"omitempty,min=0"`
		OwnerID         string   `json:"owner_id" validate:"required,uuid"`
		CuisineIDs      []string `json:"cuisine_ids" validate:"omitempty,dive,uuid"`
	}

	AttachPhotoRequest struct {
		PhotoID   string `json:"photo_id" validate:"required,uuid"`
		Order     *int   `json:"order" validate:"omitempty,min=1"`
		IsVisible *bool  `json:"is_visible"`
	}

	AddIngredientRequest struct {
		IngredientID string   `json:"ingredient_id" validate:"required,uuid"`
		GroupID      string   `json:"group_id" validate:"omitempty,uuid"`
		Amount       *float64 `json:"amount" validate:"omitempty,gte=0"`
		Unit         *int     `json:"unit"`
		Order        *int     `json:"order" validate:"omitempty,min=1"`
		Note         string   `json:"note" validate:"max=255"`
	}

	AddIngredientGroupRequest struct {
		Title       string `json:"title" validate:"max=128"`
		Description string `json:"description"`
		Order       *int   `json:"order" validate:"omitempty,min=1"`
	}

	CreateRecommendationRequest struct {
		RecipeID string `json:"recipe_id" validate:"required,uuid"`
		DayFrom  string `json:"day_from" validate:"required,datetime=2006-01-02"`
		DayTo    string `json:"day_to" validate:"omitempty,datetime=2006-01-02"`
	}

	Recipe struct {
		ID          string    `json:"id"`
		Title       string    `json:"title"`
		Slug        string    `json:"slug"`
		CategoryID  string    `json:"category_id"`
		Description string    `json:"description"`
		Price       int       `json:"price"`
		Difficulty  int       `json:"difficulty"`
		URL         string    `json:"url"`
		CreatedAt   time.Time `json:"created_at"`
	}

	RecipePhoto struct {
		PhotoID  string `json:"photo_id"`
		Title    string `json:"title"`
		Order    int    `json:"order"`
		IsOwner  bool   `json:"is_owner"`
		ImageURL string `json:"image_url"`
	}

	RecipeIngredient struct {
		IngredientID string   `json:"ingredient_id"`
		Name         string   `json:"name"`
		Amount       *float64 `json:"amount,omitempty"`
		Unit         string   `json:"unit,omitempty"`
		Order        int      `json:"order"`
		Note         string   `json:"note,omitempty"`
	}

	IngredientBucket struct {
		GroupID string             `json:"group_id,omitempty"`
		Title   string             `json:"title,omitempty"`
		Order   int                `json:"order"`
		Items   []RecipeIngredient `json:"items"`
	}

	RecipeDetail struct {
		Recipe
		Preparation  string             `json:"preparation"`
		Hint         string             `json:"hint,omitempty"`
		CategoryPath string             `json:"category_path"`
		TopPhoto     *RecipePhoto       `json:"top_photo,omitempty"`
		Photos       []RecipePhoto      `json:"photos"`
		Ingredients  []IngredientBucket `json:"ingredients"`
	}
)
