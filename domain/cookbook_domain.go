package domain

import "errors"

var (
	MessageSuccessGetCookbooks   = "success get cookbooks"
	MessageSuccessSaveCookbook   = "cookbook saved successfully"
	MessageSuccessAddToCookbook  = "recipe added to cookbook"
	MessageSuccessRemoveFromBook = "recipe removed from cookbook"
	MessageSuccessUpdateNote     = "cookbook note updated"

	MessageFailedGetCookbooks   = "failed to get cookbooks"
	MessageFailedSaveCookbook   = "failed to save cookbook"
	MessageFailedAddToCookbook  = "failed to add recipe to cookbook"
	MessageFailedRemoveFromBook = "failed to remove recipe from cookbook"
	MessageFailedUpdateNote     = "failed to update cookbook note"

	ErrCookbookNotFound     = errors.New("cookbook not found")
	ErrCookbookItemNotFound = errors.New("recipe is not in this cookbook")
	ErrRecipeInCookbook     = errors.New("recipe is already in this cookbook")
	ErrEmptySlug            = errors.New("title does not produce a usable slug")
)

type (
	SaveCookbookRequest struct {
		Title     string `json:"title" validate:"required,max=128"`
		IsPublic  *bool  `json:"is_public"`
		IsDefault bool   `json:"is_default"`
	}

	AddToCookbookRequest struct {
		CookbookID string `json:"cookbook_id" validate:"omitempty,uuid"`
		RecipeID   string `json:"recipe_id" validate:"required,uuid"`
		Note       string `json:"note" validate:"max=255"`
	}

	UpdateNoteRequest struct {
		Note string `json:"note" validate:"max=255"`
	}

	CookbookItem struct {
		ID         string `json:"id"`
		CookbookID string `json:"cookbook_id"`
		RecipeID   string `json:"recipe_id"`
		Note       string `json:"note"`
		Added      string `json:"added"`
	}

	Cookbook struct {
		ID        string `json:"id"`
		Title     string `json:"title"`
		Slug      string `json:"slug"`
		IsPublic  bool   `json:"is_public"`
		IsDefault bool   `json:"is_default"`
		Recipes   int64  `json:"recipes"`
	}
)
