package domain

import "errors"

var (
	MessageSuccessGetShoppingList  = "success get shopping list"
	MessageSuccessSaveShoppingList = "shopping list saved successfully"
	MessageSuccessAddRecipeToList  = "recipe added to shopping list"

	MessageFailedGetShoppingList  = "failed to get shopping list"
	MessageFailedSaveShoppingList = "failed to save shopping list"
	MessageFailedAddRecipeToList  = "failed to add recipe to shopping list"

	ErrShoppingListNotFound = errors.New("shopping list not found")
)

type (
	CreateShoppingListRequest struct {
		Title string `json:"title" validate:"required,max=155"`
		Note  string `json:"note"`
	}

	ShoppingItem struct {
		ID           string   `json:"id"`
		IngredientID string   `json:"ingredient_id"`
		Name         string   `json:"name"`
		Amount       *float64 `json:"amount,omitempty"`
		Unit         string   `json:"unit,omitempty"`
		Note         string   `json:"note,omitempty"`
	}

	ShoppingList struct {
		ID    string         `json:"id"`
		Title string         `json:"title"`
		Note  string         `json:"note"`
		Items []ShoppingItem `json:"items"`
	}
)
