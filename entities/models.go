package entities

// Models lists every persisted entity in migration order.
func Models() []interface{} {
	return []interface{}{
		&Photo{},
		&Category{},
		&CookingType{},
		&Cuisine{},
		&Recipe{},
		&RecipePhoto{},
		&IngredientGroup{},
		&Ingredient{},
		&UnitConversion{},
		&IngredientInRecipeGroup{},
		&IngredientInRecipe{},
		&RecipeRecommendation{},
		&CookBook{},
		&CookBookRecipe{},
		&WeekMenu{},
		&ShoppingList{},
		&ShoppingListItem{},
	}
}
