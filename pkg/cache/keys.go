package cache

import (
	"fmt"

	"github.com/google/uuid"
)

func CategoryKey(id uuid.UUID) string            { return fmt.Sprintf("category:%s", id) }
func CategoryRecipeCountKey(id uuid.UUID) string { return fmt.Sprintf("category:%s:recipe_count", id) }
func RecipePhotosKey(id uuid.UUID) string        { return fmt.Sprintf("recipe:%s:photos", id) }
func RecipeIngredientsKey(id uuid.UUID) string {
	return fmt.Sprintf("recipe:%s:grouped_ingredients", id)
}
func UserCookbookCountKey(owner uuid.UUID) string {
	return fmt.Sprintf("%s_get_all_cookbooks_recipes", owner)
}
func UserCookbookItemsKey(owner, recipe uuid.UUID) string {
	return fmt.Sprintf("recipe_%s_cbowner_%s_get_cookbook_items", recipe, owner)
}

const IngredientNamesKey = "ingredient_get_names_list"
