package recipe

import (
	"gorm.io/gorm"

	"yummy-backend/domain"
)

// OrderFunc orders a recipe listing.
type OrderFunc func(db *gorm.DB) *gorm.DB

// OrderByCookbookSaves ranks recipes by how many cookbooks hold them.
func OrderByCookbookSaves(db *gorm.DB) *gorm.DB {
	return db.
		Joins("LEFT JOIN (SELECT recipe_id, COUNT(*) AS saves FROM cook_book_recipes GROUP BY recipe_id) rating ON rating.recipe_id = recipes.id").
		Order("COALESCE(rating.saves, 0) desc").
		Order("recipes.created_at desc")
}

func orderColumn(column string) OrderFunc {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(column)
	}
}

func (s *recipeService) orderFor(attr string) (OrderFunc, error) {
	if attr == "" {
		attr = s.strategies.DefaultOrdering
	}
	switch attr {
	case domain.OrderBySlug:
		return orderColumn("recipes.slug asc"), nil
	case domain.OrderByTitle:
		return orderColumn("recipes.title asc"), nil
	case domain.OrderByCreated:
		return orderColumn("recipes.created_at desc"), nil
	case domain.OrderByRating:
		return s.strategies.RatingOrder, nil
	}
	return nil, domain.NewValidationError("order", domain.ErrUnknownOrdering)
}
