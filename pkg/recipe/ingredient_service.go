package recipe

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"yummy-backend/domain"
	"yummy-backend/entities"
	"yummy-backend/pkg/cache"
	"yummy-backend/pkg/ordering"
)

// AddIngredient appends an ingredient row to a recipe. Without an explicit
// order the row takes count+1; two concurrent writers may compute the same
// slot and the later one fails with an IntegrityError.
func (s *recipeService) AddIngredient(ctx context.Context, recipeID uuid.UUID, req domain.AddIngredientRequest) (*entities.IngredientInRecipe, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, domain.NewValidationError("", err)
	}
	ingredientID, err := uuid.Parse(req.IngredientID)
	if err != nil {
		return nil, domain.NewValidationError("ingredient_id", domain.ErrParseUUID)
	}
	if req.Unit != nil {
		if _, ok := domain.UnitByID(*req.Unit); !ok {
			return nil, domain.NewValidationError("unit", domain.ErrInvalidUnit)
		}
	}
	var groupID *uuid.UUID
	if req.GroupID != "" {
		id, err := uuid.Parse(req.GroupID)
		if err != nil {
			return nil, domain.NewValidationError("group_id", domain.ErrParseUUID)
		}
		groupID = &id
	}

	item := &entities.IngredientInRecipe{
		RecipeID:     recipeID,
		GroupID:      groupID,
		IngredientID: ingredientID,
		Amount:       req.Amount,
		Unit:         req.Unit,
		Note:         req.Note,
	}
	err = s.repo.Transaction(ctx, func(repo RecipeRepository) error {
		if _, err := repo.GetRecipeByID(ctx, recipeID); err != nil {
			return recipeNotFound(recipeID, err)
		}
		exists, err := repo.IngredientExists(ctx, ingredientID)
		if err != nil {
			return domain.MapDBError("check ingredient", err)
		}
		if !exists {
			return domain.NewValidationError("ingredient_id", domain.ErrIngredientNotFound)
		}
		if groupID != nil {
			group, err := repo.GetIngredientGroup(ctx, *groupID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return domain.NewValidationError("group_id", domain.NewNotFoundError("ingredient group", groupID.String()))
				}
				return domain.MapDBError("load ingredient group", err)
			}
			if group.RecipeID != recipeID {
				return domain.NewValidationError("group_id", domain.ErrGroupOfOtherRecipe)
			}
		}

		if req.Order != nil {
			item.Order = *req.Order
		} else {
			count, err := repo.CountIngredients(ctx, recipeID)
			if err != nil {
				return domain.MapDBError("count recipe ingredients", err)
			}
			item.Order = ordering.Append(int(count))
		}
		if err := repo.CreateIngredient(ctx, item); err != nil {
			return orderConflict("add ingredient", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.loader.Invalidate(ctx, cache.RecipeIngredientsKey(recipeID))
	return item, nil
}

func (s *recipeService) AddIngredientGroup(ctx context.Context, recipeID uuid.UUID, req domain.AddIngredientGroupRequest) (*entities.IngredientInRecipeGroup, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, domain.NewValidationError("", err)
	}

	group := &entities.IngredientInRecipeGroup{
		RecipeID:    recipeID,
		Title:       req.Title,
		Description: req.Description,
	}
	err := s.repo.Transaction(ctx, func(repo RecipeRepository) error {
		if _, err := repo.GetRecipeByID(ctx, recipeID); err != nil {
			return recipeNotFound(recipeID, err)
		}
		if req.Order != nil {
			group.Order = *req.Order
		} else {
			count, err := repo.CountIngredientGroups(ctx, recipeID)
			if err != nil {
				return domain.MapDBError("count ingredient groups", err)
			}
			group.Order = ordering.Append(int(count))
		}
		if err := repo.CreateIngredientGroup(ctx, group); err != nil {
			return orderConflict("add ingredient group", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.loader.Invalidate(ctx, cache.RecipeIngredientsKey(recipeID))
	return group, nil
}

// GroupedIngredients buckets the ingredient rows of recipe by group. Rows
// without a group come first, then groups by order; rows keep their order
// inside a bucket and empty groups are left out.
func (s *recipeService) GroupedIngredients(ctx context.Context, recipe *entities.Recipe) ([]domain.IngredientBucket, error) {
	return cache.Load(ctx, s.loader, cache.RecipeIngredientsKey(recipe.ID), func(ctx context.Context) ([]domain.IngredientBucket, error) {
		groups, err := s.repo.ListIngredientGroups(ctx, recipe.ID)
		if err != nil {
			return nil, domain.MapDBError("list ingredient groups", err)
		}
		items, err := s.repo.ListIngredients(ctx, recipe.ID)
		if err != nil {
			return nil, domain.MapDBError("list recipe ingredients", err)
		}
		return groupIngredients(groups, items), nil
	})
}

func groupIngredients(groups []*entities.IngredientInRecipeGroup, items []*entities.IngredientInRecipe) []domain.IngredientBucket {
	known := make(map[uuid.UUID]bool, len(groups))
	for _, g := range groups {
		known[g.ID] = true
	}

	var loose []domain.RecipeIngredient
	grouped := make(map[uuid.UUID][]domain.RecipeIngredient)
	for _, item := range items {
		if item.GroupID == nil || !known[*item.GroupID] {
			loose = append(loose, ingredientView(item))
			continue
		}
		grouped[*item.GroupID] = append(grouped[*item.GroupID], ingredientView(item))
	}

	buckets := make([]domain.IngredientBucket, 0, len(groups)+1)
	if len(loose) > 0 {
		buckets = append(buckets, domain.IngredientBucket{Items: loose})
	}
	for _, g := range groups {
		if list := grouped[g.ID]; len(list) > 0 {
			buckets = append(buckets, domain.IngredientBucket{
				GroupID: g.ID.String(),
				Title:   g.Title,
				Order:   g.Order,
				Items:   list,
			})
		}
	}
	return buckets
}

func ingredientView(item *entities.IngredientInRecipe) domain.RecipeIngredient {
	view := domain.RecipeIngredient{
		IngredientID: item.IngredientID.String(),
		Amount:       item.Amount,
		Order:        item.Order,
		Note:         item.Note,
	}
	if item.Ingredient != nil {
		view.Name = item.Ingredient.Name
	}
	if item.Unit != nil {
		if unit, ok := domain.UnitByID(*item.Unit); ok {
			view.Unit = unit.Abbr
		}
	}
	return view
}
