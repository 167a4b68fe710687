package shopping

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"yummy-backend/domain"
	"yummy-backend/entities"
	"yummy-backend/pkg/ingredient"
	"yummy-backend/pkg/logger"
	"yummy-backend/pkg/recipe"
)

type (
	ShoppingService interface {
		Create(ctx context.Context, owner uuid.UUID, req domain.CreateShoppingListRequest) (*entities.ShoppingList, error)
		Get(ctx context.Context, owner, listID uuid.UUID) (domain.ShoppingList, error)
		AddRecipe(ctx context.Context, owner, listID, recipeID uuid.UUID) ([]*entities.ShoppingListItem, error)
	}

	shoppingService struct {
		repo        ShoppingRepository
		recipes     recipe.RecipeService
		ingredients ingredient.IngredientService
		validate    *validator.Validate
		log         *logger.Logger
	}
)

func NewShoppingService(repo ShoppingRepository, recipes recipe.RecipeService, ingredients ingredient.IngredientService, validate *validator.Validate, log *logger.Logger) ShoppingService {
	return &shoppingService{
		repo:        repo,
		recipes:     recipes,
		ingredients: ingredients,
		validate:    validate,
		log:         log.With("service", "ShoppingService"),
	}
}

func (s *shoppingService) Create(ctx context.Context, owner uuid.UUID, req domain.CreateShoppingListRequest) (*entities.ShoppingList, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, domain.NewValidationError("", err)
	}
	list := &entities.ShoppingList{OwnerID: owner, Title: req.Title, Note: req.Note}
	if err := s.repo.CreateList(ctx, list); err != nil {
		return nil, domain.MapDBError("create shopping list", err)
	}
	return list, nil
}

func (s *shoppingService) Get(ctx context.Context, owner, listID uuid.UUID) (domain.ShoppingList, error) {
	list, err := s.owned(ctx, s.repo, owner, listID)
	if err != nil {
		return domain.ShoppingList{}, err
	}
	items, err := s.repo.ListItems(ctx, listID)
	if err != nil {
		return domain.ShoppingList{}, domain.MapDBError("list shopping items", err)
	}

	ids := make([]uuid.UUID, 0, len(items))
	for _, i := range items {
		ids = append(ids, i.IngredientID)
	}
	names, err := s.ingredients.GetByIDs(ctx, ids)
	if err != nil {
		return domain.ShoppingList{}, err
	}

	view := domain.ShoppingList{
		ID:    list.ID.String(),
		Title: list.Title,
		Note:  list.Note,
		Items: make([]domain.ShoppingItem, 0, len(items)),
	}
	for _, i := range items {
		item := domain.ShoppingItem{
			ID:           i.ID.String(),
			IngredientID: i.IngredientID.String(),
			Amount:       i.Amount,
			Note:         i.Note,
		}
		if ing, ok := names[i.IngredientID]; ok {
			item.Name = ing.Name
		}
		if i.Unit != nil {
			if u, ok := domain.UnitByID(*i.Unit); ok {
				item.Unit = u.Abbr
			}
		}
		view.Items = append(view.Items, item)
	}
	return view, nil
}

// AddRecipe merges the ingredients of a recipe into a shopping list, one item
// per ingredient.
func (s *shoppingService) AddRecipe(ctx context.Context, owner, listID, recipeID uuid.UUID) ([]*entities.ShoppingListItem, error) {
	if _, err := s.recipes.GetByID(ctx, recipeID); err != nil {
		return nil, err
	}
	conv, err := s.ingredients.Conversions(ctx)
	if err != nil {
		return nil, err
	}

	var result []*entities.ShoppingListItem
	err = s.repo.Transaction(ctx, func(repo ShoppingRepository) error {
		if _, err := s.owned(ctx, repo, owner, listID); err != nil {
			return err
		}
		items, err := repo.ListItems(ctx, listID)
		if err != nil {
			return domain.MapDBError("list shopping items", err)
		}
		rows, err := repo.RecipeIngredients(ctx, recipeID)
		if err != nil {
			return domain.MapDBError("list recipe ingredients", err)
		}

		byIngredient := make(map[uuid.UUID]*entities.ShoppingListItem, len(items))
		for _, i := range items {
			byIngredient[i.IngredientID] = i
		}
		touched := make(map[uuid.UUID]bool)
		for _, row := range rows {
			item, ok := byIngredient[row.IngredientID]
			if !ok {
				item = &entities.ShoppingListItem{ShoppingListID: listID, IngredientID: row.IngredientID}
				byIngredient[row.IngredientID] = item
				items = append(items, item)
			}
			merge(item, row, conv)
			touched[row.IngredientID] = true
		}

		for _, item := range items {
			if !touched[item.IngredientID] {
				continue
			}
			if item.ID == uuid.Nil {
				err = repo.CreateItem(ctx, item)
			} else {
				err = repo.UpdateItem(ctx, item)
			}
			if err != nil {
				return domain.MapDBError("save shopping item", err)
			}
		}
		result = items
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Debug("recipe merged into shopping list", "list_id", listID, "recipe_id", recipeID)
	return result, nil
}

// owned loads a list of owner. Another owner's list reads as missing.
func (s *shoppingService) owned(ctx context.Context, repo ShoppingRepository, owner, listID uuid.UUID) (*entities.ShoppingList, error) {
	list, err := repo.GetList(ctx, listID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Join(domain.NewNotFoundError("shopping list", listID.String()), domain.ErrShoppingListNotFound)
		}
		return nil, domain.MapDBError("load shopping list", err)
	}
	if list.OwnerID != owner {
		return nil, errors.Join(domain.NewNotFoundError("shopping list", listID.String()), domain.ErrShoppingListNotFound)
	}
	return list, nil
}
