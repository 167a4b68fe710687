package shopping

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"yummy-backend/entities"
)

type (
	ShoppingRepository interface {
		Transaction(ctx context.Context, fn func(repo ShoppingRepository) error) error

		CreateList(ctx context.Context, list *entities.ShoppingList) error
		GetList(ctx context.Context, id uuid.UUID) (*entities.ShoppingList, error)
		ListItems(ctx context.Context, listID uuid.UUID) ([]*entities.ShoppingListItem, error)
		CreateItem(ctx context.Context, item *entities.ShoppingListItem) error
		UpdateItem(ctx context.Context, item *entities.ShoppingListItem) error
		RecipeIngredients(ctx context.Context, recipeID uuid.UUID) ([]*entities.IngredientInRecipe, error)
	}

	shoppingRepository struct {
		db *gorm.DB
	}
)

func NewShoppingRepository(db *gorm.DB) ShoppingRepository {
	return &shoppingRepository{db: db}
}

func (r *shoppingRepository) Transaction(ctx context.Context, fn func(repo ShoppingRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&shoppingRepository{db: tx})
	})
}

func (r *shoppingRepository) CreateList(ctx context.Context, list *entities.ShoppingList) error {
	return r.db.WithContext(ctx).Create(list).Error
}

func (r *shoppingRepository) GetList(ctx context.Context, id uuid.UUID) (*entities.ShoppingList, error) {
	var list entities.ShoppingList
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&list).Error; err != nil {
		return nil, err
	}
	return &list, nil
}

func (r *shoppingRepository) ListItems(ctx context.Context, listID uuid.UUID) ([]*entities.ShoppingListItem, error) {
	var items []*entities.ShoppingListItem
	if err := r.db.WithContext(ctx).
		Where("shopping_list_id = ?", listID).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *shoppingRepository) CreateItem(ctx context.Context, item *entities.ShoppingListItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *shoppingRepository) UpdateItem(ctx context.Context, item *entities.ShoppingListItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *shoppingRepository) RecipeIngredients(ctx context.Context, recipeID uuid.UUID) ([]*entities.IngredientInRecipe, error) {
	var rows []*entities.IngredientInRecipe
	if err := r.db.WithContext(ctx).
		Where("recipe_id = ?", recipeID).
		Order("sort_order asc").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
