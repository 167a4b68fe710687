package recipe

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"yummy-backend/entities"
)

type (
	// ListFilter narrows a recipe listing. Scope and Order are gorm scopes so
	// callers can plug in visibility rules and ordering strategies.
	ListFilter struct {
		CategoryPath string
		OwnerID      *uuid.UUID
		Scope        func(db *gorm.DB) *gorm.DB
		Order        func(db *gorm.DB) *gorm.DB
		Page         int
		Limit        int
	}

	RecipeRepository interface {
		Transaction(ctx context.Context, fn func(repo RecipeRepository) error) error

		GetRecipeByID(ctx context.Context, id uuid.UUID) (*entities.Recipe, error)
		SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error)
		CreateRecipe(ctx context.Context, recipe *entities.Recipe) error
		UpdateRecipe(ctx context.Context, recipe *entities.Recipe) error
		ReplaceCuisines(ctx context.Context, recipe *entities.Recipe, cuisineIDs []uuid.UUID) error
		ListRecipes(ctx context.Context, filter ListFilter) ([]*entities.Recipe, int64, error)

		GetPhoto(ctx context.Context, id uuid.UUID) (*entities.Photo, error)
		GetRecipePhoto(ctx context.Context, recipeID, photoID uuid.UUID) (*entities.RecipePhoto, error)
		ListRecipePhotos(ctx context.Context, recipeID uuid.UUID, visibleOnly bool) ([]*entities.RecipePhoto, error)
		CreateRecipePhoto(ctx context.Context, photo *entities.RecipePhoto) error
		UpdateRecipePhotoOrder(ctx context.Context, id uuid.UUID, order int) error
		UpdateRecipePhotoVisibility(ctx context.Context, id uuid.UUID, visible bool) error
		DeleteRecipePhoto(ctx context.Context, id uuid.UUID) error

		IngredientExists(ctx context.Context, id uuid.UUID) (bool, error)
		CountIngredients(ctx context.Context, recipeID uuid.UUID) (int64, error)
		CountIngredientGroups(ctx context.Context, recipeID uuid.UUID) (int64, error)
		GetIngredientGroup(ctx context.Context, id uuid.UUID) (*entities.IngredientInRecipeGroup, error)
		CreateIngredient(ctx context.Context, item *entities.IngredientInRecipe) error
		CreateIngredientGroup(ctx context.Context, group *entities.IngredientInRecipeGroup) error
		ListIngredients(ctx context.Context, recipeID uuid.UUID) ([]*entities.IngredientInRecipe, error)
		ListIngredientGroups(ctx context.Context, recipeID uuid.UUID) ([]*entities.IngredientInRecipeGroup, error)
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

// ScopeApproved keeps recipes approved by an editor.
func ScopeApproved(db *gorm.DB) *gorm.DB {
	return db.Where("recipes.is_approved = ?", true)
}

// ScopePublic keeps approved recipes their owners published.
func ScopePublic(db *gorm.DB) *gorm.DB {
	return ScopeApproved(db).Where("recipes.is_public = ?", true)
}

// ScopeChecked keeps public recipes that passed an editorial check.
func ScopeChecked(db *gorm.DB) *gorm.DB {
	return ScopePublic(db).Where("recipes.is_checked = ?", true)
}

func (r *recipeRepository) Transaction(ctx context.Context, fn func(repo RecipeRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&recipeRepository{db: tx})
	})
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id uuid.UUID) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Cuisines").
		Where("id = ?", id).
		First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&entities.Recipe{}).Where("slug = ?", slug)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateRecipe inserts every column so explicit false flags are not replaced by
// column defaults.
func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Select("*").Omit(clause.Associations).Create(recipe).Error
}

func (r *recipeRepository) UpdateRecipe(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(recipe).Error
}

func (r *recipeRepository) ReplaceCuisines(ctx context.Context, recipe *entities.Recipe, cuisineIDs []uuid.UUID) error {
	var cuisines []entities.Cuisine
	if len(cuisineIDs) > 0 {
		if err := r.db.WithContext(ctx).Where("id IN ?", cuisineIDs).Find(&cuisines).Error; err != nil {
			return err
		}
	}
	if err := r.db.WithContext(ctx).Model(recipe).Association("Cuisines").Replace(cuisines); err != nil {
		return err
	}
	recipe.Cuisines = cuisines
	return nil
}

func (r *recipeRepository) ListRecipes(ctx context.Context, filter ListFilter) ([]*entities.Recipe, int64, error) {
	var recipes []*entities.Recipe
	var count int64

	base := func() *gorm.DB {
		query := r.db.WithContext(ctx).Model(&entities.Recipe{})
		if filter.CategoryPath != "" {
			query = query.
				Joins("JOIN categories ON categories.id = recipes.category_id").
				Where("(categories.path = ? OR categories.path LIKE ?)", filter.CategoryPath, filter.CategoryPath+"/%")
		}
		if filter.OwnerID != nil {
			query = query.Where("recipes.owner_id = ?", *filter.OwnerID)
		}
		if filter.Scope != nil {
			query = query.Scopes(filter.Scope)
		}
		return query
	}

	if err := base().Count(&count).Error; err != nil {
		return nil, 0, err
	}

	query := base().Select("recipes.*")
	if filter.Order != nil {
		query = query.Scopes(filter.Order)
	} else {
		query = query.Order("recipes.created_at desc")
	}
	if filter.Limit > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.Limit).Limit(filter.Limit)
	}
	if err := query.Find(&recipes).Error; err != nil {
		return nil, 0, err
	}
	return recipes, count, nil
}

func (r *recipeRepository) GetPhoto(ctx context.Context, id uuid.UUID) (*entities.Photo, error) {
	var photo entities.Photo
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&photo).Error; err != nil {
		return nil, err
	}
	return &photo, nil
}

func (r *recipeRepository) GetRecipePhoto(ctx context.Context, recipeID, photoID uuid.UUID) (*entities.RecipePhoto, error) {
	var rp entities.RecipePhoto
	if err := r.db.WithContext(ctx).
		Preload("Photo").
		Where("recipe_id = ? AND photo_id = ?", recipeID, photoID).
		First(&rp).Error; err != nil {
		return nil, err
	}
	return &rp, nil
}

func (r *recipeRepository) ListRecipePhotos(ctx context.Context, recipeID uuid.UUID, visibleOnly bool) ([]*entities.RecipePhoto, error) {
	var photos []*entities.RecipePhoto
	query := r.db.WithContext(ctx).Preload("Photo").Where("recipe_id = ?", recipeID)
	if visibleOnly {
		query = query.Where("is_visible = ?", true)
	}
	if err := query.Order("sort_order asc").Find(&photos).Error; err != nil {
		return nil, err
	}
	return photos, nil
}

func (r *recipeRepository) CreateRecipePhoto(ctx context.Context, photo *entities.RecipePhoto) error {
	return r.db.WithContext(ctx).Select("*").Omit(clause.Associations).Create(photo).Error
}

func (r *recipeRepository) UpdateRecipePhotoOrder(ctx context.Context, id uuid.UUID, order int) error {
	return r.db.WithContext(ctx).
		Model(&entities.RecipePhoto{}).
		Where("id = ?", id).
		Update("sort_order", order).Error
}

func (r *recipeRepository) UpdateRecipePhotoVisibility(ctx context.Context, id uuid.UUID, visible bool) error {
	return r.db.WithContext(ctx).
		Model(&entities.RecipePhoto{}).
		Where("id = ?", id).
		Update("is_visible", visible).Error
}

func (r *recipeRepository) DeleteRecipePhoto(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.RecipePhoto{}).Error
}

func (r *recipeRepository) IngredientExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Ingredient{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *recipeRepository) CountIngredients(ctx context.Context, recipeID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.IngredientInRecipe{}).
		Where("recipe_id = ?", recipeID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *recipeRepository) CountIngredientGroups(ctx context.Context, recipeID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.IngredientInRecipeGroup{}).
		Where("recipe_id = ?", recipeID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *recipeRepository) GetIngredientGroup(ctx context.Context, id uuid.UUID) (*entities.IngredientInRecipeGroup, error) {
	var group entities.IngredientInRecipeGroup
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&group).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *recipeRepository) CreateIngredient(ctx context.Context, item *entities.IngredientInRecipe) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(item).Error
}

func (r *recipeRepository) CreateIngredientGroup(ctx context.Context, group *entities.IngredientInRecipeGroup) error {
	return r.db.WithContext(ctx).Create(group).Error
}

func (r *recipeRepository) ListIngredients(ctx context.Context, recipeID uuid.UUID) ([]*entities.IngredientInRecipe, error) {
	var items []*entities.IngredientInRecipe
	if err := r.db.WithContext(ctx).
		Preload("Ingredient").
		Where("recipe_id = ?", recipeID).
		Order("sort_order asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *recipeRepository) ListIngredientGroups(ctx context.Context, recipeID uuid.UUID) ([]*entities.IngredientInRecipeGroup, error) {
	var groups []*entities.IngredientInRecipeGroup
	if err := r.db.WithContext(ctx).
		Where("recipe_id = ?", recipeID).
		Order("sort_order asc").
		Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}
