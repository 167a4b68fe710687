package ingredient

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"yummy-backend/entities"
)

type (
	IngredientRepository interface {
		CreateIngredient(ctx context.Context, ingredient *entities.Ingredient) error
		GetIngredientByID(ctx context.Context, id uuid.UUID) (*entities.Ingredient, error)
		GetIngredientsByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.Ingredient, error)
		GetGroupByID(ctx context.Context, id uuid.UUID) (*entities.IngredientGroup, error)
		ApprovedNames(ctx context.Context) ([]string, error)

		GetConversion(ctx context.Context, from, to int) (*entities.UnitConversion, error)
		UpsertConversion(ctx context.Context, conversion *entities.UnitConversion) error
		ListConversions(ctx context.Context) ([]*entities.UnitConversion, error)
	}

	ingredientRepository struct {
		db *gorm.DB
	}
)

func NewIngredientRepository(db *gorm.DB) IngredientRepository {
	return &ingredientRepository{db: db}
}

func (r *ingredientRepository) CreateIngredient(ctx context.Context, ingredient *entities.Ingredient) error {
	return r.db.WithContext(ctx).Select("*").Create(ingredient).Error
}

func (r *ingredientRepository) GetIngredientByID(ctx context.Context, id uuid.UUID) (*entities.Ingredient, error) {
	var ingredient entities.Ingredient
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&ingredient).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}

func (r *ingredientRepository) GetIngredientsByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.Ingredient, error) {
	var ingredients []*entities.Ingredient
	if len(ids) == 0 {
		return ingredients, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

func (r *ingredientRepository) GetGroupByID(ctx context.Context, id uuid.UUID) (*entities.IngredientGroup, error) {
	var group entities.IngredientGroup
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&group).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *ingredientRepository) ApprovedNames(ctx context.Context) ([]string, error) {
	var names []string
	if err := r.db.WithContext(ctx).
		Model(&entities.Ingredient{}).
		Where("is_approved = ?", true).
		Order("name asc").
		Pluck("name", &names).Error; err != nil {
		return nil, err
	}
	return names, nil
}

func (r *ingredientRepository) GetConversion(ctx context.Context, from, to int) (*entities.UnitConversion, error) {
	var conversion entities.UnitConversion
	if err := r.db.WithContext(ctx).
		Where("from_unit = ? AND to_unit = ?", from, to).
		First(&conversion).Error; err != nil {
		return nil, err
	}
	return &conversion, nil
}

func (r *ingredientRepository) UpsertConversion(ctx context.Context, conversion *entities.UnitConversion) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "from_unit"}, {Name: "to_unit"}},
		DoUpdates: clause.AssignmentColumns([]string{"ratio"}),
	}).Create(conversion).Error
}

func (r *ingredientRepository) ListConversions(ctx context.Context) ([]*entities.UnitConversion, error) {
	var conversions []*entities.UnitConversion
	if err := r.db.WithContext(ctx).Find(&conversions).Error; err != nil {
		return nil, err
	}
	return conversions, nil
}
