package cookbook

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"yummy-backend/entities"
)

type (
	CookbookRepository interface {
		Transaction(ctx context.Context, fn func(repo CookbookRepository) error) error

		GetCookbookByID(ctx context.Context, id uuid.UUID) (*entities.CookBook, error)
		GetDefault(ctx context.Context, owner uuid.UUID) (*entities.CookBook, error)
		ListByOwner(ctx context.Context, owner uuid.UUID) ([]*entities.CookBook, error)
		CreateCookbook(ctx context.Context, cb *entities.CookBook) error
		UpdateCookbook(ctx context.Context, cb *entities.CookBook) error
		ClearDefault(ctx context.Context, owner, exceptID uuid.UUID) error

		GetItem(ctx context.Context, cookbookID, recipeID uuid.UUID) (*entities.CookBookRecipe, error)
		CreateItem(ctx context.Context, item *entities.CookBookRecipe) error
		UpdateItemNote(ctx context.Context, id uuid.UUID, note string) error
		DeleteItem(ctx context.Context, id uuid.UUID) error
		ListItems(ctx context.Context, cookbookID uuid.UUID) ([]*entities.CookBookRecipe, error)
		CountItems(ctx context.Context, cookbookID uuid.UUID) (int64, error)

		CountOwnerItems(ctx context.Context, owner uuid.UUID) (int64, error)
		OwnerItemsForRecipe(ctx context.Context, owner, recipeID uuid.UUID) ([]*entities.CookBookRecipe, error)
	}

	cookbookRepository struct {
		db *gorm.DB
	}
)

func NewCookbookRepository(db *gorm.DB) CookbookRepository {
	return &cookbookRepository{db: db}
}

func (r *cookbookRepository) Transaction(ctx context.Context, fn func(repo CookbookRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&cookbookRepository{db: tx})
	})
}

func (r *cookbookRepository) GetCookbookByID(ctx context.Context, id uuid.UUID) (*entities.CookBook, error) {
	var cb entities.CookBook
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&cb).Error; err != nil {
		return nil, err
	}
	return &cb, nil
}

func (r *cookbookRepository) GetDefault(ctx context.Context, owner uuid.UUID) (*entities.CookBook, error) {
	var cb entities.CookBook
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND is_default = ?", owner, true).
		First(&cb).Error; err != nil {
		return nil, err
	}
	return &cb, nil
}

func (r *cookbookRepository) ListByOwner(ctx context.Context, owner uuid.UUID) ([]*entities.CookBook, error) {
	var cookbooks []*entities.CookBook
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", owner).
		Order("is_default desc, title asc").
		Find(&cookbooks).Error; err != nil {
		return nil, err
	}
	return cookbooks, nil
}

// CreateCookbook inserts every column so an explicit false IsPublic survives
// the column default.
func (r *cookbookRepository) CreateCookbook(ctx context.Context, cb *entities.CookBook) error {
	return r.db.WithContext(ctx).Select("*").Create(cb).Error
}

func (r *cookbookRepository) UpdateCookbook(ctx context.Context, cb *entities.CookBook) error {
	return r.db.WithContext(ctx).Save(cb).Error
}

func (r *cookbookRepository) ClearDefault(ctx context.Context, owner, exceptID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&entities.CookBook{}).
		Where("owner_id = ? AND is_default = ? AND id <> ?", owner, true, exceptID).
		Update("is_default", false).Error
}

func (r *cookbookRepository) GetItem(ctx context.Context, cookbookID, recipeID uuid.UUID) (*entities.CookBookRecipe, error) {
	var item entities.CookBookRecipe
	if err := r.db.WithContext(ctx).
		Where("cookbook_id = ? AND recipe_id = ?", cookbookID, recipeID).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *cookbookRepository) CreateItem(ctx context.Context, item *entities.CookBookRecipe) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(item).Error
}

func (r *cookbookRepository) UpdateItemNote(ctx context.Context, id uuid.UUID, note string) error {
	return r.db.WithContext(ctx).
		Model(&entities.CookBookRecipe{}).
		Where("id = ?", id).
		Update("note", note).Error
}

func (r *cookbookRepository) DeleteItem(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.CookBookRecipe{}).Error
}

func (r *cookbookRepository) ListItems(ctx context.Context, cookbookID uuid.UUID) ([]*entities.CookBookRecipe, error) {
	var items []*entities.CookBookRecipe
	if err := r.db.WithContext(ctx).
		Where("cookbook_id = ?", cookbookID).
		Order("added desc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *cookbookRepository) CountItems(ctx context.Context, cookbookID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.CookBookRecipe{}).
		Where("cookbook_id = ?", cookbookID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *cookbookRepository) ownerItems(ctx context.Context, owner uuid.UUID) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&entities.CookBookRecipe{}).
		Joins("JOIN cook_books ON cook_books.id = cook_book_recipes.cookbook_id").
		Where("cook_books.owner_id = ?", owner)
}

func (r *cookbookRepository) CountOwnerItems(ctx context.Context, owner uuid.UUID) (int64, error) {
	var count int64
	if err := r.ownerItems(ctx, owner).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *cookbookRepository) OwnerItemsForRecipe(ctx context.Context, owner, recipeID uuid.UUID) ([]*entities.CookBookRecipe, error) {
	var items []*entities.CookBookRecipe
	if err := r.ownerItems(ctx, owner).
		Select("cook_book_recipes.*").
		Where("cook_book_recipes.recipe_id = ?", recipeID).
		Order("cook_book_recipes.added desc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
