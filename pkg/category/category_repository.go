package category

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"yummy-backend/entities"
)

type (
	CategoryRepository interface {
		// Transaction runs fn against a repository bound to one transaction.
		Transaction(ctx context.Context, fn func(repo CategoryRepository) error) error
		GetByID(ctx context.Context, id uuid.UUID) (*entities.Category, error)
		GetByPath(ctx context.Context, path string) (*entities.Category, error)
		GetChildren(ctx context.Context, id uuid.UUID) ([]*entities.Category, error)
		GetRoots(ctx context.Context) ([]*entities.Category, error)
		PathExists(ctx context.Context, path string, excludeID uuid.UUID) (bool, error)
		Save(ctx context.Context, category *entities.Category) error
		UpdatePath(ctx context.Context, id uuid.UUID, path string) error
		CountPublicRecipesUnderPath(ctx context.Context, path string) (int64, error)
	}

	categoryRepository struct {
		db *gorm.DB
	}
)

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Transaction(ctx context.Context, fn func(repo CategoryRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&categoryRepository{db: tx})
	})
}

func (r *categoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Category, error) {
	var category entities.Category
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) GetByPath(ctx context.Context, path string) (*entities.Category, error) {
	var category entities.Category
	if err := r.db.WithContext(ctx).Where("path = ?", path).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) GetChildren(ctx context.Context, id uuid.UUID) ([]*entities.Category, error) {
	var children []*entities.Category
	if err := r.db.WithContext(ctx).
		Where("parent_id = ?", id).
		Order("created_at asc, path asc").
		Find(&children).Error; err != nil {
		return nil, err
	}
	return children, nil
}

func (r *categoryRepository) GetRoots(ctx context.Context) ([]*entities.Category, error) {
	var roots []*entities.Category
	if err := r.db.WithContext(ctx).
		Where("parent_id IS NULL").
		Order("path asc").
		Find(&roots).Error; err != nil {
		return nil, err
	}
	return roots, nil
}

func (r *categoryRepository) PathExists(ctx context.Context, path string, excludeID uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&entities.Category{}).Where("path = ?", path)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *categoryRepository) Save(ctx context.Context, category *entities.Category) error {
	if category.ID == uuid.Nil {
		return r.db.WithContext(ctx).Create(category).Error
	}
	return r.db.WithContext(ctx).Save(category).Error
}

func (r *categoryRepository) UpdatePath(ctx context.Context, id uuid.UUID, path string) error {
	return r.db.WithContext(ctx).
		Model(&entities.Category{}).
		Where("id = ?", id).
		Update("path", path).Error
}

// CountPublicRecipesUnderPath counts approved public recipes filed under the
// category at path or any of its descendants.
func (r *categoryRepository) CountPublicRecipesUnderPath(ctx context.Context, path string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Joins("JOIN categories ON categories.id = recipes.category_id").
		Where("recipes.is_approved = ? AND recipes.is_public = ?", true, true).
		Where("(categories.path = ? OR categories.path LIKE ?)", path, path+"/%").
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
