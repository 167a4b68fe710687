package menu

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"yummy-backend/entities"
)

type (
	MenuRepository interface {
		CreateRecommendation(ctx context.Context, rec *entities.RecipeRecommendation) error
		ActualRecommendations(ctx context.Context, day time.Time, limit int) ([]*entities.RecipeRecommendation, error)
		UpsertWeekMenu(ctx context.Context, menu *entities.WeekMenu) error
		GetWeekMenu(ctx context.Context, day int, evenWeek bool) (*entities.WeekMenu, error)
		GetWeekMenus(ctx context.Context, evenWeek bool) ([]*entities.WeekMenu, error)
	}

	menuRepository struct {
		db *gorm.DB
	}
)

func NewMenuRepository(db *gorm.DB) MenuRepository {
	return &menuRepository{db: db}
}

func (r *menuRepository) CreateRecommendation(ctx context.Context, rec *entities.RecipeRecommendation) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(rec).Error
}

// ActualRecommendations returns recommendations whose window covers day and
// whose recipe is public, the latest start first.
func (r *menuRepository) ActualRecommendations(ctx context.Context, day time.Time, limit int) ([]*entities.RecipeRecommendation, error) {
	var recs []*entities.RecipeRecommendation
	query := r.db.WithContext(ctx).
		Joins("JOIN recipes ON recipes.id = recipe_recommendations.recipe_id").
		Where("recipe_recommendations.day_from <= ?", day).
		Where("(recipe_recommendations.day_to >= ? OR recipe_recommendations.day_to IS NULL)", day).
		Where("recipes.is_approved = ? AND recipes.is_public = ?", true, true).
		Preload("Recipe").
		Order("recipe_recommendations.day_from desc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

func (r *menuRepository) UpsertWeekMenu(ctx context.Context, menu *entities.WeekMenu) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "day"}, {Name: "even_week"}},
			DoUpdates: clause.AssignmentColumns([]string{"soup_id", "meal_id", "dessert_id"}),
		}).
		Create(menu).Error
}

func (r *menuRepository) GetWeekMenu(ctx context.Context, day int, evenWeek bool) (*entities.WeekMenu, error) {
	var menu entities.WeekMenu
	if err := r.db.WithContext(ctx).
		Where("day = ? AND even_week = ?", day, evenWeek).
		First(&menu).Error; err != nil {
		return nil, err
	}
	return &menu, nil
}

func (r *menuRepository) GetWeekMenus(ctx context.Context, evenWeek bool) ([]*entities.WeekMenu, error) {
	var menus []*entities.WeekMenu
	if err := r.db.WithContext(ctx).
		Where("even_week = ?", evenWeek).
		Order("day asc").
		Find(&menus).Error; err != nil {
		return nil, err
	}
	return menus, nil
}
