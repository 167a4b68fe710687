package recipe

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"yummy-backend/domain"
	"yummy-backend/entities"
	"yummy-backend/internal/utils"
	"yummy-backend/internal/utils/storage"
	"yummy-backend/pkg/cache"
	"yummy-backend/pkg/category"
	"yummy-backend/pkg/logger"
	"yummy-backend/pkg/ordering"
)

const defaultTier = 3

type (
	// Strategies are the pluggable parts of the recipe service.
	Strategies struct {
		Thumbnail       storage.ThumbnailFunc
		RatingOrder     OrderFunc
		DefaultOrdering string
		PhotoGap        int
	}

	RecipeService interface {
		Create(ctx context.Context, req domain.CreateRecipeRequest) (*entities.Recipe, error)
		Save(ctx context.Context, recipe *entities.Recipe) error
		GetByID(ctx context.Context, id uuid.UUID) (*entities.Recipe, error)
		ListByCategory(ctx context.Context, categoryPath, orderBy string, page, limit int) ([]domain.Recipe, int64, error)
		ListByOwner(ctx context.Context, ownerID uuid.UUID, page, limit int) ([]domain.Recipe, int64, error)
		URL(ctx context.Context, recipe *entities.Recipe) (string, error)
		Summary(ctx context.Context, recipe *entities.Recipe) (domain.Recipe, error)
		Detail(ctx context.Context, id uuid.UUID) (domain.RecipeDetail, error)

		AttachPhoto(ctx context.Context, recipeID uuid.UUID, req domain.AttachPhotoRequest) (*entities.RecipePhoto, error)
		SetPhotoVisibility(ctx context.Context, recipeID, photoID uuid.UUID, visible bool) error
		DetachPhoto(ctx context.Context, recipeID, photoID uuid.UUID) error
		OrderedPhotos(ctx context.Context, recipe *entities.Recipe) ([]domain.RecipePhoto, error)
		TopPhoto(ctx context.Context, recipe *entities.Recipe) (*domain.RecipePhoto, error)

		AddIngredient(ctx context.Context, recipeID uuid.UUID, req domain.AddIngredientRequest) (*entities.IngredientInRecipe, error)
		AddIngredientGroup(ctx context.Context, recipeID uuid.UUID, req domain.AddIngredientGroupRequest) (*entities.IngredientInRecipeGroup, error)
		GroupedIngredients(ctx context.Context, recipe *entities.Recipe) ([]domain.IngredientBucket, error)
	}

	recipeService struct {
		repo       RecipeRepository
		categories category.CategoryService
		loader     *cache.Loader
		validate   *validator.Validate
		strategies Strategies
		log        *logger.Logger
	}
)

func NewRecipeService(
	repo RecipeRepository,
	categories category.CategoryService,
	loader *cache.Loader,
	validate *validator.Validate,
	strategies Strategies,
	log *logger.Logger,
) RecipeService {
	if strategies.PhotoGap < 1 {
		strategies.PhotoGap = ordering.DefaultGap
	}
	if strategies.RatingOrder == nil {
		strategies.RatingOrder = OrderByCookbookSaves
	}
	if strategies.DefaultOrdering == "" {
		strategies.DefaultOrdering = domain.OrderByCreated
	}
	return &recipeService{
		repo:       repo,
		categories: categories,
		loader:     loader,
		validate:   validate,
		strategies: strategies,
		log:        log.With("service", "RecipeService"),
	}
}

func (s *recipeService) Create(ctx context.Context, req domain.CreateRecipeRequest) (*entities.Recipe, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, domain.NewValidationError("", err)
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return nil, domain.NewValidationError("category_id", domain.ErrParseUUID)
	}
	ownerID, err := uuid.Parse(req.OwnerID)
	if err != nil {
		return nil, domain.NewValidationError("owner_id", domain.ErrParseUUID)
	}
	cuisines := make([]entities.Cuisine, 0, len(req.CuisineIDs))
	for _, raw := range req.CuisineIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, domain.NewValidationError("cuisine_ids", domain.ErrParseUUID)
		}
		cuisines = append(cuisines, entities.Cuisine{ID: id})
	}

	exists, err := s.repo.SlugExists(ctx, req.Slug, uuid.Nil)
	if err != nil {
		return nil, domain.MapDBError("check recipe slug", err)
	}
	if exists {
		return nil, domain.NewValidationError("slug", domain.ErrDuplicateSlug)
	}

	recipe := &entities.Recipe{
		Title:           req.Title,
		Slug:            req.Slug,
		CategoryID:      categoryID,
		Description:     req.Description,
		Preparation:     req.Preparation,
		Hint:            req.Hint,
		Servings:        req.Servings,
		Price:           req.Price,
		Difficulty:      req.Difficulty,
		PreparationTime: req.PreparationTime,
		CaloricValue:    req.CaloricValue,
		OwnerID:         ownerID,
		IsPublic:        true,
		Cuisines:        cuisines,
	}
	if err := s.Save(ctx, recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}

// Save validates and writes recipe. A non-nil Cuisines slice replaces the
// stored cuisines. The cached ingredient view of the recipe and the recipe
// counts of its old and new category are dropped afterwards.
func (s *recipeService) Save(ctx context.Context, recipe *entities.Recipe) error {
	if recipe.Price == 0 {
		recipe.Price = defaultTier
	}
	if recipe.Difficulty == 0 {
		recipe.Difficulty = defaultTier
	}
	if !domain.IsValidChoice(domain.PricingChoices, recipe.Price) {
		return domain.NewValidationError("price", domain.ErrInvalidPrice)
	}
	if !domain.IsValidChoice(domain.DifficultyChoices, recipe.Difficulty) {
		return domain.NewValidationError("difficulty", domain.ErrInvalidDifficulty)
	}
	if !utils.IsSlug(recipe.Slug) {
		return domain.NewValidationError("slug", errors.New("slug must contain lowercase letters, digits and dashes"))
	}
	if _, err := s.categories.GetByID(ctx, recipe.CategoryID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NewValidationError("category_id", domain.ErrCategoryNotFound)
		}
		return err
	}

	origID := recipe.ID
	var oldCategory uuid.UUID
	err := s.repo.Transaction(ctx, func(repo RecipeRepository) error {
		oldCategory = uuid.Nil
		isNew := true
		if recipe.ID != uuid.Nil {
			stored, err := repo.GetRecipeByID(ctx, recipe.ID)
			switch {
			case err == nil:
				isNew = false
				oldCategory = stored.CategoryID
				if recipe.CreatedAt.IsZero() {
					recipe.CreatedAt = stored.CreatedAt
				}
			case !errors.Is(err, gorm.ErrRecordNotFound):
				return domain.MapDBError("load recipe", err)
			}
		}

		exists, err := repo.SlugExists(ctx, recipe.Slug, recipe.ID)
		if err != nil {
			return domain.MapDBError("check recipe slug", err)
		}
		if exists {
			return domain.NewIntegrityError("save recipe", domain.ErrDuplicateSlug)
		}

		if isNew {
			err = repo.CreateRecipe(ctx, recipe)
		} else {
			err = repo.UpdateRecipe(ctx, recipe)
		}
		if err != nil {
			return domain.MapDBError("save recipe", err)
		}

		if recipe.Cuisines != nil {
			ids := make([]uuid.UUID, 0, len(recipe.Cuisines))
			for _, c := range recipe.Cuisines {
				ids = append(ids, c.ID)
			}
			if err := repo.ReplaceCuisines(ctx, recipe, ids); err != nil {
				return domain.MapDBError("save recipe cuisines", err)
			}
		}
		return nil
	})
	if err != nil {
		recipe.ID = origID
		return err
	}

	s.loader.Invalidate(ctx, cache.RecipeIngredientsKey(recipe.ID))
	s.categories.InvalidateRecipeCount(ctx, recipe.CategoryID)
	if oldCategory != uuid.Nil && oldCategory != recipe.CategoryID {
		s.categories.InvalidateRecipeCount(ctx, oldCategory)
	}
	return nil
}

func (s *recipeService) GetByID(ctx context.Context, id uuid.UUID) (*entities.Recipe, error) {
	recipe, err := s.repo.GetRecipeByID(ctx, id)
	if err != nil {
		return nil, recipeNotFound(id, err)
	}
	return recipe, nil
}

// ListByCategory lists public recipes of the category at categoryPath and of
// every category below it.
func (s *recipeService) ListByCategory(ctx context.Context, categoryPath, orderBy string, page, limit int) ([]domain.Recipe, int64, error) {
	c, err := s.categories.GetByPath(ctx, categoryPath)
	if err != nil {
		return nil, 0, err
	}
	order, err := s.orderFor(orderBy)
	if err != nil {
		return nil, 0, err
	}

	recipes, count, err := s.repo.ListRecipes(ctx, ListFilter{
		CategoryPath: c.Path,
		Scope:        ScopePublic,
		Order:        order,
		Page:         page,
		Limit:        limit,
	})
	if err != nil {
		return nil, 0, domain.MapDBError("list recipes", err)
	}
	res, err := s.summaries(ctx, recipes)
	return res, count, err
}

func (s *recipeService) ListByOwner(ctx context.Context, ownerID uuid.UUID, page, limit int) ([]domain.Recipe, int64, error) {
	recipes, count, err := s.repo.ListRecipes(ctx, ListFilter{
		OwnerID: &ownerID,
		Page:    page,
		Limit:   limit,
	})
	if err != nil {
		return nil, 0, domain.MapDBError("list recipes", err)
	}
	res, err := s.summaries(ctx, recipes)
	return res, count, err
}

// URL is /<category path>/<slug>/<id>/.
func (s *recipeService) URL(ctx context.Context, recipe *entities.Recipe) (string, error) {
	c, err := s.categories.GetByID(ctx, recipe.CategoryID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("/%s/%s/%s/", c.Path, recipe.Slug, recipe.ID), nil
}

func (s *recipeService) Detail(ctx context.Context, id uuid.UUID) (domain.RecipeDetail, error) {
	recipe, err := s.GetByID(ctx, id)
	if err != nil {
		return domain.RecipeDetail{}, err
	}
	summary, err := s.Summary(ctx, recipe)
	if err != nil {
		return domain.RecipeDetail{}, err
	}
	c, err := s.categories.GetByID(ctx, recipe.CategoryID)
	if err != nil {
		return domain.RecipeDetail{}, err
	}
	photos, err := s.OrderedPhotos(ctx, recipe)
	if err != nil {
		return domain.RecipeDetail{}, err
	}
	top, err := s.TopPhoto(ctx, recipe)
	if err != nil {
		return domain.RecipeDetail{}, err
	}
	ingredients, err := s.GroupedIngredients(ctx, recipe)
	if err != nil {
		return domain.RecipeDetail{}, err
	}

	return domain.RecipeDetail{
		Recipe:       summary,
		Preparation:  recipe.Preparation,
		Hint:         recipe.Hint,
		CategoryPath: c.Path,
		TopPhoto:     top,
		Photos:       photos,
		Ingredients:  ingredients,
	}, nil
}

func (s *recipeService) summaries(ctx context.Context, recipes []*entities.Recipe) ([]domain.Recipe, error) {
	res := make([]domain.Recipe, 0, len(recipes))
	for _, recipe := range recipes {
		summary, err := s.Summary(ctx, recipe)
		if err != nil {
			return nil, err
		}
		res = append(res, summary)
	}
	return res, nil
}

func (s *recipeService) Summary(ctx context.Context, recipe *entities.Recipe) (domain.Recipe, error) {
	url, err := s.URL(ctx, recipe)
	if err != nil {
		return domain.Recipe{}, err
	}
	return domain.Recipe{
		ID:          recipe.ID.String(),
		Title:       recipe.Title,
		Slug:        recipe.Slug,
		CategoryID:  recipe.CategoryID.String(),
		Description: recipe.Description,
		Price:       recipe.Price,
		Difficulty:  recipe.Difficulty,
		URL:         url,
		CreatedAt:   recipe.CreatedAt,
	}, nil
}

func recipeNotFound(id uuid.UUID, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errors.Join(domain.NewNotFoundError("recipe", id.String()), domain.ErrRecipeNotFound)
	}
	return domain.MapDBError("load recipe", err)
}
