package cookbook

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"yummy-backend/domain"
	"yummy-backend/entities"
	"yummy-backend/internal/utils"
	"yummy-backend/pkg/cache"
	"yummy-backend/pkg/logger"
	"yummy-backend/pkg/recipe"
)

type (
	CookbookService interface {
		CreateDefault(ctx context.Context, owner uuid.UUID) (*entities.CookBook, error)
		Create(ctx context.Context, owner uuid.UUID, req domain.SaveCookbookRequest) (*entities.CookBook, error)
		Save(ctx context.Context, cb *entities.CookBook) error
		ListByOwner(ctx context.Context, owner uuid.UUID) ([]domain.Cookbook, error)
		Items(ctx context.Context, owner, cookbookID uuid.UUID) ([]domain.CookbookItem, error)

		AddRecipe(ctx context.Context, owner uuid.UUID, req domain.AddToCookbookRequest) (*entities.CookBookRecipe, error)
		RemoveRecipe(ctx context.Context, owner, cookbookID, recipeID uuid.UUID) error
		UpdateNote(ctx context.Context, owner, cookbookID, recipeID uuid.UUID, req domain.UpdateNoteRequest) error

		UserRecipesCount(ctx context.Context, owner uuid.UUID) (int64, error)
		UserItemsForRecipe(ctx context.Context, owner, recipeID uuid.UUID) ([]domain.CookbookItem, error)
	}

	cookbookService struct {
		repo         CookbookRepository
		recipes      recipe.RecipeService
		loader       *cache.Loader
		validate     *validator.Validate
		defaultTitle string
		now          func() time.Time
		log          *logger.Logger
	}
)

func NewCookbookService(repo CookbookRepository, recipes recipe.RecipeService, loader *cache.Loader, validate *validator.Validate, defaultTitle string, log *logger.Logger) CookbookService {
	if defaultTitle == "" {
		defaultTitle = "Favourite recipes"
	}
	return &cookbookService{
		repo:         repo,
		recipes:      recipes,
		loader:       loader,
		validate:     validate,
		defaultTitle: defaultTitle,
		now:          time.Now,
		log:          log.With("service", "CookbookService"),
	}
}

// CreateDefault returns the owner's default cookbook, creating it on first use.
func (s *cookbookService) CreateDefault(ctx context.Context, owner uuid.UUID) (*entities.CookBook, error) {
	var cb *entities.CookBook
	err := s.repo.Transaction(ctx, func(repo CookbookRepository) error {
		var err error
		cb, err = s.getOrCreateDefault(ctx, repo, owner)
		return err
	})
	if err != nil {
		return nil, err
	}
	return cb, nil
}

func (s *cookbookService) getOrCreateDefault(ctx context.Context, repo CookbookRepository, owner uuid.UUID) (*entities.CookBook, error) {
	cb, err := repo.GetDefault(ctx, owner)
	if err == nil {
		return cb, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.MapDBError("load default cookbook", err)
	}

	cb = &entities.CookBook{
		OwnerID:   owner,
		Title:     s.defaultTitle,
		Slug:      utils.Slugify(s.defaultTitle),
		IsPublic:  true,
		IsDefault: true,
	}
	if err := repo.CreateCookbook(ctx, cb); err != nil {
		return nil, domain.MapDBError("create default cookbook", err)
	}
	s.log.Info("default cookbook created", "owner_id", owner, "cookbook_id", cb.ID)
	return cb, nil
}

func (s *cookbookService) Create(ctx context.Context, owner uuid.UUID, req domain.SaveCookbookRequest) (*entities.CookBook, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, domain.NewValidationError("", err)
	}
	cb := &entities.CookBook{
		OwnerID:   owner,
		Title:     req.Title,
		IsPublic:  true,
		IsDefault: req.IsDefault,
	}
	if req.IsPublic != nil {
		cb.IsPublic = *req.IsPublic
	}
	if err := s.Save(ctx, cb); err != nil {
		return nil, err
	}
	return cb, nil
}

// Save persists a cookbook. Flagging it default clears the flag on the owner's
// previous default in the same transaction.
func (s *cookbookService) Save(ctx context.Context, cb *entities.CookBook) error {
	if cb.Title == "" {
		return domain.NewValidationError("title", errors.New("title is required"))
	}
	if cb.Slug == "" {
		cb.Slug = utils.Slugify(cb.Title)
		if cb.Slug == "" {
			return domain.NewValidationError("title", domain.ErrEmptySlug)
		}
	}

	isNew := cb.ID == uuid.Nil
	err := s.repo.Transaction(ctx, func(repo CookbookRepository) error {
		if !isNew {
			stored, err := repo.GetCookbookByID(ctx, cb.ID)
			if err != nil {
				return cookbookNotFound(cb.ID, err)
			}
			if stored.OwnerID != cb.OwnerID {
				return domain.NewIntegrityError("save cookbook", errors.New("cookbook owner cannot change"))
			}
			if cb.CreatedAt.IsZero() {
				cb.CreatedAt = stored.CreatedAt
			}
		}
		if cb.IsDefault {
			if err := repo.ClearDefault(ctx, cb.OwnerID, cb.ID); err != nil {
				return domain.MapDBError("clear default cookbook", err)
			}
		}
		if isNew {
			return domain.MapDBError("create cookbook", repo.CreateCookbook(ctx, cb))
		}
		return domain.MapDBError("update cookbook", repo.UpdateCookbook(ctx, cb))
	})
	if err != nil {
		if isNew {
			cb.ID = uuid.Nil
		}
		return err
	}
	return nil
}

func (s *cookbookService) ListByOwner(ctx context.Context, owner uuid.UUID) ([]domain.Cookbook, error) {
	cookbooks, err := s.repo.ListByOwner(ctx, owner)
	if err != nil {
		return nil, domain.MapDBError("list cookbooks", err)
	}
	views := make([]domain.Cookbook, 0, len(cookbooks))
	for _, cb := range cookbooks {
		count, err := s.repo.CountItems(ctx, cb.ID)
		if err != nil {
			return nil, domain.MapDBError("count cookbook recipes", err)
		}
		views = append(views, domain.Cookbook{
			ID:        cb.ID.String(),
			Title:     cb.Title,
			Slug:      cb.Slug,
			IsPublic:  cb.IsPublic,
			IsDefault: cb.IsDefault,
			Recipes:   count,
		})
	}
	return views, nil
}

func (s *cookbookService) Items(ctx context.Context, owner, cookbookID uuid.UUID) ([]domain.CookbookItem, error) {
	if _, err := s.owned(ctx, s.repo, owner, cookbookID); err != nil {
		return nil, err
	}
	items, err := s.repo.ListItems(ctx, cookbookID)
	if err != nil {
		return nil, domain.MapDBError("list cookbook recipes", err)
	}
	return itemViews(items), nil
}

// AddRecipe puts a recipe into one of the owner's cookbooks, the default one
// when no cookbook is named. A recipe appears at most once per cookbook.
func (s *cookbookService) AddRecipe(ctx context.Context, owner uuid.UUID, req domain.AddToCookbookRequest) (*entities.CookBookRecipe, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, domain.NewValidationError("", err)
	}
	recipeID, err := uuid.Parse(req.RecipeID)
	if err != nil {
		return nil, domain.NewValidationError("recipe_id", domain.ErrParseUUID)
	}
	if _, err := s.recipes.GetByID(ctx, recipeID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewValidationError("recipe_id", domain.ErrRecipeNotFound)
		}
		return nil, err
	}

	item := &entities.CookBookRecipe{
		RecipeID: recipeID,
		Note:     req.Note,
		Added:    domain.DateOf(s.now()),
	}
	err = s.repo.Transaction(ctx, func(repo CookbookRepository) error {
		var cb *entities.CookBook
		if req.CookbookID == "" {
			cb, err = s.getOrCreateDefault(ctx, repo, owner)
		} else {
			cookbookID, perr := uuid.Parse(req.CookbookID)
			if perr != nil {
				return domain.NewValidationError("cookbook_id", domain.ErrParseUUID)
			}
			cb, err = s.owned(ctx, repo, owner, cookbookID)
		}
		if err != nil {
			return err
		}
		item.CookBookID = cb.ID

		if _, err := repo.GetItem(ctx, cb.ID, recipeID); err == nil {
			return domain.NewIntegrityError("add recipe to cookbook", domain.ErrRecipeInCookbook)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.MapDBError("load cookbook recipe", err)
		}
		if err := repo.CreateItem(ctx, item); err != nil {
			if domain.IsUniqueViolation(err) {
				return domain.NewIntegrityError("add recipe to cookbook", errors.Join(domain.ErrRecipeInCookbook, err))
			}
			return domain.MapDBError("add recipe to cookbook", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, owner, recipeID)
	return item, nil
}

func (s *cookbookService) RemoveRecipe(ctx context.Context, owner, cookbookID, recipeID uuid.UUID) error {
	err := s.repo.Transaction(ctx, func(repo CookbookRepository) error {
		item, err := s.ownedItem(ctx, repo, owner, cookbookID, recipeID)
		if err != nil {
			return err
		}
		return domain.MapDBError("remove recipe from cookbook", repo.DeleteItem(ctx, item.ID))
	})
	if err != nil {
		return err
	}
	s.invalidate(ctx, owner, recipeID)
	return nil
}

func (s *cookbookService) UpdateNote(ctx context.Context, owner, cookbookID, recipeID uuid.UUID, req domain.UpdateNoteRequest) error {
	if err := s.validate.Struct(req); err != nil {
		return domain.NewValidationError("note", err)
	}
	err := s.repo.Transaction(ctx, func(repo CookbookRepository) error {
		item, err := s.ownedItem(ctx, repo, owner, cookbookID, recipeID)
		if err != nil {
			return err
		}
		return domain.MapDBError("update cookbook note", repo.UpdateItemNote(ctx, item.ID, req.Note))
	})
	if err != nil {
		return err
	}
	s.invalidate(ctx, owner, recipeID)
	return nil
}

// UserRecipesCount counts recipe entries across all of the owner's cookbooks.
func (s *cookbookService) UserRecipesCount(ctx context.Context, owner uuid.UUID) (int64, error) {
	return cache.Load(ctx, s.loader, cache.UserCookbookCountKey(owner), func(ctx context.Context) (int64, error) {
		count, err := s.repo.CountOwnerItems(ctx, owner)
		if err != nil {
			return 0, domain.MapDBError("count owner cookbook recipes", err)
		}
		return count, nil
	})
}

// UserItemsForRecipe lists the owner's cookbook entries holding recipeID.
func (s *cookbookService) UserItemsForRecipe(ctx context.Context, owner, recipeID uuid.UUID) ([]domain.CookbookItem, error) {
	return cache.Load(ctx, s.loader, cache.UserCookbookItemsKey(owner, recipeID), func(ctx context.Context) ([]domain.CookbookItem, error) {
		items, err := s.repo.OwnerItemsForRecipe(ctx, owner, recipeID)
		if err != nil {
			return nil, domain.MapDBError("list owner cookbook recipes", err)
		}
		return itemViews(items), nil
	})
}

func (s *cookbookService) invalidate(ctx context.Context, owner, recipeID uuid.UUID) {
	s.loader.Invalidate(ctx, cache.UserCookbookCountKey(owner), cache.UserCookbookItemsKey(owner, recipeID))
}

// owned loads a cookbook of owner. Another owner's cookbook reads as missing.
func (s *cookbookService) owned(ctx context.Context, repo CookbookRepository, owner, cookbookID uuid.UUID) (*entities.CookBook, error) {
	cb, err := repo.GetCookbookByID(ctx, cookbookID)
	if err != nil {
		return nil, cookbookNotFound(cookbookID, err)
	}
	if cb.OwnerID != owner {
		return nil, cookbookNotFound(cookbookID, gorm.ErrRecordNotFound)
	}
	return cb, nil
}

func (s *cookbookService) ownedItem(ctx context.Context, repo CookbookRepository, owner, cookbookID, recipeID uuid.UUID) (*entities.CookBookRecipe, error) {
	if _, err := s.owned(ctx, repo, owner, cookbookID); err != nil {
		return nil, err
	}
	item, err := repo.GetItem(ctx, cookbookID, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Join(domain.NewNotFoundError("cookbook recipe", recipeID.String()), domain.ErrCookbookItemNotFound)
		}
		return nil, domain.MapDBError("load cookbook recipe", err)
	}
	return item, nil
}

func cookbookNotFound(id uuid.UUID, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errors.Join(domain.NewNotFoundError("cookbook", id.String()), domain.ErrCookbookNotFound)
	}
	return domain.MapDBError("load cookbook", err)
}

func itemViews(items []*entities.CookBookRecipe) []domain.CookbookItem {
	views := make([]domain.CookbookItem, 0, len(items))
	for _, i := range items {
		views = append(views, domain.CookbookItem{
			ID:         i.ID.String(),
			CookbookID: i.CookBookID.String(),
			RecipeID:   i.RecipeID.String(),
			Note:       i.Note,
			Added:      i.Added.Format(time.DateOnly),
		})
	}
	return views
}
