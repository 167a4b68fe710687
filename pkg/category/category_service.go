package category

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"yummy-backend/domain"
	"yummy-backend/entities"
	"yummy-backend/internal/utils"
	"yummy-backend/pkg/cache"
	"yummy-backend/pkg/logger"
)

type (
	CategoryService interface {
		Create(ctx context.Context, req domain.CreateCategoryRequest) (domain.Category, error)
		Update(ctx context.Context, id uuid.UUID, req domain.UpdateCategoryRequest) (domain.Category, error)

		Validate(ctx context.Context, category *entities.Category) error
		Save(ctx context.Context, category *entities.Category) error
		RebuildPaths(ctx context.Context) (int, error)

		GetByID(ctx context.Context, id uuid.UUID) (*entities.Category, error)
		GetByPath(ctx context.Context, path string) (*entities.Category, error)
		GetChildren(ctx context.Context, category *entities.Category) ([]*entities.Category, error)
		GetDescendants(ctx context.Context, category *entities.Category) ([]*entities.Category, error)
		GetRoots(ctx context.Context) ([]*entities.Category, error)
		Ancestors(ctx context.Context, category *entities.Category) ([]*entities.Category, error)
		IsAncestorOf(ctx context.Context, a, b *entities.Category) (bool, error)
		RootAncestor(ctx context.Context, category *entities.Category) (*entities.Category, error)
		ChainedTitle(ctx context.Context, category *entities.Category) (string, error)
		NearestPhotoID(ctx context.Context, category *entities.Category) (*uuid.UUID, error)

		RecipeCount(ctx context.Context, category *entities.Category) (int64, error)
		InvalidateRecipeCount(ctx context.Context, categoryID uuid.UUID)
		Detail(ctx context.Context, category *entities.Category) (domain.Category, error)
	}

	categoryService struct {
		repo     CategoryRepository
		loader   *cache.Loader
		validate *validator.Validate
		log      *logger.Logger
	}
)

func NewCategoryService(repo CategoryRepository, loader *cache.Loader, validate *validator.Validate, log *logger.Logger) CategoryService {
	return &categoryService{
		repo:     repo,
		loader:   loader,
		validate: validate,
		log:      log.With("service", "CategoryService"),
	}
}

func (s *categoryService) Create(ctx context.Context, req domain.CreateCategoryRequest) (domain.Category, error) {
	if err := s.validate.Struct(req); err != nil {
		return domain.Category{}, domain.NewValidationError("", err)
	}

	category := &entities.Category{
		Title:       req.Title,
		Slug:        req.Slug,
		Description: req.Description,
	}
	if req.ParentID != "" {
		parentID, err := uuid.Parse(req.ParentID)
		if err != nil {
			return domain.Category{}, domain.NewValidationError("parent_id", domain.ErrParseUUID)
		}
		category.ParentID = &parentID
	}
	if req.PhotoID != "" {
		photoID, err := uuid.Parse(req.PhotoID)
		if err != nil {
			return domain.Category{}, domain.NewValidationError("photo_id", domain.ErrParseUUID)
		}
		category.PhotoID = &photoID
	}

	if err := s.Validate(ctx, category); err != nil {
		return domain.Category{}, err
	}
	if err := s.Save(ctx, category); err != nil {
		return domain.Category{}, err
	}
	return s.Detail(ctx, category)
}

func (s *categoryService) Update(ctx context.Context, id uuid.UUID, req domain.UpdateCategoryRequest) (domain.Category, error) {
	if err := s.validate.Struct(req); err != nil {
		return domain.Category{}, domain.NewValidationError("", err)
	}

	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Category{}, notFound(id.String(), err)
	}

	if req.Title != nil {
		category.Title = *req.Title
	}
	if req.Slug != nil {
		category.Slug = *req.Slug
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if req.PhotoID != nil {
		if *req.PhotoID == "" {
			category.PhotoID = nil
		} else {
			photoID, err := uuid.Parse(*req.PhotoID)
			if err != nil {
				return domain.Category{}, domain.NewValidationError("photo_id", domain.ErrParseUUID)
			}
			category.PhotoID = &photoID
		}
	}
	switch {
	case req.DetachParent:
		category.ParentID = nil
	case req.ParentID != nil:
		parentID, err := uuid.Parse(*req.ParentID)
		if err != nil {
			return domain.Category{}, domain.NewValidationError("parent_id", domain.ErrParseUUID)
		}
		category.ParentID = &parentID
	}

	if err := s.Validate(ctx, category); err != nil {
		return domain.Category{}, err
	}
	if err := s.Save(ctx, category); err != nil {
		return domain.Category{}, err
	}
	return s.Detail(ctx, category)
}

// Validate checks a category before it is written. It never mutates the
// category or the store.
func (s *categoryService) Validate(ctx context.Context, category *entities.Category) error {
	if category.Title == "" {
		return domain.NewValidationError("title", errors.New("title is required"))
	}
	if !utils.IsSlug(category.Slug) {
		return domain.NewValidationError("slug", errors.New("slug must contain lowercase letters, digits and dashes"))
	}

	parent, err := s.structuralParent(ctx, s.repo, category)
	if err != nil {
		var integrity *domain.IntegrityError
		if errors.As(err, &integrity) {
			return domain.NewValidationError("parent", integrity.Err)
		}
		return err
	}

	exists, err := s.repo.PathExists(ctx, ComputePath(parent, category.Slug), category.ID)
	if err != nil {
		return domain.MapDBError("check category path", err)
	}
	if exists {
		return domain.NewValidationError("slug", domain.ErrDuplicatePath)
	}
	return nil
}

// Save derives the path of category and writes it. When the path changes every
// descendant path is rewritten in the same transaction. On failure the store
// and the category are left as they were.
func (s *categoryService) Save(ctx context.Context, category *entities.Category) error {
	origID, origPath := category.ID, category.Path
	var (
		oldPath  string
		affected []uuid.UUID
	)

	err := s.repo.Transaction(ctx, func(repo CategoryRepository) error {
		affected = affected[:0]
		oldPath = ""

		if category.ID != uuid.Nil {
			stored, err := repo.GetByID(ctx, category.ID)
			switch {
			case err == nil:
				oldPath = stored.Path
				if category.CreatedAt.IsZero() {
					category.CreatedAt = stored.CreatedAt
				}
				ancestors, err := ancestorsOf(ctx, repo, stored)
				if err == nil {
					affected = append(affected, ids(ancestors)...)
				}
			case !isRecordNotFound(err):
				return domain.MapDBError("load category", err)
			}
		}

		parent, err := s.structuralParent(ctx, repo, category)
		if err != nil {
			return err
		}
		if parent != nil {
			ancestors, err := ancestorsOf(ctx, repo, parent)
			if err != nil {
				return err
			}
			affected = append(affected, parent.ID)
			affected = append(affected, ids(ancestors)...)
		}

		category.Path = ComputePath(parent, category.Slug)
		exists, err := repo.PathExists(ctx, category.Path, category.ID)
		if err != nil {
			return domain.MapDBError("check category path", err)
		}
		if exists {
			return domain.NewIntegrityError("save category", domain.ErrDuplicatePath)
		}
		if err := repo.Save(ctx, category); err != nil {
			return domain.MapDBError("save category", err)
		}

		if oldPath == "" || oldPath == category.Path {
			return nil
		}
		rewritten, err := s.cascadePaths(ctx, repo, category)
		if err != nil {
			return err
		}
		affected = append(affected, rewritten...)
		return nil
	})
	if err != nil {
		category.ID, category.Path = origID, origPath
		return err
	}

	if oldPath != "" && oldPath != category.Path {
		s.log.Info("category path changed", "category_id", category.ID, "from", oldPath, "to", category.Path)
	}
	s.invalidate(ctx, category.ID, affected)
	return nil
}

// cascadePaths rewrites the paths below root depth first. Children are read
// from the store before their parent's new path is known to them, so each
// child takes the path its parent was just given.
func (s *categoryService) cascadePaths(ctx context.Context, repo CategoryRepository, root *entities.Category) ([]uuid.UUID, error) {
	type frame struct {
		id   uuid.UUID
		path string
	}

	var rewritten []uuid.UUID
	seen := map[uuid.UUID]bool{root.ID: true}
	stack := []frame{{id: root.ID, path: root.Path}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		children, err := repo.GetChildren(ctx, top.id)
		if err != nil {
			return nil, domain.MapDBError("list category children", err)
		}
		for i := len(children) - 1; i >= 0; i-- {
			child := children[i]
			if seen[child.ID] {
				return nil, domain.NewIntegrityError("category path cascade", domain.ErrBadCategoryTree)
			}
			seen[child.ID] = true

			path := top.path + "/" + child.Slug
			if child.Path != path {
				if err := repo.UpdatePath(ctx, child.ID, path); err != nil {
					return nil, domain.MapDBError("category path cascade", err)
				}
				s.log.Debug("category path cascade", "category_id", child.ID, "from", child.Path, "to", path)
			}
			rewritten = append(rewritten, child.ID)
			stack = append(stack, frame{id: child.ID, path: path})
		}
	}
	return rewritten, nil
}

// structuralParent loads the parent of category and rejects self parenting
// and cycles with an IntegrityError.
func (s *categoryService) structuralParent(ctx context.Context, repo CategoryRepository, category *entities.Category) (*entities.Category, error) {
	if category.ParentID == nil {
		return nil, nil
	}
	if category.ID != uuid.Nil && *category.ParentID == category.ID {
		return nil, domain.NewIntegrityError("save category", domain.ErrSelfParent)
	}

	parent, err := repo.GetByID(ctx, *category.ParentID)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, domain.NewIntegrityError("save category", domain.ErrCategoryNotFound)
		}
		return nil, domain.MapDBError("load parent category", err)
	}

	if category.ID == uuid.Nil {
		return parent, nil
	}
	cyclic, err := isAncestorOf(ctx, repo, category, parent)
	if err != nil {
		return nil, err
	}
	if cyclic {
		return nil, domain.NewIntegrityError("save category", errors.Join(domain.ErrBadCategoryTree, domain.ErrCyclicAncestry))
	}
	return parent, nil
}

// RebuildPaths recomputes every path from the roots down and returns the
// number of categories visited below the roots plus any root it fixed.
func (s *categoryService) RebuildPaths(ctx context.Context) (int, error) {
	var rewritten []uuid.UUID
	err := s.repo.Transaction(ctx, func(repo CategoryRepository) error {
		rewritten = rewritten[:0]
		roots, err := repo.GetRoots(ctx)
		if err != nil {
			return domain.MapDBError("list root categories", err)
		}
		for _, root := range roots {
			if root.Path != root.Slug {
				if err := repo.UpdatePath(ctx, root.ID, root.Slug); err != nil {
					return domain.MapDBError("rebuild category paths", err)
				}
				rewritten = append(rewritten, root.ID)
				root.Path = root.Slug
			}
			below, err := s.cascadePaths(ctx, repo, root)
			if err != nil {
				return err
			}
			rewritten = append(rewritten, below...)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	for _, id := range rewritten {
		s.loader.Invalidate(ctx, cache.CategoryKey(id), cache.CategoryRecipeCountKey(id))
	}
	s.log.Info("category paths rebuilt", "visited", len(rewritten))
	return len(rewritten), nil
}

// GetByID is the cached read path. Callers that mutate the category must load
// it through the repository instead.
func (s *categoryService) GetByID(ctx context.Context, id uuid.UUID) (*entities.Category, error) {
	category, err := cache.Load(ctx, s.loader, cache.CategoryKey(id), func(ctx context.Context) (*entities.Category, error) {
		return s.repo.GetByID(ctx, id)
	})
	if err != nil {
		return nil, notFound(id.String(), err)
	}
	return category, nil
}

func (s *categoryService) GetByPath(ctx context.Context, path string) (*entities.Category, error) {
	category, err := s.repo.GetByPath(ctx, strings.Trim(path, "/"))
	if err != nil {
		return nil, notFound(path, err)
	}
	return category, nil
}

func (s *categoryService) GetChildren(ctx context.Context, category *entities.Category) ([]*entities.Category, error) {
	children, err := s.repo.GetChildren(ctx, category.ID)
	if err != nil {
		return nil, domain.MapDBError("list category children", err)
	}
	return children, nil
}

func (s *categoryService) GetDescendants(ctx context.Context, category *entities.Category) ([]*entities.Category, error) {
	descendants, err := descendantsOf(ctx, s.repo, category)
	if err != nil {
		return nil, domain.MapDBError("list category descendants", err)
	}
	return descendants, nil
}

func (s *categoryService) GetRoots(ctx context.Context) ([]*entities.Category, error) {
	roots, err := s.repo.GetRoots(ctx)
	if err != nil {
		return nil, domain.MapDBError("list root categories", err)
	}
	return roots, nil
}

// Ancestors lists the ancestors of category from the root down.
func (s *categoryService) Ancestors(ctx context.Context, category *entities.Category) ([]*entities.Category, error) {
	ancestors, err := ancestorsOf(ctx, s.repo, category)
	if err != nil {
		return nil, domain.MapDBError("list category ancestors", err)
	}
	return ancestors, nil
}

func (s *categoryService) IsAncestorOf(ctx context.Context, a, b *entities.Category) (bool, error) {
	return isAncestorOf(ctx, s.repo, a, b)
}

func (s *categoryService) RootAncestor(ctx context.Context, category *entities.Category) (*entities.Category, error) {
	ancestors, err := s.Ancestors(ctx, category)
	if err != nil {
		return nil, err
	}
	if len(ancestors) == 0 {
		return category, nil
	}
	return ancestors[0], nil
}

func (s *categoryService) ChainedTitle(ctx context.Context, category *entities.Category) (string, error) {
	ancestors, err := s.Ancestors(ctx, category)
	if err != nil {
		return "", err
	}
	titles := make([]string, 0, len(ancestors)+1)
	for _, a := range ancestors {
		titles = append(titles, a.Title)
	}
	titles = append(titles, category.Title)
	return strings.Join(titles, " / "), nil
}

// NearestPhotoID returns the photo of category or of its nearest ancestor that
// has one. Nil means no category on the chain has a photo.
func (s *categoryService) NearestPhotoID(ctx context.Context, category *entities.Category) (*uuid.UUID, error) {
	if category.PhotoID != nil {
		return category.PhotoID, nil
	}
	var found *uuid.UUID
	err := walkAncestors(ctx, s.repo, category, func(p *entities.Category) bool {
		if p.PhotoID != nil {
			found = p.PhotoID
			return false
		}
		return true
	})
	if err != nil {
		return nil, domain.MapDBError("find category photo", err)
	}
	return found, nil
}

// RecipeCount is the number of public recipes filed anywhere in the subtree of
// category.
func (s *categoryService) RecipeCount(ctx context.Context, category *entities.Category) (int64, error) {
	return cache.Load(ctx, s.loader, cache.CategoryRecipeCountKey(category.ID), func(ctx context.Context) (int64, error) {
		count, err := s.repo.CountPublicRecipesUnderPath(ctx, category.Path)
		if err != nil {
			return 0, domain.MapDBError("count category recipes", err)
		}
		return count, nil
	})
}

// InvalidateRecipeCount drops the cached count of the category and of every
// ancestor, since each of them includes the subtree.
func (s *categoryService) InvalidateRecipeCount(ctx context.Context, categoryID uuid.UUID) {
	keys := []string{cache.CategoryRecipeCountKey(categoryID)}
	category, err := s.repo.GetByID(ctx, categoryID)
	if err != nil {
		s.loader.Invalidate(ctx, keys...)
		return
	}
	ancestors, err := ancestorsOf(ctx, s.repo, category)
	if err != nil {
		s.log.Warn("recipe count invalidation stopped", "category_id", categoryID, "error", err)
	}
	for _, a := range ancestors {
		keys = append(keys, cache.CategoryRecipeCountKey(a.ID))
	}
	s.loader.Invalidate(ctx, keys...)
}

func (s *categoryService) Detail(ctx context.Context, category *entities.Category) (domain.Category, error) {
	chained, err := s.ChainedTitle(ctx, category)
	if err != nil {
		return domain.Category{}, err
	}
	count, err := s.RecipeCount(ctx, category)
	if err != nil {
		return domain.Category{}, err
	}

	res := domain.Category{
		ID:           category.ID.String(),
		Title:        category.Title,
		Slug:         category.Slug,
		Path:         category.Path,
		Level:        category.Level(),
		URL:          category.AbsoluteURL(),
		ChainedTitle: chained,
		RecipeCount:  count,
	}
	if category.ParentID != nil {
		res.ParentID = category.ParentID.String()
	}
	return res, nil
}

func (s *categoryService) invalidate(ctx context.Context, id uuid.UUID, affected []uuid.UUID) {
	keys := []string{cache.CategoryKey(id), cache.CategoryRecipeCountKey(id)}
	for _, a := range affected {
		keys = append(keys, cache.CategoryKey(a), cache.CategoryRecipeCountKey(a))
	}
	s.loader.Invalidate(ctx, keys...)
}

func ids(categories []*entities.Category) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(categories))
	for _, c := range categories {
		out = append(out, c.ID)
	}
	return out
}
