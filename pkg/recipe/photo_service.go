package recipe

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"yummy-backend/domain"
	"yummy-backend/entities"
	"yummy-backend/pkg/cache"
	"yummy-backend/pkg/ordering"
)

// photoEntry is the cached form of one ordered photo. Thumbnail URLs are
// resolved on every read since they may expire.
type photoEntry struct {
	PhotoID    uuid.UUID `json:"photo_id"`
	Title      string    `json:"title"`
	StorageKey string    `json:"storage_key"`
	Order      int       `json:"order"`
	IsOwner    bool      `json:"is_owner"`
}

// AttachPhoto links a photo to a recipe. Without an explicit order an owner
// photo goes right after the last owner photo, pushing colliding photos of
// other users up, and any other photo goes to the tail.
func (s *recipeService) AttachPhoto(ctx context.Context, recipeID uuid.UUID, req domain.AttachPhotoRequest) (*entities.RecipePhoto, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, domain.NewValidationError("", err)
	}
	photoID, err := uuid.Parse(req.PhotoID)
	if err != nil {
		return nil, domain.NewValidationError("photo_id", domain.ErrParseUUID)
	}

	var (
		created *entities.RecipePhoto
		moves   []ordering.Move
	)
	err = s.repo.Transaction(ctx, func(repo RecipeRepository) error {
		moves = nil

		recipe, err := repo.GetRecipeByID(ctx, recipeID)
		if err != nil {
			return recipeNotFound(recipeID, err)
		}
		photo, err := repo.GetPhoto(ctx, photoID)
		if err != nil {
			return photoNotFound(photoID, err)
		}
		if _, err := repo.GetRecipePhoto(ctx, recipeID, photoID); err == nil {
			return domain.NewIntegrityError("attach photo", domain.ErrPhotoAttached)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.MapDBError("attach photo", err)
		}

		rows, err := repo.ListRecipePhotos(ctx, recipeID, false)
		if err != nil {
			return domain.MapDBError("list recipe photos", err)
		}
		slots := photoSlots(recipe, rows)

		rp := &entities.RecipePhoto{RecipeID: recipeID, PhotoID: photoID, IsVisible: true}
		if req.IsVisible != nil {
			rp.IsVisible = *req.IsVisible
		}
		switch {
		case req.Order != nil:
			for _, slot := range slots {
				if slot.Order == *req.Order {
					return domain.NewIntegrityError("attach photo", domain.ErrDuplicateOrder)
				}
			}
			rp.Order = *req.Order
		case photo.OwnerID == recipe.OwnerID:
			rp.Order, moves = ordering.OwnerInsert(slots, s.strategies.PhotoGap)
			// moves arrive highest target first; that order keeps every
			// intermediate state free of duplicate slots
			for _, m := range moves {
				if err := repo.UpdateRecipePhotoOrder(ctx, m.ID, m.To); err != nil {
					return orderConflict("move recipe photo", err)
				}
			}
		default:
			rp.Order = ordering.Tail(slots)
		}

		if err := repo.CreateRecipePhoto(ctx, rp); err != nil {
			return orderConflict("attach photo", err)
		}
		rp.Photo = photo
		created = rp
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, m := range moves {
		s.log.Debug("recipe photo order bump", "recipe_id", recipeID, "recipe_photo_id", m.ID, "from", m.From, "to", m.To)
	}
	s.loader.Invalidate(ctx, cache.RecipePhotosKey(recipeID))
	return created, nil
}

func (s *recipeService) SetPhotoVisibility(ctx context.Context, recipeID, photoID uuid.UUID, visible bool) error {
	rp, err := s.repo.GetRecipePhoto(ctx, recipeID, photoID)
	if err != nil {
		return photoNotFound(photoID, err)
	}
	if err := s.repo.UpdateRecipePhotoVisibility(ctx, rp.ID, visible); err != nil {
		return domain.MapDBError("update recipe photo", err)
	}
	s.loader.Invalidate(ctx, cache.RecipePhotosKey(recipeID))
	return nil
}

func (s *recipeService) DetachPhoto(ctx context.Context, recipeID, photoID uuid.UUID) error {
	rp, err := s.repo.GetRecipePhoto(ctx, recipeID, photoID)
	if err != nil {
		return photoNotFound(photoID, err)
	}
	if err := s.repo.DeleteRecipePhoto(ctx, rp.ID); err != nil {
		return domain.MapDBError("detach photo", err)
	}
	s.loader.Invalidate(ctx, cache.RecipePhotosKey(recipeID))
	return nil
}

// OrderedPhotos lists the visible photos of recipe, the owner's first.
func (s *recipeService) OrderedPhotos(ctx context.Context, recipe *entities.Recipe) ([]domain.RecipePhoto, error) {
	entries, err := cache.Load(ctx, s.loader, cache.RecipePhotosKey(recipe.ID), func(ctx context.Context) ([]photoEntry, error) {
		rows, err := s.repo.ListRecipePhotos(ctx, recipe.ID, true)
		if err != nil {
			return nil, domain.MapDBError("list recipe photos", err)
		}
		byID := make(map[uuid.UUID]*entities.RecipePhoto, len(rows))
		for _, row := range rows {
			byID[row.ID] = row
		}

		entries := make([]photoEntry, 0, len(rows))
		for _, slot := range ordering.OwnerFirst(photoSlots(recipe, rows)) {
			row := byID[slot.ID]
			entry := photoEntry{PhotoID: row.PhotoID, Order: row.Order, IsOwner: slot.IsOwner}
			if row.Photo != nil {
				entry.Title = row.Photo.Title
				entry.StorageKey = row.Photo.StorageKey
			}
			entries = append(entries, entry)
		}
		return entries, nil
	})
	if err != nil {
		return nil, err
	}

	photos := make([]domain.RecipePhoto, 0, len(entries))
	for _, e := range entries {
		photos = append(photos, domain.RecipePhoto{
			PhotoID:  e.PhotoID.String(),
			Title:    e.Title,
			Order:    e.Order,
			IsOwner:  e.IsOwner,
			ImageURL: s.thumbnail(ctx, e.StorageKey),
		})
	}
	return photos, nil
}

// TopPhoto is the first ordered photo or, for a recipe without photos, the
// photo of the nearest category on its chain. Nil when neither exists.
func (s *recipeService) TopPhoto(ctx context.Context, recipe *entities.Recipe) (*domain.RecipePhoto, error) {
	photos, err := s.OrderedPhotos(ctx, recipe)
	if err != nil {
		return nil, err
	}
	if len(photos) > 0 {
		return &photos[0], nil
	}

	c, err := s.categories.GetByID(ctx, recipe.CategoryID)
	if err != nil {
		return nil, err
	}
	photoID, err := s.categories.NearestPhotoID(ctx, c)
	if err != nil || photoID == nil {
		return nil, err
	}
	photo, err := s.repo.GetPhoto(ctx, *photoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.Warn("category photo is missing", "category_id", c.ID, "photo_id", *photoID)
			return nil, nil
		}
		return nil, domain.MapDBError("load category photo", err)
	}
	return &domain.RecipePhoto{
		PhotoID:  photo.ID.String(),
		Title:    photo.Title,
		ImageURL: s.thumbnail(ctx, photo.StorageKey),
	}, nil
}

func (s *recipeService) thumbnail(ctx context.Context, storageKey string) string {
	if s.strategies.Thumbnail == nil || storageKey == "" {
		return ""
	}
	url, err := s.strategies.Thumbnail(ctx, storageKey)
	if err != nil {
		s.log.Warn("thumbnail failed", "storage_key", storageKey, "error", err)
		return ""
	}
	return url
}

func photoSlots(recipe *entities.Recipe, rows []*entities.RecipePhoto) []ordering.Slot {
	slots := make([]ordering.Slot, 0, len(rows))
	for _, row := range rows {
		slots = append(slots, ordering.Slot{
			ID:      row.ID,
			Order:   row.Order,
			IsOwner: row.Photo != nil && row.Photo.OwnerID == recipe.OwnerID,
		})
	}
	return slots
}

func photoNotFound(id uuid.UUID, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errors.Join(domain.NewNotFoundError("photo", id.String()), domain.ErrPhotoNotFound)
	}
	return domain.MapDBError("load photo", err)
}

// orderConflict reports a rejected order slot as an integrity failure naming
// the slot collision.
func orderConflict(op string, err error) error {
	if domain.IsUniqueViolation(err) {
		return domain.NewIntegrityError(op, errors.Join(domain.ErrDuplicateOrder, err))
	}
	return domain.MapDBError(op, err)
}
