package ingredient

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"yummy-backend/domain"
	"yummy-backend/entities"
	"yummy-backend/internal/utils"
	"yummy-backend/pkg/cache"
	"yummy-backend/pkg/logger"
)

type (
	IngredientService interface {
		Create(ctx context.Context, req domain.CreateIngredientRequest) (*entities.Ingredient, error)
		GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entities.Ingredient, error)
		ApprovedNames(ctx context.Context) ([]string, error)

		SaveConversion(ctx context.Context, req domain.SaveConversionRequest) (*entities.UnitConversion, error)
		Convert(ctx context.Context, amount float64, from, to int) (float64, error)
		Conversions(ctx context.Context) (Conversions, error)
	}

	ingredientService struct {
		repo     IngredientRepository
		loader   *cache.Loader
		validate *validator.Validate
		log      *logger.Logger
	}
)

func NewIngredientService(repo IngredientRepository, loader *cache.Loader, validate *validator.Validate, log *logger.Logger) IngredientService {
	return &ingredientService{
		repo:     repo,
		loader:   loader,
		validate: validate,
		log:      log.With("service", "IngredientService"),
	}
}

// Create adds a catalog ingredient. An empty slug is derived from the name.
func (s *ingredientService) Create(ctx context.Context, req domain.CreateIngredientRequest) (*entities.Ingredient, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, domain.NewValidationError("", err)
	}
	if req.DefaultUnit != nil {
		if _, ok := domain.UnitByID(*req.DefaultUnit); !ok {
			return nil, domain.NewValidationError("default_unit", domain.ErrInvalidUnit)
		}
	}

	ingredient := &entities.Ingredient{
		Name:        req.Name,
		Slug:        req.Slug,
		Genitive:    req.Genitive,
		DefaultUnit: req.DefaultUnit,
		NDBNo:       req.NDBNo,
		IsApproved:  true,
	}
	if req.IsApproved != nil {
		ingredient.IsApproved = *req.IsApproved
	}
	if ingredient.Slug == "" {
		ingredient.Slug = utils.Slugify(req.Name)
		if ingredient.Slug == "" {
			return nil, domain.NewValidationError("name", domain.ErrEmptySlug)
		}
	}
	if req.GroupID != "" {
		groupID, err := uuid.Parse(req.GroupID)
		if err != nil {
			return nil, domain.NewValidationError("group_id", domain.ErrParseUUID)
		}
		if _, err := s.repo.GetGroupByID(ctx, groupID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.NewValidationError("group_id", domain.NewNotFoundError("ingredient group", req.GroupID))
			}
			return nil, domain.MapDBError("load ingredient group", err)
		}
		ingredient.GroupID = &groupID
	}

	if err := s.repo.CreateIngredient(ctx, ingredient); err != nil {
		return nil, domain.MapDBError("create ingredient", err)
	}
	s.loader.Invalidate(ctx, cache.IngredientNamesKey)
	return ingredient, nil
}

func (s *ingredientService) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entities.Ingredient, error) {
	ingredients, err := s.repo.GetIngredientsByIDs(ctx, ids)
	if err != nil {
		return nil, domain.MapDBError("load ingredients", err)
	}
	byID := make(map[uuid.UUID]*entities.Ingredient, len(ingredients))
	for _, i := range ingredients {
		byID[i.ID] = i
	}
	return byID, nil
}

// ApprovedNames lists the names of approved ingredients, used for autocomplete.
func (s *ingredientService) ApprovedNames(ctx context.Context) ([]string, error) {
	return cache.Load(ctx, s.loader, cache.IngredientNamesKey, func(ctx context.Context) ([]string, error) {
		names, err := s.repo.ApprovedNames(ctx)
		if err != nil {
			return nil, domain.MapDBError("list ingredient names", err)
		}
		if names == nil {
			names = []string{}
		}
		return names, nil
	})
}

// SaveConversion stores "1 from = ratio to", replacing an existing ratio for
// the same pair.
func (s *ingredientService) SaveConversion(ctx context.Context, req domain.SaveConversionRequest) (*entities.UnitConversion, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, domain.NewValidationError("ratio", domain.ErrInvalidRatio)
	}
	if _, ok := domain.UnitByID(req.FromUnit); !ok {
		return nil, domain.NewValidationError("from_unit", domain.ErrInvalidUnit)
	}
	if _, ok := domain.UnitByID(req.ToUnit); !ok {
		return nil, domain.NewValidationError("to_unit", domain.ErrInvalidUnit)
	}

	conversion := &entities.UnitConversion{FromUnit: req.FromUnit, ToUnit: req.ToUnit, Ratio: req.Ratio}
	if err := s.repo.UpsertConversion(ctx, conversion); err != nil {
		return nil, domain.MapDBError("save unit conversion", err)
	}
	stored, err := s.repo.GetConversion(ctx, req.FromUnit, req.ToUnit)
	if err != nil {
		return nil, domain.MapDBError("load unit conversion", err)
	}
	return stored, nil
}

// Convert expresses amount of unit from in unit to. A stored pair is used
// directly, the reverse pair through its inverse ratio.
func (s *ingredientService) Convert(ctx context.Context, amount float64, from, to int) (float64, error) {
	if from == to {
		return amount, nil
	}
	conversion, err := s.repo.GetConversion(ctx, from, to)
	if err == nil {
		return amount * conversion.Ratio, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, domain.MapDBError("load unit conversion", err)
	}

	conversion, err = s.repo.GetConversion(ctx, to, from)
	if err == nil && conversion.Ratio != 0 {
		return amount / conversion.Ratio, nil
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, domain.MapDBError("load unit conversion", err)
	}
	return 0, domain.ErrNoConversion
}

// Conversions loads every stored conversion into a table usable without
// further queries.
func (s *ingredientService) Conversions(ctx context.Context) (Conversions, error) {
	rows, err := s.repo.ListConversions(ctx)
	if err != nil {
		return nil, domain.MapDBError("list unit conversions", err)
	}
	table := make(Conversions, len(rows))
	for _, c := range rows {
		table[[2]int{c.FromUnit, c.ToUnit}] = c.Ratio
	}
	return table, nil
}
