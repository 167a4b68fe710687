package menu

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"yummy-backend/domain"
	"yummy-backend/entities"
	"yummy-backend/pkg/logger"
	"yummy-backend/pkg/recipe"
)

type (
	MenuService interface {
		CreateRecommendation(ctx context.Context, req domain.CreateRecommendationRequest) (*entities.RecipeRecommendation, error)
		SaveRecommendation(ctx context.Context, rec *entities.RecipeRecommendation) error
		ActualRecommendations(ctx context.Context, today time.Time, limit int) ([]*entities.RecipeRecommendation, error)
		RecommendationViews(ctx context.Context, recs []*entities.RecipeRecommendation) ([]domain.Recommendation, error)

		SetWeekMenu(ctx context.Context, req domain.SetWeekMenuRequest) (*entities.WeekMenu, error)
		ActualWeekMenu(ctx context.Context, today time.Time) (map[int]*entities.WeekMenu, error)
		DayMenu(ctx context.Context, today time.Time) (domain.DayMenu, error)
	}

	menuService struct {
		repo         MenuRepository
		recipes      recipe.RecipeService
		validate     *validator.Validate
		defaultCount int
		log          *logger.Logger
	}
)

func NewMenuService(repo MenuRepository, recipes recipe.RecipeService, validate *validator.Validate, defaultCount int, log *logger.Logger) MenuService {
	if defaultCount < 1 {
		defaultCount = 3
	}
	return &menuService{
		repo:         repo,
		recipes:      recipes,
		validate:     validate,
		defaultCount: defaultCount,
		log:          log.With("service", "MenuService"),
	}
}

func (s *menuService) CreateRecommendation(ctx context.Context, req domain.CreateRecommendationRequest) (*entities.RecipeRecommendation, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, domain.NewValidationError("", err)
	}
	recipeID, err := uuid.Parse(req.RecipeID)
	if err != nil {
		return nil, domain.NewValidationError("recipe_id", domain.ErrParseUUID)
	}
	dayFrom, err := time.Parse(time.DateOnly, req.DayFrom)
	if err != nil {
		return nil, domain.NewValidationError("day_from", err)
	}

	rec := &entities.RecipeRecommendation{RecipeID: recipeID, DayFrom: dayFrom}
	if req.DayTo != "" {
		dayTo, err := time.Parse(time.DateOnly, req.DayTo)
		if err != nil {
			return nil, domain.NewValidationError("day_to", err)
		}
		rec.DayTo = &dayTo
	}

	if err := s.SaveRecommendation(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// SaveRecommendation refuses a window that ends before it starts and a recipe
// that is not approved and public. Nothing is written in either case.
func (s *menuService) SaveRecommendation(ctx context.Context, rec *entities.RecipeRecommendation) error {
	rec.DayFrom = domain.DateOf(rec.DayFrom)
	if rec.DayTo != nil {
		dayTo := domain.DateOf(*rec.DayTo)
		rec.DayTo = &dayTo
		if dayTo.Before(rec.DayFrom) {
			return domain.NewIntegrityError("save recommendation", domain.ErrInvalidDateRange)
		}
	}

	r, err := s.recipes.GetByID(ctx, rec.RecipeID)
	if err != nil {
		return err
	}
	if !r.IsApproved || !r.IsPublic {
		return domain.NewIntegrityError("save recommendation", domain.ErrRecipeNotApproved)
	}

	if err := s.repo.CreateRecommendation(ctx, rec); err != nil {
		return domain.MapDBError("save recommendation", err)
	}
	rec.Recipe = r
	return nil
}

// ActualRecommendations lists recommendations valid on today, the one that
// started last first. A non-positive limit falls back to the configured count.
func (s *menuService) ActualRecommendations(ctx context.Context, today time.Time, limit int) ([]*entities.RecipeRecommendation, error) {
	if limit < 1 {
		limit = s.defaultCount
	}
	recs, err := s.repo.ActualRecommendations(ctx, domain.DateOf(today), limit)
	if err != nil {
		return nil, domain.MapDBError("list recommendations", err)
	}
	return recs, nil
}

func (s *menuService) RecommendationViews(ctx context.Context, recs []*entities.RecipeRecommendation) ([]domain.Recommendation, error) {
	views := make([]domain.Recommendation, 0, len(recs))
	for _, rec := range recs {
		if rec.Recipe == nil {
			continue
		}
		summary, err := s.recipes.Summary(ctx, rec.Recipe)
		if err != nil {
			return nil, err
		}
		views = append(views, domain.Recommendation{
			ID:      rec.ID.String(),
			DayFrom: rec.DayFrom,
			DayTo:   rec.DayTo,
			Recipe:  summary,
		})
	}
	return views, nil
}

func (s *menuService) SetWeekMenu(ctx context.Context, req domain.SetWeekMenuRequest) (*entities.WeekMenu, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, domain.NewValidationError("", err)
	}

	menu := &entities.WeekMenu{Day: req.Day, EvenWeek: req.EvenWeek}
	courses := []struct {
		field string
		raw   string
		dest  **uuid.UUID
	}{
		{"soup_id", req.SoupID, &menu.SoupID},
		{"meal_id", req.MealID, &menu.MealID},
		{"dessert_id", req.DessertID, &menu.DessertID},
	}
	for _, c := range courses {
		if c.raw == "" {
			continue
		}
		id, err := uuid.Parse(c.raw)
		if err != nil {
			return nil, domain.NewValidationError(c.field, domain.ErrParseUUID)
		}
		if _, err := s.recipes.GetByID(ctx, id); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.NewValidationError(c.field, domain.ErrRecipeNotFound)
			}
			return nil, err
		}
		*c.dest = &id
	}

	if err := s.repo.UpsertWeekMenu(ctx, menu); err != nil {
		return nil, domain.MapDBError("save week menu", err)
	}
	stored, err := s.repo.GetWeekMenu(ctx, req.Day, req.EvenWeek)
	if err != nil {
		return nil, domain.MapDBError("load week menu", err)
	}
	return stored, nil
}

// ActualWeekMenu returns the entries for the parity of the ISO week of today,
// keyed by weekday.
func (s *menuService) ActualWeekMenu(ctx context.Context, today time.Time) (map[int]*entities.WeekMenu, error) {
	menus, err := s.repo.GetWeekMenus(ctx, IsEvenWeek(today))
	if err != nil {
		return nil, domain.MapDBError("list week menu", err)
	}
	byDay := make(map[int]*entities.WeekMenu, len(menus))
	for _, m := range menus {
		byDay[m.Day] = m
	}
	return byDay, nil
}

// DayMenu builds the menu document for the current week: every weekday 1..7,
// each course with its title, link and top photo.
func (s *menuService) DayMenu(ctx context.Context, today time.Time) (domain.DayMenu, error) {
	menus, err := s.ActualWeekMenu(ctx, today)
	if err != nil {
		return nil, err
	}

	doc := make(domain.DayMenu, len(domain.WeekDays))
	for _, day := range domain.WeekDays {
		doc[day.Value] = map[string]domain.MenuDish{}
	}
	for day, m := range menus {
		if _, ok := doc[day]; !ok {
			continue
		}
		courses := map[string]*uuid.UUID{"soup": m.SoupID, "meal": m.MealID, "dessert": m.DessertID}
		for _, course := range domain.MenuCourses {
			dish, err := s.dish(ctx, courses[course])
			if err != nil {
				return nil, err
			}
			doc[day][course] = dish
		}
	}
	return doc, nil
}

func (s *menuService) dish(ctx context.Context, id *uuid.UUID) (domain.MenuDish, error) {
	if id == nil {
		return domain.MenuDish{}, nil
	}
	r, err := s.recipes.GetByID(ctx, *id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.log.Warn("week menu points to a missing recipe", "recipe_id", *id)
			return domain.MenuDish{}, nil
		}
		return domain.MenuDish{}, err
	}
	link, err := s.recipes.URL(ctx, r)
	if err != nil {
		return domain.MenuDish{}, err
	}
	dish := domain.MenuDish{Title: r.Title, Link: link}
	top, err := s.recipes.TopPhoto(ctx, r)
	if err != nil {
		return domain.MenuDish{}, err
	}
	if top != nil {
		dish.Image = top.ImageURL
	}
	return dish, nil
}

// IsEvenWeek reports whether t falls in an even ISO week.
func IsEvenWeek(t time.Time) bool {
	_, week := t.ISOWeek()
	return week%2 == 0
}
