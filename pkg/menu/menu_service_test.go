package menu

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"yummy-backend/domain"
	"yummy-backend/entities"
	"yummy-backend/internal/testutil"
	"yummy-backend/internal/utils"
	"yummy-backend/pkg/category"
	"yummy-backend/pkg/recipe"
)

type fixture struct {
	db      *gorm.DB
	recipes recipe.RecipeService
	service MenuService
	root    *entities.Category
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.DB(t)
	loader, _ := testutil.Loader(t)
	validate := utils.NewValidator()
	log := testutil.Logger(t)

	categories := category.NewCategoryService(category.NewCategoryRepository(db), loader, validate, log)
	recipes := recipe.NewRecipeService(recipe.NewRecipeRepository(db), categories, loader, validate, recipe.Strategies{
		Thumbnail: func(ctx context.Context, key string) (string, error) { return "/media/" + key, nil },
	}, log)

	root := &entities.Category{Title: "Jedla", Slug: "jedla"}
	require.NoError(t, categories.Save(context.Background(), root))

	return &fixture{
		db:      db,
		recipes: recipes,
		service: NewMenuService(NewMenuRepository(db), recipes, validate, 3, log),
		root:    root,
	}
}

func (f *fixture) recipe(t *testing.T, slug string, approved bool) *entities.Recipe {
	t.Helper()
	r := &entities.Recipe{
		Title:       slug,
		Slug:        slug,
		CategoryID:  f.root.ID,
		Preparation: "cook",
		OwnerID:     uuid.New(),
		IsApproved:  approved,
		IsPublic:    true,
	}
	require.NoError(t, f.recipes.Save(context.Background(), r))
	return r
}

func day(offset int) time.Time {
	return domain.DateOf(time.Now()).AddDate(0, 0, offset)
}

func ptrTime(t time.Time) *time.Time { return &t }

func TestActualRecommendations_Priority(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r := f.recipe(t, "kapustnica", true)

	r1 := &entities.RecipeRecommendation{RecipeID: r.ID, DayFrom: day(-2), DayTo: ptrTime(day(1))}
	r2 := &entities.RecipeRecommendation{RecipeID: r.ID, DayFrom: day(-1), DayTo: ptrTime(day(1))}
	past := &entities.RecipeRecommendation{RecipeID: r.ID, DayFrom: day(-5), DayTo: ptrTime(day(-1))}
	future := &entities.RecipeRecommendation{RecipeID: r.ID, DayFrom: day(1)}
	open := &entities.RecipeRecommendation{RecipeID: r.ID, DayFrom: day(-3)}
	for _, rec := range []*entities.RecipeRecommendation{r1, r2, past, future, open} {
		require.NoError(t, f.service.SaveRecommendation(ctx, rec))
	}

	recs, err := f.service.ActualRecommendations(ctx, time.Now(), 10)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, r2.ID, recs[0].ID)
	assert.Equal(t, r1.ID, recs[1].ID)
	assert.Equal(t, open.ID, recs[2].ID)
	require.NotNil(t, recs[0].Recipe)
	assert.Equal(t, "kapustnica", recs[0].Recipe.Slug)

	limited, err := f.service.ActualRecommendations(ctx, time.Now(), 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, r2.ID, limited[0].ID)

	views, err := f.service.RecommendationViews(ctx, recs)
	require.NoError(t, err)
	require.Len(t, views, 3)
	assert.Equal(t, "/jedla/kapustnica/"+r.ID.String()+"/", views[0].Recipe.URL)
}

func TestActualRecommendations_IgnoresPastAndHidden(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r := f.recipe(t, "guls", true)

	require.NoError(t, f.service.SaveRecommendation(ctx, &entities.RecipeRecommendation{
		RecipeID: r.ID, DayFrom: day(-3), DayTo: ptrTime(day(-1)),
	}))
	recs, err := f.service.ActualRecommendations(ctx, time.Now(), 0)
	require.NoError(t, err)
	assert.Empty(t, recs)

	require.NoError(t, f.service.SaveRecommendation(ctx, &entities.RecipeRecommendation{RecipeID: r.ID, DayFrom: day(0)}))
	r.IsPublic = false
	require.NoError(t, f.recipes.Save(ctx, r))
	recs, err = f.service.ActualRecommendations(ctx, time.Now(), 0)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestSaveRecommendation_Integrity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	approved := f.recipe(t, "rezen", true)
	draft := f.recipe(t, "draft", false)

	err := f.service.SaveRecommendation(ctx, &entities.RecipeRecommendation{
		RecipeID: approved.ID, DayFrom: day(0), DayTo: ptrTime(day(-1)),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrIntegrity))
	assert.True(t, errors.Is(err, domain.ErrInvalidDateRange))

	err = f.service.SaveRecommendation(ctx, &entities.RecipeRecommendation{RecipeID: draft.ID, DayFrom: day(0)})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrIntegrity))
	assert.True(t, errors.Is(err, domain.ErrRecipeNotApproved))

	_, err = f.service.CreateRecommendation(ctx, domain.CreateRecommendationRequest{
		RecipeID: approved.ID.String(), DayFrom: "2024-05-10", DayTo: "2024-05-01",
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidDateRange))

	_, err = f.service.CreateRecommendation(ctx, domain.CreateRecommendationRequest{RecipeID: approved.ID.String(), DayFrom: "10.5.2024"})
	assert.True(t, errors.Is(err, domain.ErrValidation))

	var count int64
	require.NoError(t, f.db.Model(&entities.RecipeRecommendation{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)

	rec, err := f.service.CreateRecommendation(ctx, domain.CreateRecommendationRequest{
		RecipeID: approved.ID.String(), DayFrom: "2024-05-01", DayTo: "2024-05-01",
	})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), rec.DayFrom)
}

func TestIsEvenWeek(t *testing.T) {
	// 2024-01-08 is a Monday of ISO week 2
	assert.True(t, IsEvenWeek(time.Date(2024, 1, 8, 12, 0, 0, 0, time.UTC)))
	assert.False(t, IsEvenWeek(time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)))
	// 2021-01-01 still belongs to ISO week 53 of 2020
	assert.False(t, IsEvenWeek(time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestDayMenu(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	today := time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC)

	soup := f.recipe(t, "fazulovica", true)
	meal := f.recipe(t, "svieckova", true)
	photo := &entities.Photo{OwnerID: meal.OwnerID, StorageKey: "svieckova.jpg"}
	require.NoError(t, f.db.Create(photo).Error)
	_, err := f.recipes.AttachPhoto(ctx, meal.ID, domain.AttachPhotoRequest{PhotoID: photo.ID.String()})
	require.NoError(t, err)

	_, err = f.service.SetWeekMenu(ctx, domain.SetWeekMenuRequest{Day: 1, EvenWeek: true, SoupID: soup.ID.String()})
	require.NoError(t, err)
	stored, err := f.service.SetWeekMenu(ctx, domain.SetWeekMenuRequest{Day: 1, EvenWeek: true, SoupID: soup.ID.String(), MealID: meal.ID.String()})
	require.NoError(t, err)
	require.NotNil(t, stored.MealID)
	_, err = f.service.SetWeekMenu(ctx, domain.SetWeekMenuRequest{Day: 2, EvenWeek: false, MealID: meal.ID.String()})
	require.NoError(t, err)

	var count int64
	require.NoError(t, f.db.Model(&entities.WeekMenu{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)

	menus, err := f.service.ActualWeekMenu(ctx, today)
	require.NoError(t, err)
	assert.Len(t, menus, 1)
	assert.Contains(t, menus, 1)

	doc, err := f.service.DayMenu(ctx, today)
	require.NoError(t, err)
	assert.Len(t, doc, 7)
	assert.Equal(t, domain.MenuDish{
		Title: "fazulovica",
		Link:  "/jedla/fazulovica/" + soup.ID.String() + "/",
	}, doc[1]["soup"])
	assert.Equal(t, "/media/svieckova.jpg", doc[1]["meal"].Image)
	assert.Equal(t, domain.MenuDish{}, doc[1]["dessert"])
	assert.Empty(t, doc[2])

	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"dessert":{}`)
	assert.Contains(t, string(raw), `"7":{}`)
}

func TestSetWeekMenu_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.service.SetWeekMenu(ctx, domain.SetWeekMenuRequest{Day: 8})
	assert.True(t, errors.Is(err, domain.ErrValidation))

	_, err = f.service.SetWeekMenu(ctx, domain.SetWeekMenuRequest{Day: 3, SoupID: uuid.NewString()})
	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.True(t, errors.Is(err, domain.ErrRecipeNotFound))
}
