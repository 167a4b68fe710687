package recipe

import (
	"context"
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
	"yummy-backend/pkg/cache"
	"yummy-backend/pkg/category"
)

type fixture struct {
	db         *gorm.DB
	mem        *cache.MemoryCache
	categories category.CategoryService
	service    RecipeService
	owner      uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.DB(t)
	loader, mem := testutil.Loader(t)
	validate := utils.NewValidator()
	log := testutil.Logger(t)

	categories := category.NewCategoryService(category.NewCategoryRepository(db), loader, validate, log)
	service := NewRecipeService(NewRecipeRepository(db), categories, loader, validate, Strategies{
		Thumbnail: func(ctx context.Context, key string) (string, error) {
			return "https://img.example.com/" + key, nil
		},
	}, log)

	return &fixture{db: db, mem: mem, categories: categories, service: service, owner: uuid.New()}
}

func (f *fixture) category(t *testing.T, slug string, parent *entities.Category) *entities.Category {
	t.Helper()
	c := &entities.Category{Title: slug, Slug: slug}
	if parent != nil {
		c.ParentID = &parent.ID
	}
	require.NoError(t, f.categories.Save(context.Background(), c))
	return c
}

func (f *fixture) recipe(t *testing.T, slug string, c *entities.Category) *entities.Recipe {
	t.Helper()
	r := &entities.Recipe{
		Title:       slug,
		Slug:        slug,
		CategoryID:  c.ID,
		Preparation: "mix and bake",
		OwnerID:     f.owner,
		IsApproved:  true,
		IsPublic:    true,
	}
	require.NoError(t, f.service.Save(context.Background(), r))
	return r
}

func (f *fixture) photo(t *testing.T, owner uuid.UUID, key string) *entities.Photo {
	t.Helper()
	p := &entities.Photo{OwnerID: owner, Title: key, StorageKey: key}
	require.NoError(t, f.db.Create(p).Error)
	return p
}

func (f *fixture) attach(t *testing.T, r *entities.Recipe, p *entities.Photo) *entities.RecipePhoto {
	t.Helper()
	rp, err := f.service.AttachPhoto(context.Background(), r.ID, domain.AttachPhotoRequest{PhotoID: p.ID.String()})
	require.NoError(t, err)
	return rp
}

func (f *fixture) ingredient(t *testing.T, slug string) *entities.Ingredient {
	t.Helper()
	i := &entities.Ingredient{Name: slug, Slug: slug}
	require.NoError(t, f.db.Create(i).Error)
	return i
}

func (f *fixture) orderOf(t *testing.T, r *entities.Recipe, p *entities.Photo) int {
	t.Helper()
	var rp entities.RecipePhoto
	require.NoError(t, f.db.Where("recipe_id = ? AND photo_id = ?", r.ID, p.ID).First(&rp).Error)
	return rp.Order
}

func photoIDs(photos []domain.RecipePhoto) []string {
	out := make([]string, 0, len(photos))
	for _, p := range photos {
		out = append(out, p.PhotoID)
	}
	return out
}

func TestAttachPhoto_OwnerPriority(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	r := f.recipe(t, "halusky", f.category(t, "jedla", nil))
	p1 := f.photo(t, uuid.New(), "p1.jpg")
	p2 := f.photo(t, f.owner, "p2.jpg")

	assert.Equal(t, 1, f.attach(t, r, p1).Order)
	assert.Equal(t, 1, f.attach(t, r, p2).Order)
	assert.Equal(t, 1+10, f.orderOf(t, r, p1))

	top, err := f.service.TopPhoto(ctx, r)
	require.NoError(t, err)
	require.NotNil(t, top)
	assert.Equal(t, p2.ID.String(), top.PhotoID)
	assert.True(t, top.IsOwner)
	assert.Equal(t, "https://img.example.com/p2.jpg", top.ImageURL)
}

func TestAttachPhoto_CascadingBumps(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	r := f.recipe(t, "guls", f.category(t, "jedla", nil))
	stranger := uuid.New()
	n1 := f.photo(t, stranger, "n1")
	n2 := f.photo(t, stranger, "n2")
	o1 := f.photo(t, f.owner, "o1")
	o2 := f.photo(t, f.owner, "o2")
	o3 := f.photo(t, f.owner, "o3")
	o4 := f.photo(t, f.owner, "o4")

	f.attach(t, r, n1)
	f.attach(t, r, o1)
	f.attach(t, r, o2)
	assert.Equal(t, 4, f.attach(t, r, n2).Order)
	assert.Equal(t, 3, f.attach(t, r, o3).Order)
	assert.Equal(t, 4, f.attach(t, r, o4).Order)

	assert.Equal(t, 14, f.orderOf(t, r, n2))
	assert.Equal(t, 15, f.orderOf(t, r, n1))

	photos, err := f.service.OrderedPhotos(ctx, r)
	require.NoError(t, err)
	assert.Equal(t, []string{
		o1.ID.String(), o2.ID.String(), o3.ID.String(), o4.ID.String(), n2.ID.String(), n1.ID.String(),
	}, photoIDs(photos))
}

func TestAttachPhoto_Conflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	r := f.recipe(t, "pirohy", f.category(t, "jedla", nil))
	p1 := f.photo(t, f.owner, "p1")
	p2 := f.photo(t, f.owner, "p2")
	f.attach(t, r, p1)

	_, err := f.service.AttachPhoto(ctx, r.ID, domain.AttachPhotoRequest{PhotoID: p1.ID.String()})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrIntegrity))
	assert.True(t, errors.Is(err, domain.ErrPhotoAttached))

	order := 1
	_, err = f.service.AttachPhoto(ctx, r.ID, domain.AttachPhotoRequest{PhotoID: p2.ID.String(), Order: &order})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrIntegrity))
	assert.True(t, errors.Is(err, domain.ErrDuplicateOrder))

	_, err = f.service.AttachPhoto(ctx, r.ID, domain.AttachPhotoRequest{PhotoID: uuid.NewString()})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = f.service.AttachPhoto(ctx, uuid.New(), domain.AttachPhotoRequest{PhotoID: p2.ID.String()})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrRecipeNotFound))

	var count int64
	require.NoError(t, f.db.Model(&entities.RecipePhoto{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestOrderedPhotos_CacheInvalidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	r := f.recipe(t, "lokse", f.category(t, "jedla", nil))
	p1 := f.photo(t, f.owner, "p1")
	p2 := f.photo(t, uuid.New(), "p2")
	f.attach(t, r, p1)

	photos, err := f.service.OrderedPhotos(ctx, r)
	require.NoError(t, err)
	assert.Len(t, photos, 1)
	assert.True(t, f.mem.Has(cache.RecipePhotosKey(r.ID)))

	f.attach(t, r, p2)
	assert.False(t, f.mem.Has(cache.RecipePhotosKey(r.ID)))
	photos, err = f.service.OrderedPhotos(ctx, r)
	require.NoError(t, err)
	assert.Equal(t, []string{p1.ID.String(), p2.ID.String()}, photoIDs(photos))

	require.NoError(t, f.service.SetPhotoVisibility(ctx, r.ID, p1.ID, false))
	photos, err = f.service.OrderedPhotos(ctx, r)
	require.NoError(t, err)
	assert.Equal(t, []string{p2.ID.String()}, photoIDs(photos))

	require.NoError(t, f.service.DetachPhoto(ctx, r.ID, p2.ID))
	photos, err = f.service.OrderedPhotos(ctx, r)
	require.NoError(t, err)
	assert.Empty(t, photos)

	err = f.service.DetachPhoto(ctx, r.ID, p2.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestAttachPhoto_HiddenOnCreate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	r := f.recipe(t, "knedle", f.category(t, "jedla", nil))
	p := f.photo(t, f.owner, "p")
	hidden := false
	rp, err := f.service.AttachPhoto(ctx, r.ID, domain.AttachPhotoRequest{PhotoID: p.ID.String(), IsVisible: &hidden})
	require.NoError(t, err)
	assert.False(t, rp.IsVisible)

	photos, err := f.service.OrderedPhotos(ctx, r)
	require.NoError(t, err)
	assert.Empty(t, photos)
}

func TestTopPhoto_FallsBackToCategory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	catPhoto := f.photo(t, uuid.New(), "category.jpg")
	root := &entities.Category{Title: "Dezerty", Slug: "dezerty", PhotoID: &catPhoto.ID}
	require.NoError(t, f.categories.Save(ctx, root))
	leaf := f.category(t, "kolace", root)

	r := f.recipe(t, "buchty", leaf)
	top, err := f.service.TopPhoto(ctx, r)
	require.NoError(t, err)
	require.NotNil(t, top)
	assert.Equal(t, catPhoto.ID.String(), top.PhotoID)
	assert.False(t, top.IsOwner)

	bare := f.recipe(t, "chlieb", f.category(t, "pecivo", nil))
	top, err = f.service.TopPhoto(ctx, bare)
	require.NoError(t, err)
	assert.Nil(t, top)
}

func TestAddIngredient_AppendPolicy(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	r := f.recipe(t, "palacinky", f.category(t, "dezerty", nil))
	flour := f.ingredient(t, "muka")
	milk := f.ingredient(t, "mlieko")
	eggs := f.ingredient(t, "vajcia")
	jam := f.ingredient(t, "dzem")

	group, err := f.service.AddIngredientGroup(ctx, r.ID, domain.AddIngredientGroupRequest{Title: "Plnka"})
	require.NoError(t, err)
	assert.Equal(t, 1, group.Order)
	empty, err := f.service.AddIngredientGroup(ctx, r.ID, domain.AddIngredientGroupRequest{Title: "Ozdoba"})
	require.NoError(t, err)
	assert.Equal(t, 2, empty.Order)

	unit := domain.UnitGram
	i1, err := f.service.AddIngredient(ctx, r.ID, domain.AddIngredientRequest{IngredientID: jam.ID.String(), GroupID: group.ID.String()})
	require.NoError(t, err)
	i2, err := f.service.AddIngredient(ctx, r.ID, domain.AddIngredientRequest{IngredientID: flour.ID.String(), Amount: testutil.PtrFloat(250), Unit: &unit})
	require.NoError(t, err)
	i3, err := f.service.AddIngredient(ctx, r.ID, domain.AddIngredientRequest{IngredientID: milk.ID.String()})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, []int{i1.Order, i2.Order, i3.Order})

	buckets, err := f.service.GroupedIngredients(ctx, r)
	require.NoError(t, err)
	require.Len(t, buckets, 2)
	assert.Empty(t, buckets[0].GroupID)
	assert.Equal(t, []string{"muka", "mlieko"}, []string{buckets[0].Items[0].Name, buckets[0].Items[1].Name})
	assert.Equal(t, "g", buckets[0].Items[0].Unit)
	assert.Equal(t, group.ID.String(), buckets[1].GroupID)
	assert.Equal(t, "dzem", buckets[1].Items[0].Name)
	assert.True(t, f.mem.Has(cache.RecipeIngredientsKey(r.ID)))

	order := 2
	_, err = f.service.AddIngredient(ctx, r.ID, domain.AddIngredientRequest{IngredientID: eggs.ID.String(), Order: &order})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrIntegrity))
	assert.True(t, errors.Is(err, domain.ErrDuplicateOrder))
	assert.True(t, f.mem.Has(cache.RecipeIngredientsKey(r.ID)), "failed writes keep the cache")

	_, err = f.service.AddIngredient(ctx, r.ID, domain.AddIngredientRequest{IngredientID: eggs.ID.String()})
	require.NoError(t, err)
	assert.False(t, f.mem.Has(cache.RecipeIngredientsKey(r.ID)))
}

func TestAddIngredient_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c := f.category(t, "jedla", nil)
	r := f.recipe(t, "a", c)
	other := f.recipe(t, "b", c)
	salt := f.ingredient(t, "sol")
	foreign, err := f.service.AddIngredientGroup(ctx, other.ID, domain.AddIngredientGroupRequest{Title: "x"})
	require.NoError(t, err)

	badUnit := 42
	_, err = f.service.AddIngredient(ctx, r.ID, domain.AddIngredientRequest{IngredientID: salt.ID.String(), Unit: &badUnit})
	assert.True(t, errors.Is(err, domain.ErrInvalidUnit))

	_, err = f.service.AddIngredient(ctx, r.ID, domain.AddIngredientRequest{IngredientID: salt.ID.String(), GroupID: foreign.ID.String()})
	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.True(t, errors.Is(err, domain.ErrGroupOfOtherRecipe))

	_, err = f.service.AddIngredient(ctx, r.ID, domain.AddIngredientRequest{IngredientID: uuid.NewString()})
	assert.True(t, errors.Is(err, domain.ErrIngredientNotFound))

	_, err = f.service.AddIngredient(ctx, uuid.New(), domain.AddIngredientRequest{IngredientID: salt.ID.String()})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestGroupIngredients_OrphanRowsAreLoose(t *testing.T) {
	missing := uuid.New()
	items := []*entities.IngredientInRecipe{
		{IngredientID: uuid.New(), GroupID: &missing, Order: 1},
	}
	buckets := groupIngredients(nil, items)
	require.Len(t, buckets, 1)
	assert.Empty(t, buckets[0].GroupID)
}

func TestSave_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.category(t, "jedla", nil)

	r := &entities.Recipe{Title: "x", Slug: "x", CategoryID: c.ID, OwnerID: f.owner, Price: 9}
	err := f.service.Save(ctx, r)
	assert.True(t, errors.Is(err, domain.ErrInvalidPrice))

	r = &entities.Recipe{Title: "x", Slug: "x", CategoryID: c.ID, OwnerID: f.owner, Difficulty: 2}
	err = f.service.Save(ctx, r)
	assert.True(t, errors.Is(err, domain.ErrInvalidDifficulty))

	r = &entities.Recipe{Title: "x", Slug: "x", CategoryID: uuid.New(), OwnerID: f.owner}
	err = f.service.Save(ctx, r)
	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.True(t, errors.Is(err, domain.ErrCategoryNotFound))

	f.recipe(t, "taken", c)
	_, err = f.service.Create(ctx, domain.CreateRecipeRequest{
		Title: "Taken", Slug: "taken", CategoryID: c.ID.String(), Preparation: "p", OwnerID: f.owner.String(),
	})
	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.True(t, errors.Is(err, domain.ErrDuplicateSlug))

	dup := &entities.Recipe{Title: "Taken", Slug: "taken", CategoryID: c.ID, OwnerID: f.owner}
	err = f.service.Save(ctx, dup)
	assert.True(t, errors.Is(err, domain.ErrIntegrity))
	assert.Equal(t, uuid.Nil, dup.ID)
}

func TestSave_DefaultsAndTimestamps(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.category(t, "jedla", nil)

	cuisine := &entities.Cuisine{Name: "Slovak", Slug: "slovak"}
	require.NoError(t, f.db.Create(cuisine).Error)

	r, err := f.service.Create(ctx, domain.CreateRecipeRequest{
		Title:       "Bryndzove halusky",
		Slug:        "bryndzove-halusky",
		CategoryID:  c.ID.String(),
		Preparation: "boil",
		OwnerID:     f.owner.String(),
		CuisineIDs:  []string{cuisine.ID.String()},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, r.Price)
	assert.Equal(t, 3, r.Difficulty)
	assert.False(t, r.CreatedAt.IsZero())

	stored, err := f.service.GetByID(ctx, r.ID)
	require.NoError(t, err)
	require.Len(t, stored.Cuisines, 1)
	assert.Equal(t, "slovak", stored.Cuisines[0].Slug)

	created := stored.CreatedAt
	time.Sleep(5 * time.Millisecond)
	stored.Title = "Halusky"
	stored.Cuisines = nil
	require.NoError(t, f.service.Save(ctx, stored))

	again, err := f.service.GetByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "Halusky", again.Title)
	assert.True(t, again.CreatedAt.Equal(created))
	assert.True(t, again.UpdatedAt.After(created))
	assert.Len(t, again.Cuisines, 1)
}

func TestSave_InvalidatesCategoryCounts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	root := f.category(t, "jedla", nil)
	leaf := f.category(t, "polievky", root)
	other := f.category(t, "dezerty", nil)

	count, err := f.categories.RecipeCount(ctx, root)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)

	r := f.recipe(t, "kapustnica", leaf)
	count, err = f.categories.RecipeCount(ctx, root)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	_, err = f.categories.RecipeCount(ctx, other)
	require.NoError(t, err)
	r.CategoryID = other.ID
	require.NoError(t, f.service.Save(ctx, r))

	count, err = f.categories.RecipeCount(ctx, root)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
	count, err = f.categories.RecipeCount(ctx, other)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestListByCategory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	root := f.category(t, "jedla", nil)
	leaf := f.category(t, "polievky", root)
	elsewhere := f.category(t, "napoje", nil)

	b := f.recipe(t, "b-guls", root)
	a := f.recipe(t, "a-kapustnica", leaf)
	f.recipe(t, "caj", elsewhere)
	hidden := f.recipe(t, "c-tajne", leaf)
	hidden.IsPublic = false
	require.NoError(t, f.service.Save(ctx, hidden))

	recipes, count, err := f.service.ListByCategory(ctx, "jedla", domain.OrderBySlug, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
	require.Len(t, recipes, 2)
	assert.Equal(t, a.ID.String(), recipes[0].ID)
	assert.Equal(t, "/jedla/polievky/a-kapustnica/"+a.ID.String()+"/", recipes[0].URL)
	assert.Equal(t, b.ID.String(), recipes[1].ID)

	page2, count, err := f.service.ListByCategory(ctx, "jedla", domain.OrderBySlug, 2, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
	require.Len(t, page2, 1)
	assert.Equal(t, b.ID.String(), page2[0].ID)

	require.NoError(t, f.db.Create(&entities.CookBookRecipe{CookBookID: uuid.New(), RecipeID: b.ID, Added: time.Now()}).Error)
	rated, _, err := f.service.ListByCategory(ctx, "jedla", domain.OrderByRating, 1, 10)
	require.NoError(t, err)
	require.Len(t, rated, 2)
	assert.Equal(t, b.ID.String(), rated[0].ID)

	_, _, err = f.service.ListByCategory(ctx, "jedla", "random", 1, 10)
	assert.True(t, errors.Is(err, domain.ErrUnknownOrdering))

	_, _, err = f.service.ListByCategory(ctx, "missing", "", 1, 10)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	mine, count, err := f.service.ListByOwner(ctx, f.owner, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 4, count)
	assert.Len(t, mine, 4)
}

func TestDetail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	r := f.recipe(t, "segedin", f.category(t, "jedla", nil))
	f.attach(t, r, f.photo(t, f.owner, "segedin.jpg"))
	_, err := f.service.AddIngredient(ctx, r.ID, domain.AddIngredientRequest{IngredientID: f.ingredient(t, "kapusta").ID.String()})
	require.NoError(t, err)

	detail, err := f.service.Detail(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "jedla", detail.CategoryPath)
	require.NotNil(t, detail.TopPhoto)
	assert.Len(t, detail.Photos, 1)
	require.Len(t, detail.Ingredients, 1)
	assert.Equal(t, "kapusta", detail.Ingredients[0].Items[0].Name)

	_, err = f.service.Detail(ctx, uuid.New())
	assert.True(t, errors.Is(err, domain.ErrRecipeNotFound))
}
