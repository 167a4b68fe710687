package shopping

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yummy-backend/domain"
	"yummy-backend/entities"
	"yummy-backend/internal/testutil"
	"yummy-backend/internal/utils"
	"yummy-backend/pkg/category"
	"yummy-backend/pkg/ingredient"
	"yummy-backend/pkg/recipe"
)

type fixture struct {
	recipes     recipe.RecipeService
	ingredients ingredient.IngredientService
	service     ShoppingService
	root        *entities.Category
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.DB(t)
	loader, _ := testutil.Loader(t)
	validate := utils.NewValidator()
	log := testutil.Logger(t)

	categories := category.NewCategoryService(category.NewCategoryRepository(db), loader, validate, log)
	recipes := recipe.NewRecipeService(recipe.NewRecipeRepository(db), categories, loader, validate, recipe.Strategies{}, log)
	ingredients := ingredient.NewIngredientService(ingredient.NewIngredientRepository(db), loader, validate, log)

	root := &entities.Category{Title: "Koláče", Slug: "kolace"}
	require.NoError(t, categories.Save(context.Background(), root))

	return &fixture{
		recipes:     recipes,
		ingredients: ingredients,
		service:     NewShoppingService(NewShoppingRepository(db), recipes, ingredients, validate, log),
		root:        root,
	}
}

func (f *fixture) recipe(t *testing.T, slug string, rows ...domain.AddIngredientRequest) *entities.Recipe {
	t.Helper()
	ctx := context.Background()
	r := &entities.Recipe{Title: slug, Slug: slug, CategoryID: f.root.ID, Preparation: "bake", OwnerID: uuid.New()}
	require.NoError(t, f.recipes.Save(ctx, r))
	for _, row := range rows {
		_, err := f.recipes.AddIngredient(ctx, r.ID, row)
		require.NoError(t, err)
	}
	return r
}

func (f *fixture) ingredient(t *testing.T, name string) *entities.Ingredient {
	t.Helper()
	i, err := f.ingredients.Create(context.Background(), domain.CreateIngredientRequest{Name: name})
	require.NoError(t, err)
	return i
}

func row(i *entities.Ingredient, amount float64, unit int) domain.AddIngredientRequest {
	return domain.AddIngredientRequest{IngredientID: i.ID.String(), Amount: testutil.PtrFloat(amount), Unit: testutil.PtrInt(unit)}
}

func TestAddRecipe_MergesItems(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := uuid.New()

	_, err := f.ingredients.SaveConversion(ctx, domain.SaveConversionRequest{FromUnit: domain.UnitDekagram, ToUnit: domain.UnitGram, Ratio: 10})
	require.NoError(t, err)

	flour := f.ingredient(t, "Múka")
	sugar := f.ingredient(t, "Cukor")
	milk := f.ingredient(t, "Mlieko")
	eggs := f.ingredient(t, "Vajcia")

	buchty := f.recipe(t, "buchty",
		row(flour, 500, domain.UnitGram),
		row(sugar, 10, domain.UnitDekagram),
		row(milk, 2, domain.UnitDeciliter),
	)
	lievance := f.recipe(t, "lievance",
		row(flour, 25, domain.UnitDekagram),
		row(sugar, 50, domain.UnitGram),
		row(milk, 1, domain.UnitCup),
		row(eggs, 2, domain.UnitPiece),
	)

	list, err := f.service.Create(ctx, owner, domain.CreateShoppingListRequest{Title: "Sobota"})
	require.NoError(t, err)

	items, err := f.service.AddRecipe(ctx, owner, list.ID, buchty.ID)
	require.NoError(t, err)
	assert.Len(t, items, 3)

	_, err = f.service.AddRecipe(ctx, owner, list.ID, lievance.ID)
	require.NoError(t, err)

	view, err := f.service.Get(ctx, owner, list.ID)
	require.NoError(t, err)
	require.Len(t, view.Items, 4)

	byName := map[string]domain.ShoppingItem{}
	for _, i := range view.Items {
		byName[i.Name] = i
	}
	assert.InDelta(t, 750, *byName["Múka"].Amount, 1e-9)
	assert.Equal(t, "g", byName["Múka"].Unit)
	assert.InDelta(t, 15, *byName["Cukor"].Amount, 1e-9)
	assert.Equal(t, "dkg", byName["Cukor"].Unit)
	assert.InDelta(t, 2, *byName["Mlieko"].Amount, 1e-9)
	assert.Equal(t, "+ 1 cup", byName["Mlieko"].Note)
	assert.InDelta(t, 2, *byName["Vajcia"].Amount, 1e-9)
	assert.Equal(t, "pc", byName["Vajcia"].Unit)
}

func TestAddRecipe_OwnershipAndMissing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := uuid.New()
	r := f.recipe(t, "babovka")

	list, err := f.service.Create(ctx, owner, domain.CreateShoppingListRequest{Title: "Nedeľa"})
	require.NoError(t, err)

	_, err = f.service.AddRecipe(ctx, uuid.New(), list.ID, r.ID)
	assert.True(t, errors.Is(err, domain.ErrShoppingListNotFound))
	_, err = f.service.Get(ctx, uuid.New(), list.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = f.service.AddRecipe(ctx, owner, list.ID, uuid.New())
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = f.service.Create(ctx, owner, domain.CreateShoppingListRequest{})
	assert.True(t, errors.Is(err, domain.ErrValidation))
}
