package ingredient

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yummy-backend/domain"
	"yummy-backend/internal/testutil"
	"yummy-backend/internal/utils"
	"yummy-backend/pkg/cache"
)

func newService(t *testing.T) (IngredientService, *cache.MemoryCache) {
	t.Helper()
	db := testutil.DB(t)
	loader, mem := testutil.Loader(t)
	return NewIngredientService(NewIngredientRepository(db), loader, utils.NewValidator(), testutil.Logger(t)), mem
}

func TestCreate_DerivesSlug(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()

	i, err := s.Create(ctx, domain.CreateIngredientRequest{Name: "Hladká múka", DefaultUnit: testutil.PtrInt(domain.UnitGram)})
	require.NoError(t, err)
	assert.Equal(t, "hladka-muka", i.Slug)
	assert.True(t, i.IsApproved)

	_, err = s.Create(ctx, domain.CreateIngredientRequest{Name: "Hladka muka"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrIntegrity))

	_, err = s.Create(ctx, domain.CreateIngredientRequest{Name: "Soľ", DefaultUnit: testutil.PtrInt(42)})
	assert.True(t, errors.Is(err, domain.ErrInvalidUnit))

	_, err = s.Create(ctx, domain.CreateIngredientRequest{Name: "Cukor", GroupID: uuid.NewString()})
	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestApprovedNames_CachedAndInvalidated(t *testing.T) {
	s, mem := newService(t)
	ctx := context.Background()

	_, err := s.Create(ctx, domain.CreateIngredientRequest{Name: "Vajce"})
	require.NoError(t, err)
	_, err = s.Create(ctx, domain.CreateIngredientRequest{Name: "Bazalka", IsApproved: new(bool)})
	require.NoError(t, err)

	names, err := s.ApprovedNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Vajce"}, names)
	assert.True(t, mem.Has(cache.IngredientNamesKey))

	_, err = s.Create(ctx, domain.CreateIngredientRequest{Name: "Cesnak"})
	require.NoError(t, err)
	assert.False(t, mem.Has(cache.IngredientNamesKey))

	names, err = s.ApprovedNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Cesnak", "Vajce"}, names)
}

func TestConvert(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()

	_, err := s.SaveConversion(ctx, domain.SaveConversionRequest{FromUnit: domain.UnitKilogram, ToUnit: domain.UnitGram, Ratio: 1000})
	require.NoError(t, err)
	stored, err := s.SaveConversion(ctx, domain.SaveConversionRequest{FromUnit: domain.UnitDekagram, ToUnit: domain.UnitGram, Ratio: 10})
	require.NoError(t, err)
	assert.Equal(t, 10.0, stored.Ratio)

	tests := []struct {
		name     string
		amount   float64
		from, to int
		want     float64
		err      error
	}{
		{"same unit", 3, domain.UnitGram, domain.UnitGram, 3, nil},
		{"direct", 0.5, domain.UnitKilogram, domain.UnitGram, 500, nil},
		{"inverse", 250, domain.UnitGram, domain.UnitKilogram, 0.25, nil},
		{"dekagram", 12, domain.UnitDekagram, domain.UnitGram, 120, nil},
		{"unknown pair", 1, domain.UnitLiter, domain.UnitGram, 0, domain.ErrNoConversion},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Convert(ctx, tt.amount, tt.from, tt.to)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}

	_, err = s.SaveConversion(ctx, domain.SaveConversionRequest{FromUnit: domain.UnitKilogram, ToUnit: domain.UnitGram, Ratio: 1001})
	require.NoError(t, err)
	got, err := s.Convert(ctx, 1, domain.UnitKilogram, domain.UnitGram)
	require.NoError(t, err)
	assert.InDelta(t, 1001, got, 1e-9)
}

func TestSaveConversion_Validation(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()

	_, err := s.SaveConversion(ctx, domain.SaveConversionRequest{FromUnit: domain.UnitKilogram, ToUnit: domain.UnitGram})
	assert.ErrorIs(t, err, domain.ErrInvalidRatio)
	_, err = s.SaveConversion(ctx, domain.SaveConversionRequest{FromUnit: 9, ToUnit: domain.UnitGram, Ratio: 2})
	assert.ErrorIs(t, err, domain.ErrInvalidUnit)
}

func TestConversionsTable(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()

	_, err := s.SaveConversion(ctx, domain.SaveConversionRequest{FromUnit: domain.UnitLiter, ToUnit: domain.UnitDeciliter, Ratio: 10})
	require.NoError(t, err)

	table, err := s.Conversions(ctx)
	require.NoError(t, err)
	got, ok := table.Convert(2, domain.UnitLiter, domain.UnitDeciliter)
	assert.True(t, ok)
	assert.InDelta(t, 20, got, 1e-9)
	got, ok = table.Convert(5, domain.UnitDeciliter, domain.UnitLiter)
	assert.True(t, ok)
	assert.InDelta(t, 0.5, got, 1e-9)
	_, ok = table.Convert(1, domain.UnitLiter, domain.UnitGram)
	assert.False(t, ok)
}
