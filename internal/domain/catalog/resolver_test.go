package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sizePtr(s PropertySize) *PropertySize { return &s }
func tierPtr(t SuburbTier) *SuburbTier     { return &t }

func sizedService(t *testing.T) *Service {
	t.Helper()
	variants := []ServiceVariant{
		{ID: uuid.New(), Name: "Small board", BasePrice: decimal.NewFromInt(100), SizeMatch: sizePtr(PropertySizeSmall)},
		{ID: uuid.New(), Name: "Medium board", BasePrice: decimal.NewFromInt(150), SizeMatch: sizePtr(PropertySizeMedium)},
		{ID: uuid.New(), Name: "Large board", BasePrice: decimal.NewFromInt(220), SizeMatch: sizePtr(PropertySizeLarge)},
	}
	svc, err := NewService("Signboard", "Print", VariantSelectorPropertySize, variants)
	require.NoError(t, err)
	return svc
}

func tieredService(t *testing.T) *Service {
	t.Helper()
	variants := []ServiceVariant{
		{ID: uuid.New(), Name: "Tier A campaign", BasePrice: decimal.NewFromInt(900), TierMatch: tierPtr(SuburbTierA)},
		{ID: uuid.New(), Name: "Tier B campaign", BasePrice: decimal.NewFromInt(700), TierMatch: tierPtr(SuburbTierB)},
		{ID: uuid.New(), Name: "Tier C campaign", BasePrice: decimal.NewFromInt(500), TierMatch: tierPtr(SuburbTierC)},
		{ID: uuid.New(), Name: "Tier D campaign", BasePrice: decimal.NewFromInt(350), TierMatch: tierPtr(SuburbTierD)},
	}
	svc, err := NewService("Portal campaign", "Digital", VariantSelectorSuburbTier, variants)
	require.NoError(t, err)
	return svc
}

func TestResolveVariant(t *testing.T) {
	t.Run("matches property size from context", func(t *testing.T) {
		svc := sizedService(t)
		got := svc.ResolveVariant(VariantContext{PropertySize: sizePtr(PropertySizeMedium)}, nil)
		require.NotNil(t, got.SizeMatch)
		assert.Equal(t, PropertySizeMedium, *got.SizeMatch)
		assert.Equal(t, "Medium board", got.Name)
	})

	t.Run("matches suburb tier from context", func(t *testing.T) {
		svc := tieredService(t)
		got := svc.ResolveVariant(VariantContext{SuburbTier: tierPtr(SuburbTierC)}, nil)
		require.NotNil(t, got.TierMatch)
		assert.Equal(t, SuburbTierC, *got.TierMatch)
		assert.True(t, got.BasePrice.Equal(decimal.NewFromInt(500)))
	})

	t.Run("first matching variant wins on duplicate tags", func(t *testing.T) {
		first := ServiceVariant{ID: uuid.New(), Name: "First small", BasePrice: decimal.NewFromInt(10), SizeMatch: sizePtr(PropertySizeSmall)}
		second := ServiceVariant{ID: uuid.New(), Name: "Second small", BasePrice: decimal.NewFromInt(20), SizeMatch: sizePtr(PropertySizeSmall)}
		svc, err := NewService("Dup", "Print", VariantSelectorPropertySize, []ServiceVariant{first, second})
		require.NoError(t, err)

		got := svc.ResolveVariant(VariantContext{PropertySize: sizePtr(PropertySizeSmall)}, nil)
		assert.Equal(t, first.ID, got.ID)
	})

	t.Run("explicit variant wins regardless of selector and context", func(t *testing.T) {
		svc := sizedService(t)
		want := svc.Variants[2]
		got := svc.ResolveVariant(VariantContext{PropertySize: sizePtr(PropertySizeSmall)}, &want.ID)
		assert.Equal(t, want.ID, got.ID)
		assert.Equal(t, "Large board", got.Name)
	})

	t.Run("unknown explicit variant falls back to context resolution", func(t *testing.T) {
		svc := sizedService(t)
		stale := uuid.New()
		got := svc.ResolveVariant(VariantContext{PropertySize: sizePtr(PropertySizeLarge)}, &stale)
		assert.Equal(t, "Large board", got.Name)
	})

	t.Run("empty context falls back to first variant", func(t *testing.T) {
		svc := sizedService(t)
		got := svc.ResolveVariant(VariantContext{}, nil)
		assert.Equal(t, svc.Variants[0].ID, got.ID)
	})

	t.Run("none selector always returns first variant", func(t *testing.T) {
		variants := []ServiceVariant{
			{ID: uuid.New(), Name: "Only", BasePrice: decimal.NewFromInt(99)},
			{ID: uuid.New(), Name: "Ignored", BasePrice: decimal.NewFromInt(1)},
		}
		svc, err := NewService("Flat fee", "Admin", VariantSelectorNone, variants)
		require.NoError(t, err)

		got := svc.ResolveVariant(VariantContext{PropertySize: sizePtr(PropertySizeLarge), SuburbTier: tierPtr(SuburbTierA)}, nil)
		assert.Equal(t, "Only", got.Name)
	})

	t.Run("always returns a member of the variant list", func(t *testing.T) {
		svc := tieredService(t)
		contexts := []VariantContext{
			{},
			{PropertySize: sizePtr(PropertySizeSmall)},
			{SuburbTier: tierPtr(SuburbTierB)},
			{PropertySize: sizePtr(PropertySizeLarge), SuburbTier: tierPtr(SuburbTierD)},
		}
		for _, ctx := range contexts {
			got := svc.ResolveVariant(ctx, nil)
			assert.NotNil(t, svc.FindVariant(got.ID))
		}
	})
}

func TestVariantFlags(t *testing.T) {
	t.Run("manual selector with multiple variants is selectable", func(t *testing.T) {
		variants := []ServiceVariant{
			{ID: uuid.New(), Name: "Basic", BasePrice: decimal.NewFromInt(50)},
			{ID: uuid.New(), Name: "Premium", BasePrice: decimal.NewFromInt(120)},
		}
		svc, err := NewService("Photography", "Media", VariantSelectorManual, variants)
		require.NoError(t, err)
		assert.True(t, svc.HasSelectableVariants())
		assert.False(t, svc.HasAutoVariants())
	})

	t.Run("manual selector with one variant is not selectable", func(t *testing.T) {
		variants := []ServiceVariant{{ID: uuid.New(), Name: "Basic", BasePrice: decimal.NewFromInt(50)}}
		svc, err := NewService("Photography", "Media", VariantSelectorManual, variants)
		require.NoError(t, err)
		assert.False(t, svc.HasSelectableVariants())
	})

	t.Run("auto selectors report auto variants", func(t *testing.T) {
		assert.True(t, sizedService(t).HasAutoVariants())
		assert.True(t, tieredService(t).HasAutoVariants())
		assert.False(t, sizedService(t).HasSelectableVariants())
	})
}

func TestNewService(t *testing.T) {
	t.Run("rejects empty variant list", func(t *testing.T) {
		_, err := NewService("Signboard", "Print", VariantSelectorNone, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least one variant")
	})

	t.Run("rejects negative base price", func(t *testing.T) {
		variants := []ServiceVariant{{ID: uuid.New(), Name: "Bad", BasePrice: decimal.NewFromInt(-1)}}
		_, err := NewService("Signboard", "Print", VariantSelectorNone, variants)
		require.Error(t, err)
	})

	t.Run("rejects invalid selector", func(t *testing.T) {
		variants := []ServiceVariant{{ID: uuid.New(), Name: "Ok", BasePrice: decimal.NewFromInt(1)}}
		_, err := NewService("Signboard", "Print", VariantSelector("random"), variants)
		require.Error(t, err)
	})
}
