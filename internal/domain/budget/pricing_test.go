package budget

import (
	"testing"

	"github.com/google/uuid"
	"github.com/propertyportal/budgeting/internal/domain/catalog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sizePtr(s catalog.PropertySize) *catalog.PropertySize { return &s }
func tierPtr(t catalog.SuburbTier) *catalog.SuburbTier     { return &t }
func pricePtr(f float64) *decimal.Decimal {
	d := decimal.NewFromFloat(f)
	return &d
}

func newTieredService(t *testing.T) *catalog.Service {
	t.Helper()
	variants := []catalog.ServiceVariant{
		{ID: uuid.New(), Name: "Tier A", BasePrice: decimal.NewFromInt(900), TierMatch: tierPtr(catalog.SuburbTierA)},
		{ID: uuid.New(), Name: "Tier B", BasePrice: decimal.NewFromInt(700), TierMatch: tierPtr(catalog.SuburbTierB)},
		{ID: uuid.New(), Name: "Tier C", BasePrice: decimal.NewFromInt(500), TierMatch: tierPtr(catalog.SuburbTierC)},
		{ID: uuid.New(), Name: "Tier D", BasePrice: decimal.NewFromInt(350), TierMatch: tierPtr(catalog.SuburbTierD)},
	}
	svc, err := catalog.NewService("Portal campaign", "Digital", catalog.VariantSelectorSuburbTier, variants)
	require.NoError(t, err)
	return svc
}

func newSizedService(t *testing.T) *catalog.Service {
	t.Helper()
	variants := []catalog.ServiceVariant{
		{ID: uuid.New(), Name: "Small board", BasePrice: decimal.NewFromInt(100), SizeMatch: sizePtr(catalog.PropertySizeSmall)},
		{ID: uuid.New(), Name: "Large board", BasePrice: decimal.NewFromInt(220), SizeMatch: sizePtr(catalog.PropertySizeLarge)},
	}
	svc, err := catalog.NewService("Signboard", "Print", catalog.VariantSelectorPropertySize, variants)
	require.NoError(t, err)
	return svc
}

func TestEffectivePrice(t *testing.T) {
	t.Run("override wins even when schedule price is zero or stale", func(t *testing.T) {
		svc := newSizedService(t)
		item := NewLineItem(svc, catalog.VariantContext{}, true)
		item.SchedulePrice = decimal.Zero
		require.NoError(t, item.Override(decimal.NewFromInt(75)))

		got := EffectivePrice(item, svc, catalog.VariantContext{PropertySize: sizePtr(catalog.PropertySizeLarge)})
		assert.True(t, got.Equal(decimal.NewFromInt(75)))
	})

	t.Run("suburb tier context picks the exact tier price", func(t *testing.T) {
		svc := newTieredService(t)
		item := LineItem{ServiceID: svc.ID, IsSelected: true}
		ctx := catalog.VariantContext{SuburbTier: tierPtr(catalog.SuburbTierC)}

		got := EffectivePrice(item, svc, ctx)
		assert.True(t, got.Equal(decimal.NewFromInt(500)))
	})

	t.Run("missing service falls back to stored schedule price", func(t *testing.T) {
		item := LineItem{ServiceID: uuid.New(), SchedulePrice: decimal.NewFromInt(123)}
		got := EffectivePrice(item, nil, catalog.VariantContext{})
		assert.True(t, got.Equal(decimal.NewFromInt(123)))
	})
}

func TestResolveLineItems(t *testing.T) {
	t.Run("re-resolves price and names on context change", func(t *testing.T) {
		svc := newSizedService(t)
		catalogue := catalog.Catalogue{svc.ID: svc}
		item := NewLineItem(svc, catalog.VariantContext{PropertySize: sizePtr(catalog.PropertySizeSmall)}, true)
		require.True(t, item.SchedulePrice.Equal(decimal.NewFromInt(100)))

		resolved := ResolveLineItems([]LineItem{item}, catalogue, catalog.VariantContext{PropertySize: sizePtr(catalog.PropertySizeLarge)})
		require.Len(t, resolved, 1)
		assert.True(t, resolved[0].SchedulePrice.Equal(decimal.NewFromInt(220)))
		assert.Equal(t, "Large board", resolved[0].VariantName)
		assert.Equal(t, "Signboard", resolved[0].ServiceName)
	})

	t.Run("is idempotent", func(t *testing.T) {
		svc := newTieredService(t)
		catalogue := catalog.Catalogue{svc.ID: svc}
		ctx := catalog.VariantContext{SuburbTier: tierPtr(catalog.SuburbTierB)}
		items := []LineItem{NewLineItem(svc, ctx, true)}

		once := ResolveLineItems(items, catalogue, ctx)
		twice := ResolveLineItems(once, catalogue, ctx)
		assert.Equal(t, once, twice)
	})

	t.Run("overridden items keep price but refresh display names", func(t *testing.T) {
		svc := newSizedService(t)
		catalogue := catalog.Catalogue{svc.ID: svc}
		item := NewLineItem(svc, catalog.VariantContext{PropertySize: sizePtr(catalog.PropertySizeSmall)}, true)
		require.NoError(t, item.Override(decimal.NewFromInt(50)))
		item.ServiceName = "Old name"

		resolved := ResolveLineItems([]LineItem{item}, catalogue, catalog.VariantContext{PropertySize: sizePtr(catalog.PropertySizeLarge)})
		require.Len(t, resolved, 1)
		assert.True(t, resolved[0].IsOverridden)
		assert.True(t, resolved[0].EffectivePrice().Equal(decimal.NewFromInt(50)))
		assert.True(t, resolved[0].SchedulePrice.Equal(decimal.NewFromInt(100)), "schedule price untouched for overridden item")
		assert.Equal(t, "Signboard", resolved[0].ServiceName)
		assert.Equal(t, "Large board", resolved[0].VariantName)
	})

	t.Run("preserves selection and override state", func(t *testing.T) {
		svc := newSizedService(t)
		catalogue := catalog.Catalogue{svc.ID: svc}
		selected := NewLineItem(svc, catalog.VariantContext{}, true)
		deselected := NewLineItem(svc, catalog.VariantContext{}, false)
		require.NoError(t, deselected.Override(decimal.NewFromInt(10)))

		resolved := ResolveLineItems([]LineItem{selected, deselected}, catalogue, catalog.VariantContext{})
		assert.True(t, resolved[0].IsSelected)
		assert.False(t, resolved[1].IsSelected)
		assert.True(t, resolved[1].IsOverridden)
		require.NotNil(t, resolved[1].OverridePrice)
		assert.True(t, resolved[1].OverridePrice.Equal(decimal.NewFromInt(10)))
	})

	t.Run("manual variant choice survives re-resolution", func(t *testing.T) {
		variants := []catalog.ServiceVariant{
			{ID: uuid.New(), Name: "Basic", BasePrice: decimal.NewFromInt(40)},
			{ID: uuid.New(), Name: "Premium", BasePrice: decimal.NewFromInt(90)},
		}
		svc, err := catalog.NewService("Photography", "Media", catalog.VariantSelectorManual, variants)
		require.NoError(t, err)
		catalogue := catalog.Catalogue{svc.ID: svc}

		premium := svc.Variants[1].ID
		item := LineItem{ServiceID: svc.ID, VariantID: &premium, IsSelected: true}

		resolved := ResolveLineItems([]LineItem{item}, catalogue, catalog.VariantContext{SuburbTier: tierPtr(catalog.SuburbTierA)})
		require.Len(t, resolved, 1)
		assert.Equal(t, "Premium", resolved[0].VariantName)
		assert.True(t, resolved[0].SchedulePrice.Equal(decimal.NewFromInt(90)))
	})

	t.Run("items for missing services pass through untouched", func(t *testing.T) {
		item := LineItem{ServiceID: uuid.New(), ServiceName: "Gone", SchedulePrice: decimal.NewFromInt(42), IsSelected: true}
		resolved := ResolveLineItems([]LineItem{item}, catalog.Catalogue{}, catalog.VariantContext{})
		require.Len(t, resolved, 1)
		assert.Equal(t, item, resolved[0])
	})
}

func TestCalculateSummary(t *testing.T) {
	t.Run("only selected items contribute to the total", func(t *testing.T) {
		items := []LineItem{
			{IsSelected: true, SchedulePrice: decimal.NewFromInt(100)},
			{IsSelected: false, SchedulePrice: decimal.NewFromInt(999)},
			{IsSelected: true, SchedulePrice: decimal.Zero, OverridePrice: pricePtr(55), IsOverridden: true},
			{IsSelected: false, OverridePrice: pricePtr(1000), IsOverridden: true},
		}
		s := CalculateSummary(items)
		assert.Equal(t, 4, s.TotalCount)
		assert.Equal(t, 2, s.SelectedCount)
		assert.True(t, s.Total.Equal(decimal.NewFromInt(155)))
	})

	t.Run("toggling one item moves the total by its effective price", func(t *testing.T) {
		items := []LineItem{
			{IsSelected: true, SchedulePrice: decimal.NewFromInt(100)},
			{IsSelected: false, SchedulePrice: decimal.NewFromInt(60)},
		}
		before := CalculateSummary(items).Total
		items[1].IsSelected = true
		after := CalculateSummary(items).Total
		assert.True(t, after.Sub(before).Equal(items[1].EffectivePrice()))
	})

	t.Run("empty list sums to zero", func(t *testing.T) {
		s := CalculateSummary(nil)
		assert.Equal(t, 0, s.TotalCount)
		assert.Equal(t, 0, s.SelectedCount)
		assert.True(t, s.Total.IsZero())
	})
}

func TestNewDraftBudget(t *testing.T) {
	b := NewDraftBudget()
	assert.Equal(t, StatusDraft, b.Status)
	assert.Empty(t, b.LineItems)
	assert.True(t, b.IsNew())
	assert.False(t, b.CreatedAt.IsZero())
	assert.Equal(t, b.CreatedAt, b.UpdatedAt)
}

func TestLineItemOverride(t *testing.T) {
	t.Run("rejects negative override", func(t *testing.T) {
		item := LineItem{}
		err := item.Override(decimal.NewFromInt(-5))
		require.Error(t, err)
		assert.False(t, item.IsOverridden)
	})

	t.Run("clear restores schedule price", func(t *testing.T) {
		item := LineItem{SchedulePrice: decimal.NewFromInt(80)}
		require.NoError(t, item.Override(decimal.NewFromInt(20)))
		assert.True(t, item.EffectivePrice().Equal(decimal.NewFromInt(20)))

		item.ClearOverride()
		assert.False(t, item.IsOverridden)
		assert.True(t, item.EffectivePrice().Equal(decimal.NewFromInt(80)))
	})
}
