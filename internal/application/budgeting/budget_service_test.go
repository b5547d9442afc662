package budgeting

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/propertyportal/budgeting/internal/domain/budget"
	"github.com/propertyportal/budgeting/internal/domain/catalog"
	"github.com/propertyportal/budgeting/internal/domain/schedule"
	"github.com/propertyportal/budgeting/internal/domain/shared"
	"github.com/propertyportal/budgeting/internal/infrastructure/persistence/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newMemoryStores() Stores {
	return Stores{
		Budgets:   memory.NewStore(BudgetIdentity),
		Services:  memory.NewStore(ServiceIdentity),
		Schedules: memory.NewStore(ScheduleIdentity),
		Suburbs:   memory.NewStore(SuburbIdentity),
		Vendors:   memory.NewStore(VendorIdentity),
	}
}

func mustVariant(t *testing.T, name string, price string) catalog.ServiceVariant {
	t.Helper()
	v, err := catalog.NewServiceVariant(name, decimal.RequireFromString(price))
	require.NoError(t, err)
	return v
}

// tieredService builds a photography service priced by suburb tier
func tieredService(t *testing.T) *catalog.Service {
	t.Helper()
	svc, err := catalog.NewService("Photography", "media", catalog.VariantSelectorSuburbTier, []catalog.ServiceVariant{
		mustVariant(t, "Standard", "350").WithTierMatch(catalog.SuburbTierB),
		mustVariant(t, "Premium", "550").WithTierMatch(catalog.SuburbTierA),
	})
	require.NoError(t, err)
	return svc
}

func TestBudgetService_SaveReResolvesOnContextChange(t *testing.T) {
	ctx := context.Background()
	stores := newMemoryStores()
	svc := NewBudgetService(stores, zap.NewNop())

	photography := tieredService(t)
	_, err := stores.Services.Save(ctx, photography)
	require.NoError(t, err)

	tierA, err := catalog.NewSuburb("Harbourview", "2000", catalog.SuburbTierA)
	require.NoError(t, err)
	tierA, err = stores.Suburbs.Save(ctx, tierA)
	require.NoError(t, err)
	tierB, err := catalog.NewSuburb("Millbrook", "2170", catalog.SuburbTierB)
	require.NoError(t, err)
	tierB, err = stores.Suburbs.Save(ctx, tierB)
	require.NoError(t, err)

	b := budget.NewDraftBudget()
	b.PropertyAddress = "12 Harbour St"
	b.SuburbID = &tierB.ID
	b.LineItems = []budget.LineItem{{ServiceID: photography.ID, IsSelected: true}}

	stored, err := svc.Save(ctx, b)
	require.NoError(t, err)
	require.Len(t, stored.LineItems, 1)
	assert.Equal(t, "Standard", stored.LineItems[0].VariantName)
	assert.True(t, stored.LineItems[0].SchedulePrice.Equal(decimal.NewFromInt(350)))

	// moving the property to a tier A suburb cascades into the pricing
	stored.SuburbID = &tierA.ID
	stored, err = svc.Save(ctx, stored)
	require.NoError(t, err)
	assert.Equal(t, "Premium", stored.LineItems[0].VariantName)
	assert.True(t, stored.LineItems[0].SchedulePrice.Equal(decimal.NewFromInt(550)))
}

func TestBudgetService_SavePreservesOverrides(t *testing.T) {
	ctx := context.Background()
	stores := newMemoryStores()
	svc := NewBudgetService(stores, zap.NewNop())

	photography := tieredService(t)
	_, err := stores.Services.Save(ctx, photography)
	require.NoError(t, err)

	b := budget.NewDraftBudget()
	b.PropertyAddress = "4 Mill Ln"
	item := budget.LineItem{ServiceID: photography.ID, IsSelected: true}
	require.NoError(t, item.Override(decimal.NewFromInt(199)))
	b.LineItems = []budget.LineItem{item}

	stored, err := svc.Save(ctx, b)
	require.NoError(t, err)
	require.True(t, stored.LineItems[0].IsOverridden)
	assert.True(t, stored.LineItems[0].EffectivePrice().Equal(decimal.NewFromInt(199)))
	// display names still refresh around the pinned price
	assert.Equal(t, "Photography", stored.LineItems[0].ServiceName)
}

func TestBudgetService_SaveRejectsBadOverride(t *testing.T) {
	ctx := context.Background()
	stores := newMemoryStores()
	svc := NewBudgetService(stores, zap.NewNop())

	b := budget.NewDraftBudget()
	b.LineItems = []budget.LineItem{{ServiceID: uuid.New(), IsOverridden: true}}

	_, err := svc.Save(ctx, b)
	assert.Error(t, err)
}

func TestBudgetService_Transition(t *testing.T) {
	ctx := context.Background()
	stores := newMemoryStores()
	svc := NewBudgetService(stores, zap.NewNop())

	t.Run("approval blocked by field checks", func(t *testing.T) {
		b := budget.NewDraftBudget()
		stored, err := stores.Budgets.Save(ctx, b)
		require.NoError(t, err)

		_, err = svc.Transition(ctx, stored.ID, budget.StatusApproved)
		var validation *budget.ValidationError
		require.ErrorAs(t, err, &validation)
		assert.GreaterOrEqual(t, len(validation.Violations), 3)

		// the failed move never reaches the store
		after, err := stores.Budgets.Get(ctx, stored.ID)
		require.NoError(t, err)
		assert.Equal(t, budget.StatusDraft, after.Status)
	})

	t.Run("complete draft approves and stamps", func(t *testing.T) {
		scheduleID := uuid.New()
		b := budget.NewDraftBudget()
		b.PropertyAddress = "88 Main Rd"
		b.ScheduleID = &scheduleID
		b.LineItems = []budget.LineItem{{
			ServiceID:     uuid.New(),
			ServiceName:   "Signboard",
			IsSelected:    true,
			SchedulePrice: decimal.NewFromInt(120),
		}}
		stored, err := stores.Budgets.Save(ctx, b)
		require.NoError(t, err)

		approved, err := svc.Transition(ctx, stored.ID, budget.StatusApproved)
		require.NoError(t, err)
		assert.Equal(t, budget.StatusApproved, approved.Status)
		assert.NotNil(t, approved.ApprovedAt)

		sent, err := svc.Transition(ctx, approved.ID, budget.StatusSent)
		require.NoError(t, err)
		assert.Equal(t, budget.StatusSent, sent.Status)
	})

	t.Run("illegal edge", func(t *testing.T) {
		b := budget.NewDraftBudget()
		stored, err := stores.Budgets.Save(ctx, b)
		require.NoError(t, err)

		_, err = svc.Transition(ctx, stored.ID, budget.StatusArchived)
		var illegal *budget.IllegalTransitionError
		require.ErrorAs(t, err, &illegal)
		assert.Equal(t, budget.StatusDraft, illegal.From)
	})

	t.Run("unknown budget", func(t *testing.T) {
		_, err := svc.Transition(ctx, uuid.New(), budget.StatusApproved)
		assert.Error(t, err)
	})
}

func TestBudgetService_ApplySchedule(t *testing.T) {
	ctx := context.Background()
	stores := newMemoryStores()
	svc := NewBudgetService(stores, zap.NewNop())

	photography := tieredService(t)
	_, err := stores.Services.Save(ctx, photography)
	require.NoError(t, err)

	sch, err := schedule.NewSchedule("Standard campaign", "house", []schedule.LineItem{
		{ServiceID: photography.ID, IsSelected: true},
		{ServiceID: uuid.New(), IsSelected: true}, // dangling reference is skipped
	})
	require.NoError(t, err)
	sch, err = stores.Schedules.Save(ctx, sch)
	require.NoError(t, err)

	b := budget.NewDraftBudget()
	b.PropertyAddress = "3 Elm Ct"
	stored, err := stores.Budgets.Save(ctx, b)
	require.NoError(t, err)

	applied, err := svc.ApplySchedule(ctx, stored.ID, sch.ID)
	require.NoError(t, err)
	require.Len(t, applied.LineItems, 1)
	assert.Equal(t, "Photography", applied.LineItems[0].ServiceName)
	require.NotNil(t, applied.ScheduleID)
	assert.Equal(t, sch.ID, *applied.ScheduleID)
}

func TestBudgetService_Summary(t *testing.T) {
	ctx := context.Background()
	stores := newMemoryStores()
	svc := NewBudgetService(stores, zap.NewNop())

	b := budget.NewDraftBudget()
	b.LineItems = []budget.LineItem{
		{ServiceID: uuid.New(), IsSelected: true, SchedulePrice: decimal.NewFromInt(350)},
		{ServiceID: uuid.New(), IsSelected: false, SchedulePrice: decimal.NewFromInt(90)},
	}
	stored, err := stores.Budgets.Save(ctx, b)
	require.NoError(t, err)

	summary, err := svc.Summary(ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.TotalCount)
	assert.Equal(t, 1, summary.SelectedCount)
	assert.True(t, summary.Total.Equal(decimal.NewFromInt(350)))
}

func TestBudgetService_SaveWithDanglingSuburb(t *testing.T) {
	ctx := context.Background()
	stores := newMemoryStores()
	svc := NewBudgetService(stores, zap.NewNop())

	missing := uuid.New()
	b := budget.NewDraftBudget()
	b.PropertyAddress = "9 Gone St"
	b.SuburbID = &missing

	stored, err := svc.Save(ctx, b)
	require.NoError(t, err)
	require.NotNil(t, stored.SuburbID)

	_, err = stores.Suburbs.Get(ctx, missing)
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}
