package budgeting

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/propertyportal/budgeting/internal/domain/budget"
	"github.com/propertyportal/budgeting/internal/domain/catalog"
	"github.com/propertyportal/budgeting/internal/domain/schedule"
	"github.com/propertyportal/budgeting/internal/domain/shared"
	"go.uber.org/zap"
)

// Stores bundles the per-entity persistence contracts the application
// services operate on. Mutating stores are expected to be audited
// decorators; the services stay audit-agnostic either way.
type Stores struct {
	Budgets   shared.Store[budget.Budget]
	Services  shared.Store[catalog.Service]
	Schedules shared.Store[schedule.Schedule]
	Suburbs   shared.Store[catalog.Suburb]
	Vendors   shared.Store[catalog.Vendor]
}

// BudgetService orchestrates budget reads, audited writes, pricing
// re-resolution and workflow transitions.
type BudgetService struct {
	stores Stores
	log    *zap.Logger
}

// NewBudgetService creates a new budget service
func NewBudgetService(stores Stores, log *zap.Logger) *BudgetService {
	return &BudgetService{stores: stores, log: log.Named("budget_service")}
}

// List returns all budgets
func (s *BudgetService) List(ctx context.Context) ([]budget.Budget, error) {
	return s.stores.Budgets.List(ctx)
}

// Get returns one budget by ID
func (s *BudgetService) Get(ctx context.Context, id uuid.UUID) (*budget.Budget, error) {
	return s.stores.Budgets.Get(ctx, id)
}

// Save re-resolves the budget's line items against the current
// catalogue and property context, then writes through the audited
// store. A property-field edit therefore cascades into pricing without
// clobbering manual overrides.
func (s *BudgetService) Save(ctx context.Context, b *budget.Budget) (*budget.Budget, error) {
	if !b.Status.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", "Unknown budget status")
	}
	for _, item := range b.LineItems {
		if item.IsOverridden && (item.OverridePrice == nil || item.OverridePrice.IsNegative()) {
			return nil, shared.NewDomainError("INVALID_OVERRIDE", "Overridden items need a non-negative override price")
		}
	}

	catalogue, err := s.catalogue(ctx)
	if err != nil {
		return nil, err
	}
	variantCtx, err := s.variantContext(ctx, b)
	if err != nil {
		return nil, err
	}
	b.LineItems = budget.ResolveLineItems(b.LineItems, catalogue, variantCtx)
	b.Touch()

	stored, err := s.stores.Budgets.Save(ctx, b)
	if err != nil {
		return nil, err
	}
	s.log.Info("budget saved",
		zap.String("budget_id", stored.ID.String()),
		zap.String("status", stored.Status.String()),
		zap.Int("line_items", len(stored.LineItems)),
	)
	return stored, nil
}

// Delete removes a budget through the audited store
func (s *BudgetService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.stores.Budgets.Delete(ctx, id)
}

// Transition moves a budget along the approval workflow. The move is
// gated by the workflow validator before it reaches the store, so an
// illegal edge or a failing approval check never produces a write.
func (s *BudgetService) Transition(ctx context.Context, id uuid.UUID, target budget.Status) (*budget.Budget, error) {
	if !target.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", "Unknown budget status")
	}
	b, err := s.stores.Budgets.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := budget.ValidateTransition(b, b.Status, target); err != nil {
		return nil, err
	}
	if err := b.SetStatus(target); err != nil {
		return nil, err
	}

	stored, err := s.stores.Budgets.Save(ctx, b)
	if err != nil {
		return nil, err
	}
	s.log.Info("budget status changed",
		zap.String("budget_id", stored.ID.String()),
		zap.String("status", stored.Status.String()),
	)
	return stored, nil
}

// ApplySchedule materialises a schedule template into the budget's
// line items and records the schedule reference.
func (s *BudgetService) ApplySchedule(ctx context.Context, budgetID, scheduleID uuid.UUID) (*budget.Budget, error) {
	b, err := s.stores.Budgets.Get(ctx, budgetID)
	if err != nil {
		return nil, err
	}
	sch, err := s.stores.Schedules.Get(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	catalogue, err := s.catalogue(ctx)
	if err != nil {
		return nil, err
	}
	variantCtx, err := s.variantContext(ctx, b)
	if err != nil {
		return nil, err
	}
	b.ApplySchedule(sch, catalogue, variantCtx)

	return s.stores.Budgets.Save(ctx, b)
}

// Summary totals a budget's line items
func (s *BudgetService) Summary(ctx context.Context, id uuid.UUID) (*budget.Summary, error) {
	b, err := s.stores.Budgets.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	summary := budget.CalculateSummary(b.LineItems)
	return &summary, nil
}

func (s *BudgetService) catalogue(ctx context.Context) (catalog.Catalogue, error) {
	services, err := s.stores.Services.List(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.NewCatalogue(services), nil
}

// variantContext derives the ephemeral pricing context from the
// budget's property fields, looking the suburb tier up from reference
// data. A dangling suburb reference simply leaves the tier unset.
func (s *BudgetService) variantContext(ctx context.Context, b *budget.Budget) (catalog.VariantContext, error) {
	variantCtx := catalog.VariantContext{PropertySize: b.PropertySize}
	if b.SuburbID == nil {
		return variantCtx, nil
	}
	suburb, err := s.stores.Suburbs.Get(ctx, *b.SuburbID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return variantCtx, nil
		}
		return catalog.VariantContext{}, err
	}
	tier := suburb.Tier
	variantCtx.SuburbTier = &tier
	return variantCtx, nil
}
