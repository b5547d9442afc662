package budget

import (
	"github.com/google/uuid"
	"github.com/propertyportal/budgeting/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// EffectivePrice computes the price an item contributes given the
// current catalogue and property context. An override always wins.
// Otherwise the item's variant reference is resolved as an explicit
// choice; when the service is gone from the catalogue the last
// resolved schedule price stands.
func EffectivePrice(item LineItem, service *catalog.Service, ctx catalog.VariantContext) decimal.Decimal {
	if item.IsOverridden && item.OverridePrice != nil {
		return *item.OverridePrice
	}
	if service == nil || len(service.Variants) == 0 {
		return item.SchedulePrice
	}
	return service.ResolveVariant(ctx, item.VariantID).BasePrice
}

// ResolveLineItems re-resolves a line-item collection against the
// current catalogue and property context, returning a new slice.
// Non-overridden items get fresh display names, variant reference and
// schedule price; overridden items keep their price but still refresh
// display names. Selection and override state are preserved, and the
// operation is idempotent: resolving an already-resolved list again
// yields the identical result.
func ResolveLineItems(items []LineItem, catalogue catalog.Catalogue, ctx catalog.VariantContext) []LineItem {
	resolved := make([]LineItem, len(items))
	for i, item := range items {
		resolved[i] = resolveLineItem(item, catalogue.Find(item.ServiceID), ctx)
	}
	return resolved
}

func resolveLineItem(item LineItem, service *catalog.Service, ctx catalog.VariantContext) LineItem {
	if service == nil || len(service.Variants) == 0 {
		// service dropped from the catalogue: cached names and price stand
		return item
	}

	// A stored variant reference only pins resolution for manual-selector
	// services; auto and none selectors re-resolve from context so a
	// property edit cascades into the pricing.
	var explicit *uuid.UUID
	if service.Selector == catalog.VariantSelectorManual {
		explicit = item.VariantID
	}
	variant := service.ResolveVariant(ctx, explicit)

	item.ServiceName = service.Name
	item.VariantName = variant.Name
	variantID := variant.ID
	item.VariantID = &variantID
	if !item.IsOverridden {
		item.SchedulePrice = variant.BasePrice
	}
	return item
}

// Summary aggregates a budget's line items
type Summary struct {
	TotalCount    int             `json:"totalCount"`
	SelectedCount int             `json:"selectedCount"`
	Total         decimal.Decimal `json:"total"`
}

// CalculateSummary totals a line-item collection. Only selected items
// contribute to the total, overridden or not; prices are stored
// tax-inclusive so this is a pass-through sum.
func CalculateSummary(items []LineItem) Summary {
	s := Summary{TotalCount: len(items), Total: decimal.Zero}
	for _, item := range items {
		if !item.IsSelected {
			continue
		}
		s.SelectedCount++
		s.Total = s.Total.Add(item.EffectivePrice())
	}
	return s
}

// NewLineItem builds a budget row for a catalogue service, resolving
// the applicable variant for the given context.
func NewLineItem(service *catalog.Service, ctx catalog.VariantContext, selected bool) LineItem {
	variant := service.ResolveVariant(ctx, nil)
	variantID := variant.ID
	return LineItem{
		ServiceID:     service.ID,
		ServiceName:   service.Name,
		VariantID:     &variantID,
		VariantName:   variant.Name,
		IsSelected:    selected,
		SchedulePrice: variant.BasePrice,
	}
}
