package budget

import (
	"github.com/propertyportal/budgeting/internal/domain/catalog"
	"github.com/propertyportal/budgeting/internal/domain/schedule"
)

// LineItemsFromSchedule materialises a schedule template into budget
// rows for the given catalogue and property context. Template rows
// whose service has left the catalogue are skipped; pinned variant
// choices and selection flags carry over.
func LineItemsFromSchedule(sch *schedule.Schedule, catalogue catalog.Catalogue, ctx catalog.VariantContext) []LineItem {
	items := make([]LineItem, 0, len(sch.Items))
	for _, row := range sch.Items {
		service := catalogue.Find(row.ServiceID)
		if service == nil {
			continue
		}
		variant := service.ResolveVariant(ctx, row.VariantID)
		variantID := variant.ID
		items = append(items, LineItem{
			ServiceID:     service.ID,
			ServiceName:   service.Name,
			VariantID:     &variantID,
			VariantName:   variant.Name,
			IsSelected:    row.IsSelected,
			SchedulePrice: variant.BasePrice,
		})
	}
	return items
}

// ApplySchedule replaces the budget's line items with the template's
// rows and records the schedule reference.
func (b *Budget) ApplySchedule(sch *schedule.Schedule, catalogue catalog.Catalogue, ctx catalog.VariantContext) {
	scheduleID := sch.ID
	b.ScheduleID = &scheduleID
	b.LineItems = LineItemsFromSchedule(sch, catalogue, ctx)
	b.Touch()
}
