package schedule

import (
	"github.com/google/uuid"
	"github.com/propertyportal/budgeting/internal/domain/catalog"
	"github.com/propertyportal/budgeting/internal/domain/shared"
)

// LineItem is one template row: a service, an optional pinned variant
// and whether the row starts selected.
type LineItem struct {
	ServiceID  uuid.UUID  `json:"serviceId"`
	VariantID  *uuid.UUID `json:"variantId,omitempty"`
	IsSelected bool       `json:"isSelected"`
}

// Schedule is a reusable line-item template bound to a property
// profile. The budgeting engine consumes schedules read-only.
type Schedule struct {
	shared.BaseEntity
	Name         string                `json:"name"`
	PropertyType string                `json:"propertyType"`
	PropertySize *catalog.PropertySize `json:"propertySize,omitempty"`
	Items        []LineItem            `json:"items"`
}

// NewSchedule creates a new schedule template
func NewSchedule(name, propertyType string, items []LineItem) (*Schedule, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_SCHEDULE_NAME", "Schedule name cannot be empty")
	}
	return &Schedule{
		BaseEntity:   shared.NewBaseEntity(),
		Name:         name,
		PropertyType: propertyType,
		Items:        items,
	}, nil
}
