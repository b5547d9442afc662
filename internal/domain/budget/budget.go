package budget

import (
	"time"

	"github.com/google/uuid"
	"github.com/propertyportal/budgeting/internal/domain/catalog"
	"github.com/propertyportal/budgeting/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Status is a budget's approval-lifecycle stage
type Status string

const (
	StatusDraft    Status = "draft"
	StatusApproved Status = "approved"
	StatusSent     Status = "sent"
	StatusArchived Status = "archived"
)

// IsValid checks if the status is a valid Status
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusApproved, StatusSent, StatusArchived:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// transitions is the fixed adjacency map of the approval workflow.
// Which edges require field validation is a separate policy owned by
// ValidateTransition; this map only answers reachability.
var transitions = map[Status][]Status{
	StatusDraft:    {StatusApproved},
	StatusApproved: {StatusSent, StatusDraft},
	StatusSent:     {StatusArchived},
	StatusArchived: {},
}

// CanTransitionTo checks if the status can transition to the target status
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range transitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// LineItem is one budget row referencing a catalogue service with a
// resolved or manually overridden price. Service and variant references
// are weak; display names are cached so the row stays readable after
// the catalogue moves on.
type LineItem struct {
	ServiceID     uuid.UUID        `json:"serviceId"`
	ServiceName   string           `json:"serviceName"`
	VariantID     *uuid.UUID       `json:"variantId,omitempty"`
	VariantName   string           `json:"variantName"`
	IsSelected    bool             `json:"isSelected"`
	SchedulePrice decimal.Decimal  `json:"schedulePrice"`
	OverridePrice *decimal.Decimal `json:"overridePrice,omitempty"`
	IsOverridden  bool             `json:"isOverridden"`
}

// EffectivePrice is the price counted toward the budget total:
// the override when one is set, the last-resolved schedule price otherwise.
func (i LineItem) EffectivePrice() decimal.Decimal {
	if i.IsOverridden && i.OverridePrice != nil {
		return *i.OverridePrice
	}
	return i.SchedulePrice
}

// Override pins a manual price on the item. Cascading re-resolution
// refreshes display names but never clobbers an override.
func (i *LineItem) Override(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_OVERRIDE", "Override price cannot be negative")
	}
	i.OverridePrice = &price
	i.IsOverridden = true
	return nil
}

// ClearOverride removes a manual price; the schedule price applies again
func (i *LineItem) ClearOverride() {
	i.OverridePrice = nil
	i.IsOverridden = false
}

// Budget is the aggregate root of one property-marketing budget.
// Budgets are never physically deleted by the engine itself; deletion
// is an outer-layer operation that still flows through the audited store.
type Budget struct {
	shared.BaseEntity
	PropertyAddress string                `json:"propertyAddress"`
	PropertyType    string                `json:"propertyType"`
	PropertySize    *catalog.PropertySize `json:"propertySize,omitempty"`
	Tier            string                `json:"tier"`
	SuburbID        *uuid.UUID            `json:"suburbId,omitempty"`
	VendorID        *uuid.UUID            `json:"vendorId,omitempty"`
	ScheduleID      *uuid.UUID            `json:"scheduleId,omitempty"`
	LineItems       []LineItem            `json:"lineItems"`
	Notes           string                `json:"notes"`
	ClientName      string                `json:"clientName"`
	AgentName       string                `json:"agentName"`
	Status          Status                `json:"status"`
	ApprovedAt      *time.Time            `json:"approvedAt,omitempty"`
	SentAt          *time.Time            `json:"sentAt,omitempty"`
	ArchivedAt      *time.Time            `json:"archivedAt,omitempty"`
}

// NewDraftBudget creates a new empty draft budget. The ID stays zero
// until the store assigns one on first save.
func NewDraftBudget() *Budget {
	now := time.Now()
	return &Budget{
		BaseEntity: shared.BaseEntity{CreatedAt: now, UpdatedAt: now},
		Status:     StatusDraft,
		LineItems:  []LineItem{},
	}
}

// Label is the human-readable identity used in audit summaries
func (b *Budget) Label() string {
	if b.PropertyAddress != "" {
		return b.PropertyAddress
	}
	return "untitled budget"
}

// SetStatus moves the budget to the target stage and stamps the matching
// lifecycle timestamp. Callers gate the move through ValidateTransition
// first; SetStatus itself only refuses edges absent from the graph.
func (b *Budget) SetStatus(target Status) error {
	if !b.Status.CanTransitionTo(target) {
		return &IllegalTransitionError{From: b.Status, To: target}
	}
	now := time.Now()
	switch target {
	case StatusApproved:
		b.ApprovedAt = &now
	case StatusSent:
		b.SentAt = &now
	case StatusArchived:
		b.ArchivedAt = &now
	case StatusDraft:
		// revert from approved clears the approval stamp
		b.ApprovedAt = nil
	}
	b.Status = target
	b.UpdatedAt = now
	return nil
}
