package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaveBudgetRequest carries a full budget document for create or
// update. Status is absent deliberately: lifecycle moves go through
// the transition endpoint only.
type SaveBudgetRequest struct {
	ID              *string         `json:"id" binding:"omitempty,uuid"`
	PropertyAddress string          `json:"propertyAddress"`
	PropertyType    string          `json:"propertyType"`
	PropertySize    *string         `json:"propertySize" binding:"omitempty,oneof=small medium large"`
	SuburbID        *string         `json:"suburbId" binding:"omitempty,uuid"`
	VendorID        *string         `json:"vendorId" binding:"omitempty,uuid"`
	ScheduleID      *string         `json:"scheduleId" binding:"omitempty,uuid"`
	LineItems       []LineItemInput `json:"lineItems"`
	Notes           string          `json:"notes"`
	ClientName      string          `json:"clientName"`
	AgentName       string          `json:"agentName"`
}

// LineItemInput is one budget row as submitted by a client
type LineItemInput struct {
	ServiceID     string           `json:"serviceId" binding:"required,uuid"`
	ServiceName   string           `json:"serviceName"`
	VariantID     *string          `json:"variantId" binding:"omitempty,uuid"`
	VariantName   string           `json:"variantName"`
	IsSelected    bool             `json:"isSelected"`
	SchedulePrice decimal.Decimal  `json:"schedulePrice"`
	OverridePrice *decimal.Decimal `json:"overridePrice"`
	IsOverridden  bool             `json:"isOverridden"`
}

// TransitionRequest asks for a workflow status move
type TransitionRequest struct {
	Status string `json:"status" binding:"required,oneof=draft approved sent archived"`
}

// ApplyScheduleRequest assigns a schedule template to a budget
type ApplyScheduleRequest struct {
	ScheduleID string `json:"scheduleId" binding:"required,uuid"`
}

// OverrideRequest pins a manual price on a line item. Zero is a legal
// override, so the price carries no required binding.
type OverrideRequest struct {
	Price decimal.Decimal `json:"price"`
}

// BudgetSummaryResponse is the computed totals payload
type BudgetSummaryResponse struct {
	TotalCount    int             `json:"totalCount"`
	SelectedCount int             `json:"selectedCount"`
	Total         decimal.Decimal `json:"total"`
}

// AuditEntryResponse is one audit trail entry as served to clients
type AuditEntryResponse struct {
	ID          string         `json:"id"`
	Timestamp   time.Time      `json:"timestamp"`
	User        string         `json:"user"`
	EntityType  string         `json:"entityType"`
	EntityID    *string        `json:"entityId,omitempty"`
	EntityLabel string         `json:"entityLabel"`
	Action      string         `json:"action"`
	Summary     string         `json:"summary"`
	Before      map[string]any `json:"before,omitempty"`
	After       map[string]any `json:"after,omitempty"`
}
