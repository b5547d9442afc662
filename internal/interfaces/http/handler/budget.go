package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/propertyportal/budgeting/internal/application/budgeting"
	"github.com/propertyportal/budgeting/internal/domain/budget"
	"github.com/propertyportal/budgeting/internal/domain/catalog"
	"github.com/propertyportal/budgeting/internal/domain/shared"
	"github.com/propertyportal/budgeting/internal/interfaces/http/dto"
)

// BudgetHandler serves the budget aggregate: documents, pricing
// summaries, overrides and workflow transitions.
type BudgetHandler struct {
	BaseHandler
	service *budgeting.BudgetService
}

// NewBudgetHandler creates a new budget handler
func NewBudgetHandler(service *budgeting.BudgetService) *BudgetHandler {
	return &BudgetHandler{service: service}
}

// RegisterRoutes registers budget routes
func (h *BudgetHandler) RegisterRoutes(rg *gin.RouterGroup) {
	budgets := rg.Group("/budgets")
	{
		budgets.GET("", h.List)
		budgets.POST("", h.Save)
		budgets.GET("/:id", h.Get)
		budgets.PUT("/:id", h.Save)
		budgets.DELETE("/:id", h.Delete)
		budgets.GET("/:id/summary", h.Summary)
		budgets.POST("/:id/transition", h.Transition)
		budgets.POST("/:id/schedule", h.ApplySchedule)
		budgets.PUT("/:id/items/:serviceId/override", h.SetOverride)
		budgets.DELETE("/:id/items/:serviceId/override", h.ClearOverride)
	}
}

// List returns all budgets
func (h *BudgetHandler) List(c *gin.Context) {
	budgets, err := h.service.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, budgets)
}

// Get returns one budget
func (h *BudgetHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid budget ID")
		return
	}
	b, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, b)
}

// Save creates or updates a budget document. Line items are re-resolved
// against the catalogue on the way in, so the response carries final
// names and prices.
func (h *BudgetHandler) Save(c *gin.Context) {
	var req dto.SaveBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid budget payload: "+err.Error())
		return
	}

	b, err := h.budgetFromRequest(c, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	created := b.IsNew()

	stored, err := h.service.Save(c.Request.Context(), b)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if created {
		h.Created(c, stored)
		return
	}
	h.Success(c, stored)
}

// Delete removes a budget
func (h *BudgetHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid budget ID")
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Summary returns the computed totals for a budget
func (h *BudgetHandler) Summary(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid budget ID")
		return
	}
	summary, err := h.service.Summary(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.BudgetSummaryResponse{
		TotalCount:    summary.TotalCount,
		SelectedCount: summary.SelectedCount,
		Total:         summary.Total,
	})
}

// Transition moves a budget along the approval workflow
func (h *BudgetHandler) Transition(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid budget ID")
		return
	}
	var req dto.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid transition payload: "+err.Error())
		return
	}
	stored, err := h.service.Transition(c.Request.Context(), id, budget.Status(req.Status))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stored)
}

// ApplySchedule materialises a schedule template into the budget
func (h *BudgetHandler) ApplySchedule(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid budget ID")
		return
	}
	var req dto.ApplyScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid schedule payload: "+err.Error())
		return
	}
	scheduleID, err := uuid.Parse(req.ScheduleID)
	if err != nil {
		h.BadRequest(c, "Invalid schedule ID")
		return
	}
	stored, err := h.service.ApplySchedule(c.Request.Context(), id, scheduleID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stored)
}

// SetOverride pins a manual price on one line item
func (h *BudgetHandler) SetOverride(c *gin.Context) {
	var req dto.OverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid override payload: "+err.Error())
		return
	}
	h.mutateItem(c, func(item *budget.LineItem) error {
		return item.Override(req.Price)
	})
}

// ClearOverride removes a manual price; the schedule price applies again
func (h *BudgetHandler) ClearOverride(c *gin.Context) {
	h.mutateItem(c, func(item *budget.LineItem) error {
		item.ClearOverride()
		return nil
	})
}

// mutateItem loads the budget, applies the mutation to the addressed
// line item and saves through the service so re-resolution and audit
// logging run as for any other edit.
func (h *BudgetHandler) mutateItem(c *gin.Context, mutate func(*budget.LineItem) error) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid budget ID")
		return
	}
	serviceID, err := uuid.Parse(c.Param("serviceId"))
	if err != nil {
		h.BadRequest(c, "Invalid service ID")
		return
	}

	b, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	found := false
	for i := range b.LineItems {
		if b.LineItems[i].ServiceID == serviceID {
			if err := mutate(&b.LineItems[i]); err != nil {
				h.HandleError(c, err)
				return
			}
			found = true
			break
		}
	}
	if !found {
		h.NotFound(c, "Line item not found")
		return
	}

	stored, err := h.service.Save(c.Request.Context(), b)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stored)
}

func (h *BudgetHandler) budgetFromRequest(c *gin.Context, req dto.SaveBudgetRequest) (*budget.Budget, error) {
	var b *budget.Budget
	if req.ID != nil {
		id, err := uuid.Parse(*req.ID)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_INPUT", "Invalid budget ID")
		}
		existing, err := h.service.Get(c.Request.Context(), id)
		if err != nil {
			return nil, err
		}
		b = existing
	} else {
		b = budget.NewDraftBudget()
	}

	b.PropertyAddress = req.PropertyAddress
	b.PropertyType = req.PropertyType
	b.Notes = req.Notes
	b.ClientName = req.ClientName
	b.AgentName = req.AgentName

	b.PropertySize = nil
	if req.PropertySize != nil {
		size := catalog.PropertySize(*req.PropertySize)
		b.PropertySize = &size
	}
	var err error
	if b.SuburbID, err = parseOptionalID(req.SuburbID); err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid suburb ID")
	}
	if b.VendorID, err = parseOptionalID(req.VendorID); err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid vendor ID")
	}
	if b.ScheduleID, err = parseOptionalID(req.ScheduleID); err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid schedule ID")
	}
	items := make([]budget.LineItem, len(req.LineItems))
	for i, in := range req.LineItems {
		serviceID, err := uuid.Parse(in.ServiceID)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_INPUT", "Invalid line item service ID")
		}
		variantID, err := parseOptionalID(in.VariantID)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_INPUT", "Invalid line item variant ID")
		}
		items[i] = budget.LineItem{
			ServiceID:     serviceID,
			ServiceName:   in.ServiceName,
			VariantID:     variantID,
			VariantName:   in.VariantName,
			IsSelected:    in.IsSelected,
			SchedulePrice: in.SchedulePrice,
			OverridePrice: in.OverridePrice,
			IsOverridden:  in.IsOverridden,
		}
	}
	b.LineItems = items

	return b, nil
}

func parseOptionalID(raw *string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
