package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/propertyportal/budgeting/internal/application/budgeting"
	"github.com/propertyportal/budgeting/internal/domain/audit"
	"github.com/propertyportal/budgeting/internal/interfaces/http/dto"
)

// AuditHandler serves the change-history read side
type AuditHandler struct {
	BaseHandler
	service *budgeting.AuditService
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(service *budgeting.AuditService) *AuditHandler {
	return &AuditHandler{service: service}
}

// RegisterRoutes registers audit routes
func (h *AuditHandler) RegisterRoutes(rg *gin.RouterGroup) {
	trail := rg.Group("/audit")
	{
		trail.GET("", h.Recent)
		trail.GET("/:entityType/:entityId", h.History)
		trail.DELETE("", h.Clear)
	}
}

// Recent returns the newest entries across all entity kinds
func (h *AuditHandler) Recent(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			h.BadRequest(c, "Invalid limit")
			return
		}
		limit = parsed
	}
	entries, err := h.service.Recent(c.Request.Context(), limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toEntryResponses(entries))
}

// History returns all entries for one entity, newest first
func (h *AuditHandler) History(c *gin.Context) {
	entries, err := h.service.History(c.Request.Context(), c.Param("entityType"), c.Param("entityId"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toEntryResponses(entries))
}

// Clear wipes the audit trail
func (h *AuditHandler) Clear(c *gin.Context) {
	if err := h.service.Clear(c.Request.Context()); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

func toEntryResponses(entries []audit.Entry) []dto.AuditEntryResponse {
	out := make([]dto.AuditEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = dto.AuditEntryResponse{
			ID:          e.ID.String(),
			Timestamp:   e.Timestamp,
			User:        e.User,
			EntityType:  e.EntityType,
			EntityID:    e.EntityID,
			EntityLabel: e.EntityLabel,
			Action:      e.Action.String(),
			Summary:     e.Summary,
			Before:      e.Before,
			After:       e.After,
		}
	}
	return out
}
