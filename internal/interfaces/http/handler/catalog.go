package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/propertyportal/budgeting/internal/application/budgeting"
	"github.com/propertyportal/budgeting/internal/domain/catalog"
	"github.com/propertyportal/budgeting/internal/domain/schedule"
)

// CatalogHandler serves the reference data: services, schedules,
// suburbs, vendors and the bulk dataset operations.
type CatalogHandler struct {
	BaseHandler
	service *budgeting.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(service *budgeting.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// RegisterRoutes registers catalog routes
func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	services := rg.Group("/services")
	{
		services.GET("", h.ListServices)
		services.POST("", h.SaveService)
		services.GET("/:id", h.GetService)
		services.PUT("/:id", h.SaveService)
		services.DELETE("/:id", h.DeleteService)
	}

	schedules := rg.Group("/schedules")
	{
		schedules.GET("", h.ListSchedules)
		schedules.POST("", h.SaveSchedule)
		schedules.GET("/:id", h.GetSchedule)
		schedules.PUT("/:id", h.SaveSchedule)
		schedules.DELETE("/:id", h.DeleteSchedule)
	}

	suburbs := rg.Group("/suburbs")
	{
		suburbs.GET("", h.ListSuburbs)
		suburbs.POST("", h.SaveSuburb)
		suburbs.DELETE("/:id", h.DeleteSuburb)
	}

	vendors := rg.Group("/vendors")
	{
		vendors.GET("", h.ListVendors)
		vendors.POST("", h.SaveVendor)
		vendors.DELETE("/:id", h.DeleteVendor)
	}

	data := rg.Group("/data")
	{
		data.POST("/seed", h.Seed)
		data.GET("/export", h.Export)
		data.POST("/import", h.Import)
		data.DELETE("", h.Reset)
	}
}

// ListServices returns all catalogue services
func (h *CatalogHandler) ListServices(c *gin.Context) {
	services, err := h.service.ListServices(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, services)
}

// GetService returns one catalogue service
func (h *CatalogHandler) GetService(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid service ID")
		return
	}
	svc, err := h.service.GetService(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, svc)
}

// SaveService upserts a catalogue service
func (h *CatalogHandler) SaveService(c *gin.Context) {
	var svc catalog.Service
	if err := c.ShouldBindJSON(&svc); err != nil {
		h.BadRequest(c, "Invalid service payload: "+err.Error())
		return
	}
	created := svc.IsNew()
	stored, err := h.service.SaveService(c.Request.Context(), &svc)
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

// DeleteService removes a catalogue service
func (h *CatalogHandler) DeleteService(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid service ID")
		return
	}
	if err := h.service.DeleteService(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListSchedules returns all schedule templates
func (h *CatalogHandler) ListSchedules(c *gin.Context) {
	schedules, err := h.service.ListSchedules(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, schedules)
}

// GetSchedule returns one schedule template
func (h *CatalogHandler) GetSchedule(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid schedule ID")
		return
	}
	sch, err := h.service.GetSchedule(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sch)
}

// SaveSchedule upserts a schedule template
func (h *CatalogHandler) SaveSchedule(c *gin.Context) {
	var sch schedule.Schedule
	if err := c.ShouldBindJSON(&sch); err != nil {
		h.BadRequest(c, "Invalid schedule payload: "+err.Error())
		return
	}
	created := sch.IsNew()
	stored, err := h.service.SaveSchedule(c.Request.Context(), &sch)
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

// DeleteSchedule removes a schedule template
func (h *CatalogHandler) DeleteSchedule(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid schedule ID")
		return
	}
	if err := h.service.DeleteSchedule(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListSuburbs returns all suburb reference records
func (h *CatalogHandler) ListSuburbs(c *gin.Context) {
	suburbs, err := h.service.ListSuburbs(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, suburbs)
}

// SaveSuburb upserts a suburb reference record
func (h *CatalogHandler) SaveSuburb(c *gin.Context) {
	var suburb catalog.Suburb
	if err := c.ShouldBindJSON(&suburb); err != nil {
		h.BadRequest(c, "Invalid suburb payload: "+err.Error())
		return
	}
	created := suburb.IsNew()
	stored, err := h.service.SaveSuburb(c.Request.Context(), &suburb)
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

// DeleteSuburb removes a suburb reference record
func (h *CatalogHandler) DeleteSuburb(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid suburb ID")
		return
	}
	if err := h.service.DeleteSuburb(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListVendors returns all vendor reference records
func (h *CatalogHandler) ListVendors(c *gin.Context) {
	vendors, err := h.service.ListVendors(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, vendors)
}

// SaveVendor upserts a vendor reference record
func (h *CatalogHandler) SaveVendor(c *gin.Context) {
	var vendor catalog.Vendor
	if err := c.ShouldBindJSON(&vendor); err != nil {
		h.BadRequest(c, "Invalid vendor payload: "+err.Error())
		return
	}
	created := vendor.IsNew()
	stored, err := h.service.SaveVendor(c.Request.Context(), &vendor)
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

// DeleteVendor removes a vendor reference record
func (h *CatalogHandler) DeleteVendor(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid vendor ID")
		return
	}
	if err := h.service.DeleteVendor(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Seed loads a dataset snapshot in bulk
func (h *CatalogHandler) Seed(c *gin.Context) {
	var snap budgeting.Snapshot
	if err := c.ShouldBindJSON(&snap); err != nil {
		h.BadRequest(c, "Invalid seed payload: "+err.Error())
		return
	}
	if err := h.service.Seed(c.Request.Context(), snap); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Export returns the whole dataset as a snapshot
func (h *CatalogHandler) Export(c *gin.Context) {
	snap, err := h.service.Export(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, snap)
}

// Import replaces the whole dataset with the snapshot's contents
func (h *CatalogHandler) Import(c *gin.Context) {
	var snap budgeting.Snapshot
	if err := c.ShouldBindJSON(&snap); err != nil {
		h.BadRequest(c, "Invalid import payload: "+err.Error())
		return
	}
	if err := h.service.Import(c.Request.Context(), snap); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Reset clears every store
func (h *CatalogHandler) Reset(c *gin.Context) {
	if err := h.service.Reset(c.Request.Context()); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
