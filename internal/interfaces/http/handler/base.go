package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/propertyportal/budgeting/internal/domain/budget"
	"github.com/propertyportal/budgeting/internal/domain/shared"
	"github.com/propertyportal/budgeting/internal/interfaces/http/dto"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response with the appropriate status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponse(code, message))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// NotFound sends a 404 not found response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, message)
}

// InternalError sends a 500 internal server error response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

// HandleError maps domain errors to HTTP responses. Workflow validation
// failures carry their full violation list; illegal transitions and
// domain errors map through the transport code table; anything unknown
// is an internal error.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var validationErr *budget.ValidationError
	if errors.As(err, &validationErr) {
		details := make([]dto.ViolationDetail, len(validationErr.Violations))
		for i, v := range validationErr.Violations {
			details[i] = dto.ViolationDetail{Rule: v.Rule, Message: v.Message}
		}
		c.JSON(http.StatusUnprocessableEntity, dto.NewValidationErrorResponse(
			dto.ErrCodeValidation,
			"Budget is not ready for approval",
			details,
		))
		return
	}

	var transitionErr *budget.IllegalTransitionError
	if errors.As(err, &transitionErr) {
		h.Error(c, http.StatusConflict, dto.ErrCodeIllegalTransition, transitionErr.Error())
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.NormalizeErrorCode(domainErr.Code)
		h.Error(c, dto.GetHTTPStatus(code), code, domainErr.Message)
		return
	}

	h.InternalError(c, "An unexpected error occurred")
}

// parseID binds and parses the :id path parameter
func parseID(c *gin.Context) (uuid.UUID, bool) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
