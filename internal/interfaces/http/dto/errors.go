package dto

import "net/http"

// Error code constants
// Format: ERR_<CATEGORY>_<DESCRIPTION>
const (
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeAlreadyExists is used when trying to create a duplicate resource
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	// ErrCodeInvalidState is used when an operation is invalid for current state
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	// ErrCodeValidation is used when workflow field checks fail
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeIllegalTransition is used for status moves absent from the workflow graph
	ErrCodeIllegalTransition = "ERR_ILLEGAL_TRANSITION"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:          http.StatusInternalServerError,
	ErrCodeBadRequest:        http.StatusBadRequest,
	ErrCodeInvalidInput:      http.StatusBadRequest,
	ErrCodeNotFound:          http.StatusNotFound,
	ErrCodeAlreadyExists:     http.StatusConflict,
	ErrCodeInvalidState:      http.StatusUnprocessableEntity,
	ErrCodeValidation:        http.StatusUnprocessableEntity,
	ErrCodeIllegalTransition: http.StatusConflict,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Returns 500 Internal Server Error if the error code is not found.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// domainErrorCodeMapping maps domain error codes to transport codes
var domainErrorCodeMapping = map[string]string{
	"NOT_FOUND":             ErrCodeNotFound,
	"ALREADY_EXISTS":        ErrCodeAlreadyExists,
	"INVALID_INPUT":         ErrCodeInvalidInput,
	"INVALID_STATE":         ErrCodeInvalidState,
	"INVALID_STATUS":        ErrCodeInvalidInput,
	"INVALID_OVERRIDE":      ErrCodeInvalidInput,
	"INVALID_SERVICE_NAME":  ErrCodeInvalidInput,
	"INVALID_VARIANT_NAME":  ErrCodeInvalidInput,
	"INVALID_SCHEDULE_NAME": ErrCodeInvalidInput,
	"INVALID_SUBURB_NAME":   ErrCodeInvalidInput,
	"INVALID_VENDOR_NAME":   ErrCodeInvalidInput,
	"INVALID_SELECTOR":      ErrCodeInvalidInput,
	"INVALID_PRICE":         ErrCodeInvalidInput,
	"INVALID_TIER":          ErrCodeInvalidInput,
	"EMPTY_VARIANTS":        ErrCodeInvalidInput,
}

// NormalizeErrorCode converts a domain error code to the transport
// format. Unknown codes pass through as-is.
func NormalizeErrorCode(code string) string {
	if normalized, ok := domainErrorCodeMapping[code]; ok {
		return normalized
	}
	return code
}
