package dto

import "net/http"

// Error codes shared between the domain layer and the API surface.
// Domain errors carry these codes directly; the API layer only maps
// them to HTTP statuses.

// General error codes
const (
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "INTERNAL_ERROR"
	// ErrCodeStorage is used when persistence fails on a valid request
	ErrCodeStorage = "STORAGE_ERROR"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "BAD_REQUEST"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "NOT_FOUND"
	// ErrCodeAlreadyExists is used when trying to create a duplicate resource
	ErrCodeAlreadyExists = "ALREADY_EXISTS"
	// ErrCodeConcurrencyConflict is used when optimistic locking fails
	ErrCodeConcurrencyConflict = "CONCURRENCY_CONFLICT"
)

// Business rule error codes
const (
	// ErrCodeInvalidState is used when an operation is invalid for the current state
	ErrCodeInvalidState = "INVALID_STATE"
	// ErrCodeInsufficientStock is used when stock cannot cover a shipment
	ErrCodeInsufficientStock = "INSUFFICIENT_STOCK"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeStorage:    http.StatusInternalServerError,
	ErrCodeBadRequest: http.StatusBadRequest,

	// Resource errors
	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,

	// Business rule violations -> 422 Unprocessable Entity
	ErrCodeInvalidState:      http.StatusUnprocessableEntity,
	ErrCodeInsufficientStock: http.StatusUnprocessableEntity,
	"EMPTY_OFFER":            http.StatusUnprocessableEntity,
	"DUPLICATE_PRODUCT":      http.StatusUnprocessableEntity,
	"INVALID_TARGET":         http.StatusUnprocessableEntity,
	"INVALID_CATEGORY":       http.StatusUnprocessableEntity,
	"INVALID_SUPPLIER":       http.StatusUnprocessableEntity,
	"INVALID_PRODUCT":        http.StatusUnprocessableEntity,
	"INVALID_OFFER":          http.StatusUnprocessableEntity,

	// Input validation -> 400 Bad Request
	"INVALID_INPUT":    http.StatusBadRequest,
	"INVALID_NAME":     http.StatusBadRequest,
	"INVALID_EMAIL":    http.StatusBadRequest,
	"INVALID_PRICE":    http.StatusBadRequest,
	"INVALID_COST":     http.StatusBadRequest,
	"INVALID_STOCK":    http.StatusBadRequest,
	"INVALID_QUANTITY": http.StatusBadRequest,
	"INVALID_RANGE":    http.StatusBadRequest,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Returns 500 Internal Server Error if the error code is not found.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
