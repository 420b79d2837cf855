// Package apperror provides structured error handling for the inventory platform.
// All business errors must use AppError for consistent API responses.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is a machine-readable error tag. The set is closed: every code maps to
// exactly one HTTP status in statusByCode.
type Code string

const (
	// Infrastructure errors (5xx)
	CodeInternal    = Code("INTERNAL_ERROR")
	CodePersistence = Code("PERSISTENCE_FAILURE")

	// Validation errors (400)
	CodeValidation      = Code("VALIDATION_ERROR")
	CodeInvalidEnvelope = Code("INVALID_BATCH_ENVELOPE")

	// Business rule violations (422)
	CodeUnavailable = Code("PRODUCT_NOT_AVAILABLE")

	// Authorization errors (401)
	CodeUnauthorized = Code("UNAUTHORIZED")

	// Not found (404)
	CodeNotFound = Code("NOT_FOUND")
)

// statusByCode is the single source of truth for error-to-transport mapping.
var statusByCode = map[Code]int{
	CodeInternal:        http.StatusInternalServerError,
	CodePersistence:     http.StatusBadGateway,
	CodeValidation:      http.StatusBadRequest,
	CodeInvalidEnvelope: http.StatusBadRequest,
	CodeUnavailable:     http.StatusUnprocessableEntity,
	CodeUnauthorized:    http.StatusUnauthorized,
	CodeNotFound:        http.StatusNotFound,
}

// AppError is the standard error type for the platform.
// It implements error interface and provides structured details for API responses.
type AppError struct {
	// Code is a machine-readable error identifier
	Code Code `json:"code"`

	// Message is a human-readable error description
	Message string `json:"message"`

	// Details contains additional context (field errors, quantities, etc.)
	Details map[string]any `json:"details,omitempty"`

	// Err is the underlying error (not exposed in JSON)
	Err error `json:"-"`
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the transport status for the error's code.
func (e *AppError) HTTPStatus() int {
	if status, ok := statusByCode[e.Code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// WithDetail adds a key-value pair to error details
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithCause sets the underlying error
func (e *AppError) WithCause(err error) *AppError {
	e.Err = err
	return e
}

// --- Factory functions for common errors ---

// NewValidation creates a validation error (400)
func NewValidation(message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
	}
}

// NewNotFound creates a not found error (404)
func NewNotFound(entity string, id any) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s not found", entity),
		Details: map[string]any{"entity": entity, "id": id},
	}
}

// NewUnavailable signals that a warehouse cannot supply every component of a product.
func NewUnavailable(productID, warehouseID any) *AppError {
	return &AppError{
		Code:    CodeUnavailable,
		Message: "product is not in stock at this warehouse",
		Details: map[string]any{"product_id": productID, "warehouse_id": warehouseID},
	}
}

// NewInvalidEnvelope signals an unrecognized upload folder or malformed batch envelope.
func NewInvalidEnvelope(message string) *AppError {
	return &AppError{
		Code:    CodeInvalidEnvelope,
		Message: message,
	}
}

// NewPersistence creates a persistence failure error (502)
func NewPersistence(err error) *AppError {
	return &AppError{
		Code:    CodePersistence,
		Message: "write rejected by storage",
		Err:     err,
	}
}

// NewInternal creates an internal server error (hides details from client)
func NewInternal(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "Internal server error",
		Err:     err,
	}
}

// NewUnauthorized creates an authentication error (401)
func NewUnauthorized(message string) *AppError {
	return &AppError{
		Code:    CodeUnauthorized,
		Message: message,
	}
}

// --- Helper functions ---

// AsAppError extracts AppError from error chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// GetHTTPStatus returns appropriate HTTP status for any error
func GetHTTPStatus(err error) int {
	if appErr, ok := AsAppError(err); ok {
		return appErr.HTTPStatus()
	}
	return http.StatusInternalServerError
}

// IsNotFound checks if error is CodeNotFound
func IsNotFound(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code == CodeNotFound
	}
	return false
}

// IsCode checks if error carries the given code.
func IsCode(err error, code Code) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code == code
	}
	return false
}
