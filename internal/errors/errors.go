package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnauthenticated is returned when no identity can be resolved for a write.
	ErrUnauthenticated = errors.New("not authenticated")
	// ErrStoreOperationFailed matches every StoreError.
	ErrStoreOperationFailed = errors.New("store operation failed")
	// ErrNoCategory is returned when a specialty is submitted without a category.
	ErrNoCategory = errors.New("category is required")
	// ErrInvalidCategory is returned for codes outside the category enumeration.
	ErrInvalidCategory = errors.New("unknown category")
	// ErrBusy is returned when a create is already in flight.
	ErrBusy = errors.New("a specialty is already being added")
	// ErrUnknownSpecialty is returned when an id is not in the displayed list.
	ErrUnknownSpecialty = errors.New("specialty not found")
	// ErrDuplicateCategory is returned when the store enforces one row per category.
	ErrDuplicateCategory = errors.New("specialty already added for this category")
	// ErrAccessDenied is returned when a row does not belong to the caller.
	ErrAccessDenied = errors.New("access denied")
)

// StoreError wraps a failure from a select, insert or delete against the store.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s specialty: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrStoreOperationFailed) true for every StoreError.
func (e *StoreError) Is(target error) bool {
	return target == ErrStoreOperationFailed
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return NewHTTPError(http.StatusUnauthorized, ErrUnauthenticated.Error(), "UNAUTHENTICATED")
	case errors.Is(err, ErrNoCategory):
		return NewHTTPError(http.StatusBadRequest, ErrNoCategory.Error(), "CATEGORY_REQUIRED")
	case errors.Is(err, ErrInvalidCategory):
		return NewHTTPError(http.StatusBadRequest, ErrInvalidCategory.Error(), "INVALID_CATEGORY")
	case errors.Is(err, ErrBusy):
		return NewHTTPError(http.StatusConflict, ErrBusy.Error(), "CREATE_IN_PROGRESS")
	case errors.Is(err, ErrUnknownSpecialty):
		return NewHTTPError(http.StatusNotFound, ErrUnknownSpecialty.Error(), "SPECIALTY_NOT_FOUND")
	case errors.Is(err, ErrDuplicateCategory):
		return NewHTTPError(http.StatusConflict, ErrDuplicateCategory.Error(), "DUPLICATE_CATEGORY")
	case errors.Is(err, ErrAccessDenied):
		return NewHTTPError(http.StatusForbidden, ErrAccessDenied.Error(), "ACCESS_DENIED")
	case errors.Is(err, ErrStoreOperationFailed):
		// underlying driver message stays in the logs
		return NewHTTPError(http.StatusBadGateway, ErrStoreOperationFailed.Error(), "STORE_OPERATION_FAILED")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
