package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Common errors
var (
	ErrNotFound           = &AppError{Code: http.StatusNotFound, Message: "Resource not found"}
	ErrUnauthorized       = &AppError{Code: http.StatusUnauthorized, Message: "Unauthorized"}
	ErrForbidden          = &AppError{Code: http.StatusForbidden, Message: "Forbidden"}
	ErrBadRequest         = &AppError{Code: http.StatusBadRequest, Message: "Bad request"}
	ErrInternalServer     = &AppError{Code: http.StatusInternalServerError, Message: "Internal server error"}
	ErrConflict           = &AppError{Code: http.StatusConflict, Message: "Resource already exists"}
	ErrInvalidCredentials = &AppError{Code: http.StatusUnauthorized, Message: "Invalid username or password"}
	ErrEmptyCart          = &AppError{Code: http.StatusBadRequest, Message: "No items in sale"}
)

// NewAppError creates a new application error
func NewAppError(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Message: resource + " not found",
	}
}

// NewConflictError creates a conflict error with a custom message
func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Message: message,
	}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

// ItemNotFoundError reports a cart line whose item reference could not be
// resolved against the catalog.
type ItemNotFoundError struct {
	Ref string
}

func (e *ItemNotFoundError) Error() string {
	return fmt.Sprintf("Item not found: %s", e.Ref)
}

// InsufficientStockError reports a requested quantity exceeding what the
// catalog currently holds. Available carries the stock at the time of the
// failed check so the caller can adjust the cart.
type InsufficientStockError struct {
	ItemName  string
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Insufficient stock for %s. Available: %d", e.ItemName, e.Available)
}

// DuplicateTransactionError reports a transaction number collision that
// survived the ledger append retries.
type DuplicateTransactionError struct {
	TransactionNumber string
}

func (e *DuplicateTransactionError) Error() string {
	return fmt.Sprintf("Duplicate transaction number: %s", e.TransactionNumber)
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError converts an error to an AppError, mapping the typed domain
// errors onto their HTTP status codes.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var notFound *ItemNotFoundError
	if errors.As(err, &notFound) {
		return &AppError{Code: http.StatusNotFound, Message: notFound.Error()}
	}

	var insufficient *InsufficientStockError
	if errors.As(err, &insufficient) {
		return &AppError{Code: http.StatusBadRequest, Message: insufficient.Error()}
	}

	var duplicate *DuplicateTransactionError
	if errors.As(err, &duplicate) {
		return &AppError{Code: http.StatusConflict, Message: duplicate.Error()}
	}

	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: err.Error(),
	}
}
