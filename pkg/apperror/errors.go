package apperror

import (
	"errors"
	"net/http"
)

// Kind classifies a domain failure independently of its transport mapping.
type Kind string

const (
	KindInvalidInput         Kind = "invalid_input"
	KindInvalidRecipe        Kind = "invalid_recipe"
	KindInvalidUsage         Kind = "invalid_usage"
	KindInvalidQuantity      Kind = "invalid_quantity"
	KindInvalidDiscount      Kind = "invalid_discount"
	KindInvalidDelta         Kind = "invalid_delta"
	KindDuplicateName        Kind = "duplicate_name"
	KindDuplicateSku         Kind = "duplicate_sku"
	KindNotFound             Kind = "not_found"
	KindEmptyOrder           Kind = "empty_order"
	KindMissingPaymentMethod Kind = "missing_payment_method"
	KindInsufficientStock    Kind = "insufficient_stock"
	KindPrinterUnavailable   Kind = "printer_unavailable"
	KindInternal             Kind = "internal"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int          `json:"code"`
	Kind    Kind         `json:"kind"`
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

// Is matches any AppError of the same kind, so sentinels work with errors.Is.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels for errors.Is comparisons.
var (
	ErrInvalidInput         = &AppError{Code: http.StatusBadRequest, Kind: KindInvalidInput, Message: "Invalid input"}
	ErrInvalidRecipe        = &AppError{Code: http.StatusUnprocessableEntity, Kind: KindInvalidRecipe, Message: "Invalid recipe"}
	ErrInvalidUsage         = &AppError{Code: http.StatusUnprocessableEntity, Kind: KindInvalidUsage, Message: "Invalid ingredient usage"}
	ErrInvalidQuantity      = &AppError{Code: http.StatusBadRequest, Kind: KindInvalidQuantity, Message: "Quantity must be positive"}
	ErrInvalidDiscount      = &AppError{Code: http.StatusBadRequest, Kind: KindInvalidDiscount, Message: "Invalid discount amount"}
	ErrInvalidDelta         = &AppError{Code: http.StatusBadRequest, Kind: KindInvalidDelta, Message: "Invalid stock delta"}
	ErrDuplicateName        = &AppError{Code: http.StatusConflict, Kind: KindDuplicateName, Message: "Name already exists"}
	ErrDuplicateSku         = &AppError{Code: http.StatusConflict, Kind: KindDuplicateSku, Message: "SKU already exists"}
	ErrNotFound             = &AppError{Code: http.StatusNotFound, Kind: KindNotFound, Message: "Resource not found"}
	ErrEmptyOrder           = &AppError{Code: http.StatusUnprocessableEntity, Kind: KindEmptyOrder, Message: "Cannot finalize sale: order is empty"}
	ErrMissingPaymentMethod = &AppError{Code: http.StatusUnprocessableEntity, Kind: KindMissingPaymentMethod, Message: "Payment method is required to finalize sale"}
	ErrInsufficientStock    = &AppError{Code: http.StatusConflict, Kind: KindInsufficientStock, Message: "Insufficient stock"}
	ErrPrinterUnavailable   = &AppError{Code: http.StatusServiceUnavailable, Kind: KindPrinterUnavailable, Message: "Printer unavailable"}
	ErrInternalServer       = &AppError{Code: http.StatusInternalServerError, Kind: KindInternal, Message: "Internal server error"}
)

// Wrap copies a sentinel with a specific message.
func Wrap(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:    sentinel.Code,
		Kind:    sentinel.Kind,
		Message: message,
	}
}

// NewValidationError creates an invalid-input error carrying per-field details
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Kind:    KindInvalidInput,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

// NewInvalidInputError creates an invalid-input error for one field
func NewInvalidInputError(field, message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Kind:    KindInvalidInput,
		Message: message,
		Errors:  []FieldError{{Field: field, Message: message}},
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return Wrap(ErrNotFound, resource+" not found")
}

// NewDuplicateNameError reports a case-insensitive name collision
func NewDuplicateNameError(resource, name string) *AppError {
	return Wrap(ErrDuplicateName, resource+` with name "`+name+`" already exists`)
}

// NewDuplicateSkuError reports a case-insensitive SKU collision
func NewDuplicateSkuError(sku string) *AppError {
	return Wrap(ErrDuplicateSku, `product with SKU "`+sku+`" already exists`)
}

// NewInsufficientStockError lists the shortfalls that blocked a sale
func NewInsufficientStockError(shortfalls []FieldError) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Kind:    KindInsufficientStock,
		Message: "Insufficient stock to complete sale",
		Errors:  shortfalls,
	}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return Wrap(ErrInvalidInput, message)
}

// KindOf returns the error kind, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(ErrInternalServer, err.Error())
}
