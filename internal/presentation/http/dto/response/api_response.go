package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/pos-ledger/pkg/apperror"
	"github.com/sangkips/pos-ledger/pkg/pagination"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Kind    apperror.Kind `json:"kind,omitempty"`
	Data    interface{}   `json:"data,omitempty"`
	Errors  interface{}   `json:"errors,omitempty"`
	Meta    *Meta         `json:"meta,omitempty"`
}

// Meta contains metadata about the response
type Meta struct {
	Timestamp string `json:"timestamp"`
	RequestID string `json:"request_id"`
}

// newMeta prefers the id set by the logger middleware
func newMeta(c *gin.Context) *Meta {
	requestID := c.GetString("request_id")
	if requestID == "" {
		requestID = c.GetHeader("X-Request-ID")
	}
	if requestID == "" {
		requestID = uuid.New().String()
	}
	return &Meta{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		RequestID: requestID,
	}
}

// Success sends a success response
func Success(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, APIResponse{
		Success: true,
		Message: message,
		Data:    data,
		Meta:    newMeta(c),
	})
}

// SuccessWithPagination sends one page of a list
func SuccessWithPagination[T any](c *gin.Context, statusCode int, message string, result *pagination.Result[T]) {
	c.JSON(statusCode, APIResponse{
		Success: true,
		Message: message,
		Data:    result,
		Meta:    newMeta(c),
	})
}

// Error sends an error response. The error kind is echoed so terminals can
// branch on it without parsing messages.
func Error(c *gin.Context, err error) {
	ErrorWithData(c, err, nil)
}

// ErrorWithData sends an error response that still carries a payload, such as
// a receipt that rendered but could not be printed.
func ErrorWithData(c *gin.Context, err error, data interface{}) {
	appErr := apperror.GetAppError(err)
	c.JSON(appErr.Code, APIResponse{
		Success: false,
		Message: appErr.Message,
		Kind:    appErr.Kind,
		Data:    data,
		Errors:  appErr.Errors,
		Meta:    newMeta(c),
	})
}

// ValidationError sends a 422 listing the offending fields
func ValidationError(c *gin.Context, errors []apperror.FieldError) {
	Error(c, apperror.NewValidationError(errors))
}

// Created sends a 201 Created response
func Created(c *gin.Context, message string, data interface{}) {
	Success(c, http.StatusCreated, message, data)
}

// OK sends a 200 OK response
func OK(c *gin.Context, message string, data interface{}) {
	Success(c, http.StatusOK, message, data)
}

// BadRequest sends a 400 Bad Request response
func BadRequest(c *gin.Context, message string) {
	Error(c, apperror.NewBadRequestError(message))
}
