package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"smart-rw-svc/internal/apperr"
)

// APIResponse is the standard envelope for all API responses
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Code    string      `json:"code,omitempty"`
}

// PaginatedResponse wraps list data with pagination metadata
type PaginatedResponse struct {
	Items interface{} `json:"items"`
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
}

// SuccessResponse sends a 200 response with data
func SuccessResponse(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// CreatedResponse sends a 201 response with data
func CreatedResponse(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// BadRequestResponse sends a 400 response
func BadRequestResponse(c *gin.Context, message string, err error) {
	resp := APIResponse{
		Success: false,
		Message: message,
	}
	if err != nil {
		resp.Error = err.Error()
	}
	c.JSON(http.StatusBadRequest, resp)
}

// UnauthorizedResponse sends a 401 response
func UnauthorizedResponse(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, APIResponse{
		Success: false,
		Message: message,
		Code:    string(apperr.KindAuthRequired),
	})
}

// ForbiddenResponse sends a 403 response
func ForbiddenResponse(c *gin.Context, message string) {
	c.JSON(http.StatusForbidden, APIResponse{
		Success: false,
		Message: message,
		Code:    string(apperr.KindForbidden),
	})
}

// NotFoundResponse sends a 404 response
func NotFoundResponse(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, APIResponse{
		Success: false,
		Message: message,
		Code:    string(apperr.KindNotFound),
	})
}

// InternalServerErrorResponse sends a 500 response
func InternalServerErrorResponse(c *gin.Context, message string, err error) {
	resp := APIResponse{
		Success: false,
		Message: message,
	}
	if err != nil {
		resp.Error = err.Error()
	}
	c.JSON(http.StatusInternalServerError, resp)
}

// statusByKind is the stable error-kind to HTTP-status mapping.
// It must not vary by entity type.
var statusByKind = map[apperr.Kind]int{
	apperr.KindAuthRequired:        http.StatusUnauthorized,
	apperr.KindNotFound:            http.StatusNotFound,
	apperr.KindForbidden:           http.StatusForbidden,
	apperr.KindInvalidTransition:   http.StatusBadRequest,
	apperr.KindForbiddenTransition: http.StatusForbidden,
	apperr.KindInvalidInput:        http.StatusBadRequest,
	apperr.KindDuplicateNumber:     http.StatusConflict,
	apperr.KindEmailTaken:          http.StatusConflict,
	apperr.KindHasDependents:       http.StatusConflict,
}

// ErrorResponse maps a typed business error to its HTTP status.
// Untyped errors fall through to 500.
func ErrorResponse(c *gin.Context, err error) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		InternalServerErrorResponse(c, "Internal server error", err)
		return
	}
	status, ok := statusByKind[appErr.Kind]
	if !ok {
		InternalServerErrorResponse(c, "Internal server error", err)
		return
	}
	c.JSON(status, APIResponse{
		Success: false,
		Message: appErr.Message,
		Code:    string(appErr.Kind),
	})
}
