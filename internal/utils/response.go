package utils

import (
	"errors"
	"net/http"
	"time"

	"gorent/internal/apperrors"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Status    string      `json:"status"`
	Message   string      `json:"message,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Error     *APIError   `json:"error,omitempty"`
	Meta      *Meta       `json:"meta,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

type APIError struct {
	Code    string                  `json:"code"`
	Message string                  `json:"message"`
	Details []apperrors.FieldError  `json:"details,omitempty"`
}

type Meta struct {
	Pagination *PaginationMeta `json:"pagination,omitempty"`
	Total      int64           `json:"total,omitempty"`
	Count      int             `json:"count,omitempty"`
}

func SuccessResponse(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{
		Status:    StatusSuccess,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	})
}

func SuccessResponseWithMeta(c *gin.Context, message string, data interface{}, meta *Meta) {
	c.JSON(http.StatusOK, APIResponse{
		Status:    StatusSuccess,
		Message:   message,
		Data:      data,
		Meta:      meta,
		Timestamp: time.Now(),
	})
}

func CreatedResponse(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{
		Status:    StatusSuccess,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	})
}

// RespondError is the single translation point from a tagged error to an
// HTTP response. Internal-kind errors hide their cause from the client.
func RespondError(c *gin.Context, err error) {
	status, code := statusOf(err)

	apiErr := &APIError{Code: code, Message: ErrInternalServer}
	var appErr *apperrors.Error
	if errors.As(err, &appErr) && appErr.Kind != apperrors.KindInternal {
		apiErr.Message = appErr.Message
		apiErr.Details = appErr.Fields
	}

	c.JSON(status, APIResponse{
		Status:    StatusError,
		Error:     apiErr,
		Timestamp: time.Now(),
	})
}

func statusOf(err error) (int, string) {
	switch apperrors.KindOf(err) {
	case apperrors.KindValidation:
		return http.StatusBadRequest, "VALIDATION_ERROR"
	case apperrors.KindUnauthorized:
		return http.StatusUnauthorized, "UNAUTHORIZED"
	case apperrors.KindForbidden:
		return http.StatusForbidden, "FORBIDDEN"
	case apperrors.KindNotFound:
		return http.StatusNotFound, "NOT_FOUND"
	case apperrors.KindConflict:
		return http.StatusConflict, "CONFLICT"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}
