package apierr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ErrorResponse defines the structure of an error response
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Error represents an API error
type Error struct {
	Message    string
	StatusCode int
	Code       string
}

// Error implements the error interface
func (e *Error) Error() string {
	return e.Message
}

// Common API errors
var (
	ErrBadRequest       = &Error{Message: "Invalid request", StatusCode: http.StatusBadRequest, Code: "BAD_REQUEST"}
	ErrUnsupportedMedia = &Error{Message: "Unsupported media type", StatusCode: http.StatusUnsupportedMediaType, Code: "UNSUPPORTED_MEDIA_TYPE"}
	ErrNotFound         = &Error{Message: "Resource not found", StatusCode: http.StatusNotFound, Code: "NOT_FOUND"}
	ErrPayloadTooLarge  = &Error{Message: "Upload too large", StatusCode: http.StatusRequestEntityTooLarge, Code: "PAYLOAD_TOO_LARGE"}
	ErrInternalServer   = &Error{Message: "Internal server error", StatusCode: http.StatusInternalServerError, Code: "INTERNAL_ERROR"}
)

// Respond writes an error response. Unexpected errors are logged on the
// injected logger and converted to a generic 500 with no internal detail
// leaked.
func Respond(c *gin.Context, log *logrus.Logger, err error) {
	var apiError *Error
	if errors.As(err, &apiError) {
		c.JSON(apiError.StatusCode, ErrorResponse{
			Message: apiError.Message,
			Code:    apiError.Code,
		})
		return
	}

	if log == nil {
		log = logrus.StandardLogger()
	}
	log.WithError(err).Error("Unhandled error")
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Message: "Internal server error",
		Code:    "INTERNAL_ERROR",
	})
}

// NewBadRequest creates a bad request error with a custom message
func NewBadRequest(message string) *Error {
	return &Error{
		Message:    message,
		StatusCode: http.StatusBadRequest,
		Code:       "BAD_REQUEST",
	}
}

// NewError creates a new API error with custom details
func NewError(message string, statusCode int, code string) *Error {
	return &Error{
		Message:    message,
		StatusCode: statusCode,
		Code:       code,
	}
}
