package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/xyz-asif/foundit/pkg/errors"
)

// ErrorResponse represents a standard error payload returned by the API
type ErrorResponse struct {
	Error  string   `json:"error" example:"Invalid token"`
	Code   string   `json:"code,omitempty" example:"AUTH_INVALID_TOKEN"`
	Fields []string `json:"fields,omitempty" example:"itemName"`
}

// SuccessResponse represents a standard success payload
type SuccessResponse struct {
	Status string      `json:"status" example:"success"`
	Data   interface{} `json:"data"`
}

// Success sends a 200 OK response with data
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, SuccessResponse{
		Status: "success",
		Data:   data,
	})
}

// Created sends a 201 Created response
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, SuccessResponse{
		Status: "success",
		Data:   data,
	})
}

// Error sends an error response with custom status code and message
func Error(c *gin.Context, statusCode int, message string, errorCode ...string) {
	code := ""
	if len(errorCode) > 0 {
		code = errorCode[0]
	}

	c.JSON(statusCode, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// BadRequest sends a 400 Bad Request error
func BadRequest(c *gin.Context, message string, errorCode ...string) {
	Error(c, http.StatusBadRequest, message, errorCode...)
}

// Unauthorized sends a 401 Unauthorized error
func Unauthorized(c *gin.Context, message string, errorCode ...string) {
	Error(c, http.StatusUnauthorized, message, errorCode...)
}

// NotFound sends a 404 Not Found error
func NotFound(c *gin.Context, message string, errorCode ...string) {
	Error(c, http.StatusNotFound, message, errorCode...)
}

// ValidationError sends a 422 Unprocessable Entity error
func ValidationError(c *gin.Context, message string, errorCode ...string) {
	Error(c, http.StatusUnprocessableEntity, message, errorCode...)
}

// InternalServerError sends a 500 Internal Server Error
func InternalServerError(c *gin.Context, message string, errorCode ...string) {
	Error(c, http.StatusInternalServerError, message, errorCode...)
}

// ServiceUnavailable sends a 503 Service Unavailable error
func ServiceUnavailable(c *gin.Context, message string, errorCode ...string) {
	Error(c, http.StatusServiceUnavailable, message, errorCode...)
}

// BindJSONError handles JSON decode errors in request body
func BindJSONError(c *gin.Context, err error) {
	BadRequest(c, "Invalid request format", "INVALID_JSON")
}

// ServiceError maps a typed service failure to its status code and error code.
// Backend error text is never exposed.
func ServiceError(c *gin.Context, err error) {
	switch apperrors.KindOf(err) {
	case apperrors.KindValidation:
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:  "Please fill in all required fields",
			Code:   "VALIDATION_FAILED",
			Fields: apperrors.MissingFields(err),
		})
	case apperrors.KindUnauthenticated:
		Unauthorized(c, "User not authenticated", "AUTH_REQUIRED")
	case apperrors.KindUpload:
		Error(c, http.StatusBadGateway, "Failed to upload image", "UPLOAD_FAILED")
	case apperrors.KindPersist:
		InternalServerError(c, "Report could not be saved. The image may already be stored, please don't resubmit blindly", "PERSIST_FAILED")
	case apperrors.KindFetch:
		ServiceUnavailable(c, "Reports are temporarily unavailable", "FETCH_FAILED")
	default:
		InternalServerError(c, "Internal server error", "INTERNAL_ERROR")
	}
}
