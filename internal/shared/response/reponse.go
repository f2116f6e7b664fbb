package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog/log"

	"blog-backend/internal/shared/authz"
)

type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *Error      `json:"error,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

type Error struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type Meta struct {
	Page  int `json:"page,omitempty"`
	Limit int `json:"limit,omitempty"`
	Total int `json:"total"`
}

// Success responses
func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Data:    data,
	})
}

func SuccessWithMeta(c *gin.Context, statusCode int, data interface{}, meta *Meta) {
	c.JSON(statusCode, Response{
		Success: true,
		Data:    data,
		Meta:    meta,
	})
}

// Error responses
func ErrorResponse(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Error: &Error{
			Code:    code,
			Message: message,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code, message string, details interface{}) {
	c.JSON(statusCode, Response{
		Success: false,
		Error: &Error{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// Common error responses
func BadRequest(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusBadRequest, "BAD_REQUEST", message)
}

func Unauthorized(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED", message)
}

func Forbidden(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusForbidden, "FORBIDDEN", message)
}

func NotFound(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", message)
}

func TooManyRequests(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusTooManyRequests, "TOO_MANY_REQUESTS", message)
}

func InternalServerError(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", message)
}

// =====================================================
// ERROR MAPPING
// =====================================================

// Mapping gán một sentinel error với HTTP status + code
type Mapping struct {
	Err    error
	Status int
	Code   string
}

// HandleError writes the envelope for err.
// Thứ tự: domain mappings → validation → authz → 500 (logged).
func HandleError(c *gin.Context, err error, mappings ...Mapping) {
	for _, m := range mappings {
		if errors.Is(err, m.Err) {
			ErrorResponse(c, m.Status, m.Code, m.Err.Error())
			return
		}
	}

	var verrs validation.Errors
	if errors.As(err, &verrs) {
		ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", verrs)
		return
	}

	switch {
	case errors.Is(err, authz.ErrUnauthenticated):
		Unauthorized(c, authz.ErrUnauthenticated.Error())
	case errors.Is(err, authz.ErrForbidden):
		Forbidden(c, authz.ErrForbidden.Error())
	default:
		log.Error().
			Err(err).
			Str("request_id", c.GetString("request_id")).
			Str("path", c.FullPath()).
			Msg("Unhandled error")
		InternalServerError(c, "internal server error")
	}
}
