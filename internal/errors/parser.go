package errors

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ErrorInfo is a parsed storage error
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseAndRespond parses a storage error and writes the standard error
// response. defaultStatus is used unless the parsed code implies a more
// specific one.
func ParseAndRespond(c *gin.Context, defaultStatus int, err error, context string) {
	info := ParseError(err, context)

	status := defaultStatus
	switch info.Code {
	case ResourceNotFound:
		status = http.StatusNotFound
	case ResourceAlreadyExists, ResourceConflict, AuthLoginExists, AuthEmailExists, BrandAlreadyExists:
		status = http.StatusConflict
	case ValidationRequired:
		status = http.StatusBadRequest
	}

	RespondWithError(c, status, info.Code, info.Message)
}

// ParseError converts a raw storage error into a stable code and a message
// safe to show to callers. Credentials and SQL text never leak through here.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "An internal error occurred",
		}
	}

	errStr := strings.ToLower(err.Error())

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: getNotFoundMessage(context),
		}
	}

	// Unique constraint violation (postgres 23505, sqlite "UNIQUE constraint failed")
	if strings.Contains(errStr, "duplicate key") || strings.Contains(errStr, "unique constraint") {
		return parseDuplicateKeyError(errStr)
	}

	// Foreign key constraint violation (postgres 23503)
	if strings.Contains(errStr, "foreign key constraint") {
		if strings.Contains(errStr, "still referenced") {
			return ErrorInfo{
				Code:    ResourceConflict,
				Message: "The record is referenced by other data and cannot be deleted",
			}
		}
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: "Referenced record does not exist",
		}
	}

	// Not null constraint violation (postgres 23502)
	if strings.Contains(errStr, "null value") && strings.Contains(errStr, "not-null constraint") {
		return ErrorInfo{
			Code:    ValidationRequired,
			Message: "A required field is missing",
		}
	}

	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "timeout") {
		return ErrorInfo{
			Code:    InternalDatabaseError,
			Message: "Storage is temporarily unavailable. Please try again later",
		}
	}

	return ErrorInfo{
		Code:    InternalServerError,
		Message: "An internal error occurred. Please try again later",
	}
}

func parseDuplicateKeyError(errStr string) ErrorInfo {
	if strings.Contains(errStr, "login") {
		return ErrorInfo{
			Code:    AuthLoginExists,
			Message: "This login is already taken",
		}
	}
	if strings.Contains(errStr, "email") {
		return ErrorInfo{
			Code:    AuthEmailExists,
			Message: "This email is already registered",
		}
	}
	if strings.Contains(errStr, "brands") || strings.Contains(errStr, "idx_brands_name") {
		return ErrorInfo{
			Code:    BrandAlreadyExists,
			Message: "A brand with this name already exists",
		}
	}
	if strings.Contains(errStr, "pkey") || strings.Contains(errStr, "primary key") {
		return ErrorInfo{
			Code:    ResourceAlreadyExists,
			Message: "A record with this id already exists",
		}
	}
	return ErrorInfo{
		Code:    ResourceAlreadyExists,
		Message: "The record already exists",
	}
}

func getNotFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	if strings.Contains(contextLower, "product") {
		return "Product not found"
	}
	if strings.Contains(contextLower, "brand") {
		return "Brand not found"
	}
	if strings.Contains(contextLower, "user") {
		return "User not found"
	}
	if strings.Contains(contextLower, "comment") {
		return "Comment not found"
	}
	if strings.Contains(contextLower, "cart") {
		return "Cart item not found"
	}

	return "The requested record was not found"
}
