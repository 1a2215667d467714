package errors_utils

import (
	"errors"
	"fmt"
	"net/http"

	"pmtrack/internal/util/logger"

	"github.com/gin-gonic/gin"
)

type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return e.Entity + " not found"
}

type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string {
	return e.Message
}

type ValidationError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}

	return e.Message
}

type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func NewNotFoundError(entity string) error {
	return &NotFoundError{Entity: entity}
}

func NewForbiddenError(message string) error {
	return &ForbiddenError{Message: message}
}

func NewValidationError(code, message, field string) error {
	return &ValidationError{Code: code, Message: message, Field: field}
}

func NewConflictError(message string) error {
	return &ConflictError{Message: message}
}

func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

func IsForbidden(err error) bool {
	var target *ForbiddenError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// HasCode reports whether err is a ValidationError with the given code
func HasCode(err error, code string) bool {
	var target *ValidationError
	return errors.As(err, &target) && target.Code == code
}

func IsConflict(err error) bool {
	var target *ConflictError
	return errors.As(err, &target)
}

// HTTPStatus maps the error taxonomy onto response codes. Anything
// untyped is an internal failure.
func HTTPStatus(err error) int {
	switch {
	case IsNotFound(err):
		return http.StatusNotFound
	case IsForbidden(err):
		return http.StatusForbidden
	case IsValidation(err):
		return http.StatusBadRequest
	case IsConflict(err):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func RespondWithError(ctx *gin.Context, err error) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		logger.GetLogger().Error(
			"request failed",
			"method", ctx.Request.Method,
			"path", ctx.FullPath(),
			"error", err,
		)
		ctx.JSON(status, gin.H{"error": "Internal server error"})
		return
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		ctx.JSON(status, gin.H{
			"error": err.Error(),
			"code":  validationErr.Code,
			"field": validationErr.Field,
		})
		return
	}

	ctx.JSON(status, gin.H{"error": err.Error()})
}
