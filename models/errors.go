package models

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error codes for the normalized error taxonomy. Every failure that reaches
// a handler is one of these; transport-level error shapes never cross the
// gateway boundary.
const (
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeServerRejected   = "SERVER_REJECTED"
	CodeUnreachable      = "UNREACHABLE"
	CodeValidationFailed = "VALIDATION_FAILED"
)

// ErrorResponse is the standardized error body returned to clients. The
// message is suitable for direct display as a toast.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// AppError is the application error type carrying a taxonomy code.
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Predefined error constructors

func NewUnauthorizedError(message string) *AppError {
	if message == "" {
		message = "Authentication required"
	}
	return &AppError{Code: CodeUnauthorized, Message: message}
}

// NewServerRejectedError carries the upstream server's human-readable
// message through to the user.
func NewServerRejectedError(message string) *AppError {
	if message == "" {
		message = "The server rejected the request"
	}
	return &AppError{Code: CodeServerRejected, Message: message}
}

func NewUnreachableError(err error) *AppError {
	return &AppError{Code: CodeUnreachable, Message: "Cannot reach server", Err: err}
}

func NewValidationError(message string) *AppError {
	return &AppError{Code: CodeValidationFailed, Message: message}
}

// CodeOf returns the taxonomy code of err, or empty for foreign errors.
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

func IsUnauthorized(err error) bool { return CodeOf(err) == CodeUnauthorized }

// StatusOf maps a taxonomy code to an HTTP status.
func StatusOf(err error) int {
	switch CodeOf(err) {
	case CodeUnauthorized:
		return fiber.StatusUnauthorized
	case CodeValidationFailed:
		return fiber.StatusBadRequest
	case CodeServerRejected:
		return fiber.StatusUnprocessableEntity
	case CodeUnreachable:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// RespondWithError creates a standardized error response.
func RespondWithError(c *fiber.Ctx, err error) error {
	var response ErrorResponse

	var appErr *AppError
	if errors.As(err, &appErr) {
		response = ErrorResponse{
			Error: appErr.Message,
			Code:  appErr.Code,
		}
		if appErr.Err != nil {
			response.Details = appErr.Err.Error()
		}
	} else {
		response = ErrorResponse{Error: err.Error()}
	}

	return c.Status(StatusOf(err)).JSON(response)
}
