package utils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorKind classifies failures for the HTTP boundary.
type ErrorKind string

const (
	KindValidation   ErrorKind = "validation_error"
	KindNotFound     ErrorKind = "not_found"
	KindConflict     ErrorKind = "conflict"
	KindUnauthorized ErrorKind = "unauthorized"
	KindForbidden    ErrorKind = "forbidden"
	KindUnavailable  ErrorKind = "unavailable"
)

// AppError is a failure that is safe to show to the caller.
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

func NewValidationError(msg string) error {
	return &AppError{Kind: KindValidation, Message: msg}
}

func NewNotFoundError(msg string) error {
	return &AppError{Kind: KindNotFound, Message: msg}
}

func NewConflictError(msg string) error {
	return &AppError{Kind: KindConflict, Message: msg}
}

func NewUnauthorizedError(msg string) error {
	return &AppError{Kind: KindUnauthorized, Message: msg}
}

// NewForbiddenError is an Unauthorized failure for an authenticated caller acting on
// something that is not theirs.
func NewForbiddenError(msg string) error {
	return &AppError{Kind: KindForbidden, Message: msg}
}

// NewUnavailableError wraps a storage or transport failure.
func NewUnavailableError(msg string, err error) error {
	return &AppError{Kind: KindUnavailable, Message: msg, Err: err}
}

// OverlapError rejects a job acceptance that would double-book a sitter.
type OverlapError struct {
	BookingID            string
	ConflictingBookingID string
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("booking %s overlaps confirmed booking %s", e.BookingID, e.ConflictingBookingID)
}

// KindOf returns the kind of err, treating unknown errors as unavailable.
func KindOf(err error) ErrorKind {
	var overlap *OverlapError
	if errors.As(err, &overlap) {
		return KindConflict
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnavailable
}

// IsKind reports whether err is an AppError (or OverlapError) of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Message              string `json:"message"`
	Details              string `json:"details,omitempty"`
	Code                 string `json:"code,omitempty"`
	ConflictingBookingID string `json:"conflicting_booking_id,omitempty"`
}

// HandleErrors is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				Logger := GetLogger()
				Logger.Error("Unhandled panic", zap.Any("error", err))

				c.JSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, message string, details string) {
	Logger := GetLogger()
	Logger.Warn(message, zap.String("details", details))
	c.JSON(status, ErrorResponse{Message: message, Details: details})
}

// StatusFor maps an error kind to its HTTP status code.
func StatusFor(kind ErrorKind) int {
	switch kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// RespondError writes err as a structured response. Unavailable errors are logged
// with their cause and answered with a generic message.
func RespondError(c *gin.Context, err error) {
	kind := KindOf(err)
	status := StatusFor(kind)

	var overlap *OverlapError
	if errors.As(err, &overlap) {
		c.JSON(status, ErrorResponse{
			Message:              "booking overlaps another confirmed booking",
			Code:                 string(KindConflict),
			ConflictingBookingID: overlap.ConflictingBookingID,
		})
		return
	}

	if kind == KindUnavailable {
		GetLogger().Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		c.JSON(status, ErrorResponse{
			Message: "Internal Server Error",
			Details: "The service is temporarily unavailable. Please try again later.",
			Code:    string(kind),
		})
		return
	}

	var appErr *AppError
	errors.As(err, &appErr)
	c.JSON(status, ErrorResponse{Message: appErr.Message, Code: string(kind)})
}
