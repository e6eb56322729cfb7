package errors

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// AppError represents an application error
type AppError struct {
	Code    int               `json:"-"`       // HTTP status code
	Message string            `json:"error"`   // Error message
	Details map[string]string `json:"details,omitempty"`
	Err     error             `json:"-"` // Original error
}

// Error returns the error message
func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the original error
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithMessage returns a copy of the AppError with a custom message
func (e *AppError) WithMessage(msg string) *AppError {
	return &AppError{
		Code:    e.Code,
		Message: msg,
		Details: e.Details,
		Err:     e.Err,
	}
}

// NewAppError creates a new application error
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func BadRequest(message string, err error) *AppError {
	return NewAppError(http.StatusBadRequest, message, err)
}

func Unauthorized(message string, err error) *AppError {
	return NewAppError(http.StatusUnauthorized, message, err)
}

func Forbidden(message string, err error) *AppError {
	return NewAppError(http.StatusForbidden, message, err)
}

func NotFound(message string, err error) *AppError {
	return NewAppError(http.StatusNotFound, message, err)
}

func Conflict(message string, err error) *AppError {
	return NewAppError(http.StatusConflict, message, err)
}

func UnprocessableEntity(message string, err error) *AppError {
	return NewAppError(http.StatusUnprocessableEntity, message, err)
}

func BadGateway(message string, err error) *AppError {
	return NewAppError(http.StatusBadGateway, message, err)
}

func Internal(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, "Internal server error", err)
}

// NewValidationError turns binding failures into a 422 carrying one entry per
// offending field.
func NewValidationError(err error) *AppError {
	appErr := UnprocessableEntity("Invalid input", err)

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		appErr.Details = make(map[string]string, len(verrs))
		for _, fe := range verrs {
			appErr.Details[fe.Field()] = fe.Tag()
		}
	}
	return appErr
}

// FieldError is a 422 for a single field, used by checks that run outside the
// validator.
func FieldError(field, message string) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: message,
		Details: map[string]string{field: message},
	}
}

// FromStatus maps an upstream status code to an AppError using table for the
// message. Statuses missing from table use fallback. Upstream 4xx keep their
// code; anything else becomes 502.
func FromStatus(status int, table map[int]string, fallback string, err error) *AppError {
	message, ok := table[status]
	if !ok {
		message = fallback
	}

	code := http.StatusBadGateway
	if status >= 400 && status < 500 {
		code = status
	}
	return NewAppError(code, message, err)
}

// As is a shorthand for errors.As on *AppError.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
