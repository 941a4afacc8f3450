package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrInactive indicates that the target product has been deactivated.
var ErrInactive = errors.New("product is inactive")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrMissingChannel indicates an OUT or ALLOCATE transaction without a valid channel.
var ErrMissingChannel = errors.New("channel is required and must be valid")

// ErrInsufficientStock indicates a transaction that would drive a stock quantity negative.
var ErrInsufficientStock = errors.New("insufficient stock")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates a concurrent update conflict on a product snapshot.
var ErrConflict = errors.New("concurrent update conflict")

// AppError carries a status code and an underlying cause. Used mainly by the
// repository layer for storage failures, so callers can distinguish an
// inconclusive commit from a validation rejection.
type AppError struct {
	Code    int
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

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that satisfies errors.Is(err, ErrNotFound).
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
