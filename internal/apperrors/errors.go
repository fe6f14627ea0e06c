package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates the request conflicts with the current state of the resource
// (e.g. posting an entry that is already posted).
var ErrConflict = errors.New("conflict with current state")

// ErrUnauthorized indicates the caller could not be identified.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the caller is not allowed to perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrInternal is returned when an unexpected infrastructure failure occurs.
var ErrInternal = errors.New("internal error")

// ErrUnbalancedEntry indicates journal lines whose debits and credits differ by more than the tolerance.
var ErrUnbalancedEntry = errors.New("journal entry is unbalanced")

// ErrOverpayment indicates a payment larger than the outstanding balance it settles.
var ErrOverpayment = errors.New("payment exceeds outstanding balance")

// ErrMissingExchangeRate is the soft failure of a currency conversion. Conversions never return it
// to callers; it is only used to tag log records.
var ErrMissingExchangeRate = errors.New("exchange rate not available")

// AppError wraps an infrastructure error with a status-like code and a readable message.
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

// Unwrap exposes the wrapped error so errors.Is keeps working through repositories.
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError. A nil err is replaced by ErrInternal for 5xx codes.
func NewAppError(code int, message string, err error) *AppError {
	if err == nil && code >= 500 {
		err = ErrInternal
	}
	return &AppError{Code: code, Message: message, Err: err}
}

// NewValidationError returns an error wrapping ErrValidation.
func NewValidationError(message string) error {
	return fmt.Errorf("%w: %s", ErrValidation, message)
}

// NewNotFoundError returns an error wrapping ErrNotFound.
func NewNotFoundError(message string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, message)
}
