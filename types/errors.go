package types

import (
	"errors"
	"fmt"
)

// Standard error types
type ErrorType string

const (
	ErrTypeConfig          ErrorType = "CONFIG_ERROR"
	ErrTypeValidation      ErrorType = "VALIDATION_ERROR"
	ErrTypeInvalidValue    ErrorType = "INVALID_VALUE"
	ErrTypeNetwork         ErrorType = "NETWORK_ERROR"
	ErrTypeInternal        ErrorType = "INTERNAL_ERROR"
	ErrTypeNotFound        ErrorType = "NOT_FOUND"
	ErrTypeBadRequest      ErrorType = "BAD_REQUEST"
	ErrTypeRateLimit       ErrorType = "RATE_LIMIT"
	ErrTypeTimeout         ErrorType = "TIMEOUT"
	ErrTypePrecondition    ErrorType = "PRECONDITION_FAILED"
	ErrTypeUnauthenticated ErrorType = "UNAUTHENTICATED"
	ErrTypeUnauthorized    ErrorType = "UNAUTHORIZED"
	ErrTypeConflict        ErrorType = "CONFLICT"
	ErrTypeTransaction     ErrorType = "TRANSACTION_ERROR"
)

// StandardError provides consistent error formatting
type StandardError struct {
	Type    ErrorType
	Message string
	Details map[string]any
	Cause   error
}

func (e *StandardError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.Cause
}

// ErrorTypeOf returns the type of the first StandardError in err's chain,
// or ErrTypeInternal when there is none.
func ErrorTypeOf(err error) ErrorType {
	var se *StandardError
	if errors.As(err, &se) {
		return se.Type
	}
	return ErrTypeInternal
}

// IsErrorType reports whether err carries a StandardError of the given type.
func IsErrorType(err error, t ErrorType) bool {
	var se *StandardError
	return errors.As(err, &se) && se.Type == t
}

// Error constructors for common cases

func NewConfigError(msg string, cause error) error {
	return &StandardError{
		Type:    ErrTypeConfig,
		Message: msg,
		Cause:   cause,
	}
}

func NewValidationError(field, msg string) error {
	return &StandardError{
		Type:    ErrTypeValidation,
		Message: fmt.Sprintf("validation failed for %s: %s", field, msg),
		Details: map[string]any{"field": field},
	}
}

func NewInvalidValueError(field, value, msg string) error {
	return &StandardError{
		Type:    ErrTypeInvalidValue,
		Message: fmt.Sprintf("invalid value for %s: %s (%s)", field, value, msg),
		Details: map[string]any{"field": field, "value": value},
	}
}

func NewNetworkError(url string, cause error) error {
	return &StandardError{
		Type:    ErrTypeNetwork,
		Message: fmt.Sprintf("network request to %s failed", url),
		Details: map[string]any{"url": url},
		Cause:   cause,
	}
}

func NewNotFoundError(resource string) error {
	return &StandardError{
		Type:    ErrTypeNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Details: map[string]any{"resource": resource},
	}
}

func NewBadRequestError(msg string) error {
	return &StandardError{
		Type:    ErrTypeBadRequest,
		Message: msg,
	}
}

func NewRateLimitError(endpoint string) error {
	return &StandardError{
		Type:    ErrTypeRateLimit,
		Message: fmt.Sprintf("rate limit exceeded for endpoint: %s", endpoint),
		Details: map[string]any{"endpoint": endpoint},
	}
}

func NewTimeoutError(operation string) error {
	return &StandardError{
		Type:    ErrTypeTimeout,
		Message: fmt.Sprintf("%s operation timed out", operation),
		Details: map[string]any{"operation": operation},
	}
}

func NewInternalError(msg string, cause error) error {
	return &StandardError{
		Type:    ErrTypeInternal,
		Message: msg,
		Cause:   cause,
	}
}

func NewPreconditionError(action, msg string) error {
	return &StandardError{
		Type:    ErrTypePrecondition,
		Message: fmt.Sprintf("%s rejected: %s", action, msg),
		Details: map[string]any{"action": action},
	}
}

func NewUnauthorizedError(action, msg string) error {
	return &StandardError{
		Type:    ErrTypeUnauthorized,
		Message: fmt.Sprintf("%s not permitted: %s", action, msg),
		Details: map[string]any{"action": action},
	}
}

func NewUnauthenticatedError(scope, msg string) error {
	return &StandardError{
		Type:    ErrTypeUnauthenticated,
		Message: fmt.Sprintf("%s authentication failed: %s", scope, msg),
		Details: map[string]any{"scope": scope},
	}
}

func NewConflictError(action, key string) error {
	return &StandardError{
		Type:    ErrTypeConflict,
		Message: fmt.Sprintf("%s already in progress for %s", action, key),
		Details: map[string]any{"action": action, "key": key},
	}
}

func NewTransactionError(action string, cause error) error {
	return &StandardError{
		Type:    ErrTypeTransaction,
		Message: fmt.Sprintf("%s failed", action),
		Details: map[string]any{"action": action},
		Cause:   cause,
	}
}

func NewLimiterNotInitializedError() error {
	return &StandardError{
		Type:    ErrTypeConfig,
		Message: "rate limiter not initialized: call InitLimiter first",
	}
}

func NewAlreadyClaimedError(typeId uint64) error {
	return &StandardError{
		Type:    ErrTypeConflict,
		Message: fmt.Sprintf("token type %d is already held by this wallet", typeId),
		Details: map[string]any{"type_id": typeId},
	}
}
