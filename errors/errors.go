package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Retryable: IsRetryableCode(code),
	}
}

// --- Container error constructors ---

// ConfigValidation reports a malformed configuration value. path is "config"
// for the whole document, "<alias>" for an entry or "<alias>.<field>".
func ConfigValidation(path string) *AppError {
	return &AppError{
		Code: ErrCodeConfigValidation, Message: fmt.Sprintf("Invalid property : %s", path),
		Details: map[string]any{"field": path},
	}
}

// NotRegistered reports a Get for an alias the registry does not know.
func NotRegistered(alias string) *AppError {
	return &AppError{
		Code: ErrCodeResolution, Message: fmt.Sprintf("Alias '%s' is not registered!", alias),
		Retryable: true, Details: map[string]any{"alias": alias},
	}
}

// Resolution reports a failure while producing the value of an alias.
func Resolution(alias, message string) *AppError {
	return &AppError{
		Code: ErrCodeResolution, Message: message,
		Retryable: true, Details: map[string]any{"alias": alias},
	}
}

// EmptyResult reports a strategy that produced no usable value.
func EmptyResult(alias string) *AppError {
	return Resolution(alias, fmt.Sprintf("%s cannot be instantiated/fetched!", alias))
}

// Instantiation reports an instantiate strategy whose target is not constructible.
func Instantiation(alias string, target any) *AppError {
	return &AppError{
		Code:    ErrCodeInstantiation,
		Message: fmt.Sprintf("%s: %T is not constructible", alias, target),
		Details: map[string]any{"alias": alias, "type": fmt.Sprintf("%T", target)},
	}
}

// CyclicDependency reports a dependency chain that returns to one of its ancestors.
func CyclicDependency(chain []string) *AppError {
	path := strings.Join(chain, " -> ")
	return &AppError{
		Code:    ErrCodeCyclicDependency,
		Message: fmt.Sprintf("cyclic dependency detected: %s", path),
		Details: map[string]any{"chain": append([]string(nil), chain...)},
	}
}

// InvalidInput creates a new AppError for invalid input.
func InvalidInput(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("Invalid input: %s", reason),
		Details: details,
	}
}

// Validation creates a new AppError for validation errors.
func Validation(message string) *AppError {
	return &AppError{Code: ErrCodeInvalidInput, Message: message}
}

// NotFound creates a new AppError for a resource that was not found.
func NotFound(resource, id string) *AppError {
	details := map[string]any{"resource": resource}
	if id != "" {
		details["id"] = id
	}
	return &AppError{
		Code: ErrCodeNotFound, Message: fmt.Sprintf("The requested %s was not found.", resource),
		Details: details,
	}
}

// Internal creates a new AppError for an unexpected failure.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred.", Cause: cause,
	}
}

// --- Predicates ---

// HasCode reports whether any AppError in err's chain carries code.
func HasCode(err error, code ErrorCode) bool {
	for err != nil {
		var appErr *AppError
		if !stderrors.As(err, &appErr) {
			return false
		}
		if appErr.Code == code {
			return true
		}
		err = appErr.Cause
	}
	return false
}

// AsAppError returns the first AppError in err's chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsConfigValidation reports whether err is a configuration validation failure.
func IsConfigValidation(err error) bool { return HasCode(err, ErrCodeConfigValidation) }

// IsResolution reports whether err is a resolution failure.
func IsResolution(err error) bool { return HasCode(err, ErrCodeResolution) }

// IsInstantiation reports whether err is an instantiation failure.
func IsInstantiation(err error) bool { return HasCode(err, ErrCodeInstantiation) }

// IsCyclicDependency reports whether err is a dependency cycle.
func IsCyclicDependency(err error) bool { return HasCode(err, ErrCodeCyclicDependency) }
