package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Container errors
const (
	// ErrCodeConfigValidation indicates a malformed container configuration.
	ErrCodeConfigValidation ErrorCode = "CONFIG_VALIDATION"
	// ErrCodeResolution indicates an alias could not be resolved.
	ErrCodeResolution ErrorCode = "RESOLUTION_FAILED"
	// ErrCodeInstantiation indicates an attempt to construct a non-constructible value.
	ErrCodeInstantiation ErrorCode = "INSTANTIATION_FAILED"
	// ErrCodeCyclicDependency indicates a cycle in the declared dependency graph.
	ErrCodeCyclicDependency ErrorCode = "CYCLIC_DEPENDENCY"
)

// Generic errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeNotFound indicates the requested resource was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeInternal indicates an internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// A failed resolution leaves the alias uncached, so a later Get may succeed
// once the cause (missing module, failing Init) is fixed.
var retryableCodes = map[ErrorCode]bool{
	ErrCodeResolution:       true,
	ErrCodeInstantiation:    false,
	ErrCodeConfigValidation: false,
	ErrCodeCyclicDependency: false,
	ErrCodeInternal:         false,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
