package inspect

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/aliasdi/errors"
)

// DataResponse is the standard success envelope.
type DataResponse struct {
	Data any   `json:"data"`
	Meta *Meta `json:"meta,omitempty"`
}

// Meta carries response metadata.
type Meta struct {
	Total int    `json:"total"`
	Scope string `json:"scope,omitempty"`
}

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody describes a failed request. Alias and Chain are lifted out of
// the error details for container failures.
type ErrorBody struct {
	Code      apperrors.ErrorCode `json:"code"`
	Message   string              `json:"message"`
	Retryable bool                `json:"retryable"`
	Alias     string              `json:"alias,omitempty"`
	Chain     []string            `json:"chain,omitempty"`
	Details   map[string]any      `json:"details,omitempty"`
}

// NewErrorResponse builds the reply body for appErr.
func NewErrorResponse(appErr *apperrors.AppError) ErrorResponse {
	body := ErrorBody{
		Code:      appErr.Code,
		Message:   appErr.Message,
		Retryable: appErr.Retryable,
		Details:   appErr.Details,
	}
	if alias, ok := appErr.Details["alias"].(string); ok {
		body.Alias = alias
	}
	if chain, ok := appErr.Details["chain"].([]string); ok {
		body.Chain = chain
	}
	return ErrorResponse{Error: body}
}

var statusByCode = map[apperrors.ErrorCode]int{
	apperrors.ErrCodeNotFound:         http.StatusNotFound,
	apperrors.ErrCodeInvalidInput:     http.StatusBadRequest,
	apperrors.ErrCodeConfigValidation: http.StatusUnprocessableEntity,
	apperrors.ErrCodeResolution:       http.StatusUnprocessableEntity,
	apperrors.ErrCodeInstantiation:    http.StatusUnprocessableEntity,
	apperrors.ErrCodeCyclicDependency: http.StatusConflict,
	apperrors.ErrCodeInternal:         http.StatusInternalServerError,
}

// StatusFor maps an error code to the HTTP status it is reported with.
func StatusFor(code apperrors.ErrorCode) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// RespondWithError inspects err: if it is an *apperrors.AppError the status and
// structured body are derived automatically; otherwise a generic 500 is sent.
func RespondWithError(c *gin.Context, err error) {
	if appErr, ok := apperrors.AsAppError(err); ok {
		c.JSON(StatusFor(appErr.Code), NewErrorResponse(appErr))
		return
	}
	c.JSON(http.StatusInternalServerError, NewErrorResponse(apperrors.Internal(err)))
}

// RespondOK sends a 200 response wrapping data.
func RespondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, DataResponse{Data: data})
}

// RespondOKWithMeta sends a 200 response with data and metadata.
func RespondOKWithMeta(c *gin.Context, data any, meta *Meta) {
	c.JSON(http.StatusOK, DataResponse{Data: data, Meta: meta})
}
