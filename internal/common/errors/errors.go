// Package errors provides standardized error handling for the lead assistant API.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeUpstreamCallFailed ErrorCode = "UPSTREAM_CALL_FAILED"
	ErrCodeUpstreamTimeout    ErrorCode = "UPSTREAM_TIMEOUT"

	ErrCodeExtractionDecodeFailed ErrorCode = "EXTRACTION_DECODE_FAILED"
	ErrCodeBudgetParseFailed      ErrorCode = "BUDGET_PARSE_FAILED"

	ErrCodeInvalidRequest ErrorCode = "INVALID_REQUEST"

	ErrCodeLeadStoreFailed ErrorCode = "LEAD_STORE_FAILED"

	ErrCodeHandoffNotReady     ErrorCode = "HANDOFF_NOT_READY"
	ErrCodeHandoffRecordFailed ErrorCode = "HANDOFF_RECORD_FAILED"
	ErrCodeCRMSyncFailed       ErrorCode = "CRM_SYNC_FAILED"

	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`

	cause error
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying error to errors.Is and errors.As.
func (e *StandardError) Unwrap() error {
	return e.cause
}

// Detail is the human readable text sent back to HTTP callers.
func (e *StandardError) Detail() string {
	if e.Details == "" {
		return e.Message
	}
	return e.Message + ": " + e.Details
}

// WithMetadata attaches a key to the error and returns it.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// ==========================
// 2. Constructors
// ==========================

func NewUpstreamCallFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeUpstreamCallFailed,
		Message:   "Error processing request",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewUpstreamTimeoutError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeUpstreamTimeout,
		Message:   "Error processing request",
		Details:   fmt.Sprintf("language model call timed out: %v", err),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewExtractionDecodeFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeExtractionDecodeFailed,
		Message:   "Classifier output could not be decoded",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewBudgetParseFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeBudgetParseFailed,
		Message:   "Budget could not be parsed",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewInvalidRequestError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidRequest,
		Message:   "Invalid request",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewLeadStoreFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeLeadStoreFailed,
		Message:   "Lead store operation failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewHandoffNotReadyError(missing []string) *StandardError {
	return &StandardError{
		Code:      ErrCodeHandoffNotReady,
		Message:   "Missing required information",
		Details:   fmt.Sprintf("missing: %s", strings.Join(missing, ", ")),
		Retryable: false,
		Metadata:  map[string]interface{}{"missing_fields": missing},
		Timestamp: time.Now().UTC(),
	}
}

func NewHandoffRecordFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeHandoffRecordFailed,
		Message:   "Handoff could not be recorded",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewCRMSyncFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCRMSyncFailed,
		Message:   "CRM lead creation failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewNotificationSendFailedError(notificationType string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationSendFailed,
		Message:   "Notification delivery failed",
		Details:   fmt.Sprintf("type: %s, error: %s", notificationType, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// ==========================
// 3. Classification
// ==========================

var HTTPStatusMapping = map[ErrorCode]int{
	ErrCodeUpstreamCallFailed:     http.StatusInternalServerError,
	ErrCodeUpstreamTimeout:        http.StatusGatewayTimeout,
	ErrCodeExtractionDecodeFailed: http.StatusUnprocessableEntity,
	ErrCodeBudgetParseFailed:      http.StatusUnprocessableEntity,
	ErrCodeInvalidRequest:         http.StatusBadRequest,
	ErrCodeLeadStoreFailed:        http.StatusServiceUnavailable,
	ErrCodeHandoffNotReady:        http.StatusConflict,
	ErrCodeHandoffRecordFailed:    http.StatusServiceUnavailable,
	ErrCodeCRMSyncFailed:          http.StatusBadGateway,
	ErrCodeNotificationSendFailed: http.StatusBadGateway,
	ErrCodeInternal:               http.StatusInternalServerError,
}

// HTTPStatus returns the response status for code.
func HTTPStatus(code ErrorCode) int {
	if status, ok := HTTPStatusMapping[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeUpstreamCallFailed,
		ErrCodeLeadStoreFailed,
		ErrCodeHandoffRecordFailed,
		ErrCodeCRMSyncFailed,
		ErrCodeNotificationSendFailed:
		return 3

	case ErrCodeUpstreamTimeout:
		return 1

	default:
		return 0
	}
}

func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "UPSTREAM"):
		return "AI"
	case strings.Contains(codeStr, "EXTRACTION") || strings.Contains(codeStr, "BUDGET"):
		return "EXTRACTION"
	case strings.Contains(codeStr, "STORE"):
		return "STORAGE"
	case strings.Contains(codeStr, "HANDOFF") || strings.Contains(codeStr, "CRM"):
		return "HANDOFF"
	case strings.Contains(codeStr, "NOTIFICATION"):
		return "NOTIFICATION"
	case strings.Contains(codeStr, "INVALID"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}

// AsStandardError finds a *StandardError in err's chain, wrapping anything
// else as an internal error.
func AsStandardError(err error) *StandardError {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return NewInternalError(err)
}
