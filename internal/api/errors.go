// internal/api/errors.go
package api

import (
	"errors"

	apperrors "lead-assistant/internal/common/errors"
	"lead-assistant/internal/lead/store"
	"lead-assistant/internal/services/conversation"
	"lead-assistant/internal/services/handoff"
	"lead-assistant/internal/services/llm"
)

// toStandardError maps service errors onto the codes callers see.
func toStandardError(err error) *apperrors.StandardError {
	var notReady *handoff.NotReadyError
	switch {
	case errors.Is(err, llm.ErrUpstreamTimeout):
		return apperrors.NewUpstreamTimeoutError(err)
	case errors.Is(err, llm.ErrUpstreamCallFailed):
		return apperrors.NewUpstreamCallFailedError(err)
	case errors.Is(err, conversation.ErrInvalidInquiry):
		return apperrors.NewInvalidRequestError(err.Error())
	case errors.As(err, &notReady):
		return apperrors.NewHandoffNotReadyError(notReady.Missing)
	case errors.Is(err, handoff.ErrRecordFailed):
		return apperrors.NewHandoffRecordFailedError(err)
	case errors.Is(err, store.ErrStoreUnavailable):
		return apperrors.NewLeadStoreFailedError(err)
	default:
		return apperrors.AsStandardError(err)
	}
}
