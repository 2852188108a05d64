// internal/services/handoff/handler.go
package handoff

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "lead-assistant/internal/common/errors"
	"lead-assistant/internal/common/logger"
	"lead-assistant/internal/common/metrics"
	"lead-assistant/internal/lead/readiness"
	"lead-assistant/internal/lead/store"
	"lead-assistant/internal/models"

	"github.com/google/uuid"
)

const (
	TaskType = "lead-handoff"
)

var (
	ErrNotReady       = errors.New("HANDOFF_NOT_READY")
	ErrRecordFailed   = errors.New("HANDOFF_RECORD_FAILED")
	errChannelMissing = errors.New("channel enabled without a client")
)

const (
	resultSubmitted = "submitted"
	resultNotReady  = "not_ready"
	resultFailed    = "failed"
)

type Handler struct {
	config    *Config
	store     store.Store
	recorder  Recorder
	crm       CRMService
	sesClient SESService
	snsClient SNSService
	logger    logger.Logger
}

// NewHandler wires the handoff pipeline. Any of recorder, crm, sesClient and
// snsClient may be nil; the matching step is then skipped.
func NewHandler(
	config *Config,
	leads store.Store,
	recorder Recorder,
	crm CRMService,
	sesClient SESService,
	snsClient SNSService,
	log logger.Logger,
) *Handler {
	return &Handler{
		config:    config,
		store:     leads,
		recorder:  recorder,
		crm:       crm,
		sesClient: sesClient,
		snsClient: snsClient,
		logger:    log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

// Status reports whether the session's lead can be handed to an agent.
func (h *Handler) Status(ctx context.Context, sessionID string) (readiness.Result, error) {
	lead, err := h.store.Get(ctx, sessionID)
	if err != nil {
		return readiness.Result{}, err
	}
	return readiness.Evaluate(lead), nil
}

// Submit hands a ready lead to an agent. Only a failure to record the
// handoff fails the call; CRM and notification problems are reported in
// the output.
func (h *Handler) Submit(ctx context.Context, sessionID string) (*Output, error) {
	if h.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.config.Timeout)
		defer cancel()
	}

	lead, err := h.store.Get(ctx, sessionID)
	if err != nil {
		metrics.Handoffs.WithLabelValues(resultFailed).Inc()
		return nil, err
	}

	verdict := readiness.Evaluate(lead)
	if !verdict.Ready {
		metrics.Handoffs.WithLabelValues(resultNotReady).Inc()
		h.logger.Info("handoff refused, lead incomplete", map[string]interface{}{
			"sessionId":     sessionID,
			"missingFields": verdict.MissingFields,
		})
		return nil, &NotReadyError{Missing: verdict.MissingFields}
	}

	record := &models.HandoffRecord{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		Lead:      lead,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}

	if err := h.record(ctx, record); err != nil {
		metrics.Handoffs.WithLabelValues(resultFailed).Inc()
		h.logger.Error("handoff record failed", map[string]interface{}{
			"sessionId": sessionID,
			"handoffId": record.ID,
			"error":     err.Error(),
		})
		return nil, err
	}

	output := &Output{
		HandoffID: record.ID,
		Status:    StatusSubmitted,
	}

	if crmLeadID, err := h.syncCRM(ctx, record); err != nil {
		stdErr := apperrors.AsStandardError(err)
		h.logger.Warn("crm sync failed", map[string]interface{}{
			"handoffId": record.ID,
			"errorCode": string(stdErr.Code),
			"error":     stdErr.Detail(),
		})
	} else {
		output.CRMLeadID = crmLeadID
	}

	output.Notifications = h.notify(ctx, record)

	metrics.Handoffs.WithLabelValues(resultSubmitted).Inc()
	h.logger.Info("lead handed off", map[string]interface{}{
		"sessionId": sessionID,
		"handoffId": record.ID,
		"crmLeadId": output.CRMLeadID,
	})

	return output, nil
}

func (h *Handler) record(ctx context.Context, record *models.HandoffRecord) error {
	if !h.config.Persist || h.recorder == nil {
		return nil
	}

	maxRetries := h.config.MaxRetries
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return fmt.Errorf("%w: %v", ErrRecordFailed, ctx.Err())
			}
		}

		lastErr = h.recorder.Record(ctx, record)
		if lastErr == nil {
			return nil
		}
		h.logger.Warn("handoff record attempt failed", map[string]interface{}{
			"handoffId": record.ID,
			"attempt":   attempt + 1,
			"error":     lastErr.Error(),
		})
	}
	return fmt.Errorf("%w: %v", ErrRecordFailed, lastErr)
}

// syncCRM returns "" with a nil error when the CRM is not configured.
func (h *Handler) syncCRM(ctx context.Context, record *models.HandoffRecord) (string, error) {
	if !h.config.CRMEnabled || h.crm == nil {
		return "", nil
	}

	crmLeadID, err := h.crm.CreateLead(ctx, toCRMLead(record.Lead, h.config.LeadSource))
	if err != nil {
		return "", apperrors.NewCRMSyncFailedError(err)
	}
	record.CRMLeadID = crmLeadID

	if h.config.Persist && h.recorder != nil {
		if err := h.recorder.AttachCRMLead(ctx, record.ID, crmLeadID); err != nil {
			h.logger.Warn("failed to store crm lead id", map[string]interface{}{
				"handoffId": record.ID,
				"crmLeadId": crmLeadID,
				"error":     err.Error(),
			})
		}
	}
	return crmLeadID, nil
}

func (h *Handler) notify(ctx context.Context, record *models.HandoffRecord) []models.NotificationResult {
	return []models.NotificationResult{
		h.deliver(ChannelEmail, h.config.EmailEnabled, h.sesClient != nil, func() error {
			return h.sendEmail(ctx, record.ID, record.Lead)
		}),
		h.deliver(ChannelSMS, h.config.SMSEnabled, h.snsClient != nil, func() error {
			return h.sendSMS(ctx, record.Lead)
		}),
	}
}

func (h *Handler) deliver(channel string, enabled, hasClient bool, send func() error) models.NotificationResult {
	result := models.NotificationResult{Channel: channel, Status: NotificationDisabled}
	if !enabled {
		metrics.NotificationsSent.WithLabelValues(channel, result.Status).Inc()
		return result
	}

	err := errChannelMissing
	if hasClient {
		err = send()
	}

	if err != nil {
		result.Status = NotificationFailed
		result.Error = apperrors.NewNotificationSendFailedError(channel, err).Detail()
		h.logger.Error("agent notification failed", map[string]interface{}{
			"channel": channel,
			"error":   err.Error(),
		})
	} else {
		result.Status = NotificationSent
	}

	metrics.NotificationsSent.WithLabelValues(channel, result.Status).Inc()
	return result
}
