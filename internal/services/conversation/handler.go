// internal/services/conversation/handler.go
package conversation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	apperrors "lead-assistant/internal/common/errors"
	"lead-assistant/internal/common/logger"
	"lead-assistant/internal/common/metrics"
	"lead-assistant/internal/lead/extraction"
	"lead-assistant/internal/lead/fusion"
	"lead-assistant/internal/lead/store"
	"lead-assistant/internal/models"
	"lead-assistant/internal/services/llm"

	"golang.org/x/sync/errgroup"
)

const (
	TaskType = "start-conversation"
)

var (
	ErrInvalidInquiry = errors.New("INVALID_REQUEST")
)

const (
	outcomeClassified   = "classified"
	outcomeUnclassified = "unclassified"
	outcomeFailed       = "failed"
)

type Handler struct {
	config    *Config
	responder llm.Responder
	store     store.Store
	engine    *fusion.Engine
	logger    logger.Logger
}

func NewHandler(config *Config, responder llm.Responder, leads store.Store, engine *fusion.Engine, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
		responder: responder,
		store:     leads,
		engine:    engine,
		logger:    log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

// Execute runs one conversation turn. The reply and extraction calls run
// concurrently; the session's record changes only if both succeed and the
// extraction decodes.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	inquiry := strings.TrimSpace(input.Inquiry)
	if inquiry == "" {
		return nil, fmt.Errorf("%w: inquiry is required", ErrInvalidInquiry)
	}

	if h.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.config.Timeout)
		defer cancel()
	}

	var reply, raw string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		reply, err = h.responder.GenerateReply(gctx, h.config.ConversationPrompt, inquiry)
		return err
	})
	g.Go(func() error {
		var err error
		raw, err = h.responder.ExtractFields(gctx, h.config.ClassificationPrompt, inquiry)
		return err
	})
	if err := g.Wait(); err != nil {
		metrics.ConversationTurns.WithLabelValues(outcomeFailed).Inc()
		h.logger.Error("upstream call failed", map[string]interface{}{
			"sessionId": input.SessionID,
			"error":     err.Error(),
		})
		return nil, err
	}

	extracted, err := extraction.Decode(raw)
	if err != nil {
		metrics.ExtractionDecodeFailures.Inc()
		metrics.ConversationTurns.WithLabelValues(outcomeUnclassified).Inc()
		stdErr := apperrors.NewExtractionDecodeFailedError(err)
		h.logger.Warn("classifier output not decodable, lead unchanged", map[string]interface{}{
			"sessionId": input.SessionID,
			"errorCode": string(stdErr.Code),
			"error":     stdErr.Detail(),
		})
		return &Output{Response: reply}, nil
	}

	var updated []string
	record, err := h.store.Update(ctx, input.SessionID, func(current *models.LeadData) (*models.LeadData, error) {
		var next *models.LeadData
		next, updated = h.engine.Fuse(current, extracted)
		return next, nil
	})
	if err != nil {
		metrics.ConversationTurns.WithLabelValues(outcomeFailed).Inc()
		h.logger.Error("lead update failed", map[string]interface{}{
			"sessionId": input.SessionID,
			"error":     err.Error(),
		})
		return nil, err
	}

	for _, field := range updated {
		metrics.LeadFieldsUpdated.WithLabelValues(field).Inc()
	}
	metrics.ConversationTurns.WithLabelValues(outcomeClassified).Inc()

	h.logger.Info("conversation turn processed", map[string]interface{}{
		"sessionId":     input.SessionID,
		"updatedFields": updated,
	})

	return &Output{
		Response:       reply,
		Classification: record,
		UpdatedFields:  updated,
	}, nil
}

// Lead returns the session's current record.
func (h *Handler) Lead(ctx context.Context, sessionID string) (*models.LeadData, error) {
	return h.store.Get(ctx, sessionID)
}

// Reset forgets everything learned for the session.
func (h *Handler) Reset(ctx context.Context, sessionID string) error {
	if err := h.store.Reset(ctx, sessionID); err != nil {
		return err
	}
	h.logger.Info("lead reset", map[string]interface{}{"sessionId": sessionID})
	return nil
}
