// internal/api/handlers.go
package api

import (
	"context"
	_ "embed"
	"net/http"
	"time"

	apperrors "lead-assistant/internal/common/errors"
	"lead-assistant/internal/models"
	"lead-assistant/internal/services/conversation"

	"github.com/gin-gonic/gin"
)

//go:embed web/index.html
var indexHTML []byte

const readyTimeout = 2 * time.Second

type ClassificationResponse struct {
	LeadClassification *models.LeadData `json:"lead_classification"`
}

type HandoffStatusResponse struct {
	Status        string   `json:"status"`
	Ready         bool     `json:"ready"`
	MissingFields []string `json:"missing_fields"`
}

func (h *Handlers) HandleIndex(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexHTML)
}

// HandleStartConversation runs one turn for the caller's session.
func (h *Handlers) HandleStartConversation(c *gin.Context) {
	var input conversation.Input
	if err := c.ShouldBindJSON(&input); err != nil {
		h.errors.Respond(c, apperrors.NewInvalidRequestError(err.Error()))
		return
	}
	input.SessionID = sessionID(c)

	output, err := h.conversation.Execute(c.Request.Context(), &input)
	if err != nil {
		h.errors.Respond(c, toStandardError(err))
		return
	}
	c.JSON(http.StatusOK, output)
}

func (h *Handlers) HandleViewClassification(c *gin.Context) {
	lead, err := h.conversation.Lead(c.Request.Context(), sessionID(c))
	if err != nil {
		h.errors.Respond(c, toStandardError(err))
		return
	}
	c.JSON(http.StatusOK, ClassificationResponse{LeadClassification: lead})
}

func (h *Handlers) HandleHandoffStatus(c *gin.Context) {
	result, err := h.handoff.Status(c.Request.Context(), sessionID(c))
	if err != nil {
		h.errors.Respond(c, toStandardError(err))
		return
	}
	c.JSON(http.StatusOK, HandoffStatusResponse{
		Status:        result.Status(),
		Ready:         result.Ready,
		MissingFields: result.MissingFields,
	})
}

func (h *Handlers) HandleHandoff(c *gin.Context) {
	output, err := h.handoff.Submit(c.Request.Context(), sessionID(c))
	if err != nil {
		h.errors.Respond(c, toStandardError(err))
		return
	}
	c.JSON(http.StatusOK, output)
}

func (h *Handlers) HandleResetLead(c *gin.Context) {
	if err := h.conversation.Reset(c.Request.Context(), sessionID(c)); err != nil {
		h.errors.Respond(c, toStandardError(err))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handlers) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// HandleReady pings every registered dependency.
func (h *Handlers) HandleReady(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
	defer cancel()

	checks := make(map[string]string, len(h.checks))
	status := http.StatusOK
	for _, check := range h.checks {
		if err := check.Ping(ctx); err != nil {
			checks[check.Name()] = err.Error()
			status = http.StatusServiceUnavailable
			h.logger.Warn("readiness check failed", map[string]interface{}{
				"dependency": check.Name(),
				"error":      err.Error(),
			})
			continue
		}
		checks[check.Name()] = "ok"
	}

	label := "ready"
	if status != http.StatusOK {
		label = "not ready"
	}
	c.JSON(status, gin.H{"status": label, "checks": checks})
}
