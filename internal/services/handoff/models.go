// internal/services/handoff/models.go
package handoff

import (
	"fmt"
	"strings"

	"lead-assistant/internal/models"
)

const (
	StatusSubmitted = "submitted"

	NotificationSent     = "sent"
	NotificationFailed   = "failed"
	NotificationDisabled = "disabled"

	ChannelEmail = "email"
	ChannelSMS   = "sms"
)

type Output struct {
	HandoffID     string                      `json:"handoff_id"`
	Status        string                      `json:"status"`
	CRMLeadID     string                      `json:"crm_lead_id,omitempty"`
	Notifications []models.NotificationResult `json:"notifications"`
}

// NotReadyError is returned by Submit when required fields are still missing.
type NotReadyError struct {
	Missing []string
}

func (e *NotReadyError) Error() string {
	return fmt.Sprintf("%s: missing %s", ErrNotReady.Error(), strings.Join(e.Missing, ", "))
}

func (e *NotReadyError) Unwrap() error {
	return ErrNotReady
}
