// internal/models/handoff.go
package models

const (
	HandoffStatusReady   = "Ready for handoff"
	HandoffStatusMissing = "Missing required information"
)

// HandoffRecord is what gets persisted when a lead is transferred to an agent.
type HandoffRecord struct {
	ID        string    `json:"id"`
	SessionID string    `json:"sessionId"`
	Lead      *LeadData `json:"lead"`
	CRMLeadID string    `json:"crmLeadId,omitempty"`
	CreatedAt string    `json:"createdAt"`
}

// NotificationResult reports one outbound agent notification.
type NotificationResult struct {
	Channel string `json:"channel"` // "email" or "sms"
	Status  string `json:"status"`  // "sent", "failed", "disabled"
	Error   string `json:"error,omitempty"`
}
