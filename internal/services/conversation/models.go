// internal/services/conversation/models.go
package conversation

import "lead-assistant/internal/models"

type Input struct {
	SessionID string `json:"-"`
	Inquiry   string `json:"inquiry"`
}

// Output carries the reply and, when the classifier output could be
// decoded, the session's updated lead record.
type Output struct {
	Response       string           `json:"response"`
	Classification *models.LeadData `json:"classification"`
	UpdatedFields  []string         `json:"-"`
}
