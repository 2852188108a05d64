// internal/lead/readiness/readiness.go
package readiness

import "lead-assistant/internal/models"

// Names reported in Result.MissingFields, in this order.
const (
	FieldBudget       = "budget"
	FieldLocation     = "location"
	FieldPropertyType = "property_type"
)

type Result struct {
	Ready         bool     `json:"ready"`
	MissingFields []string `json:"missing_fields"`
}

// Status returns the operator-facing label for the verdict.
func (r Result) Status() string {
	if r.Ready {
		return models.HandoffStatusReady
	}
	return models.HandoffStatusMissing
}

// Evaluate checks the fields an agent needs before taking over a lead.
// Locations count as present once set, even when the list is empty.
func Evaluate(record *models.LeadData) Result {
	missing := []string{}
	if record == nil {
		record = &models.LeadData{}
	}

	if record.Budget == nil {
		missing = append(missing, FieldBudget)
	}
	if record.Locations == nil {
		missing = append(missing, FieldLocation)
	}
	if record.PropertyType == nil {
		missing = append(missing, FieldPropertyType)
	}

	return Result{
		Ready:         len(missing) == 0,
		MissingFields: missing,
	}
}
