// internal/services/handoff/summary.go
package handoff

import (
	"strconv"
	"strings"

	"lead-assistant/internal/models"
)

// Summary renders a lead as the plain-text lines sent to the agent.
func Summary(lead *models.LeadData) string {
	var b strings.Builder
	b.WriteString("Budget: " + FormatBudget(lead.Budget) + "\n")
	b.WriteString("Locations: " + strings.Join(lead.Locations, ", ") + "\n")
	b.WriteString("Property type: " + deref(lead.PropertyType) + "\n")
	if lead.AdditionalRequirements != nil {
		b.WriteString("Additional requirements: " + *lead.AdditionalRequirements + "\n")
	}
	return b.String()
}

func FormatBudget(budget *models.BudgetRange) string {
	switch {
	case budget == nil:
		return "unknown"
	case budget.IsRange():
		return formatAmount(*budget.MinValue) + " - " + formatAmount(*budget.MaxValue)
	case budget.SingleValue != nil:
		return formatAmount(*budget.SingleValue)
	default:
		return "unknown"
	}
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
