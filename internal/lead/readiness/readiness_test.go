// internal/lead/readiness/readiness_test.go
package readiness

import (
	"testing"

	"lead-assistant/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name            string
		record          *models.LeadData
		expectedReady   bool
		expectedMissing []string
	}{
		{
			name:            "nil record",
			record:          nil,
			expectedReady:   false,
			expectedMissing: []string{"budget", "location", "property_type"},
		},
		{
			name:            "empty record",
			record:          &models.LeadData{},
			expectedReady:   false,
			expectedMissing: []string{"budget", "location", "property_type"},
		},
		{
			name: "missing location only",
			record: &models.LeadData{
				Budget:       models.NewSingleBudget(150000),
				PropertyType: models.StringPtr("condo"),
			},
			expectedReady:   false,
			expectedMissing: []string{"location"},
		},
		{
			name: "requirements are never required",
			record: &models.LeadData{
				AdditionalRequirements: models.StringPtr("pool"),
				Locations:              []string{"Miami"},
			},
			expectedReady:   false,
			expectedMissing: []string{"budget", "property_type"},
		},
		{
			name: "complete record",
			record: &models.LeadData{
				Budget:       models.NewRangeBudget(80000, 95000),
				Locations:    []string{"Miami"},
				PropertyType: models.StringPtr("condo"),
			},
			expectedReady:   true,
			expectedMissing: []string{},
		},
		{
			name: "empty but present locations count",
			record: &models.LeadData{
				Budget:       models.NewSingleBudget(150000),
				Locations:    []string{},
				PropertyType: models.StringPtr("house"),
			},
			expectedReady:   true,
			expectedMissing: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Evaluate(tt.record)
			assert.Equal(t, tt.expectedReady, result.Ready)
			assert.Equal(t, tt.expectedMissing, result.MissingFields)
		})
	}
}

func TestResult_Status(t *testing.T) {
	assert.Equal(t, "Ready for handoff", Result{Ready: true}.Status())
	assert.Equal(t, "Missing required information", Result{MissingFields: []string{"budget"}}.Status())
}
