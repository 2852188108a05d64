// internal/lead/fusion/fusion_test.go
package fusion

import (
	"encoding/json"
	"strings"
	"testing"

	"lead-assistant/internal/common/logger"
	"lead-assistant/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func newTestEngine(t *testing.T) *Engine {
	return NewEngine(logger.NewTestLogger(t))
}

func extraction(budget, location, propertyType, requirements string) *models.Extraction {
	out := &models.Extraction{}
	if budget != "" {
		out.Budget = models.StringPtr(budget)
	}
	if location != "" {
		out.Location = models.StringPtr(location)
	}
	if propertyType != "" {
		out.PropertyType = models.StringPtr(propertyType)
	}
	if requirements != "" {
		out.AdditionalRequirements = models.StringPtr(requirements)
	}
	return out
}

// ==========================
// Per-field Policy Tests
// ==========================

func TestFuse_EmptyRecord(t *testing.T) {
	engine := newTestEngine(t)

	record, updated := engine.Fuse(nil, extraction("80k-95k", "Miami, Fort Lauderdale or Boca Raton", "condo", "needs parking"))

	require.NotNil(t, record.Budget)
	assert.Equal(t, 80000.0, *record.Budget.MinValue)
	assert.Equal(t, 95000.0, *record.Budget.MaxValue)
	assert.Equal(t, []string{"Miami", "Fort Lauderdale", "Boca Raton"}, record.Locations)
	assert.Equal(t, "condo", *record.PropertyType)
	assert.Equal(t, "needs parking", *record.AdditionalRequirements)
	assert.Equal(t, []string{FieldBudget, FieldLocations, FieldPropertyType, FieldAdditionalRequirements}, updated)
}

func TestFuse_BudgetLastWriterWins(t *testing.T) {
	engine := newTestEngine(t)

	record, _ := engine.Fuse(nil, extraction("80k-95k", "", "", ""))
	record, updated := engine.Fuse(record, extraction("$150,000", "", "", ""))

	require.NotNil(t, record.Budget)
	assert.False(t, record.Budget.IsRange())
	assert.Nil(t, record.Budget.MinValue)
	assert.Nil(t, record.Budget.MaxValue)
	assert.Equal(t, 150000.0, *record.Budget.SingleValue)
	assert.Equal(t, []string{FieldBudget}, updated)
}

func TestFuse_BudgetWithoutDigitsKeepsPrevious(t *testing.T) {
	engine := newTestEngine(t)

	record, _ := engine.Fuse(nil, extraction("$150,000", "", "", ""))
	record, updated := engine.Fuse(record, extraction("flexible", "", "", ""))

	require.NotNil(t, record.Budget)
	assert.Equal(t, 150000.0, *record.Budget.SingleValue)
	assert.Empty(t, updated)
}

func TestFuse_UnparseableBudgetSkipsOnlyBudget(t *testing.T) {
	engine := newTestEngine(t)
	previous := &models.LeadData{Budget: models.NewSingleBudget(100000)}

	overflow := strings.Repeat("9", 400)
	record, updated := engine.Fuse(previous, extraction(overflow, "Tampa", "", ""))

	assert.Equal(t, 100000.0, *record.Budget.SingleValue)
	assert.Equal(t, []string{"Tampa"}, record.Locations)
	assert.Equal(t, []string{FieldLocations}, updated)
}

func TestFuse_OverflowingBudgetKeepsRecordEncodable(t *testing.T) {
	engine := newTestEngine(t)
	previous := &models.LeadData{Budget: models.NewSingleBudget(100000)}

	huge := strings.Repeat("9", 306) + "k"
	record, updated := engine.Fuse(previous, extraction(huge, "Miami", "", ""))

	assert.Equal(t, 100000.0, *record.Budget.SingleValue)
	assert.Equal(t, []string{FieldLocations}, updated)

	_, err := json.Marshal(record)
	require.NoError(t, err)
}

func TestFuse_FirstWriterWinsPropertyType(t *testing.T) {
	engine := newTestEngine(t)

	record, _ := engine.Fuse(nil, extraction("", "", "apartment", ""))
	record, updated := engine.Fuse(record, extraction("", "", "house", ""))

	assert.Equal(t, "apartment", *record.PropertyType)
	assert.Empty(t, updated)
}

func TestFuse_AppendOnlyRequirements(t *testing.T) {
	engine := newTestEngine(t)

	record, _ := engine.Fuse(nil, extraction("", "", "", "needs parking"))
	record, updated := engine.Fuse(record, extraction("", "", "", "pet friendly"))

	assert.Equal(t, "needs parking; pet friendly", *record.AdditionalRequirements)
	assert.Equal(t, []string{FieldAdditionalRequirements}, updated)
}

func TestFuse_BlankFieldsIgnored(t *testing.T) {
	engine := newTestEngine(t)
	previous := &models.LeadData{
		Budget:       models.NewSingleBudget(100000),
		Locations:    []string{"Miami"},
		PropertyType: models.StringPtr("condo"),
	}

	blank := &models.Extraction{
		Budget:                 models.StringPtr("   "),
		Location:               models.StringPtr(""),
		PropertyType:           models.StringPtr(" "),
		AdditionalRequirements: models.StringPtr(""),
	}
	record, updated := engine.Fuse(previous, blank)

	assert.Equal(t, previous, record)
	assert.Empty(t, updated)
	assert.Nil(t, record.AdditionalRequirements)
}

func TestFuse_NilExtraction(t *testing.T) {
	engine := newTestEngine(t)
	previous := &models.LeadData{Locations: []string{"Miami"}}

	record, updated := engine.Fuse(previous, nil)

	assert.Equal(t, previous, record)
	assert.Nil(t, updated)
}

func TestFuse_DoesNotMutatePrevious(t *testing.T) {
	engine := newTestEngine(t)
	previous := &models.LeadData{
		Budget:                 models.NewSingleBudget(100000),
		Locations:              []string{"Miami"},
		AdditionalRequirements: models.StringPtr("needs parking"),
	}

	_, _ = engine.Fuse(previous, extraction("200k", "Tampa", "house", "pool"))

	assert.Equal(t, 100000.0, *previous.Budget.SingleValue)
	assert.Equal(t, []string{"Miami"}, previous.Locations)
	assert.Nil(t, previous.PropertyType)
	assert.Equal(t, "needs parking", *previous.AdditionalRequirements)
}

// ==========================
// Location Merge Properties
// ==========================

func TestFuse_LocationIdempotence(t *testing.T) {
	engine := newTestEngine(t)
	in := extraction("", "Miami, Fort Lauderdale", "", "")

	once, _ := engine.Fuse(nil, in)
	twice, updated := engine.Fuse(once, in)

	assert.ElementsMatch(t, once.Locations, twice.Locations)
	assert.Empty(t, updated)
}

func TestFuse_LocationCommutativity(t *testing.T) {
	engine := newTestEngine(t)
	miami := extraction("", "Miami", "", "")
	lauderdale := extraction("", "Fort Lauderdale", "", "")

	forward, _ := engine.Fuse(nil, miami)
	forward, _ = engine.Fuse(forward, lauderdale)

	reverse, _ := engine.Fuse(nil, lauderdale)
	reverse, _ = engine.Fuse(reverse, miami)

	assert.ElementsMatch(t, forward.Locations, reverse.Locations)
	assert.Len(t, forward.Locations, 2)
}

func TestFuse_LocationDuplicatesCollapse(t *testing.T) {
	engine := newTestEngine(t)

	record, _ := engine.Fuse(nil, extraction("", "Miami, Miami or Tampa", "", ""))

	assert.Equal(t, []string{"Miami", "Tampa"}, record.Locations)
}

func TestMergeLocations(t *testing.T) {
	tests := []struct {
		name            string
		existing        []string
		incoming        []string
		expected        []string
		expectedChanged bool
	}{
		{name: "nothing incoming", existing: []string{"Miami"}, incoming: nil, expected: []string{"Miami"}, expectedChanged: false},
		{name: "both empty", existing: nil, incoming: nil, expected: nil, expectedChanged: false},
		{name: "new location appended", existing: []string{"Miami"}, incoming: []string{"Tampa"}, expected: []string{"Miami", "Tampa"}, expectedChanged: true},
		{name: "only known locations", existing: []string{"Miami", "Tampa"}, incoming: []string{"Tampa"}, expected: []string{"Miami", "Tampa"}, expectedChanged: false},
		{name: "first fill", existing: nil, incoming: []string{"Tampa", "Tampa"}, expected: []string{"Tampa"}, expectedChanged: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			merged, changed := mergeLocations(tt.existing, tt.incoming)
			assert.Equal(t, tt.expected, merged)
			assert.Equal(t, tt.expectedChanged, changed)
		})
	}
}
