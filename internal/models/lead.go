// internal/models/lead.go
package models

// BudgetRange is a normalized budget. Either SingleValue is set, or MinValue
// and MaxValue are set together; never both shapes.
type BudgetRange struct {
	MinValue    *float64 `json:"min_value"`
	MaxValue    *float64 `json:"max_value"`
	SingleValue *float64 `json:"single_value"`
}

func NewSingleBudget(v float64) *BudgetRange {
	return &BudgetRange{SingleValue: &v}
}

func NewRangeBudget(min, max float64) *BudgetRange {
	return &BudgetRange{MinValue: &min, MaxValue: &max}
}

// IsRange reports whether the budget holds the min/max shape.
func (b *BudgetRange) IsRange() bool {
	return b != nil && b.MinValue != nil && b.MaxValue != nil
}

func (b *BudgetRange) Clone() *BudgetRange {
	if b == nil {
		return nil
	}
	out := &BudgetRange{}
	if b.MinValue != nil {
		v := *b.MinValue
		out.MinValue = &v
	}
	if b.MaxValue != nil {
		v := *b.MaxValue
		out.MaxValue = &v
	}
	if b.SingleValue != nil {
		v := *b.SingleValue
		out.SingleValue = &v
	}
	return out
}

// LeadData is the running record for one lead. A nil field means the value
// has not been learned yet.
type LeadData struct {
	Budget                 *BudgetRange `json:"budget"`
	Locations              []string     `json:"locations"`
	PropertyType           *string      `json:"property_type"`
	AdditionalRequirements *string      `json:"additional_requirements"`
}

// Clone returns a deep copy so callers can build the next record without
// touching the stored one.
func (l *LeadData) Clone() *LeadData {
	if l == nil {
		return &LeadData{}
	}
	out := &LeadData{
		Budget: l.Budget.Clone(),
	}
	if l.Locations != nil {
		out.Locations = make([]string, len(l.Locations))
		copy(out.Locations, l.Locations)
	}
	if l.PropertyType != nil {
		v := *l.PropertyType
		out.PropertyType = &v
	}
	if l.AdditionalRequirements != nil {
		v := *l.AdditionalRequirements
		out.AdditionalRequirements = &v
	}
	return out
}

// Extraction is one decoded classifier guess. Nil means the classifier gave
// nothing usable for that field.
type Extraction struct {
	Budget                 *string `json:"budget"`
	Location               *string `json:"location"`
	PropertyType           *string `json:"property_type"`
	AdditionalRequirements *string `json:"additional_requirements"`
}

// StringPtr is a small helper for building optional fields.
func StringPtr(s string) *string {
	return &s
}
