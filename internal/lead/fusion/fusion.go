// internal/lead/fusion/fusion.go
package fusion

import (
	"strings"

	apperrors "lead-assistant/internal/common/errors"
	"lead-assistant/internal/common/logger"
	"lead-assistant/internal/lead/parser"
	"lead-assistant/internal/models"
)

// Field names reported back by Fuse.
const (
	FieldBudget                 = "budget"
	FieldLocations              = "locations"
	FieldPropertyType           = "property_type"
	FieldAdditionalRequirements = "additional_requirements"
)

const requirementsSeparator = "; "

// Engine merges decoded extractions into a running lead record.
type Engine struct {
	logger logger.Logger
}

func NewEngine(log logger.Logger) *Engine {
	return &Engine{
		logger: log.WithFields(map[string]interface{}{"component": "fusion"}),
	}
}

// Fuse applies one extraction on top of previous and returns the new record
// with the names of the fields that changed. previous is never mutated.
//
// Budget is replaced whole, locations are unioned, property type is kept once
// set and requirements are appended. A budget that fails to parse leaves the
// previous budget in place.
func (e *Engine) Fuse(previous *models.LeadData, extracted *models.Extraction) (*models.LeadData, []string) {
	next := previous.Clone()
	if extracted == nil {
		return next, nil
	}

	var updated []string

	if text := nonEmpty(extracted.Budget); text != "" {
		budget, err := parser.ParseBudget(text)
		switch {
		case err != nil:
			stdErr := apperrors.NewBudgetParseFailedError(err)
			e.logger.Warn("budget skipped", map[string]interface{}{
				"budget":    text,
				"errorCode": string(stdErr.Code),
				"error":     stdErr.Detail(),
			})
		case budget != nil:
			next.Budget = budget
			updated = append(updated, FieldBudget)
		}
	}

	if text := nonEmpty(extracted.Location); text != "" {
		if merged, changed := mergeLocations(next.Locations, parser.ParseLocations(text)); changed {
			next.Locations = merged
			updated = append(updated, FieldLocations)
		}
	}

	if text := nonEmpty(extracted.PropertyType); text != "" && next.PropertyType == nil {
		next.PropertyType = models.StringPtr(text)
		updated = append(updated, FieldPropertyType)
	}

	if text := nonEmpty(extracted.AdditionalRequirements); text != "" {
		if next.AdditionalRequirements == nil {
			next.AdditionalRequirements = models.StringPtr(text)
		} else {
			next.AdditionalRequirements = models.StringPtr(*next.AdditionalRequirements + requirementsSeparator + text)
		}
		updated = append(updated, FieldAdditionalRequirements)
	}

	if len(updated) > 0 {
		e.logger.Debug("lead fused", map[string]interface{}{"updated": updated})
	}
	return next, updated
}

// mergeLocations returns the union of existing and incoming in first-seen
// order, and whether anything was added.
func mergeLocations(existing, incoming []string) ([]string, bool) {
	if len(incoming) == 0 {
		return existing, false
	}

	seen := make(map[string]struct{}, len(existing)+len(incoming))
	merged := make([]string, 0, len(existing)+len(incoming))
	for _, loc := range existing {
		if _, dup := seen[loc]; dup {
			continue
		}
		seen[loc] = struct{}{}
		merged = append(merged, loc)
	}

	added := false
	for _, loc := range incoming {
		if _, dup := seen[loc]; dup {
			continue
		}
		seen[loc] = struct{}{}
		merged = append(merged, loc)
		added = true
	}

	if !added {
		return existing, false
	}
	return merged, true
}

func nonEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
