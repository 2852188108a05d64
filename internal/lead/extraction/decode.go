// internal/lead/extraction/decode.go
package extraction

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"lead-assistant/internal/models"
)

var (
	ErrDecodeFailed = errors.New("EXTRACTION_DECODE_FAILED")
)

const codeFence = "```"

// payload mirrors the classifier output after it passed the schema.
type payload struct {
	Budget                 json.RawMessage `json:"budget"`
	Location               json.RawMessage `json:"location"`
	PropertyType           *string         `json:"property_type"`
	AdditionalRequirements *string         `json:"additional_requirements"`
}

// Decode turns raw classifier text into an Extraction. Missing, null and
// empty fields come back nil. Text that is not a JSON object of the expected
// shape yields an error wrapping ErrDecodeFailed.
func Decode(raw string) (*models.Extraction, error) {
	body := stripCodeFence(strings.TrimSpace(raw))
	if body == "" {
		return nil, fmt.Errorf("%w: empty payload", ErrDecodeFailed)
	}

	result, err := extractionSchema.ValidateJSON([]byte(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeFailed, err)
	}
	if !result.Valid {
		return nil, fmt.Errorf("%w: %s", ErrDecodeFailed, strings.Join(result.GetErrorMessages(), "; "))
	}

	var p payload
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeFailed, err)
	}

	budget, err := budgetText(p.Budget)
	if err != nil {
		return nil, err
	}
	location, err := locationText(p.Location)
	if err != nil {
		return nil, err
	}

	return &models.Extraction{
		Budget:                 budget,
		Location:               location,
		PropertyType:           optional(p.PropertyType),
		AdditionalRequirements: optional(p.AdditionalRequirements),
	}, nil
}

// stripCodeFence removes one surrounding ``` block, with or without a
// language tag, which chat models like to wrap JSON in.
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, codeFence) || !strings.HasSuffix(s, codeFence) || len(s) < 2*len(codeFence) {
		return s
	}
	inner := strings.TrimSuffix(strings.TrimPrefix(s, codeFence), codeFence)
	if start := strings.IndexAny(inner, "{["); start > 0 && isLanguageTag(strings.TrimSpace(inner[:start])) {
		inner = inner[start:]
	}
	return strings.TrimSpace(inner)
}

func isLanguageTag(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func budgetText(raw json.RawMessage) (*string, error) {
	if isNull(raw) {
		return nil, nil
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return optional(&text), nil
	}

	var number float64
	if err := json.Unmarshal(raw, &number); err != nil {
		return nil, fmt.Errorf("%w: budget: %v", ErrDecodeFailed, err)
	}
	return models.StringPtr(strconv.FormatFloat(number, 'f', -1, 64)), nil
}

func locationText(raw json.RawMessage) (*string, error) {
	if isNull(raw) {
		return nil, nil
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return optional(&text), nil
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("%w: location: %v", ErrDecodeFailed, err)
	}
	joined := strings.Join(list, ", ")
	return optional(&joined), nil
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

func optional(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}
