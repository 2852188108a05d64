// internal/lead/parser/budget.go
package parser

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"lead-assistant/internal/models"
)

var (
	ErrBudgetParse = errors.New("BUDGET_PARSE_FAILED")
)

// amountPattern matches one amount, optionally with a "k" thousands suffix.
const amountPattern = `(\d+\.?\d*k?)`

// Tried in order; the first pattern that matches wins.
var budgetRangePatterns = []*regexp.Regexp{
	regexp.MustCompile(`between\s+` + amountPattern + `\s+and\s+` + amountPattern),
	regexp.MustCompile(amountPattern + `\s*-\s*` + amountPattern),
	regexp.MustCompile(amountPattern + `\s+to\s+` + amountPattern),
}

var singleAmountPattern = regexp.MustCompile(amountPattern)

var budgetNoise = strings.NewReplacer("$", "", ",", "")

// ParseBudget normalizes free-form budget text such as "80k-95k",
// "between 80000 and 95000" or "$150,000".
//
// It returns nil with no error when the text holds no number at all. A range
// whose bounds arrive reversed is stored lowest first.
func ParseBudget(text string) (*models.BudgetRange, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	cleaned := budgetNoise.Replace(strings.ToLower(text))

	for _, pattern := range budgetRangePatterns {
		match := pattern.FindStringSubmatch(cleaned)
		if match == nil {
			continue
		}

		min, err := parseAmount(match[1])
		if err != nil {
			return nil, err
		}
		max, err := parseAmount(match[2])
		if err != nil {
			return nil, err
		}
		if min > max {
			min, max = max, min
		}
		return models.NewRangeBudget(min, max), nil
	}

	if match := singleAmountPattern.FindStringSubmatch(cleaned); match != nil {
		value, err := parseAmount(match[1])
		if err != nil {
			return nil, err
		}
		return models.NewSingleBudget(value), nil
	}

	return nil, nil
}

func parseAmount(token string) (float64, error) {
	multiplier := 1.0
	if strings.HasSuffix(token, "k") {
		token = strings.TrimSuffix(token, "k")
		multiplier = 1000
	}

	value, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: amount %q: %v", ErrBudgetParse, token, err)
	}
	value *= multiplier
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return 0, fmt.Errorf("%w: amount %q out of range", ErrBudgetParse, token)
	}
	return value, nil
}
