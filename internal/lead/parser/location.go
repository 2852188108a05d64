// internal/lead/parser/location.go
package parser

import "strings"

// Applied in sequence; every fragment from one separator is split again by
// the next.
var locationSeparators = []string{" or ", ",", ";", "/"}

// ParseLocations splits text like "Miami, Fort Lauderdale or Boca Raton" into
// trimmed fragments, keeping their order. Duplicates are kept. Returns nil if
// nothing non-empty remains.
func ParseLocations(text string) []string {
	if text == "" {
		return nil
	}

	fragments := []string{text}
	for _, sep := range locationSeparators {
		next := make([]string, 0, len(fragments))
		for _, fragment := range fragments {
			next = append(next, strings.Split(fragment, sep)...)
		}
		fragments = next
	}

	var locations []string
	for _, fragment := range fragments {
		if trimmed := strings.TrimSpace(fragment); trimmed != "" {
			locations = append(locations, trimmed)
		}
	}
	return locations
}
