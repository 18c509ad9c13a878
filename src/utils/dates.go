package utils

import (
	"strings"
	"time"
)

// referenceDateLayouts covers the date encodings seen across the
// spreadsheet and delimited exports.
var referenceDateLayouts = []string{
	ShortDashDateLayout,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	ShortSlashDateLayout,
	"01-02-06",
}

// ParseReferenceDate normalizes a raw cell value into the canonical
// YYYY-MM-DD form. The boolean is false when no layout matches, in which
// case callers substitute the empty sentinel instead of failing the row.
func ParseReferenceDate(value string) (string, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}
	for _, layout := range referenceDateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.Format(ShortDashDateLayout), true
		}
	}
	return "", false
}
