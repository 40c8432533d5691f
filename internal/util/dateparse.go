package util

import (
	"fmt"
	"strings"
	"time"
)

// ParseProjectDate parses the free-text date field of a project. The
// catalog is hand-edited, so several ISO-ish shapes are accepted:
// RFC3339, "2006-01-02T15:04", "2006-01-02", "2006-01", "2006".
func ParseProjectDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04",
		"2006-01-02",
		"2006-01",
		"2006",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date: %q", s)
}

// DisplayDate formats a parsed date back to the precision the catalog
// gave: a bare year stays a year, a month stays a month.
func DisplayDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if _, err := ParseProjectDate(raw); err != nil {
		return raw
	}
	// The accepted layouts are already display-friendly; trim time parts.
	if i := strings.IndexByte(raw, 'T'); i > 0 {
		return raw[:i]
	}
	return raw
}
