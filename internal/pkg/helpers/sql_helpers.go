package helpers

import (
	"strconv"
	"strings"
)

// NullIfBlank trims s and returns nil when nothing is left, so optional text
// columns store NULL instead of empty strings.
func NullIfBlank(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// ParseOptionalID parses an optional positive id from a query value.
// An empty value yields nil; anything else must be a positive integer.
func ParseOptionalID(raw string) (*int64, bool) {
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, false
	}
	return &id, true
}
