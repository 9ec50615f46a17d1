package domain

import "strings"

// FirstNonBlank returns the first value that is not empty after trimming,
// trimmed. Schedule files layer project values over file defaults this way.
func FirstNonBlank(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// FirstSet returns the value behind the first non-nil pointer, or fallback.
func FirstSet[T any](fallback T, ptrs ...*T) T {
	for _, p := range ptrs {
		if p != nil {
			return *p
		}
	}
	return fallback
}
