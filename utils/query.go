package utils

import (
	"strconv"
	"strings"
)

// ParseIntDefault parses a non-negative int query parameter, falling back to
// def on absence or garbage. Used for the uniform skip/limit pagination.
func ParseIntDefault(s string, def int) int {
	if v, err := strconv.Atoi(strings.TrimSpace(s)); err == nil && v >= 0 {
		return v
	}
	return def
}

// ParseUint parses an id-like query parameter; 0 means "not supplied".
func ParseUint(s string) uint {
	if v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64); err == nil {
		return uint(v)
	}
	return 0
}
