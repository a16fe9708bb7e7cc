package config

import (
	"os"
	"strconv"
	"strings"
)

// Get returns the environment value for key, or fallback when unset/blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// GetBool interprets common truthy spellings ("1", "true", "yes", "on").
func GetBool(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

// GetClampedInt parses an integer environment value and clamps it to
// [min, max]. Unset or non-numeric values return the fallback unclamped,
// matching the tolerant handling of tuning knobs elsewhere in the system.
func GetClampedInt(key string, fallback, min, max int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	if n < min {
		return min
	}
	if n > max {
		return max
	}
	return n
}
