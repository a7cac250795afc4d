package utils

import (
	"os"
	"strings"
)

// ParseBool accepts the loose boolean spellings the step commands take on the
// command line ("true", "1", "yes", any case). Everything else is false.
func ParseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes":
		return true
	}
	return false
}

// GetEnv reads an environment variable with a fallback default
func GetEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
