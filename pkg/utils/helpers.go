package utils

import "strings"

const visiblePrefix = 4

// MaskToken returns a log-safe form of a credential: the first few characters
// followed by "...". Short values are hidden entirely.
func MaskToken(token string) string {
	token = strings.TrimSpace(token)
	if token == "" {
		return "missing"
	}
	if len(token) <= visiblePrefix*2 {
		return "***"
	}
	return token[:visiblePrefix] + "..."
}

// Presence reports whether a secret is set without revealing it.
func Presence(secret string) string {
	if strings.TrimSpace(secret) == "" {
		return "absent"
	}
	return "present"
}

// SplitCSV splits a comma separated list, dropping blanks.
func SplitCSV(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
