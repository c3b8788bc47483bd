package util

import (
	"regexp"
	"strings"
)

var nonWord = regexp.MustCompile(`[^\w\s]`)

// SanitizeInput strips anything outside word characters and whitespace, then
// truncates to maxLength. Applied to user-supplied identity fields before they
// reach the database or the audit log.
func SanitizeInput(s string, maxLength int) string {
	sanitized := nonWord.ReplaceAllString(strings.TrimSpace(s), "")
	if len(sanitized) > maxLength {
		sanitized = sanitized[:maxLength]
	}
	return strings.TrimSpace(sanitized)
}
