package utils

import (
	"strings"
	"unicode"
)

// Slugify lowercases s and joins its letter/digit runs with single hyphens.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	var b strings.Builder
	pendingDash := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}

	return b.String()
}

// CollapseSpaces trims s and folds every whitespace run into one space.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
