package security

import (
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	htmlPolicy = bluemonday.StrictPolicy()
	phoneRegex = regexp.MustCompile(`^[0-9]{6,12}$`)
)

// SanitizeString removes potentially dangerous characters
func SanitizeString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.ReplaceAll(input, "\x00", "")

	if len(input) > 5000 {
		input = input[:5000]
	}

	return input
}

// SanitizeHTML removes all HTML tags
func SanitizeHTML(input string) string {
	return htmlPolicy.Sanitize(input)
}

// SanitizeText is applied to every free-text field users submit.
func SanitizeText(input string) string {
	return strings.TrimSpace(SanitizeHTML(SanitizeString(input)))
}

// NormalizePhoneNumber strips common separators.
func NormalizePhoneNumber(phone string) string {
	return strings.NewReplacer("-", "", " ", "", "+", "", "(", "", ")", "").Replace(strings.TrimSpace(phone))
}

// ValidatePhoneNumber checks if phone number is valid
func ValidatePhoneNumber(phone string) bool {
	return phoneRegex.MatchString(NormalizePhoneNumber(phone))
}
