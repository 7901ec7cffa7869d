// utils/validation.go
package utils

import (
	"regexp"
	"strings"
)

var (
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	urlRegex   = regexp.MustCompile(`^https?://.+`)
)

// ValidateEmail checks basic email syntax (local@domain.tld).
func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// ValidateURL checks that a link is an absolute HTTP(S) URL.
func ValidateURL(link string) bool {
	return urlRegex.MatchString(link)
}

// NormalizeEmails trims and lower-cases every address.
func NormalizeEmails(emails []string) []string {
	normalized := make([]string, len(emails))
	for i, e := range emails {
		normalized[i] = strings.ToLower(strings.TrimSpace(e))
	}
	return normalized
}
