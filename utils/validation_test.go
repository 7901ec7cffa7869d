package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	valid := []string{"a@x.com", "first.last@example.co.uk", "user+tag@domain.io"}
	for _, email := range valid {
		assert.True(t, ValidateEmail(email), "expected %q to be valid", email)
	}

	invalid := []string{"", "plain", "no@tld", "two words@x.com", "@x.com", "a@"}
	for _, email := range invalid {
		assert.False(t, ValidateEmail(email), "expected %q to be invalid", email)
	}
}

func TestValidateURL(t *testing.T) {
	assert.True(t, ValidateURL("http://example.com"))
	assert.True(t, ValidateURL("https://example.com/some/path?x=1"))

	assert.False(t, ValidateURL("ftp://example.com"))
	assert.False(t, ValidateURL("example.com"))
	assert.False(t, ValidateURL("https://"))
}

func TestNormalizeEmails(t *testing.T) {
	got := NormalizeEmails([]string{" A@X.com ", "B@Y.COM", "c@z.com"})
	assert.Equal(t, []string{"a@x.com", "b@y.com", "c@z.com"}, got)

	assert.Empty(t, NormalizeEmails(nil))
}
