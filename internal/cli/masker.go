package cli

import (
	"regexp"
	"strings"
)

// secretKeyPattern matches environment variable names that conventionally
// carry a credential, so listing a profile doesn't print it in full.
var secretKeyPattern = regexp.MustCompile(`(?i)(TOKEN|KEY|SECRET|PASSWORD|PASS|CREDENTIAL)`)

// MaskValue returns value unchanged unless key looks like it names a
// secret, in which case all but a short prefix/suffix is replaced with
// asterisks.
func MaskValue(key, value string) string {
	if !secretKeyPattern.MatchString(key) {
		return value
	}
	return maskMiddle(value)
}

func maskMiddle(value string) string {
	if len(value) <= 8 {
		return strings.Repeat("*", len(value))
	}
	return value[:3] + strings.Repeat("*", len(value)-6) + value[len(value)-3:]
}
