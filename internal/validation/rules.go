package validation

import (
	"regexp"
	"strings"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// WordCount tokenizes on whitespace runs after trimming and drops empty
// tokens, so consecutive spaces count as a single separator.
func WordCount(value string) int {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0
	}
	count := 0
	for _, token := range whitespaceRun.Split(trimmed, -1) {
		if token != "" {
			count++
		}
	}
	return count
}

// IsBlank reports whether the value is empty after trimming.
func IsBlank(value string) bool {
	return strings.TrimSpace(value) == ""
}

// IsSingleWord reports whether whitespace splitting yields exactly one token.
func IsSingleWord(value string) bool {
	return WordCount(value) == 1
}

// emailPattern requires a local part, an @, and a domain containing a dot.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsEmail applies the simple format check the console enforces. It is not a
// full RFC 5322 validator.
func IsEmail(value string) bool {
	return emailPattern.MatchString(value)
}

// IsPhone enforces the minimum ten character length. No format or country
// validation beyond that.
func IsPhone(value string) bool {
	return len(value) >= 10
}
