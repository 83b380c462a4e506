package validation

import (
	"strings"
	"unicode"
	"unicode/utf16"
)

// isBlank matches the characters browsers strip when trimming form input:
// Unicode white space plus the byte order mark, but not NEL.
func isBlank(r rune) bool {
	if r == '\uFEFF' {
		return true
	}
	return r != '\u0085' && unicode.IsSpace(r)
}

// Trim strips leading and trailing blanks from s.
func Trim(s string) string {
	return strings.TrimFunc(s, isBlank)
}

// Length counts UTF-16 code units, so characters outside the basic
// multilingual plane count twice.
func Length(s string) int {
	return len(utf16.Encode([]rune(s)))
}
