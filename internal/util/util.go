// Package util provides common utility functions used across the editor.
package util

import "strings"

// TrimQuotes removes leading and trailing double quotes from a string.
func TrimQuotes(s string) string {
	return strings.Trim(s, `"`)
}

// SanitizeName makes a user-supplied project or scene name safe for use
// as a file or archive folder name. Path separators and control
// characters are replaced with dashes; surrounding whitespace is
// dropped. Non-ASCII text (Arabic names included) passes through
// untouched.
func SanitizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "untitled"
	}

	var b strings.Builder
	for _, r := range name {
		switch {
		case r == '/' || r == '\\' || r == ':' || r == '*' || r == '?' ||
			r == '"' || r == '<' || r == '>' || r == '|':
			b.WriteByte('-')
		case r < 0x20:
			b.WriteByte('-')
		default:
			b.WriteRune(r)
		}
	}

	out := strings.Trim(b.String(), ". ")
	if out == "" {
		return "untitled"
	}
	return out
}
