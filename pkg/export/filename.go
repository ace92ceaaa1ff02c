package export

import (
	"strings"
	"unicode"
)

// Filename derives an output file name from a user-supplied diagram or flow
// name: characters outside letters, digits, space, period and underscore
// are stripped, trailing spaces removed, and the extension appended.
func Filename(name, extension string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '.' || r == '_' {
			b.WriteRune(r)
		}
	}
	return strings.TrimRight(b.String(), " ") + "." + extension
}
