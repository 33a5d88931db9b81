// Package sanitize provides filename escaping for checksum list lines.
//
// Names containing a backslash, newline or carriage return cannot be written
// verbatim on one line. They are escaped the way GNU coreutils does it and the
// whole line is marked with a leading backslash.
package sanitize

import (
	"strings"

	"github.com/pkg/errors"
)

var escaper = strings.NewReplacer("\\", "\\\\", "\n", "\\n", "\r", "\\r")

// NeedsEscape reports whether name must be escaped before it is written.
func NeedsEscape(name string) bool {
	return strings.ContainsAny(name, "\\\n\r")
}

// EscapeName returns name in its on-disk form and whether the line carrying
// it must be prefixed with a backslash.
func EscapeName(name string) (string, bool) {
	if !NeedsEscape(name) {
		return name, false
	}
	return escaper.Replace(name), true
}

// UnescapeName reverses EscapeName for a line that carried the backslash marker.
func UnescapeName(escaped string) (string, error) {
	var b strings.Builder
	b.Grow(len(escaped))
	for i := 0; i < len(escaped); i++ {
		c := escaped[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		if i+1 >= len(escaped) {
			return "", errors.Errorf("dangling backslash in %q", escaped)
		}
		i++
		switch escaped[i] {
		case '\\':
			b.WriteByte('\\')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		default:
			return "", errors.Errorf("unknown escape \\%c in %q", escaped[i], escaped)
		}
	}
	return b.String(), nil
}
