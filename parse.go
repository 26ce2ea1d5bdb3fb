// FILE: lixenwraith/kvconf/parse.go
package kvconf

import "strings"

const (
	commentChar = "#"
	separator   = "="
	whitespace  = " \t\r\n"
)

// Entry is a single key/value pair produced from one line of input.
type Entry struct {
	Key   string
	Value string
}

// ParseLine parses one line of `key = value # comment` text.
// The boolean result is false for blank and comment-only lines, which carry no entry.
// Everything after the first '#' is commentary, and whitespace around the key
// and the value is not significant. The value may be empty and may contain '='.
func ParseLine(raw string) (Entry, bool, error) {
	line := raw
	if i := strings.Index(line, commentChar); i >= 0 {
		line = line[:i]
	}

	line = strings.Trim(line, whitespace)
	if line == "" {
		return Entry{}, false, nil
	}

	key, value, found := strings.Cut(line, separator)
	if !found {
		return Entry{}, false, newError(ErrMissingSeparator, "", "", nil)
	}

	key = strings.Trim(key, whitespace)
	if key == "" {
		return Entry{}, false, newError(ErrMissingKey, "", "", nil)
	}

	return Entry{Key: key, Value: strings.Trim(value, whitespace)}, true, nil
}

// formatLine renders a key/value pair so that ParseLine returns it unchanged.
func formatLine(key, value string) (string, error) {
	if key == "" || key != strings.Trim(key, whitespace) ||
		strings.ContainsAny(key, commentChar+separator+"\r\n") {
		return "", newError(ErrInvalidParam, key, "", nil)
	}
	if value != strings.Trim(value, whitespace) || strings.ContainsAny(value, commentChar+"\r\n") {
		return "", newError(ErrInvalidParam, key, "", nil)
	}
	return key + separator + value, nil
}
