package units

import "strings"

// Lines splits tool output into lines, dropping carriage returns.
func Lines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.Split(s, "\n")
}

// Field returns the trimmed text after prefix when the trimmed line starts
// with it.
func Field(line, prefix string) (string, bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, prefix) {
		return "", false
	}
	return strings.TrimSpace(line[len(prefix):]), true
}

// KeyValue splits "key<sep>value" at the first separator and trims both halves.
func KeyValue(line, sep string) (key, value string, ok bool) {
	k, v, found := strings.Cut(line, sep)
	if !found {
		return "", "", false
	}
	return strings.TrimSpace(k), strings.TrimSpace(v), true
}
