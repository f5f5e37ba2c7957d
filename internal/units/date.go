package units

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	jsonDate = regexp.MustCompile(`^/Date\((-?\d+)[^)]*\)/$`)

	dateLayouts = []string{
		"01/02/2006",
		"2006-01-02",
		time.RFC3339,
		"2006-01-02T15:04:05",
		"20060102",
	}
)

// NormalizeDate renders a firmware release date as YYYY-MM-DD. It accepts the
// sysfs form (05/15/2023), CIM datetimes (20230515000000.000000+000),
// PowerShell JSON dates (/Date(1684108800000)/) and ISO timestamps. Anything
// else is returned trimmed and unchanged.
func NormalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if m := jsonDate.FindStringSubmatch(s); m != nil {
		ms, err := strconv.ParseInt(m[1], 10, 64)
		if err == nil {
			return time.UnixMilli(ms).UTC().Format(time.DateOnly)
		}
	}
	candidate := s
	if len(s) >= 14 && strings.Contains(s, ".") && isDigits(s[:14]) {
		candidate = s[:8]
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, candidate); err == nil {
			return t.Format(time.DateOnly)
		}
	}
	return s
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
