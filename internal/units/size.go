// Package units converts the human-readable sizes, speeds and dates printed by
// firmware tables and command-line tools into canonical numeric units.
package units

import (
	"math/bits"
	"strconv"
	"strings"
	"unicode"
)

const (
	KiB uint64 = 1 << 10
	MiB uint64 = 1 << 20
	GiB uint64 = 1 << 30
	TiB uint64 = 1 << 40
)

// ParseCacheSize converts a sysfs cache size ("32K", "8M", "512") to bytes.
func ParseCacheSize(s string) (uint64, bool) {
	s = strings.TrimSpace(s)
	mult := uint64(1)
	switch {
	case strings.HasSuffix(s, "K"):
		mult, s = KiB, strings.TrimSuffix(s, "K")
	case strings.HasSuffix(s, "M"):
		mult, s = MiB, strings.TrimSuffix(s, "M")
	}
	return scale(s, mult)
}

// ParseMemorySize converts a DMI module size ("16 GB", "8192 MB") to bytes.
// Sizes are binary: GB means GiB, as dmidecode prints them.
func ParseMemorySize(s string) (uint64, bool) {
	num, unit := splitNumber(s)
	var mult uint64
	switch strings.ToUpper(unit) {
	case "B", "BYTES":
		mult = 1
	case "KB", "K":
		mult = KiB
	case "MB", "M":
		mult = MiB
	case "GB", "G":
		mult = GiB
	case "TB", "T":
		mult = TiB
	default:
		return 0, false
	}
	return scale(num, mult)
}

// ParseClockSpeed reads a module speed ("3200 MT/s", "2400 MHz", "1600").
// MT/s and MHz land in the same field.
func ParseClockSpeed(s string) (uint64, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "MT/s")
	s = strings.TrimSuffix(s, "MHz")
	return scale(strings.TrimSpace(s), 1)
}

// KHzToMHz converts a cpufreq reading.
func KHzToMHz(khz float64) float64 { return khz / 1000 }

// SaturatingSub returns a-b, or 0 when b exceeds a.
func SaturatingSub(a, b uint64) uint64 {
	if b > a {
		return 0
	}
	return a - b
}

// Percent is used/total*100, 0 for an empty total.
func Percent(used, total uint64) float64 {
	if total == 0 {
		return 0
	}
	return float64(used) / float64(total) * 100
}

func scale(num string, mult uint64) (uint64, bool) {
	num = strings.TrimSpace(num)
	if num == "" {
		return 0, false
	}
	v, err := strconv.ParseUint(num, 10, 64)
	if err != nil {
		return 0, false
	}
	hi, lo := bits.Mul64(v, mult)
	if hi != 0 {
		return 0, false
	}
	return lo, true
}

func splitNumber(s string) (num, unit string) {
	s = strings.TrimSpace(s)
	i := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsDigit(r) })
	if i < 0 {
		return s, "B"
	}
	return s[:i], strings.TrimSpace(s[i:])
}
