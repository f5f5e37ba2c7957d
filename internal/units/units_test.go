package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCacheSize(t *testing.T) {
	tests := []struct {
		in   string
		want uint64
		ok   bool
	}{
		{"256K", 262144, true},
		{"32K\n", 32768, true},
		{"8M", 8388608, true},
		{"512", 512, true},
		{"", 0, false},
		{"K", 0, false},
		{"abcK", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseCacheSize(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseMemorySize(t *testing.T) {
	tests := []struct {
		in   string
		want uint64
		ok   bool
	}{
		{"16GB", 17179869184, true},
		{"16 GB", 17179869184, true},
		{"8192 MB", 8589934592, true},
		{"0 MB", 0, true},
		{"512 kB", 524288, true},
		{"No Module Installed", 0, false},
		{"Unknown", 0, false},
		{"4 PB", 0, false},
		{"17179869184 GB", 0, false},
		{"18446744073709551615 B", 18446744073709551615, true},
	}
	for _, tt := range tests {
		got, ok := ParseMemorySize(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseClockSpeed(t *testing.T) {
	for in, want := range map[string]uint64{
		"3200 MT/s": 3200,
		"2400 MHz":  2400,
		"1600":      1600,
	} {
		got, ok := ParseClockSpeed(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	_, ok := ParseClockSpeed("Unknown")
	assert.False(t, ok)
}

func TestSaturatingSub(t *testing.T) {
	assert.Equal(t, uint64(6), SaturatingSub(10, 4))
	assert.Equal(t, uint64(0), SaturatingSub(4, 10))
	assert.Equal(t, uint64(0), SaturatingSub(0, 0))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 0.0, Percent(10, 0))
	assert.Equal(t, 25.0, Percent(25, 100))
}

func TestNormalizeDate(t *testing.T) {
	tests := map[string]string{
		"05/15/2023":                "2023-05-15",
		"20230515000000.000000+000": "2023-05-15",
		"/Date(1684108800000)/":     "2023-05-15",
		"2023-05-15T00:00:00+00:00": "2023-05-15",
		"2023-05-15":                "2023-05-15",
		"  ":                        "",
		"sometime in May":           "sometime in May",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeDate(in), in)
	}
}

func TestField(t *testing.T) {
	v, ok := Field("\tSize: 16 GB", "Size:")
	assert.True(t, ok)
	assert.Equal(t, "16 GB", v)

	_, ok = Field("\tNon-Volatile Size: None", "Size:")
	assert.False(t, ok)
}

func TestKeyValue(t *testing.T) {
	k, v, ok := KeyValue("model name\t: Intel(R) Core(TM) i7", ":")
	assert.True(t, ok)
	assert.Equal(t, "model name", k)
	assert.Equal(t, "Intel(R) Core(TM) i7", v)

	_, _, ok = KeyValue("no separator", ":")
	assert.False(t, ok)
}
