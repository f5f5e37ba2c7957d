package source

import (
	"strings"

	"github.com/Dicklesworthstone/hwsnap/internal/units"
)

// ParseCPUInfo extracts family, model and stepping from /proc/cpuinfo text.
// The first occurrence of each key wins and scanning stops once all three
// are known. Keys are compared whole, so "model name" never fills Model.
func ParseCPUInfo(text string) (CPUIDs, bool) {
	var ids CPUIDs
	for _, line := range units.Lines(text) {
		key, value, ok := units.KeyValue(line, ":")
		if !ok {
			continue
		}
		switch key {
		case "cpu family":
			if ids.Family == "" {
				ids.Family = value
			}
		case "model":
			if ids.Model == "" {
				ids.Model = value
			}
		case "stepping":
			if ids.Stepping == "" {
				ids.Stepping = value
			}
		}
		if ids.Family != "" && ids.Model != "" && ids.Stepping != "" {
			break
		}
	}
	return ids, ids != CPUIDs{}
}

// ParseProcessorCaption reads the ids out of a Win32_Processor caption such
// as "Intel64 Family 6 Model 158 Stepping 10".
func ParseProcessorCaption(caption string) (CPUIDs, bool) {
	var ids CPUIDs
	fields := strings.Fields(caption)
	for i := 0; i+1 < len(fields); i++ {
		switch fields[i] {
		case "Family":
			ids.Family = fields[i+1]
		case "Model":
			ids.Model = fields[i+1]
		case "Stepping":
			ids.Stepping = strings.TrimSuffix(fields[i+1], ",")
		}
	}
	return ids, ids != CPUIDs{}
}
