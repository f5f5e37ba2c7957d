package sampler

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Dicklesworthstone/hwsnap/internal/units"
)

const sysfsCPUPath = "/sys/devices/system/cpu"

// sysfsFrequency reads cpufreq's scaling_cur_freq (kHz) under root.
func sysfsFrequency(root string) func(core int) (float64, bool) {
	return func(core int) (float64, bool) {
		data, err := os.ReadFile(filepath.Join(root, fmt.Sprintf("cpu%d/cpufreq/scaling_cur_freq", core)))
		if err != nil {
			return 0, false
		}
		khz, err := strconv.ParseFloat(strings.TrimSpace(string(data)), 64)
		if err != nil || khz <= 0 {
			return 0, false
		}
		return units.KHzToMHz(khz), true
	}
}
