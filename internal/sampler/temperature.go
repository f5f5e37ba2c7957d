package sampler

import (
	"context"
	"math"
	"strings"

	"github.com/shirou/gopsutil/v3/host"

	"github.com/Dicklesworthstone/hwsnap/internal/model"
)

// Sensor key fragments. Package-level sensors outrank per-core ones.
var (
	packageSensorKeys = []string{"package", "pkg", "tctl", "tdie"}
	coreSensorKeys    = []string{"core", "cpu"}
)

// Temperature aggregates the CPU thermal sensors. gopsutil returns partial
// results alongside warnings, so readings are used even when err is set.
func (s *Sampler) Temperature(ctx context.Context) model.CPUTemperature {
	temps, err := s.sensors(ctx)
	if err != nil {
		s.log.Debug().Err(err).Int("sensors", len(temps)).Msg("sensor enumeration incomplete")
	}
	return AggregateTemperature(temps)
}

// AggregateTemperature picks Main from the first package/Tctl sensor, or the
// first core/cpu sensor when there is none, and Max across both groups.
func AggregateTemperature(temps []host.TemperatureStat) model.CPUTemperature {
	var out model.CPUTemperature
	best := 0
	for _, t := range temps {
		tier := sensorTier(t.SensorKey)
		if tier == 0 || math.IsNaN(t.Temperature) || t.Temperature <= 0 {
			continue
		}
		if best == 0 || t.Temperature > out.Max {
			out.Max = t.Temperature
		}
		if best == 0 || tier < best {
			best = tier
			out.Main = t.Temperature
		}
	}
	return out
}

func sensorTier(key string) int {
	key = strings.ToLower(key)
	for _, k := range packageSensorKeys {
		if strings.Contains(key, k) {
			return 1
		}
	}
	for _, k := range coreSensorKeys {
		if strings.Contains(key, k) {
			return 2
		}
	}
	return 0
}
