package sampler

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/Dicklesworthstone/hwsnap/internal/model"
	"github.com/Dicklesworthstone/hwsnap/internal/units"
)

const (
	// DefaultSettle is the gap between the two CPU time reads.
	DefaultSettle = 200 * time.Millisecond
	MinSettle     = 50 * time.Millisecond
	MaxSettle     = 5 * time.Second
)

// CPUStatic is the slow-changing part of a CPU reading.
type CPUStatic struct {
	Brand         string
	Vendor        string
	PhysicalCores int
	Cores         int
	Speed         float64
	SpeedMax      float64
}

// Reading is one CPU and memory sample. Memory.Layout is always empty.
type Reading struct {
	CPU    CPUStatic
	Speed  model.CPUCurrentSpeed
	Load   model.CurrentLoad
	Memory model.MemoryInfo
}

// Sampler reads CPU, memory and sensor state through gopsutil. It keeps no
// state between calls.
type Sampler struct {
	Settle time.Duration

	log           zerolog.Logger
	times         func(ctx context.Context, percpu bool) ([]cpu.TimesStat, error)
	info          func(ctx context.Context) ([]cpu.InfoStat, error)
	counts        func(ctx context.Context, logical bool) (int, error)
	virtualMemory func(ctx context.Context) (*mem.VirtualMemoryStat, error)
	swapMemory    func(ctx context.Context) (*mem.SwapMemoryStat, error)
	sensors       func(ctx context.Context) ([]host.TemperatureStat, error)
	coreFreq      func(core int) (float64, bool)
	sleep         func(ctx context.Context, d time.Duration)
}

func New(settle time.Duration, log zerolog.Logger) *Sampler {
	return &Sampler{
		Settle:        ClampSettle(settle),
		log:           log,
		times:         cpu.TimesWithContext,
		info:          cpu.InfoWithContext,
		counts:        cpu.CountsWithContext,
		virtualMemory: mem.VirtualMemoryWithContext,
		swapMemory:    mem.SwapMemoryWithContext,
		sensors:       host.SensorsTemperaturesWithContext,
		coreFreq:      sysfsFrequency(sysfsCPUPath),
		sleep:         sleepContext,
	}
}

// ClampSettle maps zero to the default and bounds the rest.
func ClampSettle(d time.Duration) time.Duration {
	switch {
	case d <= 0:
		return DefaultSettle
	case d < MinSettle:
		return MinSettle
	case d > MaxSettle:
		return MaxSettle
	}
	return d
}

// Sample reads per-core CPU times twice, Settle apart, and derives
// utilization from the delta. Frequencies and memory are read after the
// second pass.
func (s *Sampler) Sample(ctx context.Context) Reading {
	prev, err := s.times(ctx, true)
	if err != nil {
		s.log.Debug().Err(err).Msg("reference cpu times unavailable")
	}
	s.sleep(ctx, s.Settle)
	cur, err := s.times(ctx, true)
	if err != nil {
		s.log.Debug().Err(err).Msg("cpu times unavailable")
	}

	infos, err := s.info(ctx)
	if err != nil {
		s.log.Debug().Err(err).Msg("cpu info unavailable")
	}
	logical := s.count(ctx, true)
	if logical == 0 {
		logical = len(cur)
	}
	physical := s.count(ctx, false)
	if physical > logical {
		physical = logical
	}

	speed := aggregateSpeed(s.frequencies(logical, infos))
	static := CPUStatic{
		PhysicalCores: physical,
		Cores:         logical,
		Speed:         speed.Avg,
		SpeedMax:      speed.Max,
	}
	if len(infos) > 0 {
		static.Brand = strings.TrimSpace(infos[0].ModelName)
		static.Vendor = strings.TrimSpace(infos[0].VendorID)
	}

	return Reading{
		CPU:    static,
		Speed:  speed,
		Load:   model.CurrentLoad{CurrentLoad: mean(corePercents(prev, cur))},
		Memory: s.memory(ctx),
	}
}

func (s *Sampler) count(ctx context.Context, logical bool) int {
	n, err := s.counts(ctx, logical)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// CPU percentages from times delta.
func corePercents(prev, cur []cpu.TimesStat) []float64 {
	n := min(len(prev), len(cur))
	perCore := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		dt := cur[i].Total() - prev[i].Total()
		di := (cur[i].Idle + cur[i].Iowait) - (prev[i].Idle + prev[i].Iowait)
		pct := 0.0
		if dt > 0 {
			pct = 100 * (1 - di/dt)
		}
		perCore = append(perCore, clampPercent(pct))
	}
	return perCore
}

// frequencies returns one MHz value per logical core that reported one:
// cpufreq first, then the per-CPU info rows. Platforms that only report per
// package get the package values.
func (s *Sampler) frequencies(logical int, infos []cpu.InfoStat) []float64 {
	byCore := make(map[int]float64, len(infos))
	for _, in := range infos {
		if in.Mhz > 0 {
			byCore[int(in.CPU)] = in.Mhz
		}
	}
	freqs := make([]float64, 0, logical)
	for core := 0; core < logical; core++ {
		if mhz, ok := s.coreFreq(core); ok {
			freqs = append(freqs, mhz)
			continue
		}
		if mhz, ok := byCore[core]; ok {
			freqs = append(freqs, mhz)
		}
	}
	if len(freqs) == 0 {
		for _, in := range infos {
			if in.Mhz > 0 {
				freqs = append(freqs, in.Mhz)
			}
		}
	}
	return freqs
}

func aggregateSpeed(freqs []float64) model.CPUCurrentSpeed {
	if len(freqs) == 0 {
		return model.CPUCurrentSpeed{}
	}
	out := model.CPUCurrentSpeed{Min: freqs[0], Max: freqs[0]}
	for _, f := range freqs {
		out.Min = min(out.Min, f)
		out.Max = max(out.Max, f)
	}
	out.Avg = mean(freqs)
	return out
}

// mean divides by at least one so an empty slice yields 0.
func mean(vals []float64) float64 {
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(max(len(vals), 1))
}

func (s *Sampler) memory(ctx context.Context) model.MemoryInfo {
	info := model.MemoryInfo{Layout: []model.MemorySlot{}}
	if vm, err := s.virtualMemory(ctx); err == nil && vm != nil {
		info.Total = vm.Total
		info.Used = vm.Used
		info.Available = vm.Available
		info.Active = vm.Active
		if info.Active == 0 {
			info.Active = vm.Used
		}
	} else {
		s.log.Debug().Err(err).Msg("virtual memory unavailable, reporting zeroes")
	}
	if sw, err := s.swapMemory(ctx); err == nil && sw != nil {
		info.SwapTotal = sw.Total
		info.SwapUsed = sw.Used
	} else {
		s.log.Debug().Err(err).Msg("swap unavailable, reporting zeroes")
	}
	info.SwapFree = units.SaturatingSub(info.SwapTotal, info.SwapUsed)
	return info
}

// Memory reads the counters without sampling CPU.
func (s *Sampler) Memory(ctx context.Context) model.MemoryInfo { return s.memory(ctx) }

func clampPercent(p float64) float64 {
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}

func sleepContext(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
