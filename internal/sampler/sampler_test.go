package sampler

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dicklesworthstone/hwsnap/internal/model"
)

type option func(*Sampler)

func withTimes(reads ...[]cpu.TimesStat) option {
	return func(s *Sampler) {
		i := 0
		s.times = func(context.Context, bool) ([]cpu.TimesStat, error) {
			if i >= len(reads) {
				return nil, errors.New("exhausted")
			}
			r := reads[i]
			i++
			return r, nil
		}
	}
}

func withInfo(infos ...cpu.InfoStat) option {
	return func(s *Sampler) {
		s.info = func(context.Context) ([]cpu.InfoStat, error) { return infos, nil }
	}
}

func withCounts(logical, physical int) option {
	return func(s *Sampler) {
		s.counts = func(_ context.Context, l bool) (int, error) {
			if l {
				return logical, nil
			}
			return physical, nil
		}
	}
}

func withCoreFreq(mhz map[int]float64) option {
	return func(s *Sampler) {
		s.coreFreq = func(core int) (float64, bool) {
			v, ok := mhz[core]
			return v, ok
		}
	}
}

func withMemory(vm *mem.VirtualMemoryStat, sw *mem.SwapMemoryStat) option {
	return func(s *Sampler) {
		s.virtualMemory = func(context.Context) (*mem.VirtualMemoryStat, error) { return vm, nil }
		s.swapMemory = func(context.Context) (*mem.SwapMemoryStat, error) { return sw, nil }
	}
}

// newTestSampler starts from a host with nothing to report.
func newTestSampler(opts ...option) (*Sampler, *[]time.Duration) {
	var slept []time.Duration
	s := New(0, zerolog.Nop())
	s.times = func(context.Context, bool) ([]cpu.TimesStat, error) { return nil, errors.New("no procfs") }
	s.info = func(context.Context) ([]cpu.InfoStat, error) { return nil, errors.New("no cpuinfo") }
	s.counts = func(context.Context, bool) (int, error) { return 0, errors.New("no topology") }
	s.virtualMemory = func(context.Context) (*mem.VirtualMemoryStat, error) { return nil, errors.New("no meminfo") }
	s.swapMemory = func(context.Context) (*mem.SwapMemoryStat, error) { return nil, errors.New("no swaps") }
	s.sensors = func(context.Context) ([]host.TemperatureStat, error) { return nil, errors.New("no hwmon") }
	s.coreFreq = func(int) (float64, bool) { return 0, false }
	s.sleep = func(_ context.Context, d time.Duration) { slept = append(slept, d) }
	for _, opt := range opts {
		opt(s)
	}
	return s, &slept
}

func TestSampleTwoReadDelta(t *testing.T) {
	prev := []cpu.TimesStat{
		{CPU: "cpu0", User: 100, Idle: 900},
		{CPU: "cpu1", User: 500, Idle: 500},
	}
	cur := []cpu.TimesStat{
		{CPU: "cpu0", User: 150, Idle: 950},   // 50% busy
		{CPU: "cpu1", User: 590, Idle: 500, Iowait: 10}, // 90% busy
	}
	s, slept := newTestSampler(
		withTimes(prev, cur),
		withCounts(2, 1),
		withInfo(cpu.InfoStat{CPU: 0, VendorID: "GenuineIntel", ModelName: " Intel(R) Core(TM) i5 ", Mhz: 3600}),
		withCoreFreq(map[int]float64{0: 2000, 1: 4000}),
	)

	r := s.Sample(context.Background())

	assert.Equal(t, []time.Duration{DefaultSettle}, *slept)
	assert.InDelta(t, 70.0, r.Load.CurrentLoad, 1e-9)
	assert.Equal(t, model.CPUCurrentSpeed{Avg: 3000, Min: 2000, Max: 4000}, r.Speed)
	assert.Equal(t, CPUStatic{
		Brand:         "Intel(R) Core(TM) i5",
		Vendor:        "GenuineIntel",
		PhysicalCores: 1,
		Cores:         2,
		Speed:         3000,
		SpeedMax:      4000,
	}, r.CPU)
}

func TestSampleWithoutCores(t *testing.T) {
	s, slept := newTestSampler()

	r := s.Sample(context.Background())

	assert.Len(t, *slept, 1)
	assert.Equal(t, Reading{Memory: model.MemoryInfo{Layout: []model.MemorySlot{}}}, r)
}

func TestSampleFallsBackToInfoFrequencies(t *testing.T) {
	s, _ := newTestSampler(
		withCounts(4, 2),
		withInfo(cpu.InfoStat{CPU: 0, Mhz: 2900}),
	)
	r := s.Sample(context.Background())
	assert.Equal(t, model.CPUCurrentSpeed{Avg: 2900, Min: 2900, Max: 2900}, r.Speed)
	assert.Equal(t, 4, r.CPU.Cores)
}

func TestPhysicalNeverExceedsLogical(t *testing.T) {
	s, _ := newTestSampler(withCounts(2, 8))
	r := s.Sample(context.Background())
	assert.Equal(t, 2, r.CPU.PhysicalCores)
}

func TestLogicalFromTimesWhenCountsFail(t *testing.T) {
	times := []cpu.TimesStat{{CPU: "cpu0", Idle: 1}, {CPU: "cpu1", Idle: 1}, {CPU: "cpu2", Idle: 1}}
	s, _ := newTestSampler(withTimes(times, times))
	r := s.Sample(context.Background())
	assert.Equal(t, 3, r.CPU.Cores)
	assert.Equal(t, 0.0, r.Load.CurrentLoad)
}

func TestCorePercentsClampAndMismatch(t *testing.T) {
	prev := []cpu.TimesStat{{User: 10, Idle: 10}, {User: 10, Idle: 10}}
	cur := []cpu.TimesStat{{User: 10, Idle: 30}}
	assert.Equal(t, []float64{0}, corePercents(prev, cur))

	// Counter wrap makes idle jump backwards; the result stays within range.
	cur = []cpu.TimesStat{{User: 40, Idle: 5}, {User: 10, Idle: 10}}
	assert.Equal(t, []float64{100, 0}, corePercents(prev, cur))
}

func TestMemorySwapFreeSaturates(t *testing.T) {
	s, _ := newTestSampler(withMemory(
		&mem.VirtualMemoryStat{Total: 16 << 30, Used: 6 << 30, Available: 10 << 30},
		&mem.SwapMemoryStat{Total: 1 << 30, Used: 2 << 30},
	))
	info := s.Memory(context.Background())
	assert.Equal(t, uint64(0), info.SwapFree)
	assert.Equal(t, uint64(6<<30), info.Active)
	assert.NotNil(t, info.Layout)
	assert.Empty(t, info.Layout)

	s, _ = newTestSampler(withMemory(
		&mem.VirtualMemoryStat{Total: 8 << 30, Used: 4 << 30, Active: 3 << 30},
		&mem.SwapMemoryStat{Total: 4 << 30, Used: 1 << 30},
	))
	info = s.Memory(context.Background())
	assert.Equal(t, uint64(3<<30), info.SwapFree)
	assert.Equal(t, uint64(3<<30), info.Active)
}

func TestClampSettle(t *testing.T) {
	assert.Equal(t, DefaultSettle, ClampSettle(0))
	assert.Equal(t, MinSettle, ClampSettle(time.Millisecond))
	assert.Equal(t, MaxSettle, ClampSettle(time.Minute))
	assert.Equal(t, 300*time.Millisecond, ClampSettle(300*time.Millisecond))
}

func TestSleepContextReturnsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	start := time.Now()
	sleepContext(ctx, time.Minute)
	assert.Less(t, time.Since(start), time.Second)
}

func TestSysfsFrequency(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "cpu1", "cpufreq")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scaling_cur_freq"), []byte("2400000\n"), 0o644))

	read := sysfsFrequency(root)
	mhz, ok := read(1)
	require.True(t, ok)
	assert.Equal(t, 2400.0, mhz)

	_, ok = read(0)
	assert.False(t, ok)
}
