// Package collector assembles full and live hardware snapshots from the
// metrics sampler and the platform source adapters.
package collector

import (
	"context"
	"fmt"
	"runtime"
	"runtime/debug"
	"time"

	"github.com/jaypipes/ghw"
	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	psnet "github.com/shirou/gopsutil/v3/net"
	"golang.org/x/sync/errgroup"

	"github.com/Dicklesworthstone/hwsnap/internal/elevate"
	"github.com/Dicklesworthstone/hwsnap/internal/model"
	"github.com/Dicklesworthstone/hwsnap/internal/runner"
	"github.com/Dicklesworthstone/hwsnap/internal/sampler"
	"github.com/Dicklesworthstone/hwsnap/internal/source"
)

// MetricsSampler is the CPU, memory and sensor side of a snapshot.
type MetricsSampler interface {
	Sample(ctx context.Context) sampler.Reading
	Temperature(ctx context.Context) model.CPUTemperature
}

// Host supplies the clock and uptime stamped on every snapshot.
type Host interface {
	Now() time.Time
	Uptime(ctx context.Context) uint64
}

type systemHost struct{}

// SystemHost reads the wall clock and the kernel's uptime.
func SystemHost() Host { return systemHost{} }

func (systemHost) Now() time.Time { return time.Now() }

func (systemHost) Uptime(ctx context.Context) uint64 {
	up, err := host.UptimeWithContext(ctx)
	if err != nil {
		return 0
	}
	return up
}

// Options tune a Collector.
type Options struct {
	Settle         time.Duration
	CommandTimeout time.Duration
	Elevation      elevate.Policy
	// Parallel runs independent sources concurrently, at most Workers at once.
	Parallel bool
	Workers  int
	Version  string
}

// Collector builds snapshots. It holds no per-call state, so one value can
// serve concurrent callers.
type Collector struct {
	sampler MetricsSampler
	sources source.Set
	host    Host
	log     zerolog.Logger
	opts    Options
	goos    string

	hostInfo   func(ctx context.Context) (*host.InfoStat, error)
	partitions func(ctx context.Context, all bool) ([]disk.PartitionStat, error)
	usage      func(ctx context.Context, path string) (*disk.UsageStat, error)
	interfaces func(ctx context.Context) (psnet.InterfaceStatList, error)
	blockInfo  func() (*ghw.BlockInfo, error)
}

func New(s MetricsSampler, sources source.Set, h Host, log zerolog.Logger, opts Options) *Collector {
	return &Collector{
		sampler:    s,
		sources:    sources.Complete(),
		host:       h,
		log:        log,
		opts:       opts,
		goos:       runtime.GOOS,
		hostInfo:   host.InfoWithContext,
		partitions: disk.PartitionsWithContext,
		usage:      disk.UsageWithContext,
		interfaces: psnet.InterfacesWithContext,
		blockInfo:  func() (*ghw.BlockInfo, error) { return ghw.Block(ghw.WithDisableWarnings()) },
	}
}

// NewSystem wires the real sampler and the adapters for this build target.
func NewSystem(opts Options, log zerolog.Logger) *Collector {
	env := source.Env{
		Runner:    runner.Exec{Timeout: opts.CommandTimeout},
		Elevation: opts.Elevation,
		Roots:     source.DefaultRoots(),
		Log:       log,
	}
	return New(sampler.New(opts.Settle, log), source.ForPlatform(env), SystemHost(), log, opts)
}

// CollectFull runs every source. It never fails; a source that cannot
// answer leaves its fields at their defaults. A panic in any source is
// re-raised on the calling goroutine.
//
// CPU load is sampled before any adapter starts so the settle window does
// not see the adapters' own subprocesses.
func (c *Collector) CollectFull(ctx context.Context) model.FullSnapshot {
	reading := c.sampler.Sample(ctx)

	var (
		temp     model.CPUTemperature
		osInfo   model.OSInfo
		ifaces   []model.NetworkInterface
		storage  model.StorageInfo
		identity source.Option[model.UUIDInfo]
		cache    source.Option[model.CPUCache]
		ids      source.Option[source.CPUIDs]
		gpus     source.Option[[]model.GPUController]
		layout   source.Option[[]model.MemorySlot]
		board    source.Option[model.BaseboardInfo]
		bios     source.Option[model.BIOSInfo]
		audio    source.Option[[]model.AudioDevice]
		usb      source.Option[[]model.USBDevice]
		optical  source.Option[[]model.OpticalDevice]
		uefi     source.Option[bool]
	)

	var g errgroup.Group
	g.SetLimit(c.limit())
	spawn(&g, "temperature", func() { temp = c.sampler.Temperature(ctx) })
	spawn(&g, "os", func() { osInfo = c.osInfo(ctx) })
	spawn(&g, "network", func() {
		ifaces = c.network(ctx)
		names := make([]string, 0, len(ifaces))
		for _, in := range ifaces {
			names = append(names, in.Iface)
		}
		identity = c.sources.Identity.Identity(ctx, names)
	})
	spawn(&g, "storage", func() { storage = c.storage(ctx) })
	spawn(&g, "cache", func() { cache = c.sources.Cache.CacheSizes(ctx) })
	spawn(&g, "cpu-ids", func() { ids = c.sources.CPUIDs.CPUIDs(ctx) })
	spawn(&g, "gpu", func() { gpus = c.sources.GPUs.Controllers(ctx) })
	spawn(&g, "memory-layout", func() { layout = c.sources.Memory.MemoryLayout(ctx) })
	spawn(&g, "baseboard", func() { board = c.sources.Baseboard.Baseboard(ctx) })
	spawn(&g, "bios", func() { bios = c.sources.BIOS.BIOS(ctx) })
	spawn(&g, "audio", func() { audio = c.sources.Audio.AudioDevices(ctx) })
	spawn(&g, "usb", func() { usb = c.sources.USB.USBDevices(ctx) })
	spawn(&g, "optical", func() { optical = c.sources.Optical.OpticalDrives(ctx) })
	spawn(&g, "boot", func() { uefi = c.sources.Boot.UEFI(ctx) })
	if err := g.Wait(); err != nil {
		panic(err)
	}

	snap := model.EmptyFull()

	osInfo.UEFI = uefi.Or(false)
	uuid := identity.Or(model.UUIDInfo{})
	if uuid.MACs == nil {
		uuid.MACs = []string{}
	}
	snap.StaticData = model.StaticData{
		Baseboard: board.Or(model.BaseboardInfo{}),
		BIOS:      bios.Or(model.BIOSInfo{}),
		OS:        osInfo,
		UUID:      uuid,
		Versions:  model.VersionsInfo{Go: runtime.Version(), Collector: c.opts.Version},
	}

	cpuIDs := ids.Or(source.CPUIDs{})
	snap.CPU = model.CPUInfo{
		Brand:         reading.CPU.Brand,
		Vendor:        reading.CPU.Vendor,
		Family:        cpuIDs.Family,
		Model:         cpuIDs.Model,
		Stepping:      cpuIDs.Stepping,
		PhysicalCores: reading.CPU.PhysicalCores,
		Cores:         reading.CPU.Cores,
		Speed:         reading.CPU.Speed,
		SpeedMax:      reading.CPU.SpeedMax,
		Cache:         cache.Or(model.CPUCache{}),
	}
	snap.CPUCurrentSpeed = reading.Speed
	snap.CurrentLoad = reading.Load
	snap.CPUTemperature = temp

	snap.Graphics.Controllers = list(gpus)
	snap.Network.Interfaces = orEmpty(ifaces)
	snap.Storage = storage

	snap.Memory = reading.Memory
	snap.Memory.Layout = list(layout)

	snap.Audio.Devices = list(audio)
	snap.Peripherals.USBDevices = list(usb)
	snap.Optical.Devices = list(optical)
	snap.Runtime = c.runtime(ctx)
	return snap
}

// CollectLive samples CPU, temperature and memory counters only.
func (c *Collector) CollectLive(ctx context.Context) model.LiveSnapshot {
	reading := c.sampler.Sample(ctx)

	snap := model.EmptyLive()
	snap.CPUCurrentSpeed = reading.Speed
	snap.CurrentLoad = reading.Load
	snap.CPUTemperature = c.sampler.Temperature(ctx)
	snap.Memory = reading.Memory
	snap.Memory.Layout = []model.MemorySlot{}
	snap.Runtime = c.runtime(ctx)
	return snap
}

func (c *Collector) runtime(ctx context.Context) model.RuntimeInfo {
	return model.RuntimeInfo{
		Uptime:  c.host.Uptime(ctx),
		Current: c.host.Now().Unix(),
	}
}

func (c *Collector) limit() int {
	if !c.opts.Parallel {
		return 1
	}
	if c.opts.Workers <= 0 {
		return -1
	}
	return c.opts.Workers
}

// taskPanic carries a recovered panic out of an errgroup task.
type taskPanic struct {
	task  string
	value any
	stack []byte
}

func (p *taskPanic) Error() string {
	return fmt.Sprintf("%s: panic: %v", p.task, p.value)
}

func spawn(g *errgroup.Group, task string, fn func()) {
	g.Go(func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = &taskPanic{task: task, value: r, stack: debug.Stack()}
			}
		}()
		fn()
		return nil
	})
}

func list[T any](o source.Option[[]T]) []T {
	return orEmpty(o.Or(nil))
}

func orEmpty[T any](v []T) []T {
	if v == nil {
		return []T{}
	}
	return v
}
