// Package source holds the per-domain hardware adapters. Each domain has one
// provider interface; platform_*.go binds the implementation for the build
// target and Empty supplies stubs for everything else.
//
// Providers never fail. They return None when their source is missing,
// denied or unparseable, and the caller substitutes the default.
package source

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/Dicklesworthstone/hwsnap/internal/elevate"
	"github.com/Dicklesworthstone/hwsnap/internal/model"
	"github.com/Dicklesworthstone/hwsnap/internal/runner"
)

// Option is a value or an explicit absence.
type Option[T any] struct {
	Value T
	None  bool
}

func Some[T any](v T) Option[T] { return Option[T]{Value: v} }

func None[T any]() Option[T] { return Option[T]{None: true} }

// Or returns the value, or def when absent.
func (o Option[T]) Or(def T) T {
	if o.None {
		return def
	}
	return o.Value
}

// CPUIDs are the textual family/model/stepping identifiers.
type CPUIDs struct {
	Family   string
	Model    string
	Stepping string
}

type CacheProvider interface {
	CacheSizes(ctx context.Context) Option[model.CPUCache]
}

type CPUIDProvider interface {
	CPUIDs(ctx context.Context) Option[CPUIDs]
}

type GPUProvider interface {
	Controllers(ctx context.Context) Option[[]model.GPUController]
}

type MemoryLayoutProvider interface {
	MemoryLayout(ctx context.Context) Option[[]model.MemorySlot]
}

type BaseboardProvider interface {
	Baseboard(ctx context.Context) Option[model.BaseboardInfo]
}

type BIOSProvider interface {
	BIOS(ctx context.Context) Option[model.BIOSInfo]
}

// IdentityProvider resolves MAC addresses for the named interfaces plus the
// OS and hardware UUIDs.
type IdentityProvider interface {
	Identity(ctx context.Context, ifaces []string) Option[model.UUIDInfo]
}

type AudioProvider interface {
	AudioDevices(ctx context.Context) Option[[]model.AudioDevice]
}

type USBProvider interface {
	USBDevices(ctx context.Context) Option[[]model.USBDevice]
}

type OpticalProvider interface {
	OpticalDrives(ctx context.Context) Option[[]model.OpticalDevice]
}

// BootProvider reports whether the firmware booted in UEFI mode.
type BootProvider interface {
	UEFI(ctx context.Context) Option[bool]
}

// Set is one provider per domain.
type Set struct {
	Cache     CacheProvider
	CPUIDs    CPUIDProvider
	GPUs      GPUProvider
	Memory    MemoryLayoutProvider
	Baseboard BaseboardProvider
	BIOS      BIOSProvider
	Identity  IdentityProvider
	Audio     AudioProvider
	USB       USBProvider
	Optical   OpticalProvider
	Boot      BootProvider
}

// Roots are the pseudo-filesystem mount points, overridable in tests.
type Roots struct {
	Sys  string
	Proc string
	Dev  string
}

func DefaultRoots() Roots {
	return Roots{Sys: "/sys", Proc: "/proc", Dev: "/dev"}
}

// Env is what platform adapters need from the outside world.
type Env struct {
	Runner    runner.Runner
	Elevation elevate.Policy
	Roots     Roots
	Log       zerolog.Logger
	// MachineID returns the OS installation id.
	MachineID func() (string, error)
}

func (e Env) withDefaults() Env {
	if e.Runner == nil {
		e.Runner = runner.Exec{}
	}
	if e.Roots == (Roots{}) {
		e.Roots = DefaultRoots()
	}
	if e.MachineID == nil {
		e.MachineID = machineID
	}
	return e
}

type empty struct{}

// Empty returns the stub set used on unsupported platforms.
func Empty() Set {
	e := empty{}
	return Set{
		Cache: e, CPUIDs: e, GPUs: e, Memory: e, Baseboard: e, BIOS: e,
		Identity: e, Audio: e, USB: e, Optical: e, Boot: e,
	}
}

func (empty) CacheSizes(context.Context) Option[model.CPUCache] { return None[model.CPUCache]() }
func (empty) CPUIDs(context.Context) Option[CPUIDs]             { return None[CPUIDs]() }
func (empty) Controllers(context.Context) Option[[]model.GPUController] {
	return None[[]model.GPUController]()
}
func (empty) MemoryLayout(context.Context) Option[[]model.MemorySlot] {
	return None[[]model.MemorySlot]()
}
func (empty) Baseboard(context.Context) Option[model.BaseboardInfo] {
	return None[model.BaseboardInfo]()
}
func (empty) BIOS(context.Context) Option[model.BIOSInfo] { return None[model.BIOSInfo]() }
func (empty) Identity(context.Context, []string) Option[model.UUIDInfo] {
	return None[model.UUIDInfo]()
}
func (empty) AudioDevices(context.Context) Option[[]model.AudioDevice] {
	return None[[]model.AudioDevice]()
}
func (empty) USBDevices(context.Context) Option[[]model.USBDevice] {
	return None[[]model.USBDevice]()
}
func (empty) OpticalDrives(context.Context) Option[[]model.OpticalDevice] {
	return None[[]model.OpticalDevice]()
}
func (empty) UEFI(context.Context) Option[bool] { return None[bool]() }

// Complete returns s with every unset domain bound to its stub.
func (s Set) Complete() Set {
	e := empty{}
	if s.Cache == nil {
		s.Cache = e
	}
	if s.CPUIDs == nil {
		s.CPUIDs = e
	}
	if s.GPUs == nil {
		s.GPUs = e
	}
	if s.Memory == nil {
		s.Memory = e
	}
	if s.Baseboard == nil {
		s.Baseboard = e
	}
	if s.BIOS == nil {
		s.BIOS = e
	}
	if s.Identity == nil {
		s.Identity = e
	}
	if s.Audio == nil {
		s.Audio = e
	}
	if s.USB == nil {
		s.USB = e
	}
	if s.Optical == nil {
		s.Optical = e
	}
	if s.Boot == nil {
		s.Boot = e
	}
	return s
}
