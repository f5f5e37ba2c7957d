//go:build linux

package source

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/Dicklesworthstone/hwsnap/internal/elevate"
	"github.com/Dicklesworthstone/hwsnap/internal/model"
	"github.com/Dicklesworthstone/hwsnap/internal/runner"
)

type lspciGPUs struct {
	run runner.Runner
	log zerolog.Logger
}

func (g lspciGPUs) Controllers(ctx context.Context) Option[[]model.GPUController] {
	out, err := g.run.Run(ctx, "lspci")
	if err != nil {
		g.log.Debug().Err(err).Str("source", "lspci").Msg("unavailable")
		return None[[]model.GPUController]()
	}
	gpus := ParseLspci(string(out))
	for _, gpu := range gpus {
		if gpu.Vendor == "NVIDIA" {
			g.fillVRAM(ctx, gpus)
			break
		}
	}
	return Some(gpus)
}

// fillVRAM asks the NVIDIA driver for memory sizes, matched on bus id.
func (g lspciGPUs) fillVRAM(ctx context.Context, gpus []model.GPUController) {
	out, err := g.run.Run(ctx, "nvidia-smi",
		"--query-gpu=pci.bus_id,memory.total",
		"--format=csv,noheader,nounits")
	if err != nil {
		g.log.Debug().Err(err).Str("source", "nvidia-smi").Msg("unavailable")
		return
	}
	vram := ParseNvidiaMemory(string(out))
	for i := range gpus {
		if v, ok := vram[shortBusID(gpus[i].Bus)]; ok {
			gpus[i].VRAM = v
		}
	}
}

type dmidecodeMemory struct {
	run    runner.Runner
	policy elevate.Policy
	log    zerolog.Logger
}

func (m dmidecodeMemory) MemoryLayout(ctx context.Context) Option[[]model.MemorySlot] {
	out, err := m.policy.Run(ctx, m.run, "dmidecode", "-t", "17")
	if err != nil {
		m.log.Debug().Err(err).Str("source", "dmidecode").Msg("memory layout unavailable")
		return None[[]model.MemorySlot]()
	}
	return Some(ParseDMIMemory(string(out)))
}

type aplayAudio struct {
	run runner.Runner
	log zerolog.Logger
}

func (a aplayAudio) AudioDevices(ctx context.Context) Option[[]model.AudioDevice] {
	out, err := a.run.Run(ctx, "aplay", "-l")
	if err != nil {
		a.log.Debug().Err(err).Str("source", "aplay").Msg("unavailable")
		return None[[]model.AudioDevice]()
	}
	return Some(ParseAplay(string(out)))
}

type lsusbDevices struct {
	run runner.Runner
	log zerolog.Logger
}

func (l lsusbDevices) USBDevices(ctx context.Context) Option[[]model.USBDevice] {
	out, err := l.run.Run(ctx, "lsusb")
	if err != nil {
		l.log.Debug().Err(err).Str("source", "lsusb").Msg("unavailable")
		return None[[]model.USBDevice]()
	}
	return Some(ParseLsusb(string(out)))
}
