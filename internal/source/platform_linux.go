//go:build linux

package source

// ForPlatform binds the Linux adapters: sysfs and procfs readers plus the
// lspci, dmidecode, aplay and lsusb tools.
func ForPlatform(env Env) Set {
	env = env.withDefaults()
	return Set{
		Cache:     sysfsCache{sys: env.Roots.Sys, log: env.Log},
		CPUIDs:    cpuinfoIDs{proc: env.Roots.Proc, log: env.Log},
		GPUs:      lspciGPUs{run: env.Runner, log: env.Log},
		Memory:    dmidecodeMemory{run: env.Runner, policy: env.Elevation, log: env.Log},
		Baseboard: dmiBoard{sys: env.Roots.Sys},
		BIOS:      dmiBIOS{sys: env.Roots.Sys},
		Identity:  sysfsIdentity{sys: env.Roots.Sys, machineID: env.MachineID, log: env.Log},
		Audio:     aplayAudio{run: env.Runner, log: env.Log},
		USB:       lsusbDevices{run: env.Runner, log: env.Log},
		Optical:   cdromDrives{proc: env.Roots.Proc, dev: env.Roots.Dev},
		Boot:      efiBoot{sys: env.Roots.Sys},
	}
}
