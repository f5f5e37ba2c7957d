//go:build windows

package source

import "github.com/Dicklesworthstone/hwsnap/internal/cim"

// ForPlatform binds every domain to the management interface.
func ForPlatform(env Env) Set {
	env = env.withDefaults()
	w := wmiSource{
		client:    cim.New(env.Runner, env.Log),
		machineID: env.MachineID,
		log:       env.Log,
	}
	return Set{
		Cache: w, CPUIDs: w, GPUs: w, Memory: w, Baseboard: w, BIOS: w,
		Identity: w, Audio: w, USB: w, Optical: w, Boot: w,
	}
}
