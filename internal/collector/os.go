package collector

import (
	"context"

	"github.com/Dicklesworthstone/hwsnap/internal/model"
)

func (c *Collector) osInfo(ctx context.Context) model.OSInfo {
	out := model.OSInfo{Platform: nodePlatform(c.goos)}
	info, err := c.hostInfo(ctx)
	if err != nil {
		c.log.Debug().Err(err).Msg("host info")
	}
	if info == nil {
		return out
	}
	out.Distro = info.Platform
	out.Release = info.PlatformVersion
	out.Kernel = info.KernelVersion
	out.Arch = info.KernelArch
	out.Hostname = info.Hostname
	out.FQDN = info.Hostname
	return out
}

// nodePlatform spells GOOS the way consumers of the snapshot expect.
func nodePlatform(goos string) string {
	if goos == "windows" {
		return "win32"
	}
	return goos
}
