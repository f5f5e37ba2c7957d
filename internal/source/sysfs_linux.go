//go:build linux

package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Dicklesworthstone/hwsnap/internal/model"
	"github.com/Dicklesworthstone/hwsnap/internal/units"
)

// readTrimmed returns the trimmed contents of a pseudo-file.
func readTrimmed(path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(string(data)), true
}

type sysfsCache struct {
	sys string
	log zerolog.Logger
}

// CacheSizes walks cpu0's cache indices 0-9. A later index of the same level
// overrides an earlier one.
func (c sysfsCache) CacheSizes(context.Context) Option[model.CPUCache] {
	var cache model.CPUCache
	found := false
	for i := 0; i < 10; i++ {
		dir := filepath.Join(c.sys, "devices/system/cpu/cpu0/cache", fmt.Sprintf("index%d", i))
		level, ok := readTrimmed(filepath.Join(dir, "level"))
		if !ok {
			continue
		}
		raw, ok := readTrimmed(filepath.Join(dir, "size"))
		if !ok {
			continue
		}
		size, ok := units.ParseCacheSize(raw)
		if !ok {
			continue
		}
		switch level {
		case "2":
			cache.L2, found = size, true
		case "3":
			cache.L3, found = size, true
		}
	}
	if !found {
		c.log.Debug().Str("source", "sysfs-cache").Msg("no L2/L3 cache descriptors")
		return None[model.CPUCache]()
	}
	return Some(cache)
}

type cpuinfoIDs struct {
	proc string
	log  zerolog.Logger
}

func (c cpuinfoIDs) CPUIDs(context.Context) Option[CPUIDs] {
	data, err := os.ReadFile(filepath.Join(c.proc, "cpuinfo"))
	if err != nil {
		c.log.Debug().Err(err).Str("source", "cpuinfo").Msg("unreadable")
		return None[CPUIDs]()
	}
	ids, ok := ParseCPUInfo(string(data))
	if !ok {
		return None[CPUIDs]()
	}
	return Some(ids)
}

// dmiFields reads one /sys/class/dmi/id file per name; missing files read as
// empty. ok is false when none exist.
func dmiFields(sys string, names ...string) (values []string, ok bool) {
	values = make([]string, len(names))
	for i, name := range names {
		if v, found := readTrimmed(filepath.Join(sys, "class/dmi/id", name)); found {
			values[i] = v
			ok = true
		}
	}
	return values, ok
}

type dmiBoard struct{ sys string }

func (d dmiBoard) Baseboard(context.Context) Option[model.BaseboardInfo] {
	v, ok := dmiFields(d.sys, "board_vendor", "board_name", "board_version", "board_serial")
	if !ok {
		return None[model.BaseboardInfo]()
	}
	return Some(model.BaseboardInfo{Manufacturer: v[0], Model: v[1], Version: v[2], Serial: v[3]})
}

type dmiBIOS struct{ sys string }

func (d dmiBIOS) BIOS(context.Context) Option[model.BIOSInfo] {
	v, ok := dmiFields(d.sys, "bios_vendor", "bios_version", "bios_date")
	if !ok {
		return None[model.BIOSInfo]()
	}
	return Some(model.BIOSInfo{Vendor: v[0], Version: v[1], ReleaseDate: units.NormalizeDate(v[2])})
}

type sysfsIdentity struct {
	sys       string
	machineID func() (string, error)
	log       zerolog.Logger
}

func (s sysfsIdentity) Identity(_ context.Context, ifaces []string) Option[model.UUIDInfo] {
	info := model.UUIDInfo{MACs: []string{}}
	for _, iface := range ifaces {
		if iface == "" || filepath.Base(iface) != iface {
			continue
		}
		addr, ok := readTrimmed(filepath.Join(s.sys, "class/net", iface, "address"))
		if !ok || !usableMAC(addr) {
			continue
		}
		info.MACs = append(info.MACs, addr)
	}
	if id, err := s.machineID(); err == nil {
		info.OS = strings.TrimSpace(id)
	} else {
		s.log.Debug().Err(err).Str("source", "machine-id").Msg("unavailable")
	}
	// product_uuid is root-only on most distributions.
	if raw, ok := readTrimmed(filepath.Join(s.sys, "class/dmi/id/product_uuid")); ok {
		info.Hardware = canonicalUUID(raw)
	}
	return Some(info)
}

type cdromDrives struct {
	proc string
	dev  string
}

func (c cdromDrives) OpticalDrives(context.Context) Option[[]model.OpticalDevice] {
	if data, err := os.ReadFile(filepath.Join(c.proc, "sys/dev/cdrom/info")); err == nil {
		if drives := ParseCDROMInfo(string(data)); len(drives) > 0 {
			return Some(drives)
		}
	}
	if _, err := os.Stat(filepath.Join(c.dev, "sr0")); err == nil {
		return Some([]model.OpticalDevice{{Name: "sr0", Model: "CD/DVD Drive", Vendor: "Unknown"}})
	}
	return None[[]model.OpticalDevice]()
}

type efiBoot struct{ sys string }

func (e efiBoot) UEFI(context.Context) Option[bool] {
	info, err := os.Stat(filepath.Join(e.sys, "firmware/efi"))
	return Some(err == nil && info.IsDir())
}
