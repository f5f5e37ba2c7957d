package source

import (
	"strconv"
	"strings"

	"github.com/Dicklesworthstone/hwsnap/internal/model"
	"github.com/Dicklesworthstone/hwsnap/internal/units"
)

// GPU vendors in precedence order: when a description names several, the
// earliest entry here wins.
var gpuVendors = []struct {
	name     string
	keywords []string
}{
	{"NVIDIA", []string{"NVIDIA"}},
	{"AMD", []string{"AMD", "ATI"}},
	{"Intel", []string{"Intel"}},
}

// GPUVendor infers a vendor from free text by case-sensitive substring match.
func GPUVendor(description string) string {
	for _, v := range gpuVendors {
		for _, kw := range v.keywords {
			if strings.Contains(description, kw) {
				return v.name
			}
		}
	}
	return ""
}

// ParseLspci keeps display-class devices from plain `lspci` output.
func ParseLspci(text string) []model.GPUController {
	gpus := []model.GPUController{}
	for _, line := range units.Lines(text) {
		if !strings.Contains(line, "VGA") && !strings.Contains(line, "3D") && !strings.Contains(line, "Display") {
			continue
		}
		bus, description, ok := strings.Cut(line, " ")
		if !ok {
			continue
		}
		name := description
		if i := strings.LastIndex(description, ":"); i >= 0 {
			name = description[i+1:]
		}
		gpus = append(gpus, model.GPUController{
			Model:  strings.TrimSpace(name),
			Vendor: GPUVendor(description),
			Bus:    bus,
		})
	}
	return gpus
}

// ParseNvidiaMemory reads `nvidia-smi --query-gpu=pci.bus_id,memory.total
// --format=csv,noheader,nounits` into total VRAM bytes keyed by short bus id.
func ParseNvidiaMemory(text string) map[string]uint64 {
	vram := make(map[string]uint64)
	for _, line := range units.Lines(text) {
		parts := strings.Split(line, ",")
		if len(parts) < 2 {
			continue
		}
		mib, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil || mib <= 0 {
			continue
		}
		vram[shortBusID(parts[0])] = uint64(mib) * units.MiB
	}
	return vram
}

// shortBusID drops the PCI domain: "00000000:01:00.0" and "0000:01:00.0"
// both become "01:00.0".
func shortBusID(id string) string {
	id = strings.ToLower(strings.TrimSpace(id))
	if strings.Count(id, ":") == 2 {
		_, id, _ = strings.Cut(id, ":")
	}
	return id
}

// ParseAplay reads `aplay -l` card lines such as
// "card 0: PCH [HDA Intel PCH], device 0: ALC3246 Analog [ALC3246 Analog]".
func ParseAplay(text string) []model.AudioDevice {
	devices := []model.AudioDevice{}
	for _, line := range units.Lines(text) {
		if !strings.HasPrefix(line, "card") {
			continue
		}
		parts := strings.SplitN(line, ":", 4)
		if len(parts) < 2 {
			continue
		}
		part := strings.TrimSpace(parts[1])
		name, rest, bracketed := strings.Cut(part, "[")
		manufacturer := "Unknown"
		if bracketed {
			manufacturer, _, _ = strings.Cut(rest, "]")
		}
		devices = append(devices, model.AudioDevice{
			Name:         strings.TrimSpace(name),
			Manufacturer: manufacturer,
			Status:       "Active",
		})
	}
	return devices
}

// ParseLsusb reads plain `lsusb` lines such as
// "Bus 002 Device 001: ID 1d6b:0003 Linux Foundation 3.0 root hub".
// Lines that do not have the ID token in fifth position are skipped.
func ParseLsusb(text string) []model.USBDevice {
	devices := []model.USBDevice{}
	for _, line := range units.Lines(text) {
		fields := strings.Fields(line)
		if len(fields) < 7 || fields[4] != "ID" {
			continue
		}
		ids := strings.Split(fields[5], ":")
		if len(ids) != 2 {
			continue
		}
		devices = append(devices, model.USBDevice{
			Name:      strings.Join(fields[6:], " "),
			VendorID:  ids[0],
			ProductID: ids[1],
			Bus:       fields[1],
			Device:    strings.TrimSuffix(fields[3], ":"),
		})
	}
	return devices
}

// ParseCDROMInfo pairs each "drive name:" with the "drive model:" line that
// follows it in /proc/sys/dev/cdrom/info.
func ParseCDROMInfo(text string) []model.OpticalDevice {
	devices := []model.OpticalDevice{}
	pending := ""
	for _, line := range units.Lines(text) {
		if v, ok := strings.CutPrefix(line, "drive name:"); ok {
			pending = strings.TrimSpace(v)
		}
		if v, ok := strings.CutPrefix(line, "drive model:"); ok && pending != "" {
			devices = append(devices, model.OpticalDevice{
				Name:   pending,
				Model:  strings.TrimSpace(v),
				Vendor: "Unknown",
			})
			pending = ""
		}
	}
	return devices
}

// ParseUSBDeviceID extracts the vendor and product ids from a PnP device id
// like `USB\VID_046D&PID_C52B\5&2F5A3C1&0&2`.
func ParseUSBDeviceID(id string) (vendor, product string, ok bool) {
	upper := strings.ToUpper(id)
	vi := strings.Index(upper, "VID_")
	pi := strings.Index(upper, "PID_")
	if vi < 0 || pi < 0 || len(upper) < vi+8 || len(upper) < pi+8 {
		return "", "", false
	}
	return strings.ToLower(id[vi+4 : vi+8]), strings.ToLower(id[pi+4 : pi+8]), true
}

// pnpBus returns the enumerator prefix of a PnP id ("PCI" for PCI\VEN_...).
func pnpBus(id string) string {
	bus, _, _ := strings.Cut(id, `\`)
	return bus
}
