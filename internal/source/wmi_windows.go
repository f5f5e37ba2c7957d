//go:build windows

package source

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sys/windows/registry"

	"github.com/Dicklesworthstone/hwsnap/internal/cim"
	"github.com/Dicklesworthstone/hwsnap/internal/model"
	"github.com/Dicklesworthstone/hwsnap/internal/units"
)

type win32Processor struct {
	Caption     string
	L2CacheSize uint32
	L3CacheSize uint32
}

type win32PhysicalMemory struct {
	Capacity         uint64
	Speed            uint32
	SMBIOSMemoryType uint32
	FormFactor       uint16
	Manufacturer     string
	PartNumber       string
	SerialNumber     string
}

type win32VideoController struct {
	Name        string
	AdapterRAM  uint32
	PNPDeviceID string
}

type win32BaseBoard struct {
	Manufacturer string
	Product      string
	Version      string
	SerialNumber string
}

type win32BIOS struct {
	Manufacturer      string
	SMBIOSBIOSVersion string
	ReleaseDate       cim.Text
}

type win32NetworkAdapterConfiguration struct {
	MACAddress string
}

type win32ComputerSystemProduct struct {
	UUID string
}

type win32SoundDevice struct {
	Name         string
	Manufacturer string
	Status       string
}

type win32PnPEntity struct {
	Name         string
	Manufacturer string
	PNPDeviceID  string
}

type win32CDROMDrive struct {
	Drive        string
	Name         string
	Manufacturer string
}

var (
	processorRequest = cim.Request{Class: "Win32_Processor", Fields: []string{"Caption", "L2CacheSize", "L3CacheSize"}}
	memoryRequest    = cim.Request{Class: "Win32_PhysicalMemory", Fields: []string{
		"Capacity", "Speed", "SMBIOSMemoryType", "FormFactor", "Manufacturer", "PartNumber", "SerialNumber",
	}}
	videoRequest     = cim.Request{Class: "Win32_VideoController", Fields: []string{"Name", "AdapterRAM", "PNPDeviceID"}}
	baseboardRequest = cim.Request{Class: "Win32_BaseBoard", Fields: []string{"Manufacturer", "Product", "Version", "SerialNumber"}}
	biosRequest      = cim.Request{Class: "Win32_BIOS", Fields: []string{"Manufacturer", "SMBIOSBIOSVersion", "ReleaseDate"}}
	adapterRequest   = cim.Request{Class: "Win32_NetworkAdapterConfiguration", Fields: []string{"MACAddress"}, Where: "IPEnabled = True"}
	productRequest   = cim.Request{Class: "Win32_ComputerSystemProduct", Fields: []string{"UUID"}}
	soundRequest     = cim.Request{Class: "Win32_SoundDevice", Fields: []string{"Name", "Manufacturer", "Status"}}
	usbRequest       = cim.Request{Class: "Win32_PnPEntity", Fields: []string{"Name", "Manufacturer", "PNPDeviceID"}, Where: "PNPDeviceID LIKE 'USB%'"}
	cdromRequest     = cim.Request{Class: "Win32_CDROMDrive", Fields: []string{"Drive", "Name", "Manufacturer"}}
)

// wmiSource implements every domain from the management interface.
type wmiSource struct {
	client    *cim.Client
	machineID func() (string, error)
	log       zerolog.Logger
}

func (w wmiSource) CacheSizes(ctx context.Context) Option[model.CPUCache] {
	rows := cim.Query[win32Processor](ctx, w.client, processorRequest)
	if len(rows) == 0 || (rows[0].L2CacheSize == 0 && rows[0].L3CacheSize == 0) {
		return None[model.CPUCache]()
	}
	return Some(model.CPUCache{
		L2: uint64(rows[0].L2CacheSize) * units.KiB,
		L3: uint64(rows[0].L3CacheSize) * units.KiB,
	})
}

func (w wmiSource) CPUIDs(ctx context.Context) Option[CPUIDs] {
	rows := cim.Query[win32Processor](ctx, w.client, processorRequest)
	if len(rows) == 0 {
		return None[CPUIDs]()
	}
	ids, ok := ParseProcessorCaption(rows[0].Caption)
	if !ok {
		return None[CPUIDs]()
	}
	return Some(ids)
}

func (w wmiSource) MemoryLayout(ctx context.Context) Option[[]model.MemorySlot] {
	rows := cim.Query[win32PhysicalMemory](ctx, w.client, memoryRequest)
	if len(rows) == 0 {
		return None[[]model.MemorySlot]()
	}
	slots := []model.MemorySlot{}
	for i, r := range rows {
		if r.Capacity == 0 {
			continue
		}
		slots = append(slots, model.MemorySlot{
			Slot:         i,
			Size:         r.Capacity,
			ClockSpeed:   uint64(r.Speed),
			Type:         memoryTypeName(r.SMBIOSMemoryType),
			FormFactor:   formFactorName(r.FormFactor),
			Manufacturer: strings.TrimSpace(r.Manufacturer),
			PartNum:      strings.TrimSpace(r.PartNumber),
			SerialNum:    strings.TrimSpace(r.SerialNumber),
		})
	}
	return Some(slots)
}

func (w wmiSource) Controllers(ctx context.Context) Option[[]model.GPUController] {
	rows := cim.Query[win32VideoController](ctx, w.client, videoRequest)
	if len(rows) == 0 {
		return None[[]model.GPUController]()
	}
	gpus := make([]model.GPUController, 0, len(rows))
	for _, r := range rows {
		gpus = append(gpus, model.GPUController{
			Model:  strings.TrimSpace(r.Name),
			Vendor: GPUVendor(r.Name),
			VRAM:   uint64(r.AdapterRAM),
			Bus:    pnpBus(r.PNPDeviceID),
		})
	}
	return Some(gpus)
}

func (w wmiSource) Baseboard(ctx context.Context) Option[model.BaseboardInfo] {
	rows := cim.Query[win32BaseBoard](ctx, w.client, baseboardRequest)
	if len(rows) == 0 {
		return None[model.BaseboardInfo]()
	}
	r := rows[0]
	return Some(model.BaseboardInfo{
		Manufacturer: strings.TrimSpace(r.Manufacturer),
		Model:        strings.TrimSpace(r.Product),
		Version:      strings.TrimSpace(r.Version),
		Serial:       strings.TrimSpace(r.SerialNumber),
	})
}

func (w wmiSource) BIOS(ctx context.Context) Option[model.BIOSInfo] {
	rows := cim.Query[win32BIOS](ctx, w.client, biosRequest)
	if len(rows) == 0 {
		return None[model.BIOSInfo]()
	}
	r := rows[0]
	return Some(model.BIOSInfo{
		Vendor:      strings.TrimSpace(r.Manufacturer),
		Version:     strings.TrimSpace(r.SMBIOSBIOSVersion),
		ReleaseDate: units.NormalizeDate(r.ReleaseDate.String()),
	})
}

// Identity enumerates IP-enabled adapters itself; the interface names used on
// Linux do not map onto WMI adapter rows.
func (w wmiSource) Identity(ctx context.Context, _ []string) Option[model.UUIDInfo] {
	info := model.UUIDInfo{MACs: []string{}}
	for _, r := range cim.Query[win32NetworkAdapterConfiguration](ctx, w.client, adapterRequest) {
		if addr := strings.ToLower(strings.TrimSpace(r.MACAddress)); usableMAC(addr) {
			info.MACs = append(info.MACs, addr)
		}
	}
	if rows := cim.Query[win32ComputerSystemProduct](ctx, w.client, productRequest); len(rows) > 0 {
		info.Hardware = canonicalUUID(rows[0].UUID)
	}
	if id, err := w.machineID(); err == nil {
		info.OS = strings.TrimSpace(id)
	} else {
		w.log.Debug().Err(err).Str("source", "machine-id").Msg("unavailable")
	}
	return Some(info)
}

func (w wmiSource) AudioDevices(ctx context.Context) Option[[]model.AudioDevice] {
	rows := cim.Query[win32SoundDevice](ctx, w.client, soundRequest)
	if len(rows) == 0 {
		return None[[]model.AudioDevice]()
	}
	devices := make([]model.AudioDevice, 0, len(rows))
	for _, r := range rows {
		status := r.Status
		if status == "OK" {
			status = "Active"
		}
		manufacturer := strings.TrimSpace(r.Manufacturer)
		if manufacturer == "" {
			manufacturer = "Unknown"
		}
		devices = append(devices, model.AudioDevice{Name: strings.TrimSpace(r.Name), Manufacturer: manufacturer, Status: status})
	}
	return Some(devices)
}

func (w wmiSource) USBDevices(ctx context.Context) Option[[]model.USBDevice] {
	rows := cim.Query[win32PnPEntity](ctx, w.client, usbRequest)
	if len(rows) == 0 {
		return None[[]model.USBDevice]()
	}
	devices := []model.USBDevice{}
	for _, r := range rows {
		vid, pid, ok := ParseUSBDeviceID(r.PNPDeviceID)
		if !ok {
			continue
		}
		devices = append(devices, model.USBDevice{
			Name:      strings.TrimSpace(r.Name),
			Vendor:    strings.TrimSpace(r.Manufacturer),
			VendorID:  vid,
			ProductID: pid,
		})
	}
	return Some(devices)
}

func (w wmiSource) OpticalDrives(ctx context.Context) Option[[]model.OpticalDevice] {
	rows := cim.Query[win32CDROMDrive](ctx, w.client, cdromRequest)
	if len(rows) == 0 {
		return None[[]model.OpticalDevice]()
	}
	devices := make([]model.OpticalDevice, 0, len(rows))
	for _, r := range rows {
		vendor := strings.TrimSpace(r.Manufacturer)
		if vendor == "" {
			vendor = "Unknown"
		}
		devices = append(devices, model.OpticalDevice{Name: r.Drive, Model: strings.TrimSpace(r.Name), Vendor: vendor})
	}
	return Some(devices)
}

// UEFI firmware exposes the Secure Boot state key even when Secure Boot is
// off; legacy BIOS installs lack it.
func (w wmiSource) UEFI(context.Context) Option[bool] {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE, `SYSTEM\CurrentControlSet\Control\SecureBoot\State`, registry.QUERY_VALUE)
	if err != nil {
		return Some(false)
	}
	k.Close()
	return Some(true)
}
