package model

// FullSnapshot is the complete static+live hardware inventory.
type FullSnapshot struct {
	StaticData      StaticData      `json:"staticData"`
	CPU             CPUInfo         `json:"cpu"`
	CPUCurrentSpeed CPUCurrentSpeed `json:"cpuCurrentSpeed"`
	CurrentLoad     CurrentLoad     `json:"currentLoad"`
	CPUTemperature  CPUTemperature  `json:"cpuTemperature"`
	Graphics        GraphicsInfo    `json:"graphics"`
	Network         NetworkInfo     `json:"network"`
	Storage         StorageInfo     `json:"storage"`
	Memory          MemoryInfo      `json:"memory"`
	Audio           AudioInfo       `json:"audio"`
	Peripherals     PeripheralInfo  `json:"peripherals"`
	Optical         OpticalInfo     `json:"optical"`
	Runtime         RuntimeInfo     `json:"runtime"`
}

// LiveSnapshot is the cheap subset meant for repeated polling.
type LiveSnapshot struct {
	CPUCurrentSpeed CPUCurrentSpeed `json:"cpuCurrentSpeed"`
	CurrentLoad     CurrentLoad     `json:"currentLoad"`
	CPUTemperature  CPUTemperature  `json:"cpuTemperature"`
	Memory          MemoryInfo      `json:"memory"`
	Runtime         RuntimeInfo     `json:"runtime"`
}

type StaticData struct {
	Baseboard BaseboardInfo `json:"baseboard"`
	BIOS      BIOSInfo      `json:"bios"`
	OS        OSInfo        `json:"os"`
	UUID      UUIDInfo      `json:"uuid"`
	Versions  VersionsInfo  `json:"versions"`
}

type BaseboardInfo struct {
	Manufacturer string `json:"manufacturer"`
	Model        string `json:"model"`
	Version      string `json:"version"`
	Serial       string `json:"serial"`
}

type BIOSInfo struct {
	Vendor      string `json:"vendor"`
	Version     string `json:"version"`
	ReleaseDate string `json:"releaseDate"`
}

// OSInfo.Platform uses the Node.js spelling ("linux", "win32", "darwin").
type OSInfo struct {
	Platform string `json:"platform"`
	Distro   string `json:"distro"`
	Release  string `json:"release"`
	Hostname string `json:"hostname"`
	Kernel   string `json:"kernel"`
	Arch     string `json:"arch"`
	FQDN     string `json:"fqdn"`
	UEFI     bool   `json:"uefi"`
}

type UUIDInfo struct {
	OS       string   `json:"os"`
	Hardware string   `json:"hardware"`
	MACs     []string `json:"macs"`
}

type VersionsInfo struct {
	Go        string `json:"go"`
	Collector string `json:"collector"`
}

// CPUInfo speeds are MHz, cache sizes bytes.
type CPUInfo struct {
	Brand         string   `json:"brand"`
	Vendor        string   `json:"vendor"`
	Family        string   `json:"family"`
	Model         string   `json:"model"`
	Stepping      string   `json:"stepping"`
	PhysicalCores int      `json:"physicalCores"`
	Cores         int      `json:"cores"`
	Speed         float64  `json:"speed"`
	SpeedMax      float64  `json:"speedMax"`
	Cache         CPUCache `json:"cache"`
}

type CPUCache struct {
	L2 uint64 `json:"l2"`
	L3 uint64 `json:"l3"`
}

type CPUCurrentSpeed struct {
	Avg float64 `json:"avg"`
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type CurrentLoad struct {
	CurrentLoad float64 `json:"currentLoad"`
}

type CPUTemperature struct {
	Main float64 `json:"main"`
	Max  float64 `json:"max"`
}

type GraphicsInfo struct {
	Controllers []GPUController `json:"controllers"`
}

type GPUController struct {
	Model  string `json:"model"`
	Vendor string `json:"vendor"`
	VRAM   uint64 `json:"vram"`
	Bus    string `json:"bus"`
}

type NetworkInfo struct {
	Interfaces []NetworkInterface `json:"interfaces"`
}

type NetworkInterface struct {
	Iface string `json:"iface"`
	IP4   string `json:"ip4"`
	IP6   string `json:"ip6"`
	MAC   string `json:"mac"`
}

type StorageInfo struct {
	DiskLayout  []DiskLayoutEntry `json:"diskLayout"`
	Filesystems []FilesystemEntry `json:"filesystems"`
}

type DiskLayoutEntry struct {
	Name          string `json:"name"`
	Type          string `json:"type"`
	Size          uint64 `json:"size"`
	InterfaceType string `json:"interfaceType"`
}

type FilesystemEntry struct {
	Mount string  `json:"mount"`
	Type  string  `json:"type"`
	Used  uint64  `json:"used"`
	Size  uint64  `json:"size"`
	Use   float64 `json:"use"`
}

// MemoryInfo counters are bytes. Layout is only filled by full snapshots.
type MemoryInfo struct {
	Total     uint64       `json:"total"`
	Used      uint64       `json:"used"`
	Available uint64       `json:"available"`
	Active    uint64       `json:"active"`
	SwapTotal uint64       `json:"swaptotal"`
	SwapUsed  uint64       `json:"swapused"`
	SwapFree  uint64       `json:"swapfree"`
	Layout    []MemorySlot `json:"layout"`
}

type MemorySlot struct {
	Slot         int    `json:"slot"`
	Size         uint64 `json:"size"`
	ClockSpeed   uint64 `json:"clockSpeed"`
	Type         string `json:"type"`
	FormFactor   string `json:"formFactor"`
	Manufacturer string `json:"manufacturer"`
	PartNum      string `json:"partNum"`
	SerialNum    string `json:"serialNum"`
}

type AudioInfo struct {
	Devices []AudioDevice `json:"devices"`
}

type AudioDevice struct {
	Name         string `json:"name"`
	Manufacturer string `json:"manufacturer"`
	Status       string `json:"status"`
}

type PeripheralInfo struct {
	USBDevices []USBDevice `json:"usbDevices"`
}

type USBDevice struct {
	Name      string `json:"name"`
	Vendor    string `json:"vendor"`
	VendorID  string `json:"vendorId"`
	ProductID string `json:"productId"`
	Bus       string `json:"bus"`
	Device    string `json:"device"`
}

type OpticalInfo struct {
	Devices []OpticalDevice `json:"devices"`
}

type OpticalDevice struct {
	Name   string `json:"name"`
	Model  string `json:"model"`
	Vendor string `json:"vendor"`
}

// RuntimeInfo is seconds since boot and seconds since the Unix epoch.
type RuntimeInfo struct {
	Uptime  uint64 `json:"uptime"`
	Current int64  `json:"current"`
}

// EmptyFull returns a full snapshot with every collection allocated, so it
// encodes as [] rather than null.
func EmptyFull() FullSnapshot {
	return FullSnapshot{
		StaticData:  StaticData{UUID: UUIDInfo{MACs: []string{}}},
		Graphics:    GraphicsInfo{Controllers: []GPUController{}},
		Network:     NetworkInfo{Interfaces: []NetworkInterface{}},
		Storage:     StorageInfo{DiskLayout: []DiskLayoutEntry{}, Filesystems: []FilesystemEntry{}},
		Memory:      MemoryInfo{Layout: []MemorySlot{}},
		Audio:       AudioInfo{Devices: []AudioDevice{}},
		Peripherals: PeripheralInfo{USBDevices: []USBDevice{}},
		Optical:     OpticalInfo{Devices: []OpticalDevice{}},
	}
}

// EmptyLive is the live counterpart of EmptyFull.
func EmptyLive() LiveSnapshot {
	return LiveSnapshot{Memory: MemoryInfo{Layout: []MemorySlot{}}}
}
