package source

import (
	"strings"

	"github.com/Dicklesworthstone/hwsnap/internal/model"
	"github.com/Dicklesworthstone/hwsnap/internal/units"
)

// ParseDMIMemory reads `dmidecode -t 17` output. Every "Memory Device" block
// takes the next slot index; blocks without a positive size (empty sockets)
// are dropped but still consume their index.
func ParseDMIMemory(text string) []model.MemorySlot {
	slots := []model.MemorySlot{}
	var cur *model.MemorySlot
	next := 0

	commit := func() {
		if cur != nil && cur.Size > 0 {
			slots = append(slots, *cur)
		}
		cur = nil
	}

	for _, line := range units.Lines(text) {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "Memory Device") {
			commit()
			cur = &model.MemorySlot{Slot: next}
			next++
			continue
		}
		if cur == nil {
			continue
		}
		if v, ok := units.Field(line, "Size:"); ok {
			cur.Size, _ = units.ParseMemorySize(v)
		} else if v, ok := units.Field(line, "Speed:"); ok {
			cur.ClockSpeed, _ = units.ParseClockSpeed(v)
		} else if v, ok := units.Field(line, "Type:"); ok {
			cur.Type = v
		} else if v, ok := units.Field(line, "Form Factor:"); ok {
			cur.FormFactor = v
		} else if v, ok := units.Field(line, "Manufacturer:"); ok {
			cur.Manufacturer = v
		} else if v, ok := units.Field(line, "Part Number:"); ok {
			cur.PartNum = v
		} else if v, ok := units.Field(line, "Serial Number:"); ok {
			cur.SerialNum = v
		}
	}
	commit()
	return slots
}

// SMBIOS memory type codes (SMBIOS 3.x, table 76) as reported by
// Win32_PhysicalMemory.SMBIOSMemoryType.
var smbiosMemoryTypes = map[uint32]string{
	0x01: "Other",
	0x02: "Unknown",
	0x03: "DRAM",
	0x0F: "SDRAM",
	0x12: "DDR",
	0x13: "DDR2",
	0x14: "DDR2 FB-DIMM",
	0x18: "DDR3",
	0x1A: "DDR4",
	0x1B: "LPDDR",
	0x1C: "LPDDR2",
	0x1D: "LPDDR3",
	0x1E: "LPDDR4",
	0x20: "HBM",
	0x21: "HBM2",
	0x22: "DDR5",
	0x23: "LPDDR5",
}

// Win32_PhysicalMemory.FormFactor codes.
var memoryFormFactors = map[uint16]string{
	1:  "Other",
	2:  "SIP",
	3:  "DIP",
	4:  "ZIP",
	5:  "SOJ",
	6:  "Proprietary",
	7:  "SIMM",
	8:  "DIMM",
	9:  "TSOP",
	10: "PGA",
	11: "RIMM",
	12: "SODIMM",
	13: "SRIMM",
	14: "SMD",
	15: "SSMP",
	16: "QFP",
	17: "TQFP",
	18: "SOIC",
	19: "LCC",
	20: "PLCC",
	21: "BGA",
	22: "FPBGA",
	23: "LGA",
}

func memoryTypeName(code uint32) string { return smbiosMemoryTypes[code] }

func formFactorName(code uint16) string { return memoryFormFactors[code] }
