package source

import (
	"strings"

	"github.com/denisbrodbeck/machineid"
	"github.com/google/uuid"
)

const zeroMAC = "00:00:00:00:00:00"

func machineID() (string, error) { return machineid.ID() }

// canonicalUUID lower-cases and re-renders a firmware UUID. Unparseable input
// is kept as printed; the nil UUID counts as absent.
func canonicalUUID(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := uuid.Parse(raw)
	if err != nil {
		return raw
	}
	if u == uuid.Nil {
		return ""
	}
	return u.String()
}

// usableMAC rejects empty and all-zero addresses.
func usableMAC(addr string) bool {
	addr = strings.TrimSpace(addr)
	return addr != "" && addr != zeroMAC
}
