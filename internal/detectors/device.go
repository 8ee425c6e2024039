package detectors

import (
	"regexp"

	"github.com/redactyl/piiredact/internal/redact"
	"github.com/redactyl/piiredact/internal/types"
)

// A bare token: serials, UUIDs, MACs, IMEIs. Only device fields are tried,
// since the shape alone fits any word.
var reDevice = regexp.MustCompile(`[A-Za-z0-9][A-Za-z0-9:_-]{3,}`)

var DeviceID = &Definition{
	Name:       "device_id",
	Kind:       types.Combinational,
	Category:   types.CatDevice,
	Pattern:    reDevice,
	Qualify:    func(m string) bool { return len(m) > 6 },
	Mask:       redact.Device,
	Hints:      []string{"device"},
	WholeValue: true,
	OnlyKeys:   []string{"device", "imei", "mac_addr"},
}
