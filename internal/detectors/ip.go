package detectors

import (
	"regexp"

	"github.com/redactyl/piiredact/internal/redact"
	"github.com/redactyl/piiredact/internal/types"
	"github.com/redactyl/piiredact/internal/validate"
)

var reIPv4 = regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`)

var IPAddress = &Definition{
	Name:     "ip_address",
	Kind:     types.Combinational,
	Category: types.CatNetwork,
	Pattern:  reIPv4,
	Validate: validate.IsIPv4,
	Mask:     redact.IP,
	Hints:    []string{"ip"},
}
