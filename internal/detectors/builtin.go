package detectors

import "github.com/redactyl/piiredact/internal/types"

// Registration order matters: it is the last tie breaker on overlaps.
var all = []*Definition{
	Phone, Aadhaar, Passport, UPI, FullName, Email, Address, IPAddress, DeviceID,
}

var defaultRegistry = MustRegistry(all...).withComposites(SplitName, CityPIN)

// Default returns the built-in registry. It is shared and never mutated.
func Default() *Registry { return defaultRegistry }

// IDs lists the built-in identifier and composite rule names.
func IDs() []string {
	ids := defaultRegistry.IDs()
	for _, c := range defaultRegistry.composites {
		ids = append(ids, c.Name)
	}
	return ids
}

// Standalone reports whether name is a built-in standalone identifier.
func Standalone(name string) bool {
	d, ok := defaultRegistry.Get(name)
	return ok && d.Kind == types.Standalone
}
