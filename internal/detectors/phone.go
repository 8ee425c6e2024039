package detectors

import (
	"regexp"

	"github.com/redactyl/piiredact/internal/redact"
	"github.com/redactyl/piiredact/internal/types"
	"github.com/redactyl/piiredact/internal/validate"
)

// Indian mobile numbers: ten digits starting 6-9.
var rePhone = regexp.MustCompile(`\b\d{10}\b`)

var Phone = &Definition{
	Name:     "phone_number",
	Kind:     types.Standalone,
	Category: types.CatPhone,
	Pattern:  rePhone,
	Validate: func(m string) bool { return validate.LeadingIn(m, "6789") },
	Mask:     redact.Phone,
	Hints:    []string{"phone", "mobile", "contact"},
}
