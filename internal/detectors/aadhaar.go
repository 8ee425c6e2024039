package detectors

import (
	"regexp"

	"github.com/redactyl/piiredact/internal/redact"
	"github.com/redactyl/piiredact/internal/types"
	"github.com/redactyl/piiredact/internal/validate"
)

var reAadhaar = regexp.MustCompile(`\b\d{4}\s?\d{4}\s?\d{4}\b`)

var Aadhaar = &Definition{
	Name:     "aadhaar_number",
	Kind:     types.Standalone,
	Category: types.CatNationalID,
	Pattern:  reAadhaar,
	Validate: func(m string) bool {
		d := validate.StripSpaces(m)
		return len(d) == 12 && validate.IsDigits(d) && d[0] != '0'
	},
	Mask:  redact.NationalID,
	Hints: []string{"aadhar", "aadhaar", "national_id"},
}
