package detectors

import (
	"regexp"

	"github.com/redactyl/piiredact/internal/redact"
	"github.com/redactyl/piiredact/internal/types"
	"github.com/redactyl/piiredact/internal/validate"
)

var rePassport = regexp.MustCompile(`\b[A-Za-z]\d{7}\b`)

// Series letters Q, X and Z are not issued.
const passportSeries = "ABCDEFGHIJKLMNOPRSTUVWYabcdefghijklmnoprstuvwy"

var Passport = &Definition{
	Name:     "passport_number",
	Kind:     types.Standalone,
	Category: types.CatPassport,
	Pattern:  rePassport,
	Validate: func(m string) bool {
		return len(m) == 8 && validate.LeadingIn(m, passportSeries) && m[1] != '0'
	},
	Mask:  redact.Passport,
	Hints: []string{"passport"},
}
