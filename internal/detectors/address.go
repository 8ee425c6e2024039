package detectors

import (
	"regexp"

	"github.com/redactyl/piiredact/internal/redact"
	"github.com/redactyl/piiredact/internal/types"
)

// House number, then street words, up to a six digit PIN code or the end of
// the value. Digit runs inside the street part are capped at five so a PIN
// is never swallowed.
var reAddress = regexp.MustCompile(`\b\d{1,5}[A-Za-z]?,?\s+[A-Za-z](?:[A-Za-z .,'/#()-]|\d{1,5}\b){2,80}?(?:\b[1-9]\d{5}\b|$)`)

var rePIN = regexp.MustCompile(`\b[1-9]\d{5}$`)

var Address = &Definition{
	Name:     "physical_address",
	Kind:     types.Combinational,
	Category: types.CatAddress,
	Pattern:  reAddress,
	// A street line without a PIN code is not specific enough.
	Qualify: func(m string) bool { return rePIN.MatchString(m) },
	Mask:    redact.Address,
	Hints:   []string{"address"},
}
