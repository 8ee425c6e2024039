package detectors

import (
	"regexp"
	"strings"

	"github.com/redactyl/piiredact/internal/redact"
	"github.com/redactyl/piiredact/internal/types"
	"github.com/redactyl/piiredact/internal/validate"
)

// user@provider where the provider handle carries no dot (okaxis, ybl, paytm).
var reUPI = regexp.MustCompile(`[A-Za-z0-9._-]{2,}@[A-Za-z][A-Za-z0-9]{1,}\b`)

var UPI = &Definition{
	Name:     "upi_id",
	Kind:     types.Standalone,
	Category: types.CatPayment,
	Pattern:  reUPI,
	Validate: unmaskedLocal,
	Mask:     redact.UPI,
	Hints:    []string{"upi", "vpa"},
}

// unmaskedLocal rejects addresses whose local part is already masked output.
func unmaskedLocal(m string) bool {
	at := strings.LastIndexByte(m, '@')
	if at <= 0 {
		return false
	}
	return !validate.LooksMasked(m[:at], redact.Filler[0])
}
