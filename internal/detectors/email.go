package detectors

import (
	"regexp"

	"github.com/redactyl/piiredact/internal/redact"
	"github.com/redactyl/piiredact/internal/types"
)

var reEmail = regexp.MustCompile(`[A-Za-z0-9_.+-]+@[A-Za-z0-9-]+(?:\.[A-Za-z0-9-]+)+`)

var Email = &Definition{
	Name:     "email_address",
	Kind:     types.Combinational,
	Category: types.CatEmail,
	Pattern:  reEmail,
	Validate: unmaskedLocal,
	Mask:     redact.Email,
	Hints:    []string{"email", "mail"},
}
