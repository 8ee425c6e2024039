package detectors

import (
	"regexp"

	"github.com/redactyl/piiredact/internal/redact"
	"github.com/redactyl/piiredact/internal/types"
)

// Two to four capitalised words; the later ones may be initials. Only ever
// applied to a whole field value: capitalised word runs in prose are too
// common to treat as names.
var reFullName = regexp.MustCompile(`[A-Z][a-z'-]+(?:\s+[A-Z](?:[a-z'-]+|\.)?){1,3}`)

var FullName = &Definition{
	Name:       "full_name",
	Kind:       types.Combinational,
	Category:   types.CatName,
	Pattern:    reFullName,
	Mask:       redact.Name,
	Hints:      []string{"name"},
	WholeValue: true,
	SkipKeys:   nonPersonKeys,
}

// Fields whose capitalised values are places or things.
var nonPersonKeys = []string{
	"city", "town", "district", "state", "country", "street", "place",
	"product", "item", "brand", "model", "company", "org", "business",
	"store", "shop", "file", "project",
}
