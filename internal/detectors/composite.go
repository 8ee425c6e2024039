package detectors

import (
	"regexp"
	"strings"

	"github.com/redactyl/piiredact/internal/redact"
	"github.com/redactyl/piiredact/internal/types"
	"github.com/redactyl/piiredact/internal/validate"
)

// Composite is a record-level rule: a set of sibling keys in one mapping that
// together identify a person although no single value does. Each field of an
// accepted group gets its own match carrying the composite's definition.
type Composite struct {
	Definition
	// Keys are matched case-insensitively against sibling keys.
	Keys []string
	// Accept sees the values in Keys order.
	Accept func(values []string) bool
}

// Sibling is one scalar field of a mapping, as seen by composite rules.
type Sibling struct {
	Path  string
	Leaf  int
	Key   string
	Value string
}

var reWord = regexp.MustCompile(`^[A-Za-z][A-Za-z'-]*$`)

var SplitName = &Composite{
	Definition: Definition{
		Name:     "split_name",
		Kind:     types.Combinational,
		Category: types.CatName,
		Pattern:  reWord,
		Mask:     redact.Name,
	},
	Keys: []string{"first_name", "last_name"},
	Accept: func(v []string) bool {
		return reWord.MatchString(v[0]) && reWord.MatchString(v[1])
	},
}

var rePinCode = regexp.MustCompile(`^[1-9]\d{5}$`)

var CityPIN = &Composite{
	Definition: Definition{
		Name:     "city_pin",
		Kind:     types.Combinational,
		Category: types.CatAddress,
		Pattern:  rePinCode,
		Mask:     redact.Address,
	},
	Keys: []string{"city", "pin_code"},
	Accept: func(v []string) bool {
		return v[0] != "" && rePinCode.MatchString(validate.StripSpaces(v[1]))
	},
}

// ClassifySiblings applies the registry's composite rules to the scalar
// fields of a single mapping. Values are trimmed before Accept sees them and
// matches span the trimmed text.
func ClassifySiblings(reg *Registry, fields []Sibling) []Match {
	if len(fields) == 0 {
		return nil
	}
	var out []Match
	for _, c := range reg.composites {
		picked := make([]Sibling, len(c.Keys))
		values := make([]string, len(c.Keys))
		complete := true
		for i, k := range c.Keys {
			found := false
			for _, f := range fields {
				if strings.EqualFold(f.Key, k) {
					picked[i], found = f, true
					values[i] = strings.TrimSpace(f.Value)
					break
				}
			}
			if !found {
				complete = false
				break
			}
		}
		if !complete || !c.Accept(values) {
			continue
		}
		for i, f := range picked {
			start := strings.Index(f.Value, values[i])
			out = append(out, Match{
				Path:  f.Path,
				Leaf:  f.Leaf,
				Key:   f.Key,
				Text:  values[i],
				Start: start,
				End:   start + len(values[i]),
				Def:   &c.Definition,
			})
		}
	}
	return out
}
