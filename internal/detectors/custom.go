package detectors

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/redactyl/piiredact/internal/redact"
	"github.com/redactyl/piiredact/internal/types"
)

// CustomSpec is a user supplied identifier, as written under `identifiers:`
// in a config file.
type CustomSpec struct {
	Name       string   `yaml:"name"`
	Kind       string   `yaml:"kind,omitempty"`
	Category   string   `yaml:"category,omitempty"`
	Pattern    string   `yaml:"pattern"`
	Mask       string   `yaml:"mask,omitempty"`
	Hints      []string `yaml:"hints,omitempty"`
	MinLength  int      `yaml:"min_length,omitempty"`
	WholeValue bool     `yaml:"whole_value,omitempty"`
	Keys       []string `yaml:"keys,omitempty"`
	SkipKeys   []string `yaml:"skip_keys,omitempty"`
}

// Compile turns the spec into a definition. Kind defaults to combinational,
// the mask style to the category's built-in mask, then the sentinel.
func (s CustomSpec) Compile() (*Definition, error) {
	if s.Name == "" {
		return nil, fmt.Errorf("custom identifier: missing name")
	}
	if s.Pattern == "" {
		return nil, fmt.Errorf("custom identifier %q: missing pattern", s.Name)
	}
	re, err := regexp.Compile(s.Pattern)
	if err != nil {
		return nil, fmt.Errorf("custom identifier %q: %w", s.Name, err)
	}

	kind := types.Combinational
	switch strings.ToLower(s.Kind) {
	case "", string(types.Combinational):
	case string(types.Standalone):
		kind = types.Standalone
	default:
		return nil, fmt.Errorf("custom identifier %q: unknown kind %q", s.Name, s.Kind)
	}

	cat := types.Category(strings.ToLower(s.Category))
	if cat == "" {
		cat = types.Category(s.Name)
	}

	style := s.Mask
	if style == "" {
		style = string(cat)
	}
	mask, ok := redact.ByStyle(style)
	if !ok {
		if s.Mask != "" {
			return nil, fmt.Errorf("custom identifier %q: unknown mask %q (want one of %s)",
				s.Name, s.Mask, strings.Join(redact.Styles(), ", "))
		}
		mask = redact.Sentinelize
	}

	d := &Definition{
		Name:       s.Name,
		Kind:       kind,
		Category:   cat,
		Pattern:    re,
		Mask:       mask,
		Hints:      lower(s.Hints),
		WholeValue: s.WholeValue,
		OnlyKeys:   lower(s.Keys),
		SkipKeys:   lower(s.SkipKeys),
	}
	if n := s.MinLength; n > 0 {
		d.Validate = func(m string) bool { return len(m) >= n }
	}
	return d, nil
}

// Extend compiles specs and appends them to reg, returning a new registry.
func Extend(reg *Registry, specs []CustomSpec) (*Registry, error) {
	if len(specs) == 0 {
		return reg, nil
	}
	defs := make([]*Definition, 0, len(specs))
	for _, s := range specs {
		d, err := s.Compile()
		if err != nil {
			return nil, err
		}
		defs = append(defs, d)
	}
	return reg.With(defs...)
}

func lower(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}
