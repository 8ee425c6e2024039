package detectors

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/redactyl/piiredact/internal/redact"
	"github.com/redactyl/piiredact/internal/types"
)

// Definition describes one identifier type. Definitions are data: adding one
// never changes classifier or evaluator logic.
type Definition struct {
	Name     string
	Kind     types.Kind
	Category types.Category
	Pattern  *regexp.Regexp
	// Validate layers semantic checks on top of the shape match.
	Validate func(match string) bool
	// Qualify decides whether a combinational match counts towards the
	// threshold. Nil means every match qualifies.
	Qualify func(match string) bool
	Mask    redact.Masker
	// Hints are key substrings used only to choose between overlapping
	// candidates.
	Hints []string
	// WholeValue definitions are attempted against the entire field value
	// and never searched for inside prose.
	WholeValue bool
	// OnlyKeys confines the definition to fields whose lower-cased key
	// contains one of these substrings. SkipKeys excludes fields the same
	// way. Both are for shapes too generic to mean anything out of context.
	OnlyKeys []string
	SkipKeys []string

	whole *regexp.Regexp
	order int
}

// Order is the registration index; lower wins ties.
func (d *Definition) Order() int { return d.order }

// Qualifies reports whether match counts as a qualifying combinational match.
func (d *Definition) Qualifies(match string) bool {
	return d.Qualify == nil || d.Qualify(match)
}

func (d *Definition) valid(match string) bool {
	return d.Validate == nil || d.Validate(match)
}

// AppliesTo reports whether the definition is tried on a field with key.
func (d *Definition) AppliesTo(key string) bool {
	lkey := strings.ToLower(key)
	if len(d.OnlyKeys) > 0 && !containsAny(lkey, d.OnlyKeys) {
		return false
	}
	return !containsAny(lkey, d.SkipKeys)
}

func containsAny(lkey string, subs []string) bool {
	if lkey == "" {
		return false
	}
	for _, s := range subs {
		if strings.Contains(lkey, s) {
			return true
		}
	}
	return false
}

// Registry is an ordered, immutable table of definitions and composite rules.
// All methods are safe for concurrent use.
type Registry struct {
	defs       []*Definition
	composites []*Composite
	byName     map[string]*Definition
}

// NewRegistry validates and orders defs. Definitions are copied so that the
// caller's values can not change a registry after construction.
func NewRegistry(defs ...*Definition) (*Registry, error) {
	r := &Registry{byName: make(map[string]*Definition, len(defs))}
	for _, in := range defs {
		if in == nil {
			return nil, errors.New("nil definition")
		}
		if err := r.add(in); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// MustRegistry is NewRegistry for package-level tables; it panics on error.
func MustRegistry(defs ...*Definition) *Registry {
	r, err := NewRegistry(defs...)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Registry) add(in *Definition) error {
	if in.Name == "" {
		return errors.New("definition without name")
	}
	if _, dup := r.byName[in.Name]; dup {
		return fmt.Errorf("duplicate definition %q", in.Name)
	}
	if in.Pattern == nil {
		return fmt.Errorf("definition %q: missing pattern", in.Name)
	}
	if in.Mask == nil {
		return fmt.Errorf("definition %q: missing masker", in.Name)
	}
	if in.Kind != types.Standalone && in.Kind != types.Combinational {
		return fmt.Errorf("definition %q: unknown kind %q", in.Name, in.Kind)
	}
	d := *in
	d.Hints = append([]string(nil), in.Hints...)
	d.OnlyKeys = append([]string(nil), in.OnlyKeys...)
	d.SkipKeys = append([]string(nil), in.SkipKeys...)
	whole, err := regexp.Compile(`^(?:` + in.Pattern.String() + `)$`)
	if err != nil {
		return fmt.Errorf("definition %q: %w", in.Name, err)
	}
	d.whole = whole
	d.order = len(r.defs)
	r.defs = append(r.defs, &d)
	r.byName[d.Name] = &d
	return nil
}

// Lookup returns definitions in registration order, restricted to kinds when
// any are given.
func (r *Registry) Lookup(kinds ...types.Kind) []*Definition {
	if len(kinds) == 0 {
		out := make([]*Definition, len(r.defs))
		copy(out, r.defs)
		return out
	}
	var out []*Definition
	for _, d := range r.defs {
		for _, k := range kinds {
			if d.Kind == k {
				out = append(out, d)
				break
			}
		}
	}
	return out
}

// Get finds a definition by name.
func (r *Registry) Get(name string) (*Definition, bool) {
	d, ok := r.byName[name]
	return d, ok
}

// IDs lists definition names in registration order.
func (r *Registry) IDs() []string {
	out := make([]string, len(r.defs))
	for i, d := range r.defs {
		out[i] = d.Name
	}
	return out
}

// Composites returns the sibling-key rules of the registry.
func (r *Registry) Composites() []*Composite {
	out := make([]*Composite, len(r.composites))
	copy(out, r.composites)
	return out
}

// With returns a new registry holding r's definitions followed by defs.
func (r *Registry) With(defs ...*Definition) (*Registry, error) {
	next, err := NewRegistry(r.plain()...)
	if err != nil {
		return nil, err
	}
	for _, d := range defs {
		if d == nil {
			return nil, errors.New("nil definition")
		}
		if err := next.add(d); err != nil {
			return nil, err
		}
	}
	next.composites = r.Composites()
	return next, nil
}

// Without returns a new registry minus the named definitions and composites.
// Unknown names are ignored.
func (r *Registry) Without(names ...string) *Registry {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}
	var keep []*Definition
	for _, d := range r.plain() {
		if !drop[d.Name] {
			keep = append(keep, d)
		}
	}
	next := MustRegistry(keep...)
	for _, c := range r.composites {
		if !drop[c.Name] {
			next.composites = append(next.composites, c)
		}
	}
	return next
}

// WithoutComposites returns a copy of r with no sibling-key rules.
func (r *Registry) WithoutComposites() *Registry {
	return MustRegistry(r.plain()...)
}

func (r *Registry) withComposites(cs ...*Composite) *Registry {
	for i, c := range cs {
		cp := *c
		cp.order = len(r.defs) + i
		r.composites = append(r.composites, &cp)
	}
	return r
}

// plain returns the registered definitions stripped of derived state so
// they can be registered again.
func (r *Registry) plain() []*Definition {
	out := make([]*Definition, len(r.defs))
	for i, d := range r.defs {
		cp := *d
		cp.whole = nil
		cp.order = 0
		out[i] = &cp
	}
	return out
}
