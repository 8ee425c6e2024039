package engine

import (
	"errors"
	"sort"

	"github.com/redactyl/piiredact/internal/ctxparse"
	"github.com/redactyl/piiredact/internal/detectors"
	"github.com/redactyl/piiredact/internal/redact"
	"github.com/redactyl/piiredact/internal/types"
	yaml "gopkg.in/yaml.v3"
)

// Options configure a Processor. The zero value uses the built-in registry,
// the threshold policy and composite rules.
type Options struct {
	Registry     *detectors.Registry
	Policy       Policy
	NoComposites bool
}

// Processor runs one record through classification, evaluation and masking.
// It holds no per-record state and is safe for concurrent use.
type Processor struct {
	reg    *detectors.Registry
	policy Policy
}

// New builds a processor from opts.
func New(opts Options) *Processor {
	reg := opts.Registry
	if reg == nil {
		reg = detectors.Default()
	}
	if opts.NoComposites {
		reg = reg.WithoutComposites()
	}
	return &Processor{reg: reg, policy: opts.Policy}
}

// Registry returns the definitions the processor applies.
func (p *Processor) Registry() *detectors.Registry { return p.reg }

// Policy returns the combination policy in effect.
func (p *Processor) Policy() Policy { return p.policy }

var errNoData = errors.New("record has no data")

// Process classifies every leaf of rec, decides sensitivity and returns a
// masked copy. rec itself is never modified.
func (p *Processor) Process(rec types.Record) types.Verdict {
	if rec.Root == nil {
		return p.PassThrough(rec.ID, "", errNoData)
	}
	out := ctxparse.Clone(rec.Root)
	v := types.Verdict{ID: rec.ID, Output: out}

	// Leaves are addressed by index: a dotted key and a nested path, or a
	// repeated key, give two leaves the same path. Each is masked on its own.
	leaves := ctxparse.Leaves(out)
	siblings := map[*yaml.Node][]detectors.Sibling{}
	var parents []*yaml.Node
	var matches []detectors.Match

	for i, l := range leaves {
		if !ctxparse.IsText(l.Node) {
			err := &types.UnclassifiableFieldError{Path: l.Path, Reason: unclassifiable(l.Node)}
			v.Unclassified = append(v.Unclassified, err.Path)
			continue
		}
		for _, m := range detectors.Classify(p.reg, l.Key, l.Node.Value) {
			m.Path, m.Leaf = l.Path, i
			matches = append(matches, m)
		}
		if l.Parent != nil && l.Parent.Kind == yaml.MappingNode {
			if _, ok := siblings[l.Parent]; !ok {
				parents = append(parents, l.Parent)
			}
			siblings[l.Parent] = append(siblings[l.Parent], detectors.Sibling{
				Path: l.Path, Leaf: i, Key: l.Key, Value: l.Node.Value,
			})
		}
	}
	if len(p.reg.Composites()) > 0 {
		var claimed []detectors.Match
		for _, parent := range parents {
			claimed = append(claimed, detectors.ClassifySiblings(p.reg, siblings[parent])...)
		}
		matches = append(supersede(matches, claimed), claimed...)
	}

	d := Evaluate(matches, p.policy)
	v.Sensitive = d.Sensitive
	if len(d.Selected) == 0 {
		return v
	}

	byLeaf := map[int][]detectors.Match{}
	var order []int
	for _, m := range d.Selected {
		if _, ok := byLeaf[m.Leaf]; !ok {
			order = append(order, m.Leaf)
		}
		byLeaf[m.Leaf] = append(byLeaf[m.Leaf], m)
	}
	for _, i := range order {
		l := leaves[i]
		kept := nonOverlapping(byLeaf[i])
		reps := make([]redact.Replacement, len(kept))
		for j, m := range kept {
			reps[j] = redact.Replacement{Start: m.Start, End: m.End, Replace: m.Def.Mask(m.Text)}
			v.Redactions = append(v.Redactions, types.Redaction{
				Path: l.Path, Identifier: m.Def.Name, Category: m.Def.Category, Kind: m.Def.Kind,
			})
		}
		ctxparse.SetString(l.Node, redact.Apply(l.Node.Value, reps))
	}
	return v
}

// supersede drops combinational matches that overlap a composite match on
// the same leaf; the composite speaks for that span. Standalone matches are
// always kept.
func supersede(matches, claimed []detectors.Match) []detectors.Match {
	if len(claimed) == 0 {
		return matches
	}
	kept := matches[:0:0]
	for _, m := range matches {
		drop := false
		if m.Def.Kind == types.Combinational {
			for _, c := range claimed {
				if c.Leaf == m.Leaf && m.Start < c.End && c.Start < m.End {
					drop = true
					break
				}
			}
		}
		if !drop {
			kept = append(kept, m)
		}
	}
	return kept
}

// PassThrough is the verdict for a record that could not be parsed or
// processed: not sensitive, original data kept.
func (p *Processor) PassThrough(id, raw string, err error) types.Verdict {
	return types.Verdict{ID: id, Malformed: true, Raw: raw, Err: err}
}

// nonOverlapping keeps the longer of overlapping spans, then the one from the
// earlier registered definition, and returns the survivors by start offset.
func nonOverlapping(ms []detectors.Match) []detectors.Match {
	if len(ms) < 2 {
		return ms
	}
	ranked := make([]detectors.Match, len(ms))
	copy(ranked, ms)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Len() != ranked[j].Len() {
			return ranked[i].Len() > ranked[j].Len()
		}
		if oi, oj := ranked[i].Def.Order(), ranked[j].Def.Order(); oi != oj {
			return oi < oj
		}
		return ranked[i].Start < ranked[j].Start
	})
	var kept []detectors.Match
	for _, m := range ranked {
		ok := true
		for _, k := range kept {
			if m.Start < k.End && k.Start < m.End {
				ok = false
				break
			}
		}
		if ok {
			kept = append(kept, m)
		}
	}
	sort.Slice(kept, func(i, j int) bool { return kept[i].Start < kept[j].Start })
	return kept
}

func unclassifiable(n *yaml.Node) string {
	if n.Kind == yaml.AliasNode {
		return "alias"
	}
	switch n.ShortTag() {
	case "!!bool":
		return "boolean"
	case "!!null":
		return "null"
	}
	return "unsupported tag " + n.ShortTag()
}
