package engine

import (
	"fmt"
	"strings"

	"github.com/redactyl/piiredact/internal/detectors"
	"github.com/redactyl/piiredact/internal/types"
)

// Policy decides what happens to combinational matches when the record is
// sensitive but the combination threshold is not met.
type Policy int

const (
	// PolicyThreshold masks combinational matches only when at least two
	// distinct qualifying categories are present.
	PolicyThreshold Policy = iota
	// PolicyMaskOnSensitive additionally masks qualifying combinational
	// matches in records already made sensitive by a standalone match.
	PolicyMaskOnSensitive
)

func (p Policy) String() string {
	switch p {
	case PolicyThreshold:
		return "threshold"
	case PolicyMaskOnSensitive:
		return "mask-on-sensitive"
	}
	return fmt.Sprintf("policy(%d)", int(p))
}

// ParsePolicy accepts the names produced by String. Empty means threshold.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "threshold":
		return PolicyThreshold, nil
	case "mask-on-sensitive":
		return PolicyMaskOnSensitive, nil
	}
	return 0, fmt.Errorf("unknown policy %q (want threshold or mask-on-sensitive)", s)
}

// Threshold is the number of distinct qualifying combinational categories
// that makes a record sensitive.
const Threshold = 2

// Decision is the record-level outcome of Evaluate.
type Decision struct {
	Sensitive bool
	// Selected are the matches to mask, in input order.
	Selected []detectors.Match
	// Categories that contributed to the decision, first seen first.
	Categories []types.Category
}

// Evaluate applies the sensitivity rules to every match found in a record.
func Evaluate(matches []detectors.Match, policy Policy) Decision {
	standalone := false
	var combo []types.Category
	seen := map[types.Category]bool{}
	for _, m := range matches {
		switch {
		case m.Def.Kind == types.Standalone:
			standalone = true
		case m.Def.Qualifies(m.Text) && !seen[m.Def.Category]:
			seen[m.Def.Category] = true
			combo = append(combo, m.Def.Category)
		}
	}

	var d Decision
	maskCombo := len(combo) >= Threshold ||
		(policy == PolicyMaskOnSensitive && standalone && len(combo) > 0)
	d.Sensitive = standalone || len(combo) >= Threshold

	// Once a category qualifies, all of its matches are masked, including
	// ones that would not have qualified on their own.
	cats := map[types.Category]bool{}
	for _, m := range matches {
		pick := m.Def.Kind == types.Standalone ||
			(maskCombo && m.Def.Kind == types.Combinational && seen[m.Def.Category])
		if !pick {
			continue
		}
		d.Selected = append(d.Selected, m)
		if !cats[m.Def.Category] {
			cats[m.Def.Category] = true
			d.Categories = append(d.Categories, m.Def.Category)
		}
	}
	return d
}
