package detectors

import (
	"sort"
	"strings"
)

// Match is one identifier found in a field. Start and End are byte offsets
// into the field text. Leaf is an index the caller assigns to tell apart
// fields that share a path.
type Match struct {
	Path  string
	Leaf  int
	Key   string
	Text  string
	Start int
	End   int
	Def   *Definition
}

// Len is the span length in bytes.
func (m Match) Len() int { return m.End - m.Start }

func (m Match) overlaps(o Match) bool {
	return m.Start < o.End && o.Start < m.End
}

// Classify finds the identifiers in one field. Every definition is first
// tried against the whole trimmed value; if any accepts it the value is
// consumed and no embedded search happens. Otherwise definitions that are
// not whole-value only are searched for inside the text.
//
// Definitions whose key filters reject key are not tried. Overlapping
// candidates are resolved by preferring the longer span, then a definition
// whose hints match key, then the earlier registration. The result is sorted
// by start offset.
func Classify(reg *Registry, key, value string) []Match {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	lkey := strings.ToLower(key)

	var cands []Match
	offset := strings.Index(value, trimmed)
	for _, d := range reg.defs {
		if !d.AppliesTo(key) {
			continue
		}
		if d.whole.MatchString(trimmed) && d.valid(trimmed) {
			cands = append(cands, Match{
				Key: key, Text: trimmed, Def: d,
				Start: offset, End: offset + len(trimmed),
			})
		}
	}
	if len(cands) == 0 {
		for _, d := range reg.defs {
			if d.WholeValue || !d.AppliesTo(key) {
				continue
			}
			for _, loc := range d.Pattern.FindAllStringIndex(value, -1) {
				text := value[loc[0]:loc[1]]
				if !d.valid(text) {
					continue
				}
				cands = append(cands, Match{
					Key: key, Text: text, Def: d,
					Start: loc[0], End: loc[1],
				})
			}
		}
	}
	return resolve(cands, lkey)
}

// resolve drops candidates that overlap a better one.
func resolve(cands []Match, lkey string) []Match {
	if len(cands) < 2 {
		return cands
	}
	ranked := make([]Match, len(cands))
	copy(ranked, cands)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Len() != b.Len() {
			return a.Len() > b.Len()
		}
		if ha, hb := hinted(a.Def, lkey), hinted(b.Def, lkey); ha != hb {
			return ha
		}
		if a.Def.order != b.Def.order {
			return a.Def.order < b.Def.order
		}
		return a.Start < b.Start
	})

	var kept []Match
	for _, c := range ranked {
		clash := false
		for _, k := range kept {
			if c.overlaps(k) {
				clash = true
				break
			}
		}
		if !clash {
			kept = append(kept, c)
		}
	}
	sort.Slice(kept, func(i, j int) bool { return kept[i].Start < kept[j].Start })
	return kept
}

func hinted(d *Definition, lkey string) bool {
	return containsAny(lkey, d.Hints)
}
