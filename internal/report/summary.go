package report

import (
	"encoding/json"
	"io"
	"sort"
	"time"

	"github.com/redactyl/piiredact/internal/types"
)

// Summary aggregates the verdicts of a run. It never holds record data.
type Summary struct {
	Inputs       []string       `json:"inputs"`
	Outputs      []string       `json:"outputs,omitempty"`
	Records      int            `json:"records"`
	Sensitive    int            `json:"sensitive"`
	Malformed    int            `json:"malformed"`
	Unclassified int            `json:"unclassified_fields"`
	ByIdentifier map[string]int `json:"by_identifier"`
	Duration     time.Duration  `json:"-"`
	DurationMS   int64          `json:"duration_ms"`
}

// Add folds one verdict into the summary.
func (s *Summary) Add(v types.Verdict) {
	if s.ByIdentifier == nil {
		s.ByIdentifier = map[string]int{}
	}
	s.Records++
	if v.Malformed {
		s.Malformed++
		return
	}
	if v.Sensitive {
		s.Sensitive++
	}
	s.Unclassified += len(v.Unclassified)
	for _, r := range v.Redactions {
		s.ByIdentifier[r.Identifier]++
	}
}

// Merge adds the counts of o. Inputs, outputs and duration are left alone.
func (s *Summary) Merge(o Summary) {
	if s.ByIdentifier == nil {
		s.ByIdentifier = map[string]int{}
	}
	s.Records += o.Records
	s.Sensitive += o.Sensitive
	s.Malformed += o.Malformed
	s.Unclassified += o.Unclassified
	for id, n := range o.ByIdentifier {
		s.ByIdentifier[id] += n
	}
}

// Identifiers returns the masked identifier names, most frequent first.
func (s Summary) Identifiers() []string {
	ids := make([]string, 0, len(s.ByIdentifier))
	for id := range s.ByIdentifier {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := s.ByIdentifier[ids[i]], s.ByIdentifier[ids[j]]
		if a != b {
			return a > b
		}
		return ids[i] < ids[j]
	})
	return ids
}

// WriteJSON writes the summary as indented JSON.
func WriteJSON(w io.Writer, s Summary) error {
	s.DurationMS = s.Duration.Milliseconds()
	if s.ByIdentifier == nil {
		s.ByIdentifier = map[string]int{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
