package core

import (
	"context"

	"github.com/redactyl/piiredact/internal/ctxparse"
	"github.com/redactyl/piiredact/internal/detectors"
	"github.com/redactyl/piiredact/internal/engine"
	"github.com/redactyl/piiredact/internal/types"
)

// Re-export selected internal types as a stable public API surface.
type (
	Redaction = types.Redaction
	Policy    = engine.Policy
)

const (
	PolicyThreshold       = engine.PolicyThreshold
	PolicyMaskOnSensitive = engine.PolicyMaskOnSensitive
)

// Options select the policy and rules. The zero value matches the CLI
// defaults.
type Options struct {
	Policy       Policy
	NoComposites bool
	// Disable removes built-in identifiers or composite rules by name.
	Disable []string
}

// Row is one input record: an id and its JSON data.
type Row struct {
	ID   string `json:"record_id"`
	Data string `json:"data_json"`
}

// Result is the outcome for one record. Malformed records carry their
// original data, Sensitive false and the parse error in Error.
type Result struct {
	ID         string      `json:"record_id"`
	Data       string      `json:"redacted_data_json"`
	Sensitive  bool        `json:"is_pii"`
	Redactions []Redaction `json:"redactions,omitempty"`
	Malformed  bool        `json:"malformed,omitempty"`
	Error      string      `json:"error,omitempty"`
}

func newProcessor(opts Options) *engine.Processor {
	reg := detectors.Default()
	if len(opts.Disable) > 0 {
		reg = reg.Without(opts.Disable...)
	}
	return engine.New(engine.Options{Registry: reg, Policy: opts.Policy, NoComposites: opts.NoComposites})
}

// ProcessJSON masks a single record. It fails only when data is not a
// usable JSON object.
func ProcessJSON(data string, opts Options) (Result, error) {
	root, err := ctxparse.Parse(data)
	if err != nil {
		return Result{}, err
	}
	v := newProcessor(opts).Process(types.Record{Root: root})
	return toResult(v)
}

// Process masks rows concurrently on threads workers (0 = GOMAXPROCS).
// Results are in input order and malformed rows never abort the batch.
func Process(ctx context.Context, rows []Row, opts Options, threads int) ([]Result, error) {
	jobs := make([]engine.Job, len(rows))
	for i, r := range rows {
		root, err := ctxparse.Parse(r.Data)
		jobs[i] = engine.Job{ID: r.ID, Raw: r.Data, Root: root, Err: err}
	}
	verdicts, err := engine.ProcessAll(ctx, newProcessor(opts), jobs, threads)
	if err != nil {
		return nil, err
	}
	out := make([]Result, len(verdicts))
	for i, v := range verdicts {
		if out[i], err = toResult(v); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func toResult(v types.Verdict) (Result, error) {
	if v.Malformed {
		r := Result{ID: v.ID, Data: v.Raw, Malformed: true}
		if v.Err != nil {
			r.Error = v.Err.Error()
		}
		return r, nil
	}
	data, err := ctxparse.EncodeJSON(v.Output)
	if err != nil {
		return Result{}, err
	}
	return Result{ID: v.ID, Data: data, Sensitive: v.Sensitive, Redactions: v.Redactions}, nil
}

// IdentifierIDs lists the built-in identifier and composite rule names.
func IdentifierIDs() []string { return detectors.IDs() }
