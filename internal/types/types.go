package types

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Kind separates identifiers that are sensitive on their own from those that
// only become sensitive in combination with others.
type Kind string

const (
	Standalone    Kind = "standalone"
	Combinational Kind = "combinational"
)

// Category groups identifiers for the combination threshold and for masking.
type Category string

const (
	CatPhone      Category = "phone"
	CatNationalID Category = "national_id"
	CatPassport   Category = "passport"
	CatPayment    Category = "payment"
	CatName       Category = "name"
	CatEmail      Category = "email"
	CatAddress    Category = "address"
	CatNetwork    Category = "network"
	CatDevice     Category = "device"
)

// Record is one input row: an identifier plus its nested field mapping.
// Root is a yaml mapping node so key order survives the round trip.
type Record struct {
	ID   string
	Root *yaml.Node
}

// Redaction describes one masked span in the output.
type Redaction struct {
	Path       string   `json:"path"`
	Identifier string   `json:"identifier"`
	Category   Category `json:"category"`
	Kind       Kind     `json:"kind"`
}

// Verdict is the per-record outcome: the sensitivity flag and the
// (possibly) masked copy of the record.
type Verdict struct {
	ID           string      `json:"record_id"`
	Sensitive    bool        `json:"is_pii"`
	Output       *yaml.Node  `json:"-"`
	Redactions   []Redaction `json:"redactions,omitempty"`
	Unclassified []string    `json:"unclassified,omitempty"`

	// Malformed records are passed through untouched; Raw keeps the
	// original data so it can be written back verbatim.
	Malformed bool   `json:"malformed,omitempty"`
	Raw       string `json:"-"`
	Err       error  `json:"-"`
}

// UnclassifiableFieldError reports a leaf that could not be evaluated, for
// example a boolean or null value. The leaf is passed through unmasked.
type UnclassifiableFieldError struct {
	Path   string
	Reason string
}

func (e *UnclassifiableFieldError) Error() string {
	return fmt.Sprintf("field %s not classifiable: %s", e.Path, e.Reason)
}
