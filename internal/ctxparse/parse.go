package ctxparse

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	yaml "gopkg.in/yaml.v3"
)

// MalformedInputError means a data cell could not be turned into a record.
type MalformedInputError struct {
	Reason string
	Err    error
}

func (e *MalformedInputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed record: %s: %v", e.Reason, e.Err)
	}
	return "malformed record: " + e.Reason
}

func (e *MalformedInputError) Unwrap() error { return e.Err }

// Clean strips one pair of enclosing double quotes and collapses doubled
// quotes, as left behind by spreadsheet exports.
func Clean(raw string) string {
	s := strings.TrimSpace(raw)
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		s = s[1 : len(s)-1]
	}
	return strings.ReplaceAll(s, `""`, `"`)
}

var (
	reBareDate  = regexp.MustCompile(`(:\s*)(\d{4}[-/.]\d{2}[-/.]\d{2})([\s,}])`)
	reBareIdent = regexp.MustCompile(`(:\s*)([A-Za-z_][A-Za-z0-9_]*)([\s,}])`)
)

// Repair quotes bare dates and bare identifiers in value position. JSON
// literals true, false and null are left alone.
func Repair(s string) string {
	s = reBareDate.ReplaceAllString(s, `${1}"${2}"${3}`)
	return reBareIdent.ReplaceAllStringFunc(s, func(m string) string {
		sub := reBareIdent.FindStringSubmatch(m)
		switch sub[2] {
		case "true", "false", "null":
			return m
		}
		return sub[1] + `"` + sub[2] + `"` + sub[3]
	})
}

// Parse cleans raw, repairs it when it is not valid JSON and returns the
// root mapping node. Decoding goes through yaml.v3 so that key order is kept
// and unquoted scalars the repair pass missed are still accepted.
func Parse(raw string) (*yaml.Node, error) {
	s := Clean(raw)
	if strings.TrimSpace(s) == "" {
		return nil, &MalformedInputError{Reason: "empty data"}
	}
	candidates := []string{s}
	if !json.Valid([]byte(s)) {
		if r := Repair(s); r != s {
			candidates = []string{r, s}
		}
	}

	var lastErr error
	for _, c := range candidates {
		var doc yaml.Node
		if err := yaml.Unmarshal([]byte(c), &doc); err != nil {
			lastErr = err
			continue
		}
		root := &doc
		if root.Kind == yaml.DocumentNode && len(root.Content) == 1 {
			root = root.Content[0]
		}
		if root.Kind != yaml.MappingNode {
			return nil, &MalformedInputError{Reason: "top level value is not an object"}
		}
		return root, nil
	}
	return nil, &MalformedInputError{Reason: "cannot decode", Err: lastErr}
}
