package detectors

import (
	"testing"

	"github.com/redactyl/piiredact/internal/types"
	"gopkg.in/yaml.v3"
)

func TestCustomSpecFromYAML(t *testing.T) {
	src := `
- name: employee_id
  kind: standalone
  category: employee
  pattern: '\bEMP\d{5}\b'
  mask: keep-first
  hints: [Emp]
- name: pan_number
  pattern: '\b[A-Z]{5}\d{4}[A-Z]\b'
  min_length: 10
`
	var specs []CustomSpec
	if err := yaml.Unmarshal([]byte(src), &specs); err != nil {
		t.Fatal(err)
	}
	reg, err := Extend(Default(), specs)
	if err != nil {
		t.Fatal(err)
	}

	d, ok := reg.Get("employee_id")
	if !ok || d.Kind != types.Standalone || d.Hints[0] != "emp" {
		t.Fatalf("unexpected definition %+v", d)
	}
	ms := Classify(reg, "emp", "EMP12345")
	if len(ms) != 1 || d.Mask(ms[0].Text) != "EXXXXXXX" {
		t.Fatalf("unexpected matches %+v", ms)
	}

	pan, _ := reg.Get("pan_number")
	if pan.Kind != types.Combinational || pan.Category != "pan_number" {
		t.Fatalf("defaults not applied: %+v", pan)
	}
	if pan.Mask("ABCDE1234F") != "[REDACTED_PII]" {
		t.Fatalf("expected sentinel fallback")
	}
}

func TestCustomSpecErrors(t *testing.T) {
	bad := []CustomSpec{
		{Pattern: `x`},
		{Name: "a"},
		{Name: "a", Pattern: `(`},
		{Name: "a", Pattern: `x`, Kind: "sometimes"},
		{Name: "a", Pattern: `x`, Mask: "blur"},
	}
	for _, s := range bad {
		if _, err := s.Compile(); err == nil {
			t.Errorf("%+v: expected error", s)
		}
	}
}

func TestCustomSpecKeys(t *testing.T) {
	d, err := CustomSpec{Name: "ticket", Pattern: `T-\d{4}`, Keys: []string{"Ticket"}}.Compile()
	if err != nil {
		t.Fatal(err)
	}
	reg, err := Default().With(d)
	if err != nil {
		t.Fatal(err)
	}
	if ms := Classify(reg, "ticket_ref", "T-1234"); len(ms) != 1 || ms[0].Def.Name != "ticket" {
		t.Fatalf("expected ticket match, got %+v", ms)
	}
	if ms := Classify(reg, "notes", "T-1234"); len(ms) != 0 {
		t.Fatalf("ticket matched outside its keys: %+v", ms)
	}
}
