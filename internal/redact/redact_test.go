package redact

import (
	"testing"

	"github.com/redactyl/piiredact/internal/types"
)

func TestMaskRules(t *testing.T) {
	cases := []struct {
		cat  types.Category
		in   string
		want string
	}{
		{types.CatPhone, "9876543210", "98XXXXXX10"},
		{types.CatNationalID, "1234 5678 9012", "12XXXXXXXX12"},
		{types.CatNationalID, "234567890123", "23XXXXXXXX23"},
		{types.CatPassport, "P1234567", "PXXXXXXX"},
		{types.CatEmail, "john.doe@gmail.com", "joXXX@gmail.com"},
		{types.CatEmail, "jd@x.org", "XX@x.org"},
		{types.CatName, "John Doe", "JXXX DXXX"},
		{types.CatName, "John A Doe", "JXXX A DXXX"},
		{types.CatPayment, "john.doe@okaxis", "joXXX@okaxis"},
		{types.CatPayment, "ab@ybl", "XX@ybl"},
		{types.CatAddress, "12 MG Road, Pune 411001", Sentinel},
		{types.CatNetwork, "192.168.1.10", "192.XXX.XXX.10"},
		{types.CatDevice, "3f2504e0-4f89-11d3-9a0c-0305e82c3301", Sentinel},
		{types.Category("unknown"), "anything", Sentinel},
	}
	for _, c := range cases {
		if got := Mask(c.cat, c.in); got != c.want {
			t.Errorf("Mask(%s, %q)=%q want %q", c.cat, c.in, got, c.want)
		}
	}
}

func TestMaskIsDeterministic(t *testing.T) {
	for cat := range byCategory {
		a := Mask(cat, "Sample Value 9876543210")
		b := Mask(cat, "Sample Value 9876543210")
		if a != b {
			t.Fatalf("mask for %s not deterministic: %q vs %q", cat, a, b)
		}
	}
}

func TestStyles(t *testing.T) {
	if m, ok := ByStyle("keep-first"); !ok || m("secret") != "sXXXXX" {
		t.Fatalf("keep-first style broken")
	}
	if m, ok := ByStyle("keep-edges"); !ok || m("ABCDE12345") != "ABXXXXXX45" {
		t.Fatalf("keep-edges style broken")
	}
	if m, ok := ByStyle("phone"); !ok || m("9876543210") != "98XXXXXX10" {
		t.Fatalf("category style broken")
	}
	if _, ok := ByStyle("nope"); ok {
		t.Fatalf("expected unknown style to be rejected")
	}
	if len(Styles()) != len(byStyle)+len(byCategory) {
		t.Fatalf("unexpected styles list: %v", Styles())
	}
}

func TestApplyAndWouldChange(t *testing.T) {
	text := "call 9876543210 or mail john@x.com"
	reps := []Replacement{
		{Start: 24, End: 34, Replace: Email("john@x.com")},
		{Start: 5, End: 15, Replace: Phone("9876543210")},
	}
	if !WouldChange(text, reps) {
		t.Fatalf("expected WouldChange to be true")
	}
	got := Apply(text, reps)
	if got != "call 98XXXXXX10 or mail joXXX@x.com" {
		t.Fatalf("unexpected result: %q", got)
	}

	// overlapping and out-of-range replacements are ignored
	got = Apply("abcdef", []Replacement{{0, 3, "X"}, {2, 4, "Y"}, {5, 9, "Z"}})
	if got != "Xdef" {
		t.Fatalf("unexpected overlap handling: %q", got)
	}

	if WouldChange("abc", nil) {
		t.Fatalf("expected no change without replacements")
	}
}
