package detectors

import "testing"

func TestPhone(t *testing.T) {
	ms := Classify(Default(), "phone", "9876543210")
	if len(ms) != 1 || ms[0].Def.Name != "phone_number" {
		t.Fatalf("expected phone_number, got %+v", ms)
	}
	for _, v := range []string{"1234567890", "98765", "98765432101"} {
		if ms := Classify(Default(), "phone", v); len(ms) != 0 {
			t.Fatalf("%q: expected no match, got %+v", v, ms)
		}
	}
}

func TestPhoneEmbedded(t *testing.T) {
	ms := Classify(Default(), "notes", "call me on 9123456780 after six")
	if len(ms) != 1 || ms[0].Text != "9123456780" || ms[0].Start != 11 {
		t.Fatalf("unexpected matches %+v", ms)
	}
}
