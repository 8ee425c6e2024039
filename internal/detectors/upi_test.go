package detectors

import "testing"

func TestUPI(t *testing.T) {
	ms := Classify(Default(), "upi_id", "ravi.kumar@okaxis")
	if len(ms) != 1 || ms[0].Def.Name != "upi_id" {
		t.Fatalf("expected upi_id, got %+v", ms)
	}
	// An email address is not a UPI handle.
	ms = Classify(Default(), "contact", "ravi@gmail.com")
	if len(ms) != 1 || ms[0].Def.Name != "email_address" {
		t.Fatalf("expected email_address, got %+v", ms)
	}
}

func TestUPIMaskedNotRematched(t *testing.T) {
	for _, v := range []string{"raXXX@okaxis", "XX@ybl"} {
		if ms := Classify(Default(), "upi_id", v); len(ms) != 0 {
			t.Fatalf("%q: masked value re-matched: %+v", v, ms)
		}
	}
}
