package detectors

import "testing"

func TestDeviceID(t *testing.T) {
	for _, v := range []string{
		"123e4567-e89b-12d3-a456-426614174000",
		"00:1A:2B:3C:4D:5E",
		"356938035643809",
		"DEV1234567",
	} {
		ms := Classify(Default(), "device_id", v)
		if len(ms) != 1 || ms[0].Def.Name != "device_id" {
			t.Fatalf("%q: expected device_id, got %+v", v, ms)
		}
		if !ms[0].Def.Qualifies(ms[0].Text) {
			t.Fatalf("%q: should qualify", v)
		}
	}
}

func TestDeviceIDMinLength(t *testing.T) {
	cases := []struct {
		value     string
		qualifies bool
	}{
		{"DEV123", false},
		{"DEV1234", true},
	}
	for _, c := range cases {
		ms := Classify(Default(), "device_id", c.value)
		if len(ms) != 1 || ms[0].Def.Name != "device_id" {
			t.Fatalf("%q: expected device_id, got %+v", c.value, ms)
		}
		if got := ms[0].Def.Qualifies(ms[0].Text); got != c.qualifies {
			t.Fatalf("%q: qualifies = %v, want %v", c.value, got, c.qualifies)
		}
	}
}

func TestDeviceIDOnlyInDeviceFields(t *testing.T) {
	for _, key := range []string{"notes", "order_ref", ""} {
		if ms := Classify(Default(), key, "DEV1234567"); len(ms) != 0 {
			t.Fatalf("key %q: unexpected matches %+v", key, ms)
		}
	}
}
