package validate

import "testing"

func TestLengthBetween(t *testing.T) {
	if !LengthBetween("abcd", 2, 5) {
		t.Fatal("expected true for length between")
	}
	if LengthBetween("a", 2, 5) {
		t.Fatal("expected false for too short")
	}
	if LengthBetween("abcdef", 2, 5) {
		t.Fatal("expected false for too long")
	}
}

func TestIsAlphabet(t *testing.T) {
	if !IsAlphabet("abcXYZ09", Lower+Upper+Digits) {
		t.Fatal("expected alnum to be allowed")
	}
	if IsAlphabet("abc-", "abc") {
		t.Fatal("expected false when char not allowed")
	}
	if IsAlphabet("", "abc") {
		t.Fatal("expected false for empty input")
	}
}

func TestDigitsAndLeading(t *testing.T) {
	if !IsDigits("9876543210") {
		t.Fatal("expected digits")
	}
	if IsDigits("98765x3210") {
		t.Fatal("expected false with letter")
	}
	if StripSpaces("1234 5678\t9012") != "123456789012" {
		t.Fatal("expected spaces stripped")
	}
	if !LeadingIn("9876543210", "6789") {
		t.Fatal("expected leading 9 allowed")
	}
	if LeadingIn("5876543210", "6789") {
		t.Fatal("expected leading 5 rejected")
	}
	if LeadingIn("", "6789") {
		t.Fatal("expected empty rejected")
	}
}

func TestIsIPv4(t *testing.T) {
	cases := map[string]bool{
		"192.168.1.10":    true,
		"0.0.0.0":         true,
		"255.255.255.255": true,
		"256.1.1.1":       false,
		"1.2.3":           false,
		"1.2.3.4.5":       false,
		"1.2.a.4":         false,
		"1.2.0003.4":      false,
	}
	for in, want := range cases {
		if got := IsIPv4(in); got != want {
			t.Errorf("IsIPv4(%q)=%v want %v", in, got, want)
		}
	}
}

func TestLooksMasked(t *testing.T) {
	cases := map[string]bool{
		"joXXX":    true,
		"XX":       true,
		"X":        true,
		"john":     false,
		"maxXXX":   false, // six chars: not our mask shape
		"":         false,
		"joXX":     false,
		"jo.smith": false,
	}
	for in, want := range cases {
		if got := LooksMasked(in, 'X'); got != want {
			t.Errorf("LooksMasked(%q)=%v want %v", in, got, want)
		}
	}
}
